package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
)

var ErrUnknownFormat = errors.New("export: unknown output format")

// SVGScale is the braille dot size used for SVG output.
const SVGScale = 4

// Formats lists the output extensions SaveResult understands.
func Formats() []string { return []string{".gif", ".png", ".svg"} }

// CaptureObserver rasterises every screen into rec.
func CaptureObserver(rec *Recorder, charW, charH int) func(int, *surface.Grid, colorful.Color) {
	return func(_ int, screen *surface.Grid, bg colorful.Color) {
		rec.Capture(GridImage(screen, bg, charW, charH))
	}
}

// SaveResult writes a render to path, choosing the format by extension: the
// recording for .gif, the final screen for .png and .svg.
func SaveResult(path string, final *surface.Grid, bg colorful.Color, rec *Recorder, charW, charH int) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		if rec == nil {
			return ErrNoFrames
		}
		return rec.Save(path)
	case ".png":
		if final == nil {
			return ErrNoFrames
		}
		return SavePNG(path, GridImage(final, bg, charW, charH))
	case ".svg":
		if final == nil {
			return ErrNoFrames
		}
		return SaveSVG(path, final, bg, SVGScale)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
