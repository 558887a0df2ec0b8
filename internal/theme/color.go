package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned for color strings ParseColor cannot read.
var ErrBadColor = errors.New("theme: unrecognised color")

// ParseColor reads "#rgb", "#rrggbb", "rgb(r, g, b)" or "rgba(r, g, b, a)"
// and returns the color with its alpha (1 when absent).
func ParseColor(s string) (colorful.Color, float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return c, 1, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func parseFunc(body string, want int) (colorful.Color, float64, error) {
	parts := strings.Split(body, ",")
	if len(parts) != want {
		return colorful.Color{}, 0, fmt.Errorf("%w: expected %d components, got %d", ErrBadColor, want, len(parts))
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, 0, fmt.Errorf("%w: channel %q", ErrBadColor, parts[i])
		}
		ch[i] = v / 255
	}
	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return colorful.Color{}, 0, fmt.Errorf("%w: alpha %q", ErrBadColor, parts[3])
		}
		alpha = a
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, alpha, nil
}

// CSS formats c as "rgb(r, g, b)".
func CSS(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// WithAlpha rewrites any color string accepted by ParseColor as
// "rgba(r, g, b, a)".
func WithAlpha(s string, alpha float64) (string, error) {
	c, _, err := ParseColor(s)
	if err != nil {
		return "", err
	}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64)), nil
}
