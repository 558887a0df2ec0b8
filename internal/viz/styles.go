package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cyberjinn/internal/audio"
	"github.com/san-kum/cyberjinn/internal/theme"
)

// Sparkline characters from low to high
var meterChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders percent as a fixed-width bar of block characters.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func meterRune(v float64) rune {
	idx := int(v * float64(len(meterChars)-1))
	if idx >= len(meterChars) {
		idx = len(meterChars) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return meterChars[idx]
}

// Meter renders bass, mid and high as three sparkline bars.
func Meter(lv audio.Levels) string {
	return string([]rune{meterRune(lv.Bass), meterRune(lv.Mid), meterRune(lv.High)})
}

// Swatch renders a theme's palette as colored blocks followed by its name.
func Swatch(th theme.Theme) string {
	var b strings.Builder
	for _, c := range []lipgloss.Color{th.Primary, th.Secondary, th.Accent, th.Text, th.Muted} {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("██"))
	}
	name := lipgloss.NewStyle().Bold(true).Foreground(th.Primary).Render(" " + strings.ToUpper(th.Name))
	return b.String() + name
}
