package theme

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Theme defines the color scheme shared by the animators and the UI.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

// Available themes
var (
	Green = Theme{
		Name:       "green",
		Primary:    lipgloss.Color("#00ff41"), // Phosphor
		Secondary:  lipgloss.Color("#008f11"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#c8ffc8"),
		Muted:      lipgloss.Color("#005500"),
	}

	Red = Theme{
		Name:       "red",
		Primary:    lipgloss.Color("#ff0040"),
		Secondary:  lipgloss.Color("#990026"),
		Accent:     lipgloss.Color("#ff8899"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffd0d8"),
		Muted:      lipgloss.Color("#550015"),
	}

	Purple = Theme{
		Name:       "purple",
		Primary:    lipgloss.Color("#b026ff"),
		Secondary:  lipgloss.Color("#6a0dad"),
		Accent:     lipgloss.Color("#e0a0ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#f0d8ff"),
		Muted:      lipgloss.Color("#3a0a55"),
	}

	// Default theme
	Default = Green

	// All available themes
	Themes = []Theme{
		Green,
		Red,
		Purple,
	}
)

// Get returns a theme by name.
func Get(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Default, ErrUnknownTheme
}

// Next returns the theme after name, wrapping around.
func Next(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Default
}

// Names returns list of available theme names
func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// PrimaryColor is the color the animators paint with.
func (t Theme) PrimaryColor() colorful.Color { return mustParse(t.Primary) }

// BackgroundColor is the color trails fade into.
func (t Theme) BackgroundColor() colorful.Color { return mustParse(t.Background) }

func (t Theme) TextColor() colorful.Color   { return mustParse(t.Text) }
func (t Theme) MutedColor() colorful.Color  { return mustParse(t.Muted) }
func (t Theme) AccentColor() colorful.Color { return mustParse(t.Accent) }

func mustParse(c lipgloss.Color) colorful.Color {
	col, _, err := ParseColor(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}
