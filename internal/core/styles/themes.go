package styles

import (
	"image/color"
	"maps"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette is the set of colors the finder and CLI output draw with.
type Palette struct {
	Primary    color.Color // borders, cursor
	Accent     color.Color // query matches inside rows
	Foreground color.Color
	Muted      color.Color // placeholders, hints, help
	Surface    color.Color // separators
	Success    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Accent:     lipgloss.Color("#ff9e64"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Accent:     lipgloss.Color("#fabd2f"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Accent:     lipgloss.Color("#fab387"), // Peach
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
	"nord": {
		Primary:    lipgloss.Color("#88c0d0"), // nord8
		Accent:     lipgloss.Color("#ebcb8b"), // nord13
		Foreground: lipgloss.Color("#eceff4"), // nord6
		Muted:      lipgloss.Color("#616e88"),
		Surface:    lipgloss.Color("#3b4252"), // nord1
		Success:    lipgloss.Color("#a3be8c"), // nord14
		Error:      lipgloss.Color("#bf616a"), // nord11
	},
}

// ThemeNames returns the built-in theme names, sorted.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
