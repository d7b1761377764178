// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Colors widgets configure directly rather than through a style.
var (
	ColorPrimary color.Color
	ColorMuted   color.Color
)

// Style exports.
var (
	// CLI styles.
	PathStyle        lipgloss.Style
	MatchStyle       lipgloss.Style
	ErrorTextStyle   lipgloss.Style
	SuccessTextStyle lipgloss.Style

	// Finder modal.
	FinderStyle      lipgloss.Style
	FinderTitleStyle lipgloss.Style
	FinderInputStyle lipgloss.Style
	FinderRowStyle   lipgloss.Style
	FinderEmptyStyle lipgloss.Style
	FinderHelpStyle  lipgloss.Style

	// Workspace.
	HintStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	ColorPrimary = p.Primary
	ColorMuted = p.Muted

	PathStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	MatchStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(p.Error)
	SuccessTextStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	FinderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	FinderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	FinderInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.Surface)
	FinderRowStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	FinderEmptyStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)
	FinderHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	HintStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
