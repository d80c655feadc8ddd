package ui

import "github.com/charmbracelet/lipgloss"

// ColorReset returns the reset sequence of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorCyan returns the primary color of the active theme.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorGrey returns the secondary color of the active theme.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold sequence of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline sequence of the active theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// LabelStyle is the lipgloss style for report labels. lipgloss drops the
// styling on its own when stdout is not a terminal.
func LabelStyle() lipgloss.Style {
	t := GetCurrentTheme()
	if t.Name == NoColorTheme.Name {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}
