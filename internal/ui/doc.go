// Package ui provides theme and color support for console output.
// It defines color schemes, ANSI escape code helpers and lipgloss styles so
// that presentation packages share one notion of the active theme.
package ui
