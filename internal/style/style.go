// Package style holds the terminal colours used in operator-facing output.
package style

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bold   = lipgloss.NewStyle().Bold(true)
)

// Green renders s in green.
func Green(s string) string { return green.Render(s) }

// Cyan renders s in cyan. Used for commands the operator may type.
func Cyan(s string) string { return cyan.Render(s) }

// Red renders s in red.
func Red(s string) string { return red.Render(s) }

// Yellow renders s in yellow.
func Yellow(s string) string { return yellow.Render(s) }

// Bold renders s in bold.
func Bold(s string) string { return bold.Render(s) }
