// Package components provides reusable TUI components.
package components

import "github.com/charmbracelet/lipgloss"

// Palette holds the styles components render with. The owning model swaps it
// when the theme changes.
type Palette struct {
	Header   lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
}
