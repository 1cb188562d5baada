// Package ui provides the Bubble Tea TUI for the P2P arbitrage calculator.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	marketDomain "github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/pkg/ui/components"
)

// ThemeName identifies a color theme. The active theme is persisted.
type ThemeName string

const (
	ThemeDark  ThemeName = "dark"
	ThemeLight ThemeName = "light"
)

// Theme holds one palette worth of colors.
type Theme struct {
	Name ThemeName

	Primary   lipgloss.Color
	Positive  lipgloss.Color
	Negative  lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Highlight lipgloss.Color
}

// DarkTheme returns the default dark palette.
func DarkTheme() Theme {
	return Theme{
		Name:      ThemeDark,
		Primary:   lipgloss.Color("#7C3AED"),
		Positive:  lipgloss.Color("#10B981"),
		Negative:  lipgloss.Color("#EF4444"),
		Warning:   lipgloss.Color("#F59E0B"),
		Muted:     lipgloss.Color("#6B7280"),
		Border:    lipgloss.Color("#374151"),
		Text:      lipgloss.Color("#F9FAFB"),
		Highlight: lipgloss.Color("#1F2937"),
	}
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Name:      ThemeLight,
		Primary:   lipgloss.Color("#6D28D9"),
		Positive:  lipgloss.Color("#059669"),
		Negative:  lipgloss.Color("#DC2626"),
		Warning:   lipgloss.Color("#D97706"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Border:    lipgloss.Color("#D1D5DB"),
		Text:      lipgloss.Color("#111827"),
		Highlight: lipgloss.Color("#E5E7EB"),
	}
}

// themeFor maps a persisted theme name to its palette, defaulting to dark.
func themeFor(name ThemeName) Theme {
	if name == ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == ThemeDark {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds the derived lipgloss styles for the active theme.
type Styles struct {
	Title    lipgloss.Style
	Box      lipgloss.Style
	FocusBox lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

// NewStyles derives the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(t.Primary).
			Padding(0, 2),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		FocusBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Positive: lipgloss.NewStyle().Foreground(t.Positive),
		Negative: lipgloss.NewStyle().Foreground(t.Negative),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Help:     lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		Notice:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(t.Negative).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(t.Positive).Bold(true),
	}
}

// Palette converts the theme into the component color set.
func (t Theme) Palette() components.Palette {
	return components.Palette{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Positive: lipgloss.NewStyle().Foreground(t.Positive),
		Negative: lipgloss.NewStyle().Foreground(t.Negative),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Text).Background(t.Highlight),
	}
}

// TierStyle returns the style for a return tier.
func (s Styles) TierStyle(tier calcDomain.Tier) lipgloss.Style {
	switch tier {
	case calcDomain.TierExcellent, calcDomain.TierGood:
		return s.Positive
	case calcDomain.TierWeak:
		return s.Warning
	default:
		return s.Negative
	}
}

// RiskStyle returns the style for an insight risk level.
func (s Styles) RiskStyle(risk marketDomain.Risk) lipgloss.Style {
	switch risk {
	case marketDomain.RiskLow:
		return s.Positive
	case marketDomain.RiskHigh:
		return s.Negative
	default:
		return s.Warning
	}
}
