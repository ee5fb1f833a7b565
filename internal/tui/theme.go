package tui

import (
	"github.com/charmbracelet/lipgloss"

	"subsidy-dashboard/internal/derive"
	"subsidy-dashboard/internal/display"
)

// Theme defines the visual style for the terminal dashboard.
type Theme struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Selected    lipgloss.Style
	Help        lipgloss.Style
	StatusLine  lipgloss.Style
	ErrorLine   lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Label       lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
	Muted       lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#16a34a"),
	Border:  lipgloss.Color("#404040"),
	Muted:   lipgloss.Color("#737373"),
	Success: lipgloss.Color("#10b981"),
	Warning: lipgloss.Color("#f59e0b"),
	Error:   lipgloss.Color("#ef4444"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#16a34a")).
		Padding(0, 1),
	Tab: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Padding(0, 2),
	ActiveTab: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Underline(true).
		Padding(0, 2),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#15803d")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	StatusLine: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	ErrorLine: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ef4444")),
	Dialog: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#16a34a")).
		Padding(1, 2),
	DialogTitle: lipgloss.NewStyle().
		Bold(true).
		MarginBottom(1),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Width(18),
}

// Badge colors a label by the color class the resolvers assign.
func (t Theme) Badge(colorClass, label string) string {
	var c lipgloss.Color
	switch colorClass {
	case display.ColorGreen:
		c = t.Success
	case display.ColorYellow:
		c = t.Warning
	case display.ColorRed:
		c = t.Error
	default:
		c = t.Muted
	}
	return lipgloss.NewStyle().Foreground(c).Render(label)
}

// SeverityBadge colors a severity by tier.
func (t Theme) SeverityBadge(s derive.Severity) string {
	var c lipgloss.Color
	switch s.Tier {
	case derive.TierSufficient, derive.TierAvailable:
		c = t.Success
	case derive.TierMedium, derive.TierNear:
		c = t.Warning
	default:
		c = t.Error
	}
	return lipgloss.NewStyle().Foreground(c).Render(s.Label)
}
