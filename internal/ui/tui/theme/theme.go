package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the semantic colors and styles for the plan viewer
type Theme struct {
	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtle    lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor

	// Styles
	DocStyle      lipgloss.Style
	InputStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	FooterStyle   lipgloss.Style
	TitleStyle    lipgloss.Style
	SectionStyle  lipgloss.Style
	DayStyle      lipgloss.Style
	TimeStyle     lipgloss.Style
	LinkStyle     lipgloss.Style
	StatusStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	ReplyStyle    lipgloss.Style
	PlanBoxStyle  lipgloss.Style
	MutedStyle    lipgloss.Style
	PendingStyle  lipgloss.Style
	ConfirmStyle  lipgloss.Style
	CategoryStyle lipgloss.Style
}

// DefaultTheme creates a default theme
func DefaultTheme() *Theme {
	primary := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	secondary := lipgloss.AdaptiveColor{Light: "#4B56FD", Dark: "#4B56FD"}
	text := lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	errColor := lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4136"}
	success := lipgloss.AdaptiveColor{Light: "#008700", Dark: "#2ECC40"}
	warning := lipgloss.AdaptiveColor{Light: "#FFA500", Dark: "#FF851B"}

	return &Theme{
		Primary:   primary,
		Secondary: secondary,
		Text:      text,
		Subtle:    subtle,
		Error:     errColor,
		Success:   success,
		Warning:   warning,

		DocStyle: lipgloss.NewStyle().Padding(0, 1),

		InputStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(subtle).
			Padding(0, 1),

		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(primary).
			Padding(0, 1),

		FooterStyle: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		TitleStyle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		SectionStyle: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true).
			MarginTop(1),

		DayStyle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginTop(1),

		TimeStyle: lipgloss.NewStyle().
			Foreground(secondary).
			Width(7),

		LinkStyle: lipgloss.NewStyle().
			Foreground(subtle).
			Underline(true),

		StatusStyle: lipgloss.NewStyle().
			Foreground(warning),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),

		ReplyStyle: lipgloss.NewStyle().
			Foreground(success).
			PaddingLeft(1),

		PlanBoxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		MutedStyle: lipgloss.NewStyle().
			Foreground(subtle),

		PendingStyle: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		ConfirmStyle: lipgloss.NewStyle().
			Foreground(success).
			Bold(true).
			MarginTop(1),

		CategoryStyle: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
	}
}
