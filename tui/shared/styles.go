package shared

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mizuki/greenplate/config"
)

var (
	// Form pane
	StepTitleStyle  lipgloss.Style
	QuestionStyle   lipgloss.Style
	ItemNameStyle   lipgloss.Style
	MetaLabelStyle  lipgloss.Style
	MetaValueStyle  lipgloss.Style
	RequiredBadge   lipgloss.Style
	PositionStyle   lipgloss.Style

	// Step chips
	ChipStyle       lipgloss.Style
	ChipActiveStyle lipgloss.Style
	ChipDoneStyle   lipgloss.Style

	// Review pane
	IssueErrorStyle   lipgloss.Style
	IssueWarningStyle lipgloss.Style
	SectionStyle      lipgloss.Style

	// Status bar
	StatusBarStyle lipgloss.Style

	// Shared text styles
	MutedStyle   lipgloss.Style
	DimStyle     lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style

	// Help
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpOverlayStyle lipgloss.Style
)

func pick(v, fallback string) lipgloss.Color {
	if v != "" {
		return lipgloss.Color(v)
	}
	return lipgloss.Color(fallback)
}

// InitStyles configures all styles from the theme config, substituting
// defaults for unset colors.
func InitStyles(theme config.ThemeConfig) {
	accent := pick(theme.Accent, "42")
	muted := pick(theme.Muted, "245")
	dim := pick(theme.Dim, "240")
	errc := pick(theme.Error, "203")
	success := pick(theme.Success, "42")
	warning := pick(theme.Warning, "214")
	required := pick(theme.Required, "203")

	StepTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	QuestionStyle = lipgloss.NewStyle().
		Bold(true)

	ItemNameStyle = lipgloss.NewStyle().
		Foreground(accent)

	MetaLabelStyle = lipgloss.NewStyle().
		Foreground(dim)

	MetaValueStyle = lipgloss.NewStyle().
		Foreground(muted)

	RequiredBadge = lipgloss.NewStyle().
		Foreground(required).
		Bold(true)

	PositionStyle = lipgloss.NewStyle().
		Foreground(dim)

	ChipStyle = lipgloss.NewStyle().
		Foreground(muted).
		Background(pick(theme.ChipBG, "236")).
		Padding(0, 1)

	ChipActiveStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(pick(theme.ChipActive, "42")).
		Bold(true).
		Padding(0, 1)

	ChipDoneStyle = lipgloss.NewStyle().
		Foreground(success).
		Background(pick(theme.ChipBG, "236")).
		Padding(0, 1)

	IssueErrorStyle = lipgloss.NewStyle().
		Foreground(errc)

	IssueWarningStyle = lipgloss.NewStyle().
		Foreground(warning)

	SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(pick(theme.StatusBarFG, "252")).
		Background(pick(theme.StatusBarBG, "236")).
		Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().Foreground(muted)
	DimStyle = lipgloss.NewStyle().Foreground(dim)
	ErrorStyle = lipgloss.NewStyle().Foreground(errc)
	SuccessStyle = lipgloss.NewStyle().Foreground(success)
	WarningStyle = lipgloss.NewStyle().Foreground(warning)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(dim)
	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(1, 2)
}

func init() {
	// Defaults so styles work even without an explicit InitStyles call
	InitStyles(config.ThemeConfig{})
}
