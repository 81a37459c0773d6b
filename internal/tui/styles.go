package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every lipgloss style the viewer renders with. Built once at
// startup from a Theme; nothing here is initialized at package load.
type Styles struct {
	App       lipgloss.Style
	HeaderBar lipgloss.Style
	Title     lipgloss.Style
	PageInfo  lipgloss.Style

	StatusBar    lipgloss.Style
	StatusErrBar lipgloss.Style
	Footer       lipgloss.Style
	FooterKey    lipgloss.Style
	FooterDesc   lipgloss.Style
	FooterFill   lipgloss.Style

	Popup      lipgloss.Style
	PopupTitle lipgloss.Style
	Prompt     lipgloss.Style

	PageSep      lipgloss.Style
	Match        lipgloss.Style
	MatchCurrent lipgloss.Style

	PickerCursor  lipgloss.Style
	PickerLabel   lipgloss.Style
	PickerMeta    lipgloss.Style
	PickerSection lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		App:       lipgloss.NewStyle().Foreground(t.Text),
		HeaderBar: lipgloss.NewStyle().Background(t.Mantle).Foreground(t.Text),
		Title:     lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Background(t.Mantle).Padding(0, 1),
		PageInfo:  lipgloss.NewStyle().Foreground(t.Muted).Background(t.Mantle).Padding(0, 1),

		StatusBar:    lipgloss.NewStyle().Foreground(t.Success).Background(t.Surface),
		StatusErrBar: lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface),
		Footer:       lipgloss.NewStyle().Background(t.Mantle),
		FooterKey:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Background(t.Mantle),
		FooterDesc:   lipgloss.NewStyle().Foreground(t.Muted).Background(t.Mantle),
		FooterFill:   lipgloss.NewStyle().Background(t.Mantle),

		Popup:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(1, 2),
		PopupTitle: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Prompt:     lipgloss.NewStyle().Foreground(t.Accent),

		PageSep:      lipgloss.NewStyle().Foreground(t.Dimmed),
		Match:        lipgloss.NewStyle().Foreground(t.Warning),
		MatchCurrent: lipgloss.NewStyle().Foreground(t.Bg).Background(t.Warning),

		PickerCursor:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		PickerLabel:   lipgloss.NewStyle().Foreground(t.Text),
		PickerMeta:    lipgloss.NewStyle().Foreground(t.Muted),
		PickerSection: lipgloss.NewStyle().Foreground(t.Dimmed).Bold(true),
	}
}
