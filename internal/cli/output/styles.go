package output

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#C77800", Dark: "#F4B400"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F6D"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C7086"}
)

// Styles holds the lipgloss styles used by a Renderer. All styles are
// bound to the renderer's color profile, so they render plain text when
// color is off.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Keyword lipgloss.Style
	Caret   lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusChanged lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header1: r.NewStyle().Foreground(PrimaryColor).Bold(true).Underline(true),
		Header2: r.NewStyle().Foreground(PrimaryColor).Bold(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Success: r.NewStyle().Foreground(SuccessColor),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning: r.NewStyle().Foreground(WarningColor),
		Info:    r.NewStyle().Foreground(InfoColor),
		Keyword: r.NewStyle().Foreground(InfoColor).Bold(true),
		Caret:   r.NewStyle().Foreground(ErrorColor).Bold(true),

		StatusSuccess: r.NewStyle().Foreground(SuccessColor).Bold(true),
		StatusFailed:  r.NewStyle().Foreground(ErrorColor).Bold(true),
		StatusChanged: r.NewStyle().Foreground(WarningColor).Bold(true),
	}
}
