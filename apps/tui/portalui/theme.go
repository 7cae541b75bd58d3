package portalui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/trezcool/masomo-portal/core/portal"
)

type styles struct {
	app     lipgloss.Style
	sidebar lipgloss.Style
	active  lipgloss.Style
	cursor  lipgloss.Style
	header  lipgloss.Style
	content lipgloss.Style
	toast   lipgloss.Style
	errText lipgloss.Style
	help    lipgloss.Style
}

func stylesFor(theme portal.Theme) styles {
	fg, bg, muted, accent := lipgloss.Color("#0f172a"), lipgloss.Color("#f8fafc"), lipgloss.Color("#64748b"), lipgloss.Color("#2563eb")
	if theme.IsDark() {
		fg, bg, muted, accent = lipgloss.Color("#e2e8f0"), lipgloss.Color("#0f172a"), lipgloss.Color("#94a3b8"), lipgloss.Color("#60a5fa")
	}
	return styles{
		app:     lipgloss.NewStyle().Foreground(fg).Background(bg),
		sidebar: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(muted).PaddingRight(1),
		active:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		cursor:  lipgloss.NewStyle().Reverse(true),
		header:  lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(muted),
		content: lipgloss.NewStyle().Padding(1, 2),
		toast:   lipgloss.NewStyle().Foreground(accent).Italic(true),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")),
		help:    lipgloss.NewStyle().Foreground(muted),
	}
}
