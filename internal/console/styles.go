package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header lipgloss.Style
	dealer lipgloss.Style
	player lipgloss.Style
	hint   lipgloss.Style
	win    lipgloss.Style
	lose   lipgloss.Style
	push   lipgloss.Style
	muted  lipgloss.Style
}

// newStyles цвета только если out терминал
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")),
		dealer: r.NewStyle().Foreground(lipgloss.Color("12")),
		player: r.NewStyle().Foreground(lipgloss.Color("14")),
		hint:   r.NewStyle().Italic(true).Foreground(lipgloss.Color("11")),
		win:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		lose:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		push:   r.NewStyle().Foreground(lipgloss.Color("11")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
