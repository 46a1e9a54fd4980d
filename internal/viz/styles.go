package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	canvas  lipgloss.Style
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	warning lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style

	layers [LayerStar + 1]lipgloss.Style
}

func newStyles(t Theme) styles {
	s := styles{
		canvas:  lipgloss.NewStyle().Padding(1, 2),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Border).Padding(1, 2).Width(42),
		header:  lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Graph).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		warning: lipgloss.NewStyle().Foreground(t.Warning),
		graph:   lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
	s.layers[LayerNone] = lipgloss.NewStyle()
	s.layers[LayerGrid] = lipgloss.NewStyle().Foreground(t.Grid)
	s.layers[LayerPlanet] = lipgloss.NewStyle().Foreground(t.Planet)
	s.layers[LayerStar] = lipgloss.NewStyle().Foreground(t.Star).Bold(true)
	return s
}

func (s styles) layer(l Layer) lipgloss.Style {
	if int(l) >= len(s.layers) {
		return s.layers[LayerNone]
	}
	return s.layers[l]
}
