package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chamber/internal/config"
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/san-kum/chamber/internal/logging"
	"github.com/san-kum/chamber/internal/metrics"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/san-kum/chamber/internal/sim"
	"go.uber.org/zap"
)

const (
	canvasWidth     = 80
	canvasHeight    = 30
	historyCapacity = 300
)

type TickMsg time.Time

// Model is the interactive view. It owns the frame clock: each tick steps
// the simulation once and resamples the grid.
type Model struct {
	sim      *sim.Simulation
	grid     field.Grid
	lines    []field.Polyline
	canvas   *Canvas
	proj     projector
	interval time.Duration
	log      *logging.Logger

	energy *metrics.Series
	drift  *metrics.EnergyDrift
	wrap   *metrics.WrapSafety

	theme    int
	styles   styles
	showGrid bool
	running  bool
	err      error
}

// NewModel wires the view to s. The energy plot, drift and wrap-safety
// figures are registered as observers on s.
func NewModel(s *sim.Simulation, grid field.Grid, view config.ViewConfig, log *logging.Logger) (Model, error) {
	if err := grid.Validate(); err != nil {
		return Model{}, err
	}
	if view.FPS <= 0 {
		return Model{}, &dynamo.ConfigError{Field: "view.fps", Value: float64(view.FPS)}
	}
	if log == nil {
		log = logging.Nop()
	}

	cfg := s.Config()
	m := Model{
		sim:      s,
		grid:     grid,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		interval: time.Second / time.Duration(view.FPS),
		log:      log,
		energy:   metrics.NewSeries(cfg, historyCapacity),
		drift:    metrics.NewEnergyDrift(cfg),
		wrap:     metrics.NewWrapSafety(cfg),
		theme:    themeIndex(view.Theme),
		showGrid: view.ShowGrid,
		running:  true,
	}
	m.proj = newProjector(field.World(cfg), m.canvas)
	m.styles = newStyles(Themes[m.theme])
	s.AddObserver(m.energy)
	s.AddObserver(m.drift)
	s.AddObserver(m.wrap)

	m.resample()
	m.draw()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.spawn(physics.Planet)
		case "s":
			m.spawn(physics.Star)
		case "c":
			m.sim.Clear()
			m.err = nil
			m.resample()
		case "g":
			m.showGrid = !m.showGrid
			m.resample()
		case " ":
			m.running = !m.running
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		}
		m.draw()
		return m, nil
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) spawn(kind physics.Kind) {
	m.sim.Spawn(kind)
	// Energy is only conserved between insertions.
	m.drift.Reset()
	m.resample()
}

func (m *Model) step() {
	m.sim.Step()
	if !physics.Finite(m.sim.Snapshot()) {
		m.running = false
		m.err = &sim.SimError{Time: m.sim.Time(), Step: m.sim.Steps(), Wrapped: sim.ErrUnstable}
		m.log.Warn("live simulation diverged", zap.Error(m.err))
	}
	m.resample()
}

func (m *Model) resample() {
	if !m.showGrid {
		m.lines = nil
		return
	}
	lines, err := m.sim.SampleGrid(m.grid)
	if err != nil {
		m.err = err
		m.lines = nil
		return
	}
	m.lines = lines
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, line := range m.lines {
		for i := 1; i < len(line.Points); i++ {
			x0, y0, x1, y1, ok := m.proj.segment(line.Points[i-1], line.Points[i])
			if ok {
				m.canvas.DrawLine(x0, y0, x1, y1, LayerGrid)
			}
		}
	}
	for _, b := range m.sim.Bodies() {
		layer := LayerPlanet
		if b.Kind == physics.Star {
			layer = LayerStar
		}
		x, y := m.proj.toPixel(b.Pos)
		m.canvas.FillCircle(x, y, m.proj.radius(b.Radius), layer)
	}
}

func (m Model) counts() (planets, stars int) {
	for _, b := range m.sim.Bodies() {
		if b.Kind == physics.Star {
			stars++
		} else {
			planets++
		}
	}
	return
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(m.canvas.Render(st.layer))

	var s strings.Builder
	s.WriteString(st.header.Render("CHAMBER") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(st.warning.Render(errorLine(m.err)) + "\n\n")
	case m.running:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if hist := m.energy.Energy(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	planets, stars := m.counts()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", m.sim.Time()))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("Bodies", fmt.Sprintf("%d planets, %d stars", planets, stars))
	row("Energy", fmt.Sprintf("%.3f", m.energy.Value()))
	row("Drift", fmt.Sprintf("%.2e", m.drift.Value()))
	row("Wrap safe", fmt.Sprintf("%.1f%%", 100*m.wrap.Value()))
	row("Integrator", m.sim.Integrator())
	row("Theme", Themes[m.theme].Name)

	s.WriteString(st.help.Render("─────────────────────\nP:Planet S:Star C:Clear\nG:Grid SP:Pause T:Theme Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
}

func errorLine(err error) string {
	if errors.Is(err, sim.ErrUnstable) {
		return "DIVERGED (press c)"
	}
	return "ERROR: " + err.Error()
}

// Run starts the interactive program and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
