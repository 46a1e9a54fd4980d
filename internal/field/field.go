// Package field turns the visualization potential into drawable geometry.
//
// [SampleGrid] walks a regular grid over [Bounds], samples
// [physics.PotentialGradientAt] at every point and displaces the point by
// Distortion times the gradient. Vertical lines come first, then horizontal
// ones. The cost is lines × samples × bodies and dominates a frame, so keep
// either the grid coarse or the body count small.
package field

import (
	"fmt"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// Bounds is an axis-aligned rectangle in simulation space.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// World returns the bounds covering the whole simulation domain.
func World(cfg dynamo.Config) Bounds {
	return Bounds{MaxX: cfg.WorldWidth, MaxY: cfg.WorldHeight}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Grid holds the presentation parameters of the distortion grid.
type Grid struct {
	Spacing    float64 `yaml:"spacing"`
	SampleStep float64 `yaml:"sample_step"`
	Distortion float64 `yaml:"distortion"`
	Bounds     Bounds  `yaml:"bounds"`
}

const (
	DefaultSpacing    = 50.0
	DefaultSampleStep = 10.0
	DefaultDistortion = 20.0
)

func DefaultGrid(cfg dynamo.Config) Grid {
	return Grid{
		Spacing:    DefaultSpacing,
		SampleStep: DefaultSampleStep,
		Distortion: DefaultDistortion,
		Bounds:     World(cfg),
	}
}

func (g Grid) Validate() error {
	if !(g.Spacing > 0) {
		return &dynamo.ConfigError{Field: "grid.spacing", Value: g.Spacing}
	}
	if !(g.SampleStep > 0) {
		return &dynamo.ConfigError{Field: "grid.sample_step", Value: g.SampleStep}
	}
	if !(g.Bounds.Width() >= 0) || !(g.Bounds.Height() >= 0) {
		return fmt.Errorf("%w: grid bounds %+v are inverted", dynamo.ErrInvalidConfig, g.Bounds)
	}
	return nil
}

// Orientation tells whether a polyline follows a constant x or constant y.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Polyline is one displaced grid line. Offset is the undisplaced x of a
// vertical line or y of a horizontal one.
type Polyline struct {
	Orientation Orientation
	Offset      float64
	Points      []dynamo.Vec2
}

// ticks lists lo, lo+step, ... while the value is below hi+step, which
// includes a final tick at or just past hi.
func ticks(lo, hi, step float64) []float64 {
	n := 0
	for v := lo; v < hi+step; v = lo + float64(n)*step {
		n++
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Sampler reuses its tick tables across frames for a fixed Grid.
type Sampler struct {
	grid   Grid
	lines  []float64
	rows   []float64
	cols   []float64
	hlines []float64
}

// NewSampler validates g and precomputes the sample positions.
func NewSampler(g Grid) (*Sampler, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	b := g.Bounds
	return &Sampler{
		grid:   g,
		lines:  ticks(b.MinX, b.MaxX, g.Spacing),
		rows:   ticks(b.MinY, b.MaxY, g.SampleStep),
		hlines: ticks(b.MinY, b.MaxY, g.Spacing),
		cols:   ticks(b.MinX, b.MaxX, g.SampleStep),
	}, nil
}

func (s *Sampler) Grid() Grid { return s.grid }

// Sample projects the current bodies onto the grid. It never mutates bodies.
func (s *Sampler) Sample(bodies []physics.Body, cfg dynamo.Config) []Polyline {
	out := make([]Polyline, 0, len(s.lines)+len(s.hlines))
	k := s.grid.Distortion

	for _, x := range s.lines {
		pts := make([]dynamo.Vec2, len(s.rows))
		for i, y := range s.rows {
			p := dynamo.Vec2{X: x, Y: y}
			pts[i] = p.Add(physics.GradientAt(p, bodies, cfg).Scale(k))
		}
		out = append(out, Polyline{Orientation: Vertical, Offset: x, Points: pts})
	}

	for _, y := range s.hlines {
		pts := make([]dynamo.Vec2, len(s.cols))
		for i, x := range s.cols {
			p := dynamo.Vec2{X: x, Y: y}
			pts[i] = p.Add(physics.GradientAt(p, bodies, cfg).Scale(k))
		}
		out = append(out, Polyline{Orientation: Horizontal, Offset: y, Points: pts})
	}

	return out
}

// SampleGrid is the one-shot form of [Sampler.Sample].
func SampleGrid(reg *physics.Registry, cfg dynamo.Config, g Grid) ([]Polyline, error) {
	s, err := NewSampler(g)
	if err != nil {
		return nil, err
	}
	return s.Sample(reg.Bodies(), cfg), nil
}
