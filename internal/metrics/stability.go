package metrics

import (
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// WrapSafety is the fraction of steps in which every body moved less than
// half the smaller world dimension. Wrapping applies a single shift per axis,
// so values below 1 mean positions may have been wrapped incorrectly.
type WrapSafety struct {
	limit      float64
	move       float64
	violations int
	samples    int
}

func NewWrapSafety(cfg dynamo.Config) *WrapSafety {
	return &WrapSafety{
		limit: 0.5 * math.Min(cfg.WorldWidth, cfg.WorldHeight),
		move:  cfg.TimeStep * cfg.PositionScale,
	}
}

func (w *WrapSafety) Name() string { return "wrap_safety" }

func (w *WrapSafety) OnStep(t float64, bodies []physics.Body) {
	w.samples++
	for i := range bodies {
		if bodies[i].Vel.Len()*w.move >= w.limit {
			w.violations++
			break
		}
	}
}

func (w *WrapSafety) Value() float64 {
	if w.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(w.violations)/float64(w.samples)
}

func (w *WrapSafety) Reset() {
	w.violations = 0
	w.samples = 0
}

// Momentum reports the magnitude of total linear momentum at the last step.
type Momentum struct {
	last float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) OnStep(t float64, bodies []physics.Body) {
	m.last = physics.Momentum(bodies).Len()
}

func (m *Momentum) Value() float64 { return m.last }

func (m *Momentum) Reset() { m.last = 0 }

// Default returns the metrics recorded for every saved run.
func Default(cfg dynamo.Config) []Metric {
	return []Metric{
		NewEnergyDrift(cfg),
		NewWrapSafety(cfg),
		NewMomentum(),
	}
}
