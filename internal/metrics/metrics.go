// Package metrics provides step observers that summarize a run. Every
// metric satisfies sim.Observer through OnStep and sim.Resetter through
// Reset, so it can be attached with Simulation.AddObserver.
package metrics

import (
	"github.com/san-kum/chamber/internal/physics"
)

type Metric interface {
	Name() string
	OnStep(t float64, bodies []physics.Body)
	Value() float64
	Reset()
}

// Values collects the current value of each metric by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
