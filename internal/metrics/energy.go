package metrics

import (
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// EnergyDrift tracks the largest relative deviation of total energy from
// the first observed step.
type EnergyDrift struct {
	cfg           dynamo.Config
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(cfg dynamo.Config) *EnergyDrift {
	return &EnergyDrift{cfg: cfg}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnStep(t float64, bodies []physics.Body) {
	energy := physics.Energy(bodies, e.cfg)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Series records total energy per step in a bounded window for plotting.
type Series struct {
	cfg      dynamo.Config
	capacity int
	times    []float64
	energy   []float64
}

func NewSeries(cfg dynamo.Config, capacity int) *Series {
	return &Series{
		cfg:      cfg,
		capacity: capacity,
		times:    make([]float64, 0, capacity),
		energy:   make([]float64, 0, capacity),
	}
}

func (s *Series) Name() string { return "energy" }

func (s *Series) OnStep(t float64, bodies []physics.Body) {
	s.times = append(s.times, t)
	s.energy = append(s.energy, physics.Energy(bodies, s.cfg))
	if s.capacity > 0 && len(s.energy) > s.capacity {
		s.times = s.times[1:]
		s.energy = s.energy[1:]
	}
}

// Value is the most recent energy, or zero before the first step.
func (s *Series) Value() float64 {
	if len(s.energy) == 0 {
		return 0
	}
	return s.energy[len(s.energy)-1]
}

func (s *Series) Reset() {
	s.times = s.times[:0]
	s.energy = s.energy[:0]
}

func (s *Series) Times() []float64  { return s.times }
func (s *Series) Energy() []float64 { return s.energy }
