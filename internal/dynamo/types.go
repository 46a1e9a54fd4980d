package dynamo

import "math"

// Config holds the physical parameters of a simulation. It is treated as
// immutable once a simulation has been built from it.
type Config struct {
	G             float64
	TimeStep      float64
	PositionScale float64
	Softening     float64
	WorldWidth    float64
	WorldHeight   float64

	// ForceExponent is the power of r in the acceleration law (2 for
	// Newtonian gravity). FieldExponent is the power used by the
	// visualization field and is deliberately independent of it.
	ForceExponent float64
	FieldExponent float64
}

const (
	DefaultG             = 1.0
	DefaultTimeStep      = 0.02
	DefaultPositionScale = 20.0
	DefaultSoftening     = 1e-3
	DefaultWorldWidth    = 800.0
	DefaultWorldHeight   = 600.0
	DefaultForceExponent = 2.0
	DefaultFieldExponent = 3.0
)

func DefaultConfig() Config {
	return Config{
		G:             DefaultG,
		TimeStep:      DefaultTimeStep,
		PositionScale: DefaultPositionScale,
		Softening:     DefaultSoftening,
		WorldWidth:    DefaultWorldWidth,
		WorldHeight:   DefaultWorldHeight,
		ForceExponent: DefaultForceExponent,
		FieldExponent: DefaultFieldExponent,
	}
}

// Validate rejects any parameter that would make a step ill-defined. G may
// be zero (free flight) but not negative.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"time_step", c.TimeStep},
		{"position_scale", c.PositionScale},
		{"softening", c.Softening},
		{"world_width", c.WorldWidth},
		{"world_height", c.WorldHeight},
		{"force_exponent", c.ForceExponent},
		{"field_exponent", c.FieldExponent},
	}
	for _, ch := range checks {
		if !(ch.value > 0) || math.IsInf(ch.value, 0) {
			return &ConfigError{Field: ch.name, Value: ch.value}
		}
	}
	if c.G < 0 || math.IsNaN(c.G) || math.IsInf(c.G, 0) {
		return &ConfigError{Field: "g", Value: c.G, Reason: "must be finite and non-negative"}
	}
	return nil
}

// Range is a closed interval [Min, Max] used for uniform sampling.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps f in [0,1) onto the range.
func (r Range) Lerp(f float64) float64 {
	return r.Min + f*(r.Max-r.Min)
}

func (r Range) Valid() bool {
	return r.Max >= r.Min && !math.IsNaN(r.Min) && !math.IsNaN(r.Max)
}
