package physics

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/chamber/internal/dynamo"
)

// KindSpec is the spawn distribution for one body kind.
type KindSpec struct {
	Mass   dynamo.Range `yaml:"mass"`
	Radius float64      `yaml:"radius"`
}

// SpawnConfig describes where and how fast new bodies appear.
type SpawnConfig struct {
	X        dynamo.Range `yaml:"x"`
	Y        dynamo.Range `yaml:"y"`
	Velocity dynamo.Range `yaml:"velocity"`
	Planet   KindSpec     `yaml:"planet"`
	Star     KindSpec     `yaml:"star"`
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		X:        dynamo.Range{Min: 50, Max: 750},
		Y:        dynamo.Range{Min: 50, Max: 200},
		Velocity: dynamo.Range{Min: -1, Max: 1},
		Planet:   KindSpec{Mass: dynamo.Range{Min: 5, Max: 20}, Radius: 10},
		Star:     KindSpec{Mass: dynamo.Range{Min: 50, Max: 100}, Radius: 15},
	}
}

func (c SpawnConfig) spec(k Kind) KindSpec {
	if k == Star {
		return c.Star
	}
	return c.Planet
}

func (c SpawnConfig) Validate() error {
	for name, r := range map[string]dynamo.Range{
		"spawn.x": c.X, "spawn.y": c.Y, "spawn.velocity": c.Velocity,
	} {
		if !r.Valid() {
			return &dynamo.ConfigError{Field: name, Value: r.Max - r.Min, Reason: "must be an ordered range"}
		}
	}
	for _, k := range []Kind{Planet, Star} {
		s := c.spec(k)
		if !s.Mass.Valid() || !(s.Mass.Min > 0) {
			return &dynamo.ConfigError{Field: fmt.Sprintf("spawn.%s.mass", k), Value: s.Mass.Min}
		}
		if s.Radius < 0 {
			return &dynamo.ConfigError{Field: fmt.Sprintf("spawn.%s.radius", k), Value: s.Radius, Reason: "must be non-negative"}
		}
	}
	return nil
}

// Spawner draws random bodies from a SpawnConfig. It is not safe for
// concurrent use.
type Spawner struct {
	cfg SpawnConfig
	rng *rand.Rand
}

func NewSpawner(cfg SpawnConfig, seed int64) *Spawner {
	return &Spawner{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

func (s *Spawner) Config() SpawnConfig { return s.cfg }

// Body samples position, velocity and mass uniformly for the given kind.
func (s *Spawner) Body(kind Kind) Body {
	spec := s.cfg.spec(kind)
	return Body{
		Pos: dynamo.Vec2{
			X: s.cfg.X.Lerp(s.rng.Float64()),
			Y: s.cfg.Y.Lerp(s.rng.Float64()),
		},
		Vel: dynamo.Vec2{
			X: s.cfg.Velocity.Lerp(s.rng.Float64()),
			Y: s.cfg.Velocity.Lerp(s.rng.Float64()),
		},
		Mass:   spec.Mass.Lerp(s.rng.Float64()),
		Radius: spec.Radius,
		Kind:   kind,
	}
}

// Spawn samples a body of the given kind and appends it to the registry.
func (r *Registry) Spawn(s *Spawner, kind Kind) BodyID {
	b := s.Body(kind)
	r.bodies = append(r.bodies, b)
	return BodyID{index: len(r.bodies) - 1, gen: r.gen}
}
