package physics

import (
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
)

// KineticEnergy is Σ ½mv². Velocities are in simulation units per second,
// not scaled by PositionScale.
func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		v := bodies[i].Vel
		ke += 0.5 * bodies[i].Mass * (v.X*v.X + v.Y*v.Y)
	}
	return ke
}

// PotentialEnergy sums -G*mi*mj/r over pairs using the same additive
// softening as the force law. It ignores the wrap-around topology.
func PotentialEnergy(bodies []Body, cfg dynamo.Config) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := dynamo.Distance(bodies[i].Pos, bodies[j].Pos) + cfg.Softening
			pe -= cfg.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func Energy(bodies []Body, cfg dynamo.Config) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, cfg)
}

func Momentum(bodies []Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Vel.Scale(bodies[i].Mass))
	}
	return p
}

// CenterOfMass returns the mass-weighted mean position, or the zero vector
// for an empty slice.
func CenterOfMass(bodies []Body) dynamo.Vec2 {
	var c dynamo.Vec2
	total := 0.0
	for i := range bodies {
		c = c.Add(bodies[i].Pos.Scale(bodies[i].Mass))
		total += bodies[i].Mass
	}
	if total == 0 {
		return dynamo.Vec2{}
	}
	return c.Scale(1 / total)
}

func TotalMass(bodies []Body) float64 {
	m := 0.0
	for i := range bodies {
		m += bodies[i].Mass
	}
	return m
}

// Finite reports whether every body still has a finite state.
func Finite(bodies []Body) bool {
	for i := range bodies {
		if !bodies[i].Pos.IsValid() || !bodies[i].Vel.IsValid() || math.IsNaN(bodies[i].Mass) {
			return false
		}
	}
	return true
}
