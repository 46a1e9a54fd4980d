package integrators

import (
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// Euler is the semi-implicit (symplectic) Euler scheme: velocities are
// updated first and the new velocity moves the body.
type Euler struct {
	scratch
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(reg *physics.Registry, cfg dynamo.Config) {
	bodies := reg.Bodies()
	acc := e.accelerate(bodies, cfg)

	dt := cfg.TimeStep
	move := dt * cfg.PositionScale
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(acc[i].Scale(dt))
		b.Pos = Wrap(b.Pos.Add(b.Vel.Scale(move)), cfg.WorldWidth, cfg.WorldHeight)
	}
}
