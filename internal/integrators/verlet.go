package integrators

import (
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// Leapfrog is the kick-drift-kick scheme. It evaluates forces twice per
// step; the second evaluation sees the wrapped positions.
type Leapfrog struct {
	scratch
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(reg *physics.Registry, cfg dynamo.Config) {
	bodies := reg.Bodies()
	halfDt := cfg.TimeStep * 0.5
	move := cfg.TimeStep * cfg.PositionScale

	acc := l.accelerate(bodies, cfg)
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(acc[i].Scale(halfDt))
		b.Pos = Wrap(b.Pos.Add(b.Vel.Scale(move)), cfg.WorldWidth, cfg.WorldHeight)
	}

	acc = l.accelerate(bodies, cfg)
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(acc[i].Scale(halfDt))
	}
}
