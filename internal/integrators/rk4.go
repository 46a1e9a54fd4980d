package integrators

import (
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// RK4 is the classic fourth-order Runge-Kutta scheme on (pos, vel) with
// dpos/dt = vel*PositionScale and dvel/dt = a(pos). Stages run in unwrapped
// coordinates and the result is wrapped once at the end.
type RK4 struct {
	stage          []physics.Body
	k1, k2, k3, k4 []deriv
	acc            []dynamo.Vec2
}

type deriv struct {
	dp, dv dynamo.Vec2
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]deriv, n)
		r.k2 = make([]deriv, n)
		r.k3 = make([]deriv, n)
		r.k4 = make([]deriv, n)
		r.acc = make([]dynamo.Vec2, n)
	}
}

func (r *RK4) derive(bodies []physics.Body, cfg dynamo.Config, out []deriv) {
	physics.AccelerationsInto(bodies, cfg, r.acc)
	for i := range bodies {
		out[i] = deriv{dp: bodies[i].Vel.Scale(cfg.PositionScale), dv: r.acc[i]}
	}
}

func (r *RK4) advance(base []physics.Body, k []deriv, h float64) {
	r.stage = append(r.stage[:0], base...)
	for i := range r.stage {
		r.stage[i].Pos = base[i].Pos.Add(k[i].dp.Scale(h))
		r.stage[i].Vel = base[i].Vel.Add(k[i].dv.Scale(h))
	}
}

func (r *RK4) Step(reg *physics.Registry, cfg dynamo.Config) {
	bodies := reg.Bodies()
	n := len(bodies)
	r.ensureScratch(n)
	dt := cfg.TimeStep

	r.stage = append(r.stage[:0], bodies...)
	r.derive(r.stage, cfg, r.k1)

	r.advance(bodies, r.k1, dt*0.5)
	r.derive(r.stage, cfg, r.k2)

	r.advance(bodies, r.k2, dt*0.5)
	r.derive(r.stage, cfg, r.k3)

	r.advance(bodies, r.k3, dt)
	r.derive(r.stage, cfg, r.k4)

	dt6 := dt / 6.0
	for i := range bodies {
		dp := r.k1[i].dp.Add(r.k2[i].dp.Scale(2)).Add(r.k3[i].dp.Scale(2)).Add(r.k4[i].dp)
		dv := r.k1[i].dv.Add(r.k2[i].dv.Scale(2)).Add(r.k3[i].dv.Scale(2)).Add(r.k4[i].dv)
		bodies[i].Vel = bodies[i].Vel.Add(dv.Scale(dt6))
		bodies[i].Pos = Wrap(bodies[i].Pos.Add(dp.Scale(dt6)), cfg.WorldWidth, cfg.WorldHeight)
	}
}
