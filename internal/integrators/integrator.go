package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// Integrator advances every body in the registry by one cfg.TimeStep and
// leaves all positions inside the world. Implementations keep scratch
// buffers and are not safe for concurrent use.
type Integrator interface {
	Name() string
	Step(reg *physics.Registry, cfg dynamo.Config)
}

var factories = map[string]func() Integrator{
	"euler":    func() Integrator { return NewEuler() },
	"leapfrog": func() Integrator { return NewLeapfrog() },
	"rk4":      func() Integrator { return NewRK4() },
}

// Default is the scheme used when none is named.
const Default = "euler"

// New returns a fresh integrator by name.
func New(name string) (Integrator, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wrap maps p back into [0, w) × [0, h) with at most one shift per axis.
// A body moving more than one world width in a single step is left outside;
// the time step is assumed small enough for that not to happen.
func Wrap(p dynamo.Vec2, w, h float64) dynamo.Vec2 {
	return dynamo.Vec2{X: wrapAxis(p.X, w), Y: wrapAxis(p.Y, h)}
}

func wrapAxis(v, size float64) float64 {
	if v < 0 {
		v += size
		// -tiny + size rounds to size
		if v >= size {
			v = 0
		}
	} else if v >= size {
		v -= size
	}
	return v
}

// scratch holds the frozen configuration and acceleration buffers shared by
// the schemes.
type scratch struct {
	snap []physics.Body
	acc  []dynamo.Vec2
}

func (s *scratch) ensure(n int) {
	if cap(s.acc) < n {
		s.acc = make([]dynamo.Vec2, n)
	}
	s.acc = s.acc[:n]
}

// accelerate computes accelerations against a copy of bodies so that no body
// sees another's update from the same step.
func (s *scratch) accelerate(bodies []physics.Body, cfg dynamo.Config) []dynamo.Vec2 {
	s.snap = append(s.snap[:0], bodies...)
	s.ensure(len(bodies))
	physics.AccelerationsInto(s.snap, cfg, s.acc)
	return s.acc
}
