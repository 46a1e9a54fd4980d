package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

func pair() []physics.Body {
	return []physics.Body{
		{Pos: dynamo.Vec2{X: 0}, Vel: dynamo.Vec2{Y: 1}, Mass: 2},
		{Pos: dynamo.Vec2{X: 10}, Vel: dynamo.Vec2{Y: -1}, Mass: 2},
	}
}

func TestEnergyDrift(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	m := NewEnergyDrift(cfg)
	bodies := pair()

	m.OnStep(0, bodies)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after one sample, got %v", m.Value())
	}

	e0 := physics.Energy(bodies, cfg)
	bodies[0].Vel.Y = 2
	m.OnStep(0.02, bodies)

	want := math.Abs(physics.Energy(bodies, cfg)-e0) / math.Abs(e0)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("drift = %v, want %v", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear drift")
	}
}

func TestSeries_Capacity(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	s := NewSeries(cfg, 3)

	for i := 0; i < 5; i++ {
		s.OnStep(float64(i), pair())
	}

	if len(s.Energy()) != 3 || len(s.Times()) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(s.Energy()))
	}
	if s.Times()[0] != 2 {
		t.Errorf("expected oldest sample t=2, got %v", s.Times()[0])
	}

	s.Reset()
	if s.Value() != 0 {
		t.Error("expected empty series after Reset")
	}
}

func TestWrapSafety(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	w := NewWrapSafety(cfg)

	if w.Value() != 1 {
		t.Error("expected 1 before any sample")
	}

	w.OnStep(0, pair())
	fast := []physics.Body{{Vel: dynamo.Vec2{X: 1e6}, Mass: 1}}
	w.OnStep(0.02, fast)

	if w.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", w.Value())
	}
}

func TestMomentumAndValues(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	ms := Default(cfg)
	for _, m := range ms {
		m.OnStep(0, pair())
	}

	vals := Values(ms)
	if len(vals) != 3 {
		t.Fatalf("expected 3 metrics, got %v", vals)
	}
	if vals["momentum"] != 0 {
		t.Errorf("opposite momenta should cancel, got %v", vals["momentum"])
	}
	if _, ok := vals["energy_drift"]; !ok {
		t.Error("energy_drift missing")
	}
}
