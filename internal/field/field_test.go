package field

import (
	"testing"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleGrid_Shape(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	lines, err := SampleGrid(physics.NewRegistry(), cfg, DefaultGrid(cfg))
	require.NoError(t, err)

	// 0..800 step 50 and 0..600 step 50, endpoints included.
	require.Len(t, lines, 17+13)

	for i, l := range lines[:17] {
		assert.Equal(t, Vertical, l.Orientation)
		assert.Equal(t, float64(i)*50, l.Offset)
		assert.Len(t, l.Points, 61)
	}
	for i, l := range lines[17:] {
		assert.Equal(t, Horizontal, l.Orientation)
		assert.Equal(t, float64(i)*50, l.Offset)
		assert.Len(t, l.Points, 81)
	}
}

func TestSampleGrid_NoBodiesUndisplaced(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	lines, err := SampleGrid(physics.NewRegistry(), cfg, DefaultGrid(cfg))
	require.NoError(t, err)

	for _, l := range lines {
		for i, p := range l.Points {
			switch l.Orientation {
			case Vertical:
				require.Equal(t, dynamo.Vec2{X: l.Offset, Y: float64(i) * 10}, p)
			case Horizontal:
				require.Equal(t, dynamo.Vec2{X: float64(i) * 10, Y: l.Offset}, p)
			}
		}
	}
}

func TestSampleGrid_Idempotent(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	reg := physics.NewRegistry()
	sp := physics.NewSpawner(physics.DefaultSpawnConfig(), 11)
	reg.Spawn(sp, physics.Star)
	reg.Spawn(sp, physics.Planet)
	before := reg.Snapshot(nil)

	a, err := SampleGrid(reg, cfg, DefaultGrid(cfg))
	require.NoError(t, err)
	b, err := SampleGrid(reg, cfg, DefaultGrid(cfg))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, before, reg.Snapshot(nil), "sampling must not mutate bodies")
}

func TestSampleGrid_DisplacedAwayFromBody(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	reg := physics.NewRegistry()
	_, err := reg.Insert(physics.Body{Pos: dynamo.Vec2{X: 400, Y: 300}, Mass: 100})
	require.NoError(t, err)

	g := DefaultGrid(cfg)
	lines, err := SampleGrid(reg, cfg, g)
	require.NoError(t, err)

	// Vertical line x=350 sampled at y=300 lies 50 left of the body.
	line := lines[7]
	require.Equal(t, 350.0, line.Offset)
	p := line.Points[30]

	r := 50 + cfg.Softening
	want := 350 - g.Distortion*cfg.G*100*50/(r*r*r)
	assert.InDelta(t, want, p.X, 1e-12)
	assert.InDelta(t, 300, p.Y, 1e-12)
}

func TestSampler_Reuse(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	s, err := NewSampler(DefaultGrid(cfg))
	require.NoError(t, err)

	reg := physics.NewRegistry()
	first := s.Sample(reg.Bodies(), cfg)
	_, _ = reg.Insert(physics.Body{Pos: dynamo.Vec2{X: 10, Y: 10}, Mass: 50})
	second := s.Sample(reg.Bodies(), cfg)

	assert.NotEqual(t, first, second)
	assert.Equal(t, DefaultSpacing, s.Grid().Spacing)
}

func TestGrid_Validate(t *testing.T) {
	cfg := dynamo.DefaultConfig()

	tests := []struct {
		name string
		edit func(*Grid)
	}{
		{"zero spacing", func(g *Grid) { g.Spacing = 0 }},
		{"negative step", func(g *Grid) { g.SampleStep = -1 }},
		{"inverted bounds", func(g *Grid) { g.Bounds.MaxX = -10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGrid(cfg)
			tt.edit(&g)
			_, err := SampleGrid(physics.NewRegistry(), cfg, g)
			require.ErrorIs(t, err, dynamo.ErrInvalidConfig)
		})
	}
}

func TestTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 50, 100}, ticks(0, 100, 50))
	assert.Equal(t, []float64{0, 30, 60, 90, 120}, ticks(0, 100, 30))
	assert.Equal(t, []float64{5}, ticks(5, 5, 10))
}

func BenchmarkSampleGrid(b *testing.B) {
	cfg := dynamo.DefaultConfig()
	reg := physics.NewRegistry()
	sp := physics.NewSpawner(physics.DefaultSpawnConfig(), 1)
	for i := 0; i < 10; i++ {
		reg.Spawn(sp, physics.Planet)
	}
	s, _ := NewSampler(DefaultGrid(cfg))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sample(reg.Bodies(), cfg)
	}
}
