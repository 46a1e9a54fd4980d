package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func world() field.Bounds {
	return field.World(dynamo.DefaultConfig())
}

func TestSceneToSVG_Bodies(t *testing.T) {
	svg := SceneToSVG(Scene{
		Bounds: world(),
		Bodies: []physics.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 200}, Mass: 10, Radius: 10, Kind: physics.Planet},
			{Pos: dynamo.Vec2{X: 400, Y: 300}, Mass: 80, Radius: 15, Kind: physics.Star},
		},
	})

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `viewBox="0 0 800 600"`)
	assert.Contains(t, svg, `<circle cx="100.00" cy="200.00" r="10" fill="#00b4ff"/>`)
	assert.Contains(t, svg, `<circle cx="400.00" cy="300.00" r="15" fill="#ffd700"/>`)
	assert.NotContains(t, svg, "<path")
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestSceneToSVG_Grid(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	sampler, err := field.NewSampler(field.DefaultGrid(cfg))
	require.NoError(t, err)

	svg := SceneToSVG(Scene{Bounds: world(), Grid: sampler.Sample(nil, cfg)})
	assert.Equal(t, 17+13, strings.Count(svg, "<path"))
	assert.Contains(t, svg, "M0.0,0.0")
}

func TestSceneToSVG_TrailBreaksOnWrap(t *testing.T) {
	svg := SceneToSVG(Scene{
		Bounds: world(),
		Trails: [][]dynamo.Vec2{{{X: 790, Y: 10}, {X: 799, Y: 10}, {X: 2, Y: 10}, {X: 8, Y: 10}}},
	})
	assert.Contains(t, svg, `d="M790.0,10.0 L799.0,10.0 M2.0,10.0 L8.0,10.0"`)
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, Scene{Bounds: world()}))
	assert.Contains(t, buf.String(), `fill="#0a0a0a"`)
}

func TestTrails(t *testing.T) {
	tr := NewTrails(2)
	bodies := []physics.Body{{Pos: dynamo.Vec2{X: 1, Y: 1}}, {Pos: dynamo.Vec2{X: 2, Y: 2}}}

	for i := range 4 {
		bodies[0].Pos.X = float64(i)
		tr.OnStep(float64(i), bodies)
	}
	paths := tr.Paths()
	require.Len(t, paths, 2)
	assert.Equal(t, []dynamo.Vec2{{X: 1, Y: 1}, {X: 3, Y: 1}}, paths[0])

	tr.Reset()
	assert.Empty(t, tr.Paths())
}
