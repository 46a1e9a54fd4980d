package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/stretchr/testify/assert"
)

func TestCanvasPlot(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot(0, 0, LayerGrid)
	c.Plot(1, 3, LayerPlanet)

	assert.Equal(t, blank|0x1|0x80, c.Grid[0][0])
	assert.Equal(t, LayerPlanet, c.Layers[0][0])
	assert.True(t, c.IsSet(1, 3))
	assert.False(t, c.IsSet(1, 2))

	c.Plot(0, 1, LayerGrid)
	assert.Equal(t, LayerPlanet, c.Layers[0][0], "lower layer must not override")
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Plot(-1, 0, LayerStar)
	c.Plot(0, -1, LayerStar)
	c.Plot(4, 0, LayerStar)
	c.Plot(0, 4, LayerStar)
	assert.Equal(t, string([]rune{blank, blank})+"\n", c.String())
	assert.False(t, c.IsSet(99, 99))
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(5, 2)
	c.DrawLine(0, 0, 9, 7, LayerGrid)
	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(9, 7))

	c.Clear()
	c.DrawLine(0, 2, 9, 2, LayerGrid)
	for x := 0; x < 10; x++ {
		assert.True(t, c.IsSet(x, 2))
	}
	assert.False(t, c.IsSet(0, 0))
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3, LayerStar)
	assert.True(t, c.IsSet(10, 10))
	assert.True(t, c.IsSet(13, 10))
	assert.True(t, c.IsSet(10, 7))
	assert.False(t, c.IsSet(13, 13))
	assert.Equal(t, LayerStar, c.Layers[10/4][10/2])

	c.Clear()
	c.FillCircle(3, 3, 0, LayerPlanet)
	assert.True(t, c.IsSet(3, 3))
	assert.False(t, c.IsSet(4, 3))
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Plot(2, 0, LayerStar)
	out := c.Render(func(Layer) lipgloss.Style { return lipgloss.NewStyle() })
	assert.Equal(t, c.String(), out)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestProjector(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	c := NewCanvas(80, 30)
	p := newProjector(field.World(cfg), c)

	x, y := p.toPixel(dynamo.Vec2{})
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = p.toPixel(dynamo.Vec2{X: 400, Y: 300})
	assert.Equal(t, 80, x)
	assert.Equal(t, 60, y)

	x, y = p.toPixel(dynamo.Vec2{X: 799.9, Y: 599.9})
	assert.Equal(t, 159, x)
	assert.Equal(t, 119, y)

	assert.Equal(t, 2, p.radius(10))
	assert.Equal(t, 3, p.radius(15))
}

func TestClip(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           [4]float64
		ok             bool
	}{
		{"inside", 1, 1, 5, 5, [4]float64{1, 1, 5, 5}, true},
		{"crosses right edge", 5, 5, 15, 5, [4]float64{5, 5, 10, 5}, true},
		{"far off screen", 5, 5, 5, 3e8, [4]float64{5, 5, 5, 10}, true},
		{"both left", -5, 1, -1, 9, [4]float64{}, false},
		{"both below", 1, 20, 9, 30, [4]float64{}, false},
		{"passes through", -10, 5, 20, 5, [4]float64{0, 5, 10, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clip(tt.x0, tt.y0, tt.x1, tt.y1, 10, 10)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.InDeltaSlice(t, tt.want[:], []float64{x0, y0, x1, y1}, 1e-9)
			}
		})
	}

	_, _, _, _, ok := clip(1, 1, math.Inf(1), 1, 10, 10)
	assert.False(t, ok)
	_, _, _, _, ok = clip(math.NaN(), 1, 2, 1, 10, 10)
	assert.False(t, ok)
}

func TestProjectorSegment(t *testing.T) {
	c := NewCanvas(80, 30)
	p := newProjector(field.World(dynamo.DefaultConfig()), c)

	x0, y0, x1, y1, ok := p.segment(dynamo.Vec2{X: 400, Y: 300}, dynamo.Vec2{X: 400, Y: 1e9})
	assert.True(t, ok)
	assert.Equal(t, []int{80, 60, 80}, []int{x0, y0, x1})
	assert.InDelta(t, 120, y1, 1)

	_, _, _, _, ok = p.segment(dynamo.Vec2{X: -1e9, Y: 10}, dynamo.Vec2{X: -5e8, Y: 20})
	assert.False(t, ok)
}
