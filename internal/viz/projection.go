package viz

import (
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
)

// projector maps world coordinates onto canvas sub-pixels. World y already
// points down, so no flip is needed.
type projector struct {
	bounds field.Bounds
	sx, sy float64
	pw, ph float64
}

func newProjector(b field.Bounds, c *Canvas) projector {
	pw, ph := c.PixelSize()
	return projector{
		bounds: b,
		sx:     float64(pw) / b.Width(),
		sy:     float64(ph) / b.Height(),
		pw:     float64(pw),
		ph:     float64(ph),
	}
}

func (p projector) pixel(v dynamo.Vec2) (float64, float64) {
	return (v.X - p.bounds.MinX) * p.sx, (v.Y - p.bounds.MinY) * p.sy
}

func (p projector) toPixel(v dynamo.Vec2) (int, int) {
	x, y := p.pixel(v)
	return int(math.Floor(x)), int(math.Floor(y))
}

// segment projects a-b and clips it to the canvas. Grid points near a body
// can be displaced far off screen, so nothing outside the canvas is walked.
func (p projector) segment(a, b dynamo.Vec2) (x0, y0, x1, y1 int, ok bool) {
	ax, ay := p.pixel(a)
	bx, by := p.pixel(b)
	fx0, fy0, fx1, fy1, ok := clip(ax, ay, bx, by, p.pw, p.ph)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return int(math.Floor(fx0)), int(math.Floor(fy0)), int(math.Floor(fx1)), int(math.Floor(fy1)), true
}

// clip is Liang-Barsky against the rectangle [0,w]x[0,h]. Non-finite
// endpoints are rejected.
func clip(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	ps := [4]float64{-dx, dx, -dy, dy}
	qs := [4]float64{x0, w - x0, y0, h - y0}
	for i := range ps {
		if ps[i] == 0 {
			if qs[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := qs[i] / ps[i]
		if ps[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// radius converts a world radius to sub-pixels using the smaller scale.
func (p projector) radius(r float64) int {
	return int(math.Round(r * math.Min(p.sx, p.sy)))
}
