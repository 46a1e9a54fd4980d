package physics

import (
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
)

// invPow returns 1/r^p with the common exponents unrolled.
func invPow(r, p float64) float64 {
	switch p {
	case 2:
		return 1 / (r * r)
	case 3:
		return 1 / (r * r * r)
	default:
		return math.Pow(r, -p)
	}
}

// AccelerationsInto writes the net acceleration of every body into out,
// which must have len(bodies) entries. The separation is softened
// additively, r = |pj - pi| + eps, so coincident bodies contribute a zero
// vector rather than a division by zero.
//
// The pair loop is O(n²). There is no spatial partitioning; body counts are
// expected to stay in the tens.
func AccelerationsInto(bodies []Body, cfg dynamo.Config, out []dynamo.Vec2) {
	n := len(bodies)
	for i := range out[:n] {
		out[i] = dynamo.Vec2{}
	}

	for i := 0; i < n; i++ {
		pi := bodies[i].Pos

		for j := i + 1; j < n; j++ {
			pj := bodies[j].Pos

			d := pj.Sub(pi)
			r := d.Len() + cfg.Softening
			k := cfg.G * invPow(r, cfg.ForceExponent) / r

			out[i] = out[i].Add(d.Scale(k * bodies[j].Mass))
			out[j] = out[j].Sub(d.Scale(k * bodies[i].Mass))
		}
	}
}

// Accelerations computes the acceleration on every body in the registry.
func Accelerations(r *Registry, cfg dynamo.Config) map[BodyID]dynamo.Vec2 {
	acc := make([]dynamo.Vec2, r.Len())
	AccelerationsInto(r.bodies, cfg, acc)

	result := make(map[BodyID]dynamo.Vec2, len(acc))
	for id := range r.All() {
		result[id] = acc[id.index]
	}
	return result
}

// GradientAt samples the visualization field at point. Each body adds
// G*m/r^FieldExponent * (point - pos) with the same additive softening as
// the force law. This is not the gradient of the potential driving the
// dynamics; the higher exponent exaggerates the near field.
func GradientAt(point dynamo.Vec2, bodies []Body, cfg dynamo.Config) dynamo.Vec2 {
	var g dynamo.Vec2
	for i := range bodies {
		d := point.Sub(bodies[i].Pos)
		r := d.Len() + cfg.Softening
		g = g.Add(d.Scale(cfg.G * bodies[i].Mass * invPow(r, cfg.FieldExponent)))
	}
	return g
}

// PotentialGradientAt samples the visualization field over the registry.
// With no bodies it returns the zero vector.
func PotentialGradientAt(point dynamo.Vec2, r *Registry, cfg dynamo.Config) dynamo.Vec2 {
	return GradientAt(point, r.bodies, cfg)
}
