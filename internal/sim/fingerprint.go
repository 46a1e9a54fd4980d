package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/san-kum/chamber/internal/physics"
)

// Fingerprint hashes the exact bit patterns of every body's state. Two runs
// with the same seed, config and integrator produce the same fingerprint.
func Fingerprint(bodies []physics.Body) uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	for i := range bodies {
		b := &bodies[i]
		put(b.Pos.X)
		put(b.Pos.Y)
		put(b.Vel.X)
		put(b.Vel.Y)
		put(b.Mass)
		put(b.Radius)
		put(float64(b.Kind))
	}
	return d.Sum64()
}

func (s *Simulation) Fingerprint() uint64 {
	return Fingerprint(s.reg.Bodies())
}
