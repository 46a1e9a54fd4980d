package integrators

import (
	"testing"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

func benchRegistry(n int) *physics.Registry {
	reg := physics.NewRegistry()
	sp := physics.NewSpawner(physics.DefaultSpawnConfig(), 42)
	for i := 0; i < n; i++ {
		reg.Spawn(sp, physics.Planet)
	}
	return reg
}

func benchmarkStep(b *testing.B, integ Integrator, n int) {
	cfg := dynamo.DefaultConfig()
	reg := benchRegistry(n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(reg, cfg)
	}
}

func BenchmarkEuler_16(b *testing.B)    { benchmarkStep(b, NewEuler(), 16) }
func BenchmarkLeapfrog_16(b *testing.B) { benchmarkStep(b, NewLeapfrog(), 16) }
func BenchmarkRK4_16(b *testing.B)      { benchmarkStep(b, NewRK4(), 16) }
func BenchmarkEuler_64(b *testing.B)    { benchmarkStep(b, NewEuler(), 64) }
