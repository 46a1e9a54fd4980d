// Package physics holds the bodies of the chamber and the laws acting on
// them:
//
//   - [Body] and [Kind]: value-type point masses
//   - [Registry]: insertion-ordered storage with generation-checked [BodyID]s
//   - [Spawner]: random bodies drawn from a [SpawnConfig]
//   - [Accelerations]: softened pairwise gravity, O(n²)
//   - [PotentialGradientAt]: the visualization field used by the grid sampler
//
// Diagnostics such as [Energy] and [Momentum] are provided for metrics and
// tests; the integrators do not use them.
//
//	reg := physics.NewRegistry()
//	sp := physics.NewSpawner(physics.DefaultSpawnConfig(), 42)
//	id := reg.Spawn(sp, physics.Star)
//	acc := physics.Accelerations(reg, dynamo.DefaultConfig())[id]
package physics
