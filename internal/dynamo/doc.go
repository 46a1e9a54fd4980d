// Package dynamo provides the primitives shared by every part of the
// gravity chamber:
//
//   - [Vec2] and the free functions [Add], [Sub], [Scale], [Distance]
//   - [Config]: immutable simulation parameters, checked by [Config.Validate]
//   - sentinel errors [ErrInvalidHandle], [ErrInvalidConfig], [ErrInvalidBody]
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	cfg.Softening = 1e-2
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// All arithmetic is float64. Nothing in this package allocates per call.
package dynamo
