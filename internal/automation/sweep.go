package automation

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/logging"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/san-kum/chamber/internal/sim"
	"go.uber.org/zap"
)

// ParameterSweep runs the same seeded population across a range of values
// for one simulation constant.
type ParameterSweep struct {
	Param   string
	Min     float64
	Max     float64
	Points  int
	Steps   int
	Seed    int64
	Planets int
	Stars   int
}

type SweepResult struct {
	Value         float64
	InitialEnergy float64
	FinalEnergy   float64
	Drift         float64 // relative, |E1-E0|/|E0|
	Stable        bool
}

// SweepParams lists the constants a sweep can vary.
var SweepParams = []string{"g", "dt", "softening", "scale"}

func setParam(cfg *dynamo.Config, name string, v float64) error {
	switch name {
	case "g":
		cfg.G = v
	case "dt":
		cfg.TimeStep = v
	case "softening":
		cfg.Softening = v
	case "scale":
		cfg.PositionScale = v
	default:
		return fmt.Errorf("unknown sweep parameter %q", name)
	}
	return nil
}

func (p *ParameterSweep) values() []float64 {
	if p.Points == 1 {
		return []float64{p.Min}
	}
	step := (p.Max - p.Min) / float64(p.Points-1)
	out := make([]float64, p.Points)
	for i := range out {
		out[i] = p.Min + float64(i)*step
	}
	return out
}

// RunSweep executes a parameter sweep. A run that diverges is reported as
// unstable rather than failing the sweep.
func RunSweep(ctx context.Context, base dynamo.Config, p *ParameterSweep, log *logging.Logger, opts ...sim.Option) ([]SweepResult, error) {
	if log == nil {
		log = logging.Nop()
	}
	if !slices.Contains(SweepParams, p.Param) {
		return nil, fmt.Errorf("%w: unknown sweep parameter %q (available: %v)", ErrInvalidScenario, p.Param, SweepParams)
	}
	if p.Points < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one point", ErrInvalidScenario)
	}
	if p.Steps < 0 {
		return nil, fmt.Errorf("%w: negative steps", ErrInvalidScenario)
	}

	runOpts := append(slices.Clone(opts), sim.WithSeed(p.Seed))
	results := make([]SweepResult, 0, p.Points)
	for i, v := range p.values() {
		cfg := base
		if err := setParam(&cfg, p.Param, v); err != nil {
			return nil, err
		}

		s, err := sim.New(cfg, runOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", p.Param, v, err)
		}
		for range p.Stars {
			s.Spawn(physics.Star)
		}
		for range p.Planets {
			s.Spawn(physics.Planet)
		}

		res := SweepResult{Value: v, InitialEnergy: s.Energy(), Stable: true}
		if err := s.Run(ctx, p.Steps); err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			res.Stable = false
		}
		res.FinalEnergy = s.Energy()
		if res.InitialEnergy != 0 {
			res.Drift = math.Abs(res.FinalEnergy-res.InitialEnergy) / math.Abs(res.InitialEnergy)
		}
		if !res.Stable || math.IsNaN(res.Drift) {
			res.Stable = false
			res.Drift = math.Inf(1)
		}
		results = append(results, res)

		log.Info("sweep point", zap.Int("index", i+1), zap.Int("of", p.Points), zap.String("param", p.Param), zap.Float64("value", v), zap.Float64("drift", res.Drift))
	}
	return results, nil
}
