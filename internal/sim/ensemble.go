package sim

import (
	"context"
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Populate fills a freshly built simulation before an ensemble run.
type Populate func(s *Simulation) error

// EnsembleResult summarizes one member of an ensemble.
type EnsembleResult struct {
	Seed          int64
	Steps         int
	Bodies        int
	InitialEnergy float64
	FinalEnergy   float64
	EnergyDrift   float64
	Fingerprint   uint64
}

// Ensemble runs independent seeded simulations in parallel. Each member has
// its own registry, so the single-threaded contract of Simulation holds.
type Ensemble struct {
	cfg       dynamo.Config
	opts      []Option
	populate  Populate
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(cfg dynamo.Config, populate Populate, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg, opts: opts, populate: populate, numRuns: numRuns, seedStart: seedStart}
}

// SetLimit caps the number of members running at once; n <= 0 means no cap.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

func (e *Ensemble) Run(ctx context.Context, steps int) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			opts := append(append([]Option{}, e.opts...), WithSeed(seed))

			s, err := New(e.cfg, opts...)
			if err != nil {
				return err
			}
			if e.populate != nil {
				if err := e.populate(s); err != nil {
					return err
				}
			}

			e0 := s.Energy()
			if err := s.Run(ctx, steps); err != nil {
				return err
			}
			e1 := s.Energy()

			drift := 0.0
			if e0 != 0 {
				drift = math.Abs(e1-e0) / math.Abs(e0)
			}
			results[idx] = EnsembleResult{
				Seed:          seed,
				Steps:         s.Steps(),
				Bodies:        s.Len(),
				InitialEnergy: e0,
				FinalEnergy:   e1,
				EnergyDrift:   drift,
				Fingerprint:   s.Fingerprint(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
