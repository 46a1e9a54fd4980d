package sim

import (
	"context"
	"iter"
	"time"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/san-kum/chamber/internal/integrators"
	"github.com/san-kum/chamber/internal/logging"
	"github.com/san-kum/chamber/internal/physics"
	"go.uber.org/zap"
)

// Simulation owns a registry and advances it one fixed step at a time. It is
// not safe for concurrent use; the caller's frame loop drives it.
type Simulation struct {
	cfg        dynamo.Config
	reg        *physics.Registry
	spawner    *physics.Spawner
	integrator integrators.Integrator
	sampler    *field.Sampler
	observers  []Observer
	log        *logging.Logger

	t     float64
	steps int
}

type options struct {
	seed       int64
	spawn      physics.SpawnConfig
	integrator string
	log        *logging.Logger
}

type Option func(*options)

func WithSeed(seed int64) Option { return func(o *options) { o.seed = seed } }

func WithSpawn(cfg physics.SpawnConfig) Option { return func(o *options) { o.spawn = cfg } }

// WithIntegrator selects a scheme by name; see [integrators.Names].
func WithIntegrator(name string) Option { return func(o *options) { o.integrator = name } }

func WithLogger(l *logging.Logger) Option { return func(o *options) { o.log = l } }

// New validates cfg and the spawn settings and returns an empty simulation.
func New(cfg dynamo.Config, opts ...Option) (*Simulation, error) {
	o := options{
		seed:       time.Now().UnixNano(),
		spawn:      physics.DefaultSpawnConfig(),
		integrator: integrators.Default,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := o.spawn.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.New(o.integrator)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		cfg:        cfg,
		reg:        physics.NewRegistry(),
		spawner:    physics.NewSpawner(o.spawn, o.seed),
		integrator: integ,
		log:        o.log.With(zap.String("integrator", integ.Name())),
	}, nil
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Config() dynamo.Config { return s.cfg }

func (s *Simulation) Integrator() string { return s.integrator.Name() }

// Time is the simulated time in seconds since the last Clear.
func (s *Simulation) Time() float64 { return s.t }

// Steps counts steps since the last Clear.
func (s *Simulation) Steps() int { return s.steps }

func (s *Simulation) Len() int { return s.reg.Len() }

// Spawn adds a random body of the given kind.
func (s *Simulation) Spawn(kind physics.Kind) physics.BodyID {
	id := s.reg.Spawn(s.spawner, kind)
	s.log.Debug("spawned body", zap.Stringer("id", id), zap.Stringer("kind", kind), zap.Int("bodies", s.reg.Len()))
	return id
}

// Insert adds a fully specified body.
func (s *Simulation) Insert(b physics.Body) (physics.BodyID, error) {
	return s.reg.Insert(b)
}

// Clear removes all bodies, invalidates their ids and resets the clock.
func (s *Simulation) Clear() {
	s.reg.Clear()
	s.t = 0
	s.steps = 0
	for _, o := range s.observers {
		if r, ok := o.(Resetter); ok {
			r.Reset()
		}
	}
	s.log.Debug("cleared registry")
}

func (s *Simulation) Body(id physics.BodyID) (physics.Body, error) {
	return s.reg.Get(id)
}

// Bodies iterates the current bodies in insertion order.
func (s *Simulation) Bodies() iter.Seq2[physics.BodyID, physics.Body] {
	return s.reg.All()
}

// Snapshot returns a copy of every body.
func (s *Simulation) Snapshot() []physics.Body {
	return s.reg.Snapshot(nil)
}

// Step advances every body by one time step.
func (s *Simulation) Step() {
	s.integrator.Step(s.reg, s.cfg)
	s.t += s.cfg.TimeStep
	s.steps++

	for _, o := range s.observers {
		o.OnStep(s.t, s.reg.Bodies())
	}
}

// SampleGrid returns the displaced grid polylines for the current bodies.
// The sampler is rebuilt only when g changes.
func (s *Simulation) SampleGrid(g field.Grid) ([]field.Polyline, error) {
	if s.sampler == nil || s.sampler.Grid() != g {
		sampler, err := field.NewSampler(g)
		if err != nil {
			return nil, err
		}
		s.sampler = sampler
	}
	return s.sampler.Sample(s.reg.Bodies(), s.cfg), nil
}

// Accelerations exposes the force engine over the current bodies.
func (s *Simulation) Accelerations() map[physics.BodyID]dynamo.Vec2 {
	return physics.Accelerations(s.reg, s.cfg)
}

func (s *Simulation) Energy() float64 {
	return physics.Energy(s.reg.Bodies(), s.cfg)
}

// Run performs n steps, checking ctx between steps, and stops with
// ErrUnstable if any body leaves the finite range.
func (s *Simulation) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step()

		if !physics.Finite(s.reg.Bodies()) {
			err := &SimError{Time: s.t, Step: s.steps, Wrapped: ErrUnstable}
			s.log.Warn("simulation diverged", zap.Error(err))
			return err
		}
	}
	return nil
}
