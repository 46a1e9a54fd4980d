package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/san-kum/chamber/internal/sim"
)

type countingObserver struct {
	steps  int
	resets int
	lastT  float64
}

func (c *countingObserver) OnStep(t float64, bodies []physics.Body) {
	c.steps++
	c.lastT = t
}

func (c *countingObserver) Reset() { c.resets++ }

var _ = Describe("Simulation", func() {
	var (
		cfg dynamo.Config
		s   *sim.Simulation
	)

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
		var err error
		s, err = sim.New(cfg, sim.WithSeed(42))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a non-positive softening", func() {
			bad := cfg
			bad.Softening = 0
			_, err := sim.New(bad)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("rejects a non-positive time step or scale", func() {
			bad := cfg
			bad.TimeStep = -0.02
			_, err := sim.New(bad)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

			bad = cfg
			bad.PositionScale = 0
			_, err = sim.New(bad)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("rejects an unknown integrator", func() {
			_, err := sim.New(cfg, sim.WithIntegrator("magic"))
			Expect(err).To(HaveOccurred())
		})

		It("starts empty", func() {
			Expect(s.Len()).To(BeZero())
			Expect(s.Time()).To(BeZero())
			Expect(s.Integrator()).To(Equal("euler"))
		})
	})

	Describe("spawn and clear", func() {
		It("spawns bodies with kind-specific ranges", func() {
			star := s.Spawn(physics.Star)
			planet := s.Spawn(physics.Planet)

			b, err := s.Body(star)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Mass).To(BeNumerically(">=", 50))
			Expect(b.Radius).To(Equal(15.0))

			b, err = s.Body(planet)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Mass).To(BeNumerically("<=", 20))
			Expect(b.Radius).To(Equal(10.0))
		})

		It("empties the registry and invalidates handles", func() {
			id := s.Spawn(physics.Planet)
			s.Spawn(physics.Star)
			s.Step()

			s.Clear()

			count := 0
			for range s.Bodies() {
				count++
			}
			Expect(count).To(BeZero())
			Expect(s.Time()).To(BeZero())

			_, err := s.Body(id)
			Expect(err).To(MatchError(dynamo.ErrInvalidHandle))

			s.Spawn(physics.Planet)
			Expect(s.Len()).To(Equal(1))
		})

		It("treats clearing an empty simulation as a no-op", func() {
			s.Clear()
			s.Clear()
			Expect(s.Len()).To(BeZero())
		})

		It("is reproducible for a fixed seed", func() {
			other, err := sim.New(cfg, sim.WithSeed(42))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 3; i++ {
				s.Spawn(physics.Planet)
				other.Spawn(physics.Planet)
			}
			Expect(other.Snapshot()).To(Equal(s.Snapshot()))
			Expect(other.Fingerprint()).To(Equal(s.Fingerprint()))
		})
	})

	Describe("stepping", func() {
		It("advances time and notifies observers", func() {
			obs := &countingObserver{}
			s.AddObserver(obs)
			s.Spawn(physics.Star)

			s.Step()
			s.Step()

			Expect(s.Steps()).To(Equal(2))
			Expect(s.Time()).To(BeNumerically("~", 2*cfg.TimeStep, 1e-15))
			Expect(obs.steps).To(Equal(2))
			Expect(obs.lastT).To(Equal(s.Time()))

			s.Clear()
			Expect(obs.resets).To(Equal(1))
		})

		It("pulls two bodies toward each other", func() {
			a, err := s.Insert(physics.Body{Pos: dynamo.Vec2{X: 300, Y: 300}, Mass: 20})
			Expect(err).NotTo(HaveOccurred())
			b, err := s.Insert(physics.Body{Pos: dynamo.Vec2{X: 500, Y: 300}, Mass: 20})
			Expect(err).NotTo(HaveOccurred())

			s.Step()

			ba, _ := s.Body(a)
			bb, _ := s.Body(b)
			Expect(ba.Vel.X).To(BeNumerically(">", 0))
			Expect(bb.Vel.X).To(BeNumerically("<", 0))
			Expect(bb.Pos.X - ba.Pos.X).To(BeNumerically("<", 200))
		})

		It("exposes per-body accelerations that obey the third law", func() {
			a, err := s.Insert(physics.Body{Pos: dynamo.Vec2{X: 300, Y: 300}, Mass: 10})
			Expect(err).NotTo(HaveOccurred())
			b, err := s.Insert(physics.Body{Pos: dynamo.Vec2{X: 400, Y: 300}, Mass: 40})
			Expect(err).NotTo(HaveOccurred())

			acc := s.Accelerations()
			Expect(acc).To(HaveLen(2))
			Expect(acc[a].X).To(BeNumerically(">", 0))
			Expect(acc[b].X).To(BeNumerically("<", 0))
			Expect(acc[a].Y).To(BeZero())
			Expect(10*acc[a].X + 40*acc[b].X).To(BeNumerically("~", 0, 1e-15))

			want := cfg.G * 40 * 100 / math.Pow(100+cfg.Softening, 3)
			Expect(acc[a].X).To(BeNumerically("~", want, 1e-12))

			s.Clear()
			Expect(s.Accelerations()).To(BeEmpty())
		})

		It("keeps every body inside the world", func() {
			for i := 0; i < 5; i++ {
				s.Spawn(physics.Planet)
			}
			Expect(s.Run(context.Background(), 50)).To(Succeed())

			for _, b := range s.Bodies() {
				Expect(b.Pos.X).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.WorldWidth)))
				Expect(b.Pos.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.WorldHeight)))
			}
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(s.Run(ctx, 10)).To(MatchError(context.Canceled))
			Expect(s.Steps()).To(BeZero())
		})

		It("reports divergence", func() {
			_, err := s.Insert(physics.Body{Pos: dynamo.Vec2{X: 1, Y: 1}, Vel: dynamo.Vec2{X: math.MaxFloat64}, Mass: 1})
			Expect(err).NotTo(HaveOccurred())

			err = s.Run(context.Background(), 5)
			Expect(err).To(MatchError(sim.ErrUnstable))
			var se *sim.SimError
			Expect(err).To(BeAssignableToTypeOf(se))
		})
	})

	Describe("grid sampling", func() {
		It("returns an undisplaced grid with no bodies", func() {
			lines, err := s.SampleGrid(field.DefaultGrid(cfg))
			Expect(err).NotTo(HaveOccurred())
			for _, l := range lines {
				for i, p := range l.Points {
					if l.Orientation == field.Vertical {
						Expect(p).To(Equal(dynamo.Vec2{X: l.Offset, Y: float64(i) * field.DefaultSampleStep}))
					}
				}
			}
		})

		It("is idempotent between steps", func() {
			s.Spawn(physics.Star)
			s.Spawn(physics.Planet)
			g := field.DefaultGrid(cfg)

			first, err := s.SampleGrid(g)
			Expect(err).NotTo(HaveOccurred())
			second, err := s.SampleGrid(g)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))

			s.Step()
			third, _ := s.SampleGrid(g)
			Expect(third).NotTo(Equal(first))
		})

		It("rejects an invalid grid", func() {
			g := field.DefaultGrid(cfg)
			g.SampleStep = 0
			_, err := s.SampleGrid(g)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})
	})
})
