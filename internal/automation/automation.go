package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/chamber/internal/config"
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/logging"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/san-kum/chamber/internal/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of actions played against one simulation.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Seed        int64    `yaml:"seed"`
	Integrator  string   `yaml:"integrator"`
	Actions     []Action `yaml:"actions"`
}

type ActionKind string

const (
	ActionSpawn  ActionKind = "spawn"
	ActionInsert ActionKind = "insert"
	ActionRun    ActionKind = "run"
	ActionClear  ActionKind = "clear"
)

// Action is one scenario entry. Which fields apply depends on Do.
type Action struct {
	Do    ActionKind `yaml:"do"`
	Kind  string     `yaml:"kind"`
	Count int        `yaml:"count"`
	Steps int        `yaml:"steps"`
	Body  *BodySpec  `yaml:"body"`
}

type BodySpec struct {
	Kind   string     `yaml:"kind"`
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel"`
	Mass   float64    `yaml:"mass"`
	Radius float64    `yaml:"radius"`
}

func (b BodySpec) Body() (physics.Body, error) {
	kind, err := physics.ParseKind(b.Kind)
	if err != nil {
		return physics.Body{}, err
	}
	return physics.Body{
		Pos:    dynamo.Vec2{X: b.Pos[0], Y: b.Pos[1]},
		Vel:    dynamo.Vec2{X: b.Vel[0], Y: b.Vel[1]},
		Mass:   b.Mass,
		Radius: b.Radius,
		Kind:   kind,
	}, nil
}

var ErrInvalidScenario = errors.New("invalid scenario")

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Actions) == 0 {
		return fmt.Errorf("%w: no actions", ErrInvalidScenario)
	}
	for i, a := range sc.Actions {
		if err := a.validate(); err != nil {
			return fmt.Errorf("%w: action %d: %v", ErrInvalidScenario, i+1, err)
		}
	}
	return nil
}

func (a Action) validate() error {
	switch a.Do {
	case ActionSpawn:
		if _, err := physics.ParseKind(a.Kind); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("negative count %d", a.Count)
		}
	case ActionInsert:
		if a.Body == nil {
			return errors.New("insert requires a body")
		}
		if _, err := a.Body.Body(); err != nil {
			return err
		}
	case ActionRun:
		if a.Steps <= 0 {
			return fmt.Errorf("run requires positive steps, got %d", a.Steps)
		}
	case ActionClear:
	default:
		return fmt.Errorf("unknown action %q", a.Do)
	}
	return nil
}

// Apply overlays the scenario's seed and integrator onto cfg and drops the
// configured initial bodies, since the scenario spawns its own.
func (sc *Scenario) Apply(cfg *config.Config) {
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if sc.Integrator != "" {
		cfg.Integrator = sc.Integrator
	}
	cfg.Initial = config.InitialConfig{}
}

// Run executes all actions in order against s.
func (sc *Scenario) Run(ctx context.Context, s *sim.Simulation, log *logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}
	for i, a := range sc.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Info("scenario action", zap.Int("index", i+1), zap.Int("of", len(sc.Actions)), zap.String("do", string(a.Do)))

		switch a.Do {
		case ActionSpawn:
			kind, err := physics.ParseKind(a.Kind)
			if err != nil {
				return fmt.Errorf("action %d: %w", i+1, err)
			}
			count := a.Count
			if count == 0 {
				count = 1
			}
			for range count {
				s.Spawn(kind)
			}
		case ActionInsert:
			if a.Body == nil {
				return fmt.Errorf("action %d: %w: insert requires a body", i+1, ErrInvalidScenario)
			}
			b, err := a.Body.Body()
			if err != nil {
				return fmt.Errorf("action %d: %w", i+1, err)
			}
			if _, err := s.Insert(b); err != nil {
				return fmt.Errorf("action %d: %w", i+1, err)
			}
		case ActionRun:
			if err := s.Run(ctx, a.Steps); err != nil {
				return fmt.Errorf("action %d: %w", i+1, err)
			}
		case ActionClear:
			s.Clear()
		default:
			return fmt.Errorf("action %d: %w: unknown action %q", i+1, ErrInvalidScenario, a.Do)
		}
	}
	return nil
}
