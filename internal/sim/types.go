package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/chamber/internal/physics"
)

// ErrUnstable indicates a body state became NaN or infinite.
var ErrUnstable = errors.New("sim: simulation unstable (state diverged)")

// Observer is notified after every completed step.
type Observer interface {
	OnStep(t float64, bodies []physics.Body)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t float64, bodies []physics.Body)

func (f ObserverFunc) OnStep(t float64, bodies []physics.Body) { f(t, bodies) }

// Resetter is implemented by observers that keep history which must be
// dropped when the registry is cleared.
type Resetter interface {
	Reset()
}

type SimError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
