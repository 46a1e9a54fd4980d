package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/chamber/internal/dynamo"
)

// Kind selects the spawn distribution of a body. It has no effect on the
// force law.
type Kind int

const (
	Planet Kind = iota
	Star
)

func (k Kind) String() string {
	switch k {
	case Planet:
		return "planet"
	case Star:
		return "star"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "planet":
		return Planet, nil
	case "star":
		return Star, nil
	}
	return 0, fmt.Errorf("unknown body kind: %s", s)
}

// Body is a point mass. Radius is carried for renderers only.
type Body struct {
	Pos    dynamo.Vec2
	Vel    dynamo.Vec2
	Mass   float64
	Radius float64
	Kind   Kind
}

func (b Body) validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: mass %g", dynamo.ErrInvalidBody, b.Mass)
	}
	if !b.Pos.IsValid() || !b.Vel.IsValid() {
		return fmt.Errorf("%w: non-finite position or velocity", dynamo.ErrInvalidBody)
	}
	return nil
}
