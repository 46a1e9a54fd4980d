package export

import (
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

// Trails records body positions as a simulation observer. Bodies are
// tracked by registry order, so trails restart on Reset.
type Trails struct {
	every int
	n     int
	paths [][]dynamo.Vec2
}

// NewTrails samples positions once every `every` steps.
func NewTrails(every int) *Trails {
	if every < 1 {
		every = 1
	}
	return &Trails{every: every}
}

func (t *Trails) OnStep(_ float64, bodies []physics.Body) {
	t.n++
	if t.n%t.every != 0 {
		return
	}
	for len(t.paths) < len(bodies) {
		t.paths = append(t.paths, nil)
	}
	for i, b := range bodies {
		t.paths[i] = append(t.paths[i], b.Pos)
	}
}

func (t *Trails) Reset() {
	t.n = 0
	t.paths = nil
}

func (t *Trails) Paths() [][]dynamo.Vec2 { return t.paths }
