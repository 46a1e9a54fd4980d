package physics

import (
	"fmt"
	"iter"

	"github.com/san-kum/chamber/internal/dynamo"
)

// BodyID identifies a body until the next [Registry.Clear].
type BodyID struct {
	index int
	gen   uint32
}

// Index is the body's position in iteration order.
func (id BodyID) Index() int { return id.index }

func (id BodyID) String() string {
	return fmt.Sprintf("body#%d.%d", id.index, id.gen)
}

// Registry owns bodies by value in insertion order. Clearing bumps the
// generation so that ids issued before the clear stop resolving.
type Registry struct {
	bodies []Body
	gen    uint32
}

func NewRegistry() *Registry {
	return &Registry{bodies: make([]Body, 0, 16)}
}

// Insert appends a copy of b.
func (r *Registry) Insert(b Body) (BodyID, error) {
	if err := b.validate(); err != nil {
		return BodyID{}, err
	}
	r.bodies = append(r.bodies, b)
	return BodyID{index: len(r.bodies) - 1, gen: r.gen}, nil
}

// Clear removes every body. Clearing an empty registry still invalidates
// outstanding ids.
func (r *Registry) Clear() {
	r.bodies = r.bodies[:0]
	r.gen++
}

func (r *Registry) Len() int { return len(r.bodies) }

func (r *Registry) resolve(id BodyID) (int, error) {
	if id.gen != r.gen || id.index < 0 || id.index >= len(r.bodies) {
		return 0, fmt.Errorf("%w: %s", dynamo.ErrInvalidHandle, id)
	}
	return id.index, nil
}

// Get returns a copy of the body.
func (r *Registry) Get(id BodyID) (Body, error) {
	i, err := r.resolve(id)
	if err != nil {
		return Body{}, err
	}
	return r.bodies[i], nil
}

// Ref returns a pointer into the registry's storage. The pointer is only
// valid until the next Insert or Clear.
func (r *Registry) Ref(id BodyID) (*Body, error) {
	i, err := r.resolve(id)
	if err != nil {
		return nil, err
	}
	return &r.bodies[i], nil
}

// All yields bodies in insertion order. The sequence is restartable and
// reads the registry at the time it is ranged over.
func (r *Registry) All() iter.Seq2[BodyID, Body] {
	return func(yield func(BodyID, Body) bool) {
		gen := r.gen
		for i := range r.bodies {
			if !yield(BodyID{index: i, gen: gen}, r.bodies[i]) {
				return
			}
		}
	}
}

// Snapshot copies the current bodies into dst, growing it as needed.
func (r *Registry) Snapshot(dst []Body) []Body {
	return append(dst[:0], r.bodies...)
}

// Bodies returns the backing slice. Integrators update it in place; other
// callers should prefer All.
func (r *Registry) Bodies() []Body {
	return r.bodies
}
