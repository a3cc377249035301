package param

import (
	"fmt"
	"math"
)

// Set is an ordered, immutable collection of parameters keyed by id.
// Values are mutable through the parameters themselves; the membership is
// fixed at construction, so lookups need no locking.
type Set struct {
	params []*Parameter
	byID   map[string]*Parameter
}

// NewSet builds a Set from specs in declaration order.
func NewSet(specs ...Spec) (*Set, error) {
	s := &Set{
		params: make([]*Parameter, 0, len(specs)),
		byID:   make(map[string]*Parameter, len(specs)),
	}

	for _, spec := range specs {
		if _, dup := s.byID[spec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSpec, spec.ID)
		}

		p, err := New(spec)
		if err != nil {
			return nil, err
		}

		s.params = append(s.params, p)
		s.byID[spec.ID] = p
	}

	if len(s.params) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: too many parameters: %d", ErrInvalidSpec, len(s.params))
	}

	return s, nil
}

// Param returns the parameter with the given id, or nil.
func (s *Set) Param(id string) *Parameter {
	return s.byID[id]
}

// Get returns the current value of id, or 0 for an unknown id.
func (s *Set) Get(id string) float64 {
	if p := s.byID[id]; p != nil {
		return p.Load()
	}

	return 0
}

// Set writes v (clamped) to id.
func (s *Set) Set(id string, v float64) error {
	p := s.byID[id]
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	if math.IsNaN(v) {
		return fmt.Errorf("%w: %s: NaN", ErrInvalidValue, id)
	}

	p.Store(v)

	return nil
}

// All returns the parameters in declaration order.
func (s *Set) All() []*Parameter {
	return append([]*Parameter(nil), s.params...)
}

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.params) }

// Reset restores every default.
func (s *Set) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}
