package tabu

import (
	"fmt"
	"math"
	"slices"
)

// Solution is an ordered set of candidate elements together with a cached cost.
//
// Cost holds the objective value as of the last call to Evaluator.Evaluate; it is stale
// between a mutation (Add/Remove) and the next evaluation.
type Solution[E comparable] struct {
	Cost float64

	elements []E
	members  map[E]struct{}
	version  uint64
}

// NewSolution returns an empty solution whose cost is +Inf.
func NewSolution[E comparable]() *Solution[E] {
	return &Solution[E]{
		Cost:     math.Inf(1),
		elements: make([]E, 0),
		members:  make(map[E]struct{}),
	}
}

// Add appends element to the solution. It reports false if the element was already present.
func (s *Solution[E]) Add(element E) bool {
	if _, ok := s.members[element]; ok {
		return false
	}
	s.members[element] = struct{}{}
	s.elements = append(s.elements, element)
	s.version++
	return true
}

// Remove deletes element preserving the order of the remaining ones. It reports false if
// the element was not present.
func (s *Solution[E]) Remove(element E) bool {
	if _, ok := s.members[element]; !ok {
		return false
	}
	delete(s.members, element)
	i := slices.Index(s.elements, element)
	s.elements = slices.Delete(s.elements, i, i+1)
	s.version++
	return true
}

func (s *Solution[E]) Contains(element E) bool {
	_, ok := s.members[element]
	return ok
}

func (s *Solution[E]) Len() int {
	return len(s.elements)
}

// Elements returns a copy of the elements in insertion order.
func (s *Solution[E]) Elements() []E {
	return slices.Clone(s.elements)
}

// Version is incremented on every successful mutation. Counters built for one version
// must not be queried once the version has moved on.
func (s *Solution[E]) Version() uint64 {
	return s.version
}

// Clone returns a deep copy that shares nothing with s.
func (s *Solution[E]) Clone() *Solution[E] {
	clone := &Solution[E]{
		Cost:     s.Cost,
		elements: slices.Clone(s.elements),
		members:  make(map[E]struct{}, len(s.members)),
		version:  s.version,
	}
	for element := range s.members {
		clone.members[element] = struct{}{}
	}
	return clone
}

func (s *Solution[E]) String() string {
	return fmt.Sprintf("Solution: cost=[%v], size=[%d], elements=%v", s.Cost, len(s.elements), s.elements)
}
