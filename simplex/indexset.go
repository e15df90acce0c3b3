package simplex

import (
	"github.com/pkg/errors"
)

// IndexSet maps variable ids to dense, zero-based positions and back.
// The solver keeps two of them, one for the nonbasic variables (tableau
// columns) and one for the basic variables (tableau rows).
type IndexSet struct {
	pos  map[int]int
	vars []int
}

// NewIndexSet places vars at positions 0..len(vars)-1 in the given order.
// The ids must be distinct.
func NewIndexSet(vars ...int) (*IndexSet, error) {
	s := &IndexSet{
		pos:  make(map[int]int, len(vars)),
		vars: make([]int, 0, len(vars)),
	}
	for _, v := range vars {
		if err := s.Add(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// newIndexSet is NewIndexSet for ids already known to be distinct.
func newIndexSet(vars []int) *IndexSet {
	s := &IndexSet{
		pos:  make(map[int]int, len(vars)),
		vars: append([]int(nil), vars...),
	}
	for p, v := range vars {
		s.pos[v] = p
	}
	return s
}

// rangeSet returns an IndexSet holding from, from+1, ..., to-1.
func rangeSet(from, to int) *IndexSet {
	vars := make([]int, 0, to-from)
	for v := from; v < to; v++ {
		vars = append(vars, v)
	}
	return newIndexSet(vars)
}

// Len returns the number of variables in the set.
func (s *IndexSet) Len() int {
	return len(s.vars)
}

// Var returns the variable at position p.
func (s *IndexSet) Var(p int) int {
	return s.vars[p]
}

// Position returns the position of v and whether v is in the set.
func (s *IndexSet) Position(v int) (int, bool) {
	p, ok := s.pos[v]
	return p, ok
}

// Contains reports whether v is in the set.
func (s *IndexSet) Contains(v int) bool {
	_, ok := s.pos[v]
	return ok
}

// Vars returns a copy of the variables in position order.
func (s *IndexSet) Vars() []int {
	return append([]int(nil), s.vars...)
}

// Replace renames the variable at old's position to v.
func (s *IndexSet) Replace(old, v int) error {
	p, ok := s.pos[old]
	if !ok {
		return errors.Errorf("simplex: variable %d not in index set", old)
	}
	if _, dup := s.pos[v]; dup && v != old {
		return errors.Errorf("simplex: variable %d already in index set", v)
	}
	delete(s.pos, old)
	s.vars[p] = v
	s.pos[v] = p
	return nil
}

// Add appends v at the next free position.
func (s *IndexSet) Add(v int) error {
	if _, dup := s.pos[v]; dup {
		return errors.Errorf("simplex: variable %d already in index set", v)
	}
	s.pos[v] = len(s.vars)
	s.vars = append(s.vars, v)
	return nil
}

// without returns a new set with the variable at position p removed and
// the positions after it shifted down by one.
func (s *IndexSet) without(p int) *IndexSet {
	vars := make([]int, 0, len(s.vars)-1)
	vars = append(vars, s.vars[:p]...)
	vars = append(vars, s.vars[p+1:]...)
	return newIndexSet(vars)
}
