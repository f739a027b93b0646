package environ

import (
	"github.com/luthersystems/pairlisp/lisp"
	"github.com/luthersystems/pairlisp/symbol"
)

type bindingPair struct {
	name  symbol.ID
	value lisp.LVal
}

// bindings is the set of variables bound in one frame.  Iteration follows
// the order in which variables were first bound.
type bindings struct {
	pairs []bindingPair
	index map[symbol.ID]int
}

func newBindings(n int) *bindings {
	return &bindings{
		pairs: make([]bindingPair, 0, n),
		index: make(map[symbol.ID]int, n),
	}
}

// Len returns the number of symbols bound.
func (s *bindings) Len() int {
	return len(s.pairs)
}

// Get returns the value bound to variable.
func (s *bindings) Get(variable symbol.ID) (lisp.LVal, bool) {
	i, ok := s.index[variable]
	if !ok {
		return lisp.Nil(), false
	}
	return s.pairs[i].value, true
}

// Put binds variable to v.  If variable was previously bound its entry will be
// overwritten.  Otherwise Put creates a new variable binding.
func (s *bindings) Put(variable symbol.ID, v lisp.LVal) {
	i, ok := s.index[variable]
	if ok {
		s.pairs[i].value = v
		return
	}
	s.index[variable] = len(s.pairs)
	s.pairs = append(s.pairs, bindingPair{variable, v})
}

// reset removes all bindings while keeping allocated storage for reuse by
// the next frame occupying the same arena slot.
func (s *bindings) reset() {
	for i := range s.pairs {
		s.pairs[i] = bindingPair{}
	}
	s.pairs = s.pairs[:0]
	clear(s.index)
}
