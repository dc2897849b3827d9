package util

import (
	"sort"
)

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is ascending, but this function does not
// guarantee this will always be the case.
func OrderedKeys[K Ordered, V any](m map[K]V) []K {
	keys := make([]K, len(m))

	idx := 0
	for k := range m {
		keys[idx] = k
		idx++
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	return keys
}

// SortBy returns a sorted copy of sl. The ordering is given by the provided
// less function, which must return whether left comes before right.
func SortBy[E any](sl []E, less func(left, right E) bool) []E {
	sorted := make([]E, len(sl))
	copy(sorted, sl)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// Stack is a LIFO stack. The zero value is an empty stack ready for use.
type Stack[E any] struct {
	Of []E
}

// Push puts v on top of the stack.
func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

// Pop removes the top element of the stack and returns it. It panics if the
// stack is empty.
func (s *Stack[E]) Pop() E {
	if len(s.Of) < 1 {
		panic("pop of empty stack")
	}

	v := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return v
}

// Peek returns the top element of the stack without removing it. It panics if
// the stack is empty.
func (s Stack[E]) Peek() E {
	if len(s.Of) < 1 {
		panic("peek of empty stack")
	}
	return s.Of[len(s.Of)-1]
}

// Len returns the number of elements in the stack.
func (s Stack[E]) Len() int {
	return len(s.Of)
}

// Empty returns whether the stack has no elements.
func (s Stack[E]) Empty() bool {
	return len(s.Of) == 0
}
