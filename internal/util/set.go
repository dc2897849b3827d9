package util

import (
	"fmt"
	"sort"
	"strings"
)

// Ordered is the set of types that support ordering with the < operator and
// can therefore be used as keys in a KeySet.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// ISet is a set of elements of some type.
type ISet[E any] interface {
	// Add adds the given element to the Set. If the element is already in the
	// set, no effect occurs.
	Add(element E)

	// AddAll adds all elements in s2 to the Set.
	AddAll(s2 ISet[E])

	// Remove removes the given element from the Set. If the element is already
	// not in the set, no effect occurs.
	Remove(element E)

	// Has returns whether the given set has the specified element.
	Has(element E) bool

	// Len returns the number of elements in the set.
	Len() int

	// Empty returns whether the set is empty.
	Empty() bool

	// Elements returns the elements of the set in ascending order.
	Elements() []E

	// Equal returns whether a Set equals another value. It checks if the value
	// implements ISet of the same element type and if so, does a comparison of
	// the elements and not of their ordering.
	Equal(o any) bool

	// String is a string with the contents of the set in ascending order.
	String() string
}

// KeySet is a set of ordered keys. The zero value is not ready for use; call
// NewKeySet or KeySetOf to get one.
type KeySet[E Ordered] map[E]bool

// StringSet is a KeySet of strings.
type StringSet = KeySet[string]

// NewKeySet creates a new KeySet containing every key of the given maps.
func NewKeySet[E Ordered](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// NewStringSet creates a new StringSet containing every key of the given maps.
func NewStringSet(of ...map[string]bool) StringSet {
	return NewKeySet(of...)
}

// KeySetOf creates a new KeySet containing the items in sl.
func KeySetOf[E Ordered](sl []E) KeySet[E] {
	s := KeySet[E]{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

// StringSetOf creates a new StringSet containing the items in sl.
func StringSetOf(sl []string) StringSet {
	return KeySetOf(sl)
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) AddAll(s2 ISet[E]) {
	for _, element := range s2.Elements() {
		s.Add(element)
	}
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Empty() bool {
	return len(s) == 0
}

// Copy returns a new KeySet with the same elements as s.
func (s KeySet[E]) Copy() KeySet[E] {
	return NewKeySet[E](s)
}

// Union returns a new KeySet that contains every element of s and s2.
func (s KeySet[E]) Union(s2 ISet[E]) KeySet[E] {
	newSet := s.Copy()
	newSet.AddAll(s2)
	return newSet
}

// Difference returns a new KeySet that contains the elements that are in s but
// not in s2.
func (s KeySet[E]) Difference(s2 ISet[E]) KeySet[E] {
	newSet := NewKeySet[E]()
	for k := range s {
		if !s2.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// DisjointWith returns whether s contains no elements of s2.
func (s KeySet[E]) DisjointWith(s2 ISet[E]) bool {
	for k := range s {
		if s2.Has(k) {
			return false
		}
	}
	return true
}

// Any returns whether any element in the set meets some condition.
func (s KeySet[E]) Any(predicate func(v E) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s KeySet[E]) Elements() []E {
	elements := make([]E, 0, len(s))
	for k := range s {
		elements = append(elements, k)
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i] < elements[j]
	})
	return elements
}

func (s KeySet[E]) Equal(o any) bool {
	other, ok := o.(ISet[E])
	if !ok {
		otherMap, ok := o.(map[E]bool)
		if !ok {
			return false
		}
		other = KeySet[E](otherMap)
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

func (s KeySet[E]) String() string {
	elements := s.Elements()

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range elements {
		sb.WriteString(fmt.Sprintf("%v", elements[i]))
		if i+1 < len(elements) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}
