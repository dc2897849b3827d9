package regex

import (
	"github.com/dekarrin/renfa/automaton"
)

// IDAllocator hands out state IDs that are unique across everything built with
// it. One IDAllocator is used for an entire parse so that sub-automata built
// in separate branches never collide when they are joined.
//
// The zero-value starts at ID 0 and is ready for use. IDAllocator is not safe
// for concurrent use.
type IDAllocator struct {
	next int
}

// Next returns a new ID that has not been returned before.
func (ids *IDAllocator) Next() int {
	id := ids.next
	ids.next++
	return id
}

// Count returns how many IDs have been handed out.
func (ids *IDAllocator) Count() int {
	return ids.next
}

// Atom builds the two-state NFA that accepts exactly the one-symbol string
// symbol.
func Atom(ids *IDAllocator, symbol string) automaton.NFA {
	var nfa automaton.NFA

	start := ids.Next()
	final := ids.Next()

	nfa.AddState(start, false)
	nfa.AddState(final, true)
	nfa.SetStart(start)
	nfa.AddTransition(start, symbol, final)

	return nfa
}

// Empty builds the one-state NFA that accepts only the empty string.
func Empty(ids *IDAllocator) automaton.NFA {
	var nfa automaton.NFA

	s := ids.Next()
	nfa.AddState(s, true)
	nfa.SetStart(s)

	return nfa
}

// Concat builds an NFA accepting every string of a followed by every string of
// b. Each final state of a is demoted and given an ε-transition to the start
// of b.
//
// Concat takes ownership of both arguments. Their states are moved into the
// returned NFA and both are left empty.
func Concat(a, b *automaton.NFA) automaton.NFA {
	var nfa automaton.NFA

	aStart, bStart := a.MustStart(), b.MustStart()
	aFinals := a.FinalStates().Elements()

	nfa.Absorb(a)
	nfa.Absorb(b)
	nfa.SetStart(aStart)

	for _, f := range aFinals {
		nfa.SetNonFinal(f)
		nfa.AddTransition(f, automaton.Epsilon, bStart)
	}

	return nfa
}

// Union builds an NFA accepting every string of either a or b. A new start
// state branches into both, and every old final state is demoted and given an
// ε-transition to a single new final state.
//
// Union takes ownership of both arguments. Their states are moved into the
// returned NFA and both are left empty.
func Union(ids *IDAllocator, a, b *automaton.NFA) automaton.NFA {
	var nfa automaton.NFA

	start := ids.Next()
	nfa.AddState(start, false)

	aStart, bStart := a.MustStart(), b.MustStart()
	oldFinals := a.FinalStates().Union(b.FinalStates()).Elements()

	nfa.Absorb(a)
	nfa.Absorb(b)
	nfa.SetStart(start)

	nfa.AddTransition(start, automaton.Epsilon, aStart)
	nfa.AddTransition(start, automaton.Epsilon, bStart)

	final := ids.Next()
	nfa.AddState(final, true)

	for _, f := range oldFinals {
		nfa.SetNonFinal(f)
		nfa.AddTransition(f, automaton.Epsilon, final)
	}

	return nfa
}

// Star builds an NFA accepting zero or more repetitions of strings of a. A new
// start state may skip directly to a new final state; every old final state is
// demoted and may either exit to the new final state or loop back to the start
// of a.
//
// Star takes ownership of its argument. Its states are moved into the returned
// NFA and it is left empty.
func Star(ids *IDAllocator, a *automaton.NFA) automaton.NFA {
	var nfa automaton.NFA

	oldStart := a.MustStart()
	oldFinals := a.FinalStates().Elements()

	start := ids.Next()
	final := ids.Next()

	nfa.AddState(start, false)
	nfa.AddState(final, true)
	nfa.Absorb(a)
	nfa.SetStart(start)

	nfa.AddTransition(start, automaton.Epsilon, oldStart)
	nfa.AddTransition(start, automaton.Epsilon, final)

	for _, f := range oldFinals {
		nfa.SetNonFinal(f)
		nfa.AddTransition(f, automaton.Epsilon, final)
		nfa.AddTransition(f, automaton.Epsilon, oldStart)
	}

	return nfa
}
