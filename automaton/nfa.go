// Package automaton contains the nondeterministic finite automaton model that
// regular expressions are compiled into.
package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/renfa/internal/util"
)

// Epsilon is the input symbol of a transition that consumes no input.
const Epsilon = ""

// Transition is a single directed edge of an NFA.
type Transition struct {
	From  int
	Input string
	To    int
}

// IsEpsilon returns whether t is an ε-transition.
func (t Transition) IsEpsilon() bool {
	return t.Input == Epsilon
}

func (t Transition) String() string {
	inp := t.Input
	if inp == Epsilon {
		inp = "ε"
	}
	return fmt.Sprintf("%d =(%s)=> %d", t.From, inp, t.To)
}

type nfaState struct {
	id    int
	final bool

	// transitions maps an input symbol to every state it leads to, in the
	// order they were added.
	transitions map[string][]int
}

func (ns nfaState) copy() nfaState {
	copied := nfaState{
		id:          ns.id,
		final:       ns.final,
		transitions: make(map[string][]int, len(ns.transitions)),
	}

	for sym := range ns.transitions {
		dests := make([]int, len(ns.transitions[sym]))
		copy(dests, ns.transitions[sym])
		copied.transitions[sym] = dests
	}

	return copied
}

func (ns nfaState) String() string {
	var moves []string

	for _, sym := range util.OrderedKeys(ns.transitions) {
		for _, to := range ns.transitions[sym] {
			moves = append(moves, Transition{From: ns.id, Input: sym, To: to}.String())
		}
	}

	str := fmt.Sprintf("(%d)", ns.id)
	if ns.final {
		str = fmt.Sprintf("((%d))", ns.id)
	}
	if len(moves) > 0 {
		str += " [" + strings.Join(moves, ", ") + "]"
	}
	return str
}

// NFA is a nondeterministic finite automaton whose states are identified by
// integers. Each state carries its own final flag, and the set of final states
// is also kept alongside so that it can be read without scanning every state.
//
// The zero-value is an empty NFA with no start state, ready for use.
type NFA struct {
	states   map[int]nfaState
	finals   util.KeySet[int]
	alphabet util.StringSet
	start    int
	hasStart bool
}

// AddState adds a new state with the given ID. If a state with that ID already
// exists, this has no effect.
func (nfa *NFA) AddState(id int, final bool) {
	if _, ok := nfa.states[id]; ok {
		return
	}

	if nfa.states == nil {
		nfa.states = map[int]nfaState{}
	}

	nfa.states[id] = nfaState{
		id:          id,
		final:       final,
		transitions: map[string][]int{},
	}
	if final {
		if nfa.finals == nil {
			nfa.finals = util.NewKeySet[int]()
		}
		nfa.finals.Add(id)
	}
}

// SetStart designates the given state as the start state. It panics if the
// state does not exist.
func (nfa *NFA) SetStart(id int) {
	if _, ok := nfa.states[id]; !ok {
		panic(fmt.Sprintf("set start to non-existent state %d", id))
	}
	nfa.start = id
	nfa.hasStart = true
}

// SetFinal marks the given state as final. It panics if the state does not
// exist.
func (nfa *NFA) SetFinal(id int) {
	nfa.setFinality(id, true)
}

// SetNonFinal demotes the given state so that it is no longer final. It panics
// if the state does not exist.
func (nfa *NFA) SetNonFinal(id int) {
	nfa.setFinality(id, false)
}

func (nfa *NFA) setFinality(id int, final bool) {
	s, ok := nfa.states[id]
	if !ok {
		panic(fmt.Sprintf("set finality of non-existent state %d", id))
	}
	s.final = final
	nfa.states[id] = s

	if final {
		if nfa.finals == nil {
			nfa.finals = util.NewKeySet[int]()
		}
		nfa.finals.Add(id)
	} else {
		nfa.finals.Remove(id)
	}
}

// AddTransition adds a transition from fromState to toState on the given input.
// Use Epsilon as the input for an ε-transition. Both states must already exist
// or AddTransition panics.
func (nfa *NFA) AddTransition(fromState int, input string, toState int) {
	from, ok := nfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %d", fromState))
	}
	if _, ok := nfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %d", toState))
	}

	from.transitions[input] = append(from.transitions[input], toState)
	nfa.states[fromState] = from

	if input != Epsilon {
		if nfa.alphabet == nil {
			nfa.alphabet = util.NewStringSet()
		}
		nfa.alphabet.Add(input)
	}
}

// Absorb moves every state, transition, and alphabet symbol of other into nfa.
// The start state of nfa is not changed. Afterwards other is left empty and
// must not be used to build anything further.
//
// Whichever of the two holds more states keeps its storage and the smaller
// one is copied into it, so building up a large NFA by repeatedly absorbing
// small pieces costs time proportional to the pieces.
//
// State IDs must not overlap between the two NFAs; Absorb panics if they do.
func (nfa *NFA) Absorb(other *NFA) {
	if other == nfa {
		panic("absorb: NFA cannot absorb itself")
	}

	if len(other.states) > len(nfa.states) {
		nfa.states, other.states = other.states, nfa.states
		nfa.finals, other.finals = other.finals, nfa.finals
	}
	if len(other.alphabet) > len(nfa.alphabet) {
		nfa.alphabet, other.alphabet = other.alphabet, nfa.alphabet
	}

	if nfa.states == nil {
		nfa.states = map[int]nfaState{}
	}
	if nfa.finals == nil {
		nfa.finals = util.NewKeySet[int]()
	}
	if nfa.alphabet == nil {
		nfa.alphabet = util.NewStringSet()
	}

	for id, s := range other.states {
		if _, exists := nfa.states[id]; exists {
			panic(fmt.Sprintf("absorb: state %d already exists", id))
		}
		nfa.states[id] = s
	}
	for id := range other.finals {
		nfa.finals.Add(id)
	}
	for sym := range other.alphabet {
		nfa.alphabet.Add(sym)
	}

	other.states = nil
	other.finals = nil
	other.alphabet = nil
	other.hasStart = false
	other.start = 0
}

// Start returns the ID of the start state. If no start state has been set, it
// returns 0 and false.
func (nfa NFA) Start() (int, bool) {
	return nfa.start, nfa.hasStart
}

// MustStart returns the ID of the start state. It panics if no start state has
// been set.
func (nfa NFA) MustStart() int {
	if !nfa.hasStart {
		panic("NFA has no start state")
	}
	return nfa.start
}

// HasState returns whether the NFA contains a state with the given ID.
func (nfa NFA) HasState(id int) bool {
	_, ok := nfa.states[id]
	return ok
}

// IsFinal returns whether the given state exists and is final.
func (nfa NFA) IsFinal(id int) bool {
	return nfa.states[id].final
}

// States returns the IDs of all states in the NFA.
func (nfa NFA) States() util.KeySet[int] {
	states := util.NewKeySet[int]()
	for id := range nfa.states {
		states.Add(id)
	}
	return states
}

// FinalStates returns the IDs of all states currently marked final.
func (nfa NFA) FinalStates() util.KeySet[int] {
	return nfa.finals.Copy()
}

// Alphabet returns every non-ε input symbol used by some transition.
func (nfa NFA) Alphabet() util.StringSet {
	return nfa.alphabet.Copy()
}

// Next returns the set of states reachable from state with exactly one
// transition on input. Pass Epsilon to get the ε-successors.
func (nfa NFA) Next(state int, input string) util.KeySet[int] {
	dests := util.NewKeySet[int]()
	s, ok := nfa.states[state]
	if !ok {
		return dests
	}
	for _, to := range s.transitions[input] {
		dests.Add(to)
	}
	return dests
}

// Transitions returns every transition in the NFA. They are ordered by source
// state, then by input symbol, then in the order they were added.
func (nfa NFA) Transitions() []Transition {
	var all []Transition

	for _, id := range util.OrderedKeys(nfa.states) {
		s := nfa.states[id]
		for _, sym := range util.OrderedKeys(s.transitions) {
			for _, to := range s.transitions[sym] {
				all = append(all, Transition{From: id, Input: sym, To: to})
			}
		}
	}

	return all
}

// TransitionCount returns the number of transitions in the NFA.
func (nfa NFA) TransitionCount() int {
	count := 0
	for id := range nfa.states {
		for sym := range nfa.states[id].transitions {
			count += len(nfa.states[id].transitions[sym])
		}
	}
	return count
}

// Copy returns a duplicate of this NFA that shares no memory with it.
func (nfa NFA) Copy() NFA {
	copied := NFA{
		states:   make(map[int]nfaState, len(nfa.states)),
		finals:   nfa.finals.Copy(),
		alphabet: nfa.alphabet.Copy(),
		start:    nfa.start,
		hasStart: nfa.hasStart,
	}

	for id := range nfa.states {
		copied.states[id] = nfa.states[id].copy()
	}

	return copied
}

// Validate checks that the start state, every final state, and both endpoints
// of every transition are members of the state set, and that the alphabet is
// exactly the set of non-ε symbols in use.
func (nfa NFA) Validate() error {
	if !nfa.hasStart {
		return fmt.Errorf("no start state set")
	}
	if _, ok := nfa.states[nfa.start]; !ok {
		return fmt.Errorf("start state %d is not in the state set", nfa.start)
	}

	for id := range nfa.finals {
		if !nfa.states[id].final {
			return fmt.Errorf("state %d is recorded as final but is not a final state", id)
		}
	}

	used := util.NewStringSet()
	for id, s := range nfa.states {
		if s.id != id {
			return fmt.Errorf("state %d is stored under ID %d", s.id, id)
		}
		if s.final && !nfa.finals.Has(id) {
			return fmt.Errorf("final state %d is missing from the final set", id)
		}
		for sym, dests := range s.transitions {
			if sym != Epsilon && len(dests) > 0 {
				used.Add(sym)
			}
			for _, to := range dests {
				if _, ok := nfa.states[to]; !ok {
					return fmt.Errorf("transition %s leads to a state not in the state set", Transition{From: id, Input: sym, To: to})
				}
			}
		}
	}

	if !used.Equal(nfa.Alphabet()) {
		return fmt.Errorf("alphabet %s does not match symbols in use %s", nfa.Alphabet(), used)
	}

	return nil
}

// EpsilonClosure gives the set of states reachable from state using zero or
// more ε-moves. The state itself is always included if it exists.
func (nfa NFA) EpsilonClosure(s int) util.KeySet[int] {
	return nfa.EpsilonClosureOfSet(util.KeySetOf([]int{s}))
}

// EpsilonClosureOfSet gives the set of states reachable from some state in X
// using zero or more ε-moves. Each state is visited at most once no matter how
// many members of X reach it.
func (nfa NFA) EpsilonClosureOfSet(X util.ISet[int]) util.KeySet[int] {
	closure := util.NewKeySet[int]()

	checking := util.Stack[int]{}
	for _, s := range X.Elements() {
		if _, ok := nfa.states[s]; ok {
			checking.Push(s)
		}
	}

	for !checking.Empty() {
		cur := checking.Pop()
		if closure.Has(cur) {
			continue
		}
		closure.Add(cur)

		for _, next := range nfa.states[cur].transitions[Epsilon] {
			if !closure.Has(next) {
				checking.Push(next)
			}
		}
	}

	return closure
}

// MOVE returns the set of states reachable with one transition from some state
// in X on input a. Purple dragon book calls this function MOVE(T, a) and it is
// on page 153 as part of algorithm 3.20.
func (nfa NFA) MOVE(X util.ISet[int], a string) util.KeySet[int] {
	moves := util.NewKeySet[int]()
	for _, s := range X.Elements() {
		moves.AddAll(nfa.Next(s, a))
	}
	return moves
}

// Accepts simulates the NFA on input, one code point per symbol, and returns
// whether it ends in a final state.
func (nfa NFA) Accepts(input string) bool {
	if !nfa.hasStart {
		return false
	}

	current := nfa.EpsilonClosure(nfa.start)
	for _, ch := range input {
		current = nfa.EpsilonClosureOfSet(nfa.MOVE(current, string(ch)))
		if current.Empty() {
			return false
		}
	}

	return current.Any(nfa.IsFinal)
}

// NumberStates renames all states so that they are numbered from 0 with no
// gaps. The start state is guaranteed to be numbered 0; beyond that, states
// keep their relative order.
func (nfa *NFA) NumberStates() {
	if !nfa.hasStart {
		panic("can't number states of NFA with no start state set")
	}

	origIDs := util.OrderedKeys(nfa.states)

	numMapping := map[int]int{nfa.start: 0}
	next := 1
	for _, id := range origIDs {
		if id == nfa.start {
			continue
		}
		numMapping[id] = next
		next++
	}

	// build an entirely new NFA using the mapping and then steal its states
	renumbered := NFA{}
	for _, id := range origIDs {
		renumbered.AddState(numMapping[id], nfa.states[id].final)
	}
	for _, id := range origIDs {
		st := nfa.states[id]
		for _, sym := range util.OrderedKeys(st.transitions) {
			for _, to := range st.transitions[sym] {
				renumbered.AddTransition(numMapping[id], sym, numMapping[to])
			}
		}
	}

	nfa.states = renumbered.states
	nfa.finals = renumbered.finals
	nfa.start = 0
}

func (nfa NFA) String() string {
	var sb strings.Builder

	if nfa.hasStart {
		sb.WriteString(fmt.Sprintf("<START: %d, STATES:", nfa.start))
	} else {
		sb.WriteString("<START: none, STATES:")
	}

	ordered := util.OrderedKeys(nfa.states)
	for i := range ordered {
		sb.WriteString("\n\t")
		sb.WriteString(nfa.states[ordered[i]].String())

		if i+1 < len(ordered) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}

	sb.WriteRune('>')

	return sb.String()
}
