package regex

import (
	"testing"

	"github.com/dekarrin/renfa/automaton"
	"github.com/stretchr/testify/assert"
)

func Test_Atom(t *testing.T) {
	testCases := []struct {
		name   string
		symbol string
	}{
		{name: "ascii letter", symbol: "a"},
		{name: "digit", symbol: "7"},
		{name: "space", symbol: " "},
		{name: "multibyte", symbol: "λ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ids := &IDAllocator{}
			nfa := Atom(ids, tc.symbol)

			start, hasStart := nfa.Start()
			assert.True(hasStart)
			assert.Equal(2, nfa.States().Len())
			assert.Equal(1, nfa.TransitionCount())
			assert.Equal(1, nfa.FinalStates().Len())
			assert.False(nfa.IsFinal(start))
			assert.Equal([]string{tc.symbol}, nfa.Alphabet().Elements())

			trans := nfa.Transitions()
			assert.Equal(tc.symbol, trans[0].Input)
			assert.Equal(start, trans[0].From)
			assert.True(nfa.IsFinal(trans[0].To))

			assert.Equal(2, ids.Count())
			assert.NoError(nfa.Validate())
		})
	}
}

func Test_Empty(t *testing.T) {
	assert := assert.New(t)

	ids := &IDAllocator{}
	nfa := Empty(ids)

	assert.Equal([]int{0}, nfa.States().Elements())
	assert.Equal([]int{0}, nfa.FinalStates().Elements())
	assert.Equal(0, nfa.MustStart())
	assert.Equal(0, nfa.TransitionCount())
	assert.True(nfa.Accepts(""))
	assert.False(nfa.Accepts("a"))
}

func Test_Concat(t *testing.T) {
	assert := assert.New(t)

	ids := &IDAllocator{}
	a := Atom(ids, "a")
	b := Atom(ids, "b")
	aStart := a.MustStart()

	nfa := Concat(&a, &b)

	assert.Equal(aStart, nfa.MustStart())
	assert.Equal([]int{3}, nfa.FinalStates().Elements())
	assert.Equal([]string{"a", "b"}, nfa.Alphabet().Elements())
	assert.Equal([]int{2}, nfa.Next(1, automaton.Epsilon).Elements())
	assert.NoError(nfa.Validate())

	assert.True(nfa.Accepts("ab"))
	assert.False(nfa.Accepts("a"))
	assert.False(nfa.Accepts("b"))
	assert.False(nfa.Accepts("ba"))
	assert.False(nfa.Accepts(""))
	assert.False(nfa.Accepts("abb"))
}

func Test_Union(t *testing.T) {
	assert := assert.New(t)

	ids := &IDAllocator{}
	a := Atom(ids, "a")
	b1, b2 := Atom(ids, "b"), Atom(ids, "c")
	b := Concat(&b1, &b2)

	nfa := Union(ids, &a, &b)

	assert.Equal(6, nfa.MustStart())
	assert.Equal([]int{7}, nfa.FinalStates().Elements())
	assert.Equal([]string{"a", "b", "c"}, nfa.Alphabet().Elements())
	assert.NoError(nfa.Validate())

	assert.True(nfa.Accepts("a"))
	assert.True(nfa.Accepts("bc"))
	assert.False(nfa.Accepts(""))
	assert.False(nfa.Accepts("b"))
	assert.False(nfa.Accepts("abc"))
}

func Test_Star(t *testing.T) {
	assert := assert.New(t)

	ids := &IDAllocator{}
	a, b := Atom(ids, "a"), Atom(ids, "b")
	ab := Concat(&a, &b)
	nfa := Star(ids, &ab)

	assert.Equal(4, nfa.MustStart())
	assert.Equal([]int{5}, nfa.FinalStates().Elements())
	assert.NoError(nfa.Validate())

	assert.True(nfa.Accepts(""), "star must accept the empty string")
	assert.True(nfa.Accepts("ab"))
	assert.True(nfa.Accepts("ababab"))
	assert.False(nfa.Accepts("a"))
	assert.False(nfa.Accepts("aba"))
	assert.False(nfa.Accepts("ba"))
}

func Test_Star_multipleFinals(t *testing.T) {
	assert := assert.New(t)

	// 0 =(a)=> 1, 0 =(b)=> 2, both 1 and 2 final
	var two automaton.NFA
	two.AddState(0, false)
	two.AddState(1, true)
	two.AddState(2, true)
	two.SetStart(0)
	two.AddTransition(0, "a", 1)
	two.AddTransition(0, "b", 2)

	ids := &IDAllocator{next: 3}
	nfa := Star(ids, &two)

	assert.Equal([]int{4}, nfa.FinalStates().Elements())
	assert.False(nfa.IsFinal(1))
	assert.False(nfa.IsFinal(2))
	assert.Equal([]int{0, 4}, nfa.Next(1, automaton.Epsilon).Elements())
	assert.Equal([]int{0, 4}, nfa.Next(2, automaton.Epsilon).Elements())

	assert.True(nfa.Accepts(""))
	assert.True(nfa.Accepts("a"))
	assert.True(nfa.Accepts("ba"))
	assert.True(nfa.Accepts("abba"))
	assert.False(nfa.Accepts("c"))
}

func Test_Constructions_consumeOperands(t *testing.T) {
	testCases := []struct {
		name  string
		build func(ids *IDAllocator, a, b *automaton.NFA) automaton.NFA
	}{
		{
			name: "concat",
			build: func(ids *IDAllocator, a, b *automaton.NFA) automaton.NFA {
				return Concat(a, b)
			},
		},
		{
			name: "union",
			build: func(ids *IDAllocator, a, b *automaton.NFA) automaton.NFA {
				return Union(ids, a, b)
			},
		},
		{
			name: "star",
			build: func(ids *IDAllocator, a, b *automaton.NFA) automaton.NFA {
				starred := Star(ids, b)
				return Concat(a, &starred)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ids := &IDAllocator{}
			a := Atom(ids, "a")
			b := Atom(ids, "b")

			nfa := tc.build(ids, &a, &b)

			assert.True(a.States().Empty(), "first operand still has states")
			assert.True(b.States().Empty(), "second operand still has states")
			_, hasStart := a.Start()
			assert.False(hasStart)
			_, hasStart = b.Start()
			assert.False(hasStart)

			// reusing an operand must not reach into the result
			b.AddState(2, false)
			b.AddState(3, true)
			b.AddTransition(2, "z", 3)

			assert.True(nfa.Next(2, "z").Empty())
			assert.False(nfa.Alphabet().Has("z"))
			assert.NoError(nfa.Validate())
		})
	}
}

func Test_IDAllocator(t *testing.T) {
	assert := assert.New(t)

	var ids IDAllocator

	assert.Equal(0, ids.Next())
	assert.Equal(1, ids.Next())
	assert.Equal(2, ids.Next())
	assert.Equal(3, ids.Count())

	var other IDAllocator
	assert.Equal(0, other.Next(), "allocators must not share a counter")
}
