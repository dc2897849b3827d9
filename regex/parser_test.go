package regex

import (
	"errors"
	"strings"
	"testing"

	"github.com/dekarrin/renfa/automaton"
	"github.com/stretchr/testify/assert"
)

func Test_Parse_Language(t *testing.T) {
	testCases := []struct {
		name   string
		expr   string
		accept []string
		reject []string
	}{
		{
			name:   "concatenation",
			expr:   "ab",
			accept: []string{"ab"},
			reject: []string{"", "a", "b", "ba", "abb", "aab"},
		},
		{
			name:   "alternation",
			expr:   "a|b",
			accept: []string{"a", "b"},
			reject: []string{"", "ab", "ba", "aa", "c"},
		},
		{
			name:   "star",
			expr:   "a*",
			accept: []string{"", "a", "aa", "aaa", "aaaaaaaa"},
			reject: []string{"b", "ab", "ba"},
		},
		{
			name:   "starred group",
			expr:   "(a|b)*",
			accept: []string{"", "a", "b", "ab", "ba", "abba", "bbbbab"},
			reject: []string{"c", "abc"},
		},
		{
			name:   "symbol then starred group",
			expr:   "a(b|c)*",
			accept: []string{"a", "ab", "ac", "abbc", "acccb"},
			reject: []string{"b", "", "ba", "aa"},
		},
		{
			name:   "alternation of stars is not star of alternation",
			expr:   "a*|b*",
			accept: []string{"", "a", "aaa", "b", "bb"},
			reject: []string{"ab", "ba"},
		},
		{
			name:   "star binds tighter than concatenation",
			expr:   "ab*",
			accept: []string{"a", "ab", "abbb"},
			reject: []string{"", "abab", "b"},
		},
		{
			name:   "concatenation binds tighter than alternation",
			expr:   "ab|cd",
			accept: []string{"ab", "cd"},
			reject: []string{"abd", "acd", "ad", "a"},
		},
		{
			name:   "three alternatives",
			expr:   "a|b|c",
			accept: []string{"a", "b", "c"},
			reject: []string{"", "ab", "d"},
		},
		{
			name:   "nested groups",
			expr:   "((a)(b))",
			accept: []string{"ab"},
			reject: []string{"a", "b", ""},
		},
		{
			name:   "multibyte symbols",
			expr:   "λ(μ|ν)*",
			accept: []string{"λ", "λμ", "λνμν"},
			reject: []string{"", "μ", "λλ"},
		},
		{
			name:   "whitespace is a literal",
			expr:   "a b",
			accept: []string{"a b"},
			reject: []string{"ab", "a  b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := Parse(tc.expr)
			if !assert.NoError(err) {
				return
			}
			assert.NoError(nfa.Validate())

			for _, s := range tc.accept {
				assert.True(nfa.Accepts(s), "should accept %q", s)
			}
			for _, s := range tc.reject {
				assert.False(nfa.Accepts(s), "should reject %q", s)
			}
		})
	}
}

func Test_Parse_GroupingIsNotConflated(t *testing.T) {
	assert := assert.New(t)

	grouped := MustParse("(a|b)*")
	split := MustParse("a*|b*")

	assert.True(grouped.Accepts("ab"))
	assert.False(split.Accepts("ab"))
}

func Test_Parse_EmptyTerm(t *testing.T) {
	testCases := []struct {
		name        string
		expr        string
		expectCount int
		accept      []string
		reject      []string
	}{
		{
			name:        "empty expression",
			expr:        "",
			expectCount: 1,
			accept:      []string{""},
			reject:      []string{"a"},
		},
		{
			name:        "empty right alternative",
			expr:        "a|",
			expectCount: 5,
			accept:      []string{"", "a"},
			reject:      []string{"aa"},
		},
		{
			name:        "empty left alternative",
			expr:        "|a",
			expectCount: 5,
			accept:      []string{"", "a"},
			reject:      []string{"aa"},
		},
		{
			name:        "empty group",
			expr:        "()",
			expectCount: 1,
			accept:      []string{""},
			reject:      []string{"a"},
		},
		{
			name:        "empty group in concatenation",
			expr:        "a()b",
			expectCount: 5,
			accept:      []string{"ab"},
			reject:      []string{"a", "b", ""},
		},
		{
			name:        "starred empty group",
			expr:        "()*",
			expectCount: 3,
			accept:      []string{""},
			reject:      []string{"a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := Parse(tc.expr)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectCount, nfa.States().Len())
			for _, s := range tc.accept {
				assert.True(nfa.Accepts(s), "should accept %q", s)
			}
			for _, s := range tc.reject {
				assert.False(nfa.Accepts(s), "should reject %q", s)
			}
		})
	}
}

func Test_Parse_RepeatedStar(t *testing.T) {
	assert := assert.New(t)

	once := MustParse("a*")
	twice := MustParse("a**")

	// each star wraps structurally
	assert.Equal(4, once.States().Len())
	assert.Equal(6, twice.States().Len())
	assert.Equal(4, twice.MustStart())
	assert.Equal([]int{5}, twice.FinalStates().Elements())

	for _, s := range []string{"", "a", "aa", "aaaa"} {
		assert.True(twice.Accepts(s), "should accept %q", s)
		assert.Equal(once.Accepts(s), twice.Accepts(s))
	}
	assert.False(twice.Accepts("b"))
}

func Test_Parse_Numbering(t *testing.T) {
	eps := automaton.Epsilon

	testCases := []struct {
		name        string
		expr        string
		expectStart int
		expectFinal []int
		expectTrans []automaton.Transition
	}{
		{
			name:        "concatenation",
			expr:        "ab",
			expectStart: 0,
			expectFinal: []int{3},
			expectTrans: []automaton.Transition{
				{From: 0, Input: "a", To: 1},
				{From: 1, Input: eps, To: 2},
				{From: 2, Input: "b", To: 3},
			},
		},
		{
			name:        "alternation",
			expr:        "a|b",
			expectStart: 4,
			expectFinal: []int{5},
			expectTrans: []automaton.Transition{
				{From: 0, Input: "a", To: 1},
				{From: 1, Input: eps, To: 5},
				{From: 2, Input: "b", To: 3},
				{From: 3, Input: eps, To: 5},
				{From: 4, Input: eps, To: 2},
				{From: 4, Input: eps, To: 0},
			},
		},
		{
			name:        "star",
			expr:        "a*",
			expectStart: 2,
			expectFinal: []int{3},
			expectTrans: []automaton.Transition{
				{From: 0, Input: "a", To: 1},
				{From: 1, Input: eps, To: 3},
				{From: 1, Input: eps, To: 0},
				{From: 2, Input: eps, To: 0},
				{From: 2, Input: eps, To: 3},
			},
		},
		{
			name:        "three alternatives nest to the right",
			expr:        "a|b|c",
			expectStart: 8,
			expectFinal: []int{9},
			expectTrans: []automaton.Transition{
				{From: 0, Input: "a", To: 1},
				{From: 1, Input: eps, To: 9},
				{From: 2, Input: "b", To: 3},
				{From: 3, Input: eps, To: 7},
				{From: 4, Input: "c", To: 5},
				{From: 5, Input: eps, To: 7},
				{From: 6, Input: eps, To: 4},
				{From: 6, Input: eps, To: 2},
				{From: 7, Input: eps, To: 9},
				{From: 8, Input: eps, To: 6},
				{From: 8, Input: eps, To: 0},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := Parse(tc.expr)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectStart, nfa.MustStart())
			assert.Equal(tc.expectFinal, nfa.FinalStates().Elements())
			assert.Equal(tc.expectTrans, nfa.Transitions())
		})
	}
}

func Test_Parse_UniqueIDs(t *testing.T) {
	testCases := []struct {
		expr        string
		expectCount int
	}{
		{expr: "a", expectCount: 2},
		{expr: "ab", expectCount: 4},
		{expr: "a|b", expectCount: 6},
		{expr: "(a|b)*", expectCount: 8},
		{expr: "a(b|c)*", expectCount: 10},
		{expr: "(ab|cd)*(e|f|g)", expectCount: 22},
		{expr: "((a|b)|(c|d))*", expectCount: 16},
	}

	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := Parse(tc.expr)
			if !assert.NoError(err) {
				return
			}

			ids := nfa.States().Elements()
			assert.Len(ids, tc.expectCount)

			// every id allocated during the parse is present exactly once
			for i := range ids {
				assert.Equal(i, ids[i])
			}
			assert.NoError(nfa.Validate())
		})
	}
}

func Test_Parse_IndependentParses(t *testing.T) {
	assert := assert.New(t)

	first := MustParse("a|b")
	second := MustParse("a|b")

	assert.Equal(first.States().Elements(), second.States().Elements())
	assert.Equal(first.Transitions(), second.Transitions())
}

func Test_Parse_SyntaxError(t *testing.T) {
	testCases := []struct {
		name           string
		expr           string
		expectPos      int
		expectExpected string
		expectFound    string
		expectAtEnd    bool
	}{
		{
			name:           "unterminated group",
			expr:           "(a",
			expectPos:      3,
			expectExpected: "')'",
			expectAtEnd:    true,
		},
		{
			name:           "unexpected close",
			expr:           ")",
			expectPos:      1,
			expectExpected: "end of expression",
			expectFound:    ")",
		},
		{
			name:           "close after symbol",
			expr:           "a)b",
			expectPos:      2,
			expectExpected: "end of expression",
			expectFound:    ")",
		},
		{
			name:           "leading star",
			expr:           "*a",
			expectPos:      1,
			expectExpected: "symbol or '('",
			expectFound:    "*",
		},
		{
			name:           "star after alternation",
			expr:           "a|*",
			expectPos:      3,
			expectExpected: "symbol or '('",
			expectFound:    "*",
		},
		{
			name:           "star opening a group",
			expr:           "(*)",
			expectPos:      2,
			expectExpected: "symbol or '('",
			expectFound:    "*",
		},
		{
			name:           "unbalanced nested group",
			expr:           "((a)",
			expectPos:      5,
			expectExpected: "')'",
			expectAtEnd:    true,
		},
		{
			name:           "position counts code points",
			expr:           "λμ)",
			expectPos:      3,
			expectExpected: "end of expression",
			expectFound:    ")",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := Parse(tc.expr)

			if !assert.Error(err) {
				return
			}

			var synErr SyntaxError
			if !assert.True(errors.As(err, &synErr), "error is not a SyntaxError") {
				return
			}

			assert.Equal(tc.expectPos, synErr.Position())
			assert.Equal(tc.expectExpected, synErr.Expected())
			assert.Equal(tc.expectFound, synErr.Found())
			assert.Equal(tc.expectAtEnd, synErr.AtEnd())
			assert.Equal(tc.expr, synErr.Source())

			// no partial automaton on failure
			assert.True(nfa.States().Empty())
		})
	}
}

func Test_SyntaxError_Messages(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("(a")

	var synErr SyntaxError
	if !assert.True(errors.As(err, &synErr)) {
		return
	}

	assert.Equal("syntax error: char 3: expected ')', found end of input", synErr.Error())
	assert.Equal("(a\n  ^", synErr.SourceLineWithCursor())
	assert.Equal("(a\n  ^\nsyntax error: char 3: expected ')', found end of input", synErr.FullMessage())

	_, err = Parse(")")
	assert.EqualError(err, "syntax error: char 1: expected end of expression, found ')'")
}

func Test_SyntaxError_SourceLineWithCursor(t *testing.T) {
	testCases := []struct {
		name   string
		expr   string
		expect string
	}{
		{name: "ascii", expr: "(a", expect: "(a\n  ^"},
		{name: "leading tab", expr: "\t(a", expect: "\t(a\n\t  ^"},
		{name: "error on second line", expr: "ab\n(c", expect: "(c\n  ^"},
		{name: "error on first line", expr: "a)\nb", expect: "a)\n ^"},
		{name: "wide rune", expr: "漢(a", expect: "漢(a\n    ^"},
		{name: "combining mark", expr: "e\u0301(a", expect: "e\u0301(a\n   ^"},
		{name: "end after newline", expr: "(a\n", expect: "\n^"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Parse(tc.expr)

			var synErr SyntaxError
			if !assert.True(errors.As(err, &synErr)) {
				return
			}
			assert.Equal(tc.expect, synErr.SourceLineWithCursor())
		})
	}
}

func Test_ParseWithOptions_MaxDepth(t *testing.T) {
	testCases := []struct {
		name      string
		expr      string
		maxDepth  int
		expectErr bool
		expectPos int
	}{
		{name: "within limit", expr: "((a))", maxDepth: 2},
		{name: "exceeds limit", expr: "(((a)))", maxDepth: 2, expectErr: true, expectPos: 3},
		{name: "siblings do not accumulate", expr: "(a)(b)(c)", maxDepth: 1},
		{name: "zero uses default", expr: "((((a))))", maxDepth: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseWithOptions(tc.expr, Options{MaxDepth: tc.maxDepth})

			if !tc.expectErr {
				assert.NoError(err)
				return
			}

			var synErr SyntaxError
			if !assert.True(errors.As(err, &synErr)) {
				return
			}
			assert.Equal(tc.expectPos, synErr.Position())
			assert.Contains(synErr.Error(), "nested deeper")
		})
	}
}

func Test_Parse_DeepNestingDefaultLimit(t *testing.T) {
	assert := assert.New(t)

	deep := ""
	for i := 0; i < DefaultMaxDepth+1; i++ {
		deep += "("
	}
	deep += "a"
	for i := 0; i < DefaultMaxDepth+1; i++ {
		deep += ")"
	}

	_, err := Parse(deep)
	assert.Error(err)

	var synErr SyntaxError
	assert.True(errors.As(err, &synErr))
}

func Test_Parse_LongInputs(t *testing.T) {
	const n = 50000

	testCases := []struct {
		name         string
		expr         string
		expectStates int
		accept       string
		reject       string
	}{
		{
			name:         "alternation",
			expr:         "a" + strings.Repeat("|a", n),
			expectStates: 4*n + 2,
			accept:       "a",
			reject:       "aa",
		},
		{
			name:         "concatenation",
			expr:         strings.Repeat("a", n),
			expectStates: 2 * n,
			accept:       strings.Repeat("a", n),
			reject:       strings.Repeat("a", n-1),
		},
		{
			name:         "starred concatenation",
			expr:         strings.Repeat("a*", n),
			expectStates: 4 * n,
			accept:       "aaaa",
			reject:       "b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := Parse(tc.expr)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectStates, nfa.States().Len())
			assert.Equal(1, nfa.FinalStates().Len())
			assert.NoError(nfa.Validate())
			assert.True(nfa.Accepts(tc.accept))
			assert.False(nfa.Accepts(tc.reject))
		})
	}
}

func Test_ParseWithOptions_Normalize(t *testing.T) {
	decomposed := "e\u0301"

	testCases := []struct {
		name           string
		normalize      bool
		expectAlphabet []string
		expectStates   int
	}{
		{
			name:           "normalized",
			normalize:      true,
			expectAlphabet: []string{"\u00e9"},
			expectStates:   2,
		},
		{
			name:           "raw",
			normalize:      false,
			expectAlphabet: []string{"e", "\u0301"},
			expectStates:   4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := ParseWithOptions(decomposed, Options{Normalize: tc.normalize})
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectAlphabet, nfa.Alphabet().Elements())
			assert.Equal(tc.expectStates, nfa.States().Len())
		})
	}
}

func Test_MustParse_panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(") })
}
