// Package regex converts regular expressions into equivalent nondeterministic
// finite automata using a recursive-descent parser that drives Thompson's
// construction.
//
// The accepted language has literal symbols, concatenation, alternation with
// '|', Kleene star with '*', and grouping with parentheses. Any code point
// other than the four metacharacters is a literal symbol. There is no escape
// mechanism.
//
// The grammar, from lowest to highest precedence:
//
//	Regex  := Term ('|' Regex)?
//	Term   := Factor*
//	Factor := Base '*'*
//	Base   := Symbol | '(' Regex ')'
//
// An empty Term, such as the right side of "a|" or the inside of "()", denotes
// the language containing only the empty string.
package regex

import (
	"fmt"

	"github.com/dekarrin/renfa/automaton"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxDepth is the maximum nesting of parenthesized groups allowed when
// no other limit is given in Options.
const DefaultMaxDepth = 1000

// Options modifies how an expression is parsed. The zero value gives the
// defaults.
type Options struct {
	// MaxDepth is the maximum number of parenthesized groups that may be open
	// at once. If zero or less, DefaultMaxDepth is used.
	MaxDepth int

	// Normalize applies Unicode NFC normalization to the expression before it
	// is parsed, so that precomposed and decomposed spellings of the same
	// character are read as the same literal symbol.
	Normalize bool
}

// Parse converts the regular expression expr into an NFA that accepts exactly
// the language expr denotes. If expr is not a valid expression, the returned
// error will be a SyntaxError and the returned NFA is the zero value.
//
// State IDs in the returned NFA are unique and are allocated starting from 0
// in the order the construction creates them.
func Parse(expr string) (automaton.NFA, error) {
	return ParseWithOptions(expr, Options{})
}

// ParseWithOptions is Parse with control over the nesting limit and input
// normalization.
func ParseWithOptions(expr string, opts Options) (automaton.NFA, error) {
	if opts.Normalize {
		expr = norm.NFC.String(expr)
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	p := &parser{
		expr:     expr,
		input:    []rune(expr),
		maxDepth: maxDepth,
		ids:      &IDAllocator{},
	}

	nfa, err := p.regex()
	if err != nil {
		return automaton.NFA{}, err
	}

	if !p.atEnd() {
		// only a ')' can be left over; every other character is consumed by
		// some rule.
		return automaton.NFA{}, p.errExpected("end of expression")
	}

	return nfa, nil
}

// MustParse is like Parse but panics if expr cannot be parsed.
func MustParse(expr string) automaton.NFA {
	nfa, err := Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q): %s", expr, err.Error()))
	}
	return nfa
}

// parser holds the cursor for a single top-level parse.
type parser struct {
	expr     string
	input    []rune
	pos      int
	depth    int
	maxDepth int
	ids      *IDAllocator
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

// peek returns the next unconsumed character without consuming it. The
// returned bool is false if input is exhausted.
func (p *parser) peek() (rune, bool) {
	if p.atEnd() {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) next() rune {
	ch := p.input[p.pos]
	p.pos++
	return ch
}

func (p *parser) errExpected(expected string) SyntaxError {
	se := SyntaxError{
		expr:     p.expr,
		pos:      p.pos + 1,
		expected: expected,
	}
	if ch, ok := p.peek(); ok {
		se.found = string(ch)
	}
	return se
}

// regex parses Term ('|' Regex)?. Alternatives are gathered in a loop and then
// folded from the right as union(remainder, term), which gives the same
// automaton and the same state numbering as recursing on the remainder.
func (p *parser) regex() (automaton.NFA, error) {
	var terms []automaton.NFA

	for {
		t, err := p.term()
		if err != nil {
			return automaton.NFA{}, err
		}
		terms = append(terms, t)

		if ch, ok := p.peek(); !ok || ch != '|' {
			break
		}
		p.next()
	}

	result := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		result = Union(p.ids, &result, &terms[i])
	}

	return result, nil
}

// term parses Factor* and concatenates the results left to right.
func (p *parser) term() (automaton.NFA, error) {
	var result automaton.NFA
	var haveFactor bool

	for {
		ch, ok := p.peek()
		if !ok || ch == ')' || ch == '|' {
			break
		}

		f, err := p.factor()
		if err != nil {
			return automaton.NFA{}, err
		}

		if haveFactor {
			result = Concat(&result, &f)
		} else {
			result = f
			haveFactor = true
		}
	}

	if !haveFactor {
		return Empty(p.ids), nil
	}

	return result, nil
}

// factor parses Base '*'*, wrapping the base in one star per '*'.
func (p *parser) factor() (automaton.NFA, error) {
	result, err := p.base()
	if err != nil {
		return automaton.NFA{}, err
	}

	for {
		ch, ok := p.peek()
		if !ok || ch != '*' {
			break
		}
		p.next()
		result = Star(p.ids, &result)
	}

	return result, nil
}

// base parses Symbol | '(' Regex ')'.
func (p *parser) base() (automaton.NFA, error) {
	ch, ok := p.peek()
	if !ok || ch == '*' || ch == ')' || ch == '|' {
		return automaton.NFA{}, p.errExpected("symbol or '('")
	}

	if ch != '(' {
		p.next()
		return Atom(p.ids, string(ch)), nil
	}

	if p.depth >= p.maxDepth {
		return automaton.NFA{}, SyntaxError{
			expr:    p.expr,
			pos:     p.pos + 1,
			message: fmt.Sprintf("groups nested deeper than the maximum of %d", p.maxDepth),
		}
	}

	p.next()
	p.depth++

	inner, err := p.regex()
	if err != nil {
		return automaton.NFA{}, err
	}

	if ch, ok := p.peek(); !ok || ch != ')' {
		return automaton.NFA{}, p.errExpected("')'")
	}
	p.next()
	p.depth--

	return inner, nil
}
