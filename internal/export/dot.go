package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/renfa/automaton"
)

// DOT writes nfa to w as a Graphviz digraph. Final states are drawn as double
// circles, ε-transitions are labeled "ε", and the start state is pointed to by
// an unlabeled edge from an invisible node.
func DOT(w io.Writer, nfa automaton.NFA) error {
	_, err := io.WriteString(w, DOTString(nfa))
	return err
}

// DOTString is DOT into a string.
func DOTString(nfa automaton.NFA) string {
	var sb strings.Builder

	sb.WriteString("digraph NFA {\n")
	sb.WriteString("    rankdir=LR;\n")

	if start, ok := nfa.Start(); ok {
		sb.WriteString("    _start [shape=point];\n")
		fmt.Fprintf(&sb, "    _start -> n%d;\n", start)
	}

	for _, id := range nfa.States().Elements() {
		shape := "circle"
		if nfa.IsFinal(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&sb, "    n%d [shape=%s, label=\"%d\"];\n", id, shape, id)
	}

	for _, t := range nfa.Transitions() {
		label := t.Input
		if t.IsEpsilon() {
			label = "ε"
		}
		fmt.Fprintf(&sb, "    n%d -> n%d [label=%s];\n", t.From, t.To, strconv.Quote(label))
	}

	sb.WriteString("}\n")

	return sb.String()
}
