package export

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/renfa/automaton"
	"github.com/dekarrin/rosed"
)

// Table returns a transition table for nfa no wider than width. There is one
// row per state and one column per alphabet symbol, plus a final column for
// ε-transitions. The start state is marked with "->" and final states with
// "*".
func Table(nfa automaton.NFA, width int) string {
	symbols := nfa.Alphabet().Elements()

	header := []string{"State"}
	header = append(header, symbols...)
	header = append(header, "ε")

	data := [][]string{header}

	start, hasStart := nfa.Start()
	for _, id := range nfa.States().Elements() {
		label := strconv.Itoa(id)
		if nfa.IsFinal(id) {
			label = "*" + label
		}
		if hasStart && id == start {
			label = "->" + label
		}

		row := []string{label}
		for _, sym := range symbols {
			row = append(row, destCell(nfa, id, sym))
		}
		row = append(row, destCell(nfa, id, automaton.Epsilon))

		data = append(data, row)
	}

	return HeaderTable(data, width)
}

// HeaderTable lays out rows as a table no wider than width, with the first row
// as a header separated from the rest by a rule. Unlike rosed's header mode,
// header text is kept exactly as given.
func HeaderTable(rows [][]string, width int) string {
	tableOpts := rosed.Options{
		NoTrailingLineSeparators: true,
	}

	laidOut := rosed.Edit("").
		InsertTableOpts(0, rows, width, tableOpts).
		String()

	lines := strings.SplitN(laidOut, "\n", 2)

	// rosed grows the table past width when the content does not fit
	ruleWidth := width
	if n := utf8.RuneCountInString(lines[0]); n > ruleWidth {
		ruleWidth = n
	}
	rule := strings.Repeat("-", ruleWidth)
	if len(lines) < 2 {
		return lines[0] + "\n" + rule
	}
	return lines[0] + "\n" + rule + "\n" + lines[1]
}

func destCell(nfa automaton.NFA, state int, input string) string {
	dests := nfa.Next(state, input)
	if dests.Empty() {
		return "-"
	}
	return dests.String()
}
