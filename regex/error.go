package regex

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// file error.go contains the errors generated while parsing a regular
// expression.

// SyntaxError is returned when the input does not match what the grammar
// requires at the point it was read. It is the only kind of error that parsing
// produces.
type SyntaxError struct {
	expr string

	// position of the offending character, 1-indexed and counted in code
	// points. Equal to the length of expr plus one when input ran out.
	pos int

	expected string

	// empty if the end of input was reached.
	found string

	// set instead of expected/found for errors that are not a mismatch, such
	// as exceeding the nesting limit.
	message string
}

func (se SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: char %d: %s", se.pos, se.Message())
}

// Message returns the description of the problem without the position prefix.
func (se SyntaxError) Message() string {
	if se.message != "" {
		return se.message
	}
	return fmt.Sprintf("expected %s, found %s", se.expected, se.FoundDescription())
}

// Expected returns a description of what the parser required at the position
// of the error, such as "')'" or "end of expression". It is empty for errors
// that are not a mismatch.
func (se SyntaxError) Expected() string {
	return se.expected
}

// Found returns the character that was actually read, or the empty string if
// input was exhausted.
func (se SyntaxError) Found() string {
	return se.found
}

// FoundDescription returns Found quoted, or "end of input" if input was
// exhausted.
func (se SyntaxError) FoundDescription() string {
	if se.found == "" {
		return "end of input"
	}
	return quoteSymbol(se.found)
}

// AtEnd returns whether the error was caused by running out of input.
func (se SyntaxError) AtEnd() bool {
	return se.found == "" && se.message == ""
}

// Position returns the character position that the error occured on.
// Positions are 1-indexed and count code points, not bytes.
func (se SyntaxError) Position() int {
	return se.pos
}

// Source returns the full expression that was being parsed.
func (se SyntaxError) Source() string {
	return se.expr
}

// FullMessage shows the complete message of the error string along with the
// offending expression and a cursor to the problem position.
func (se SyntaxError) FullMessage() string {
	return se.SourceLineWithCursor() + "\n" + se.Error()
}

// SourceLineWithCursor returns the line of the expression that the error is on
// and directly under it a cursor showing where the error occured. The cursor
// is lined up for display in a terminal, so tabs before it are repeated and
// wide characters count as two columns.
func (se SyntaxError) SourceLineWithCursor() string {
	runes := []rune(se.expr)
	errIdx := se.pos - 1
	if errIdx > len(runes) {
		errIdx = len(runes)
	}

	lineStart := 0
	for i := 0; i < errIdx; i++ {
		if runes[i] == '\n' {
			lineStart = i + 1
		}
	}
	lineEnd := lineStart
	for lineEnd < len(runes) && runes[lineEnd] != '\n' {
		lineEnd++
	}

	var cursor strings.Builder
	for _, r := range runes[lineStart:errIdx] {
		cursor.WriteString(cursorPadding(r))
	}
	cursor.WriteRune('^')

	return string(runes[lineStart:lineEnd]) + "\n" + cursor.String()
}

// cursorPadding gives what to write under r to keep the cursor in its column.
func cursorPadding(r rune) string {
	if r == '\t' {
		return "\t"
	}
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return ""
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return "  "
	default:
		return " "
	}
}

func quoteSymbol(s string) string {
	return "'" + s + "'"
}
