// Package export renders NFAs in the output formats supported by the shell and
// the server.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/renfa/automaton"
)

// Format is an output format for an NFA.
type Format int

const (
	FormatTable Format = iota
	FormatDOT
	FormatGo
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatDOT:
		return "dot"
	case FormatGo:
		return "go"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Formats returns all supported formats in the order they are listed to users.
func Formats() []Format {
	return []Format{FormatTable, FormatDOT, FormatGo, FormatText}
}

// ParseFormat gets the Format whose name is s. Case is ignored.
func ParseFormat(s string) (Format, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats() {
		if f.String() == lower {
			return f, nil
		}
	}

	names := make([]string, len(Formats()))
	for i, f := range Formats() {
		names[i] = f.String()
	}
	return FormatTable, fmt.Errorf("unknown format %q; must be one of %s", s, strings.Join(names, ", "))
}

// Options controls rendering for formats that have settings.
type Options struct {
	// Width is the maximum width of a table. Zero means DefaultWidth.
	Width int

	// Package and FuncName name the generated Go code. Empty values default
	// to "nfas" and "NFA".
	Package  string
	FuncName string

	// Expr is the source expression. It is only used in comments.
	Expr string
}

// DefaultWidth is the table width used when none is given.
const DefaultWidth = 80

// Render writes nfa to w in format f.
func Render(w io.Writer, nfa automaton.NFA, f Format, opts Options) error {
	switch f {
	case FormatTable:
		width := opts.Width
		if width <= 0 {
			width = DefaultWidth
		}
		_, err := io.WriteString(w, Table(nfa, width)+"\n")
		return err
	case FormatDOT:
		return DOT(w, nfa)
	case FormatGo:
		return GoSource(w, nfa, opts)
	case FormatText:
		_, err := io.WriteString(w, Text(nfa)+"\n")
		return err
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

// RenderString is Render into a string.
func RenderString(nfa automaton.NFA, f Format, opts Options) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, nfa, f, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Text gives the debug representation of nfa.
func Text(nfa automaton.NFA) string {
	return nfa.String()
}
