// Package command defines the shell commands of the renfa interactive shell
// and handles parsing them from input lines.
package command

import (
	"strings"

	"github.com/dekarrin/renfa/internal/cmderr"
)

// Prefix starts every shell command. Any line that does not start with it is
// a regular expression.
const Prefix = ":"

// Canonical command names.
const (
	Help     = "HELP"
	Quit     = "QUIT"
	Format   = "FORMAT"
	Renumber = "RENUMBER"
	Save     = "SAVE"
	Load     = "LOAD"
	List     = "LIST"
	Delete   = "DELETE"
	Show     = "SHOW"
)

// Command is a valid command received from the shell.
type Command struct {

	// Name is the canonical name of the command being invoked, such as
	// "FORMAT" or "SAVE". Aliases such as ":q" for ":quit" are resolved before
	// a Command is created.
	Name string

	// Args are the whitespace-separated arguments after the name, with their
	// case preserved.
	Args []string
}

// Arg returns the i-th argument, or the empty string if there are not that
// many.
func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// Reader is a type that can be used for getting lines of shell input.
type Reader interface {
	// ReadLine reads a single line of input. It will block until one is
	// ready. When error is io.EOF, string will always be empty.
	ReadLine() (string, error)

	// AllowBlank sets whether blank lines are returned rather than skipped.
	AllowBlank(allow bool)

	// Close performs any operations required to clean the resources created by
	// the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}

type spec struct {
	usage   string
	desc    string
	minArgs int
	maxArgs int
}

var specs = map[string]spec{
	Help:     {usage: ":help [COMMAND]", desc: "Show the list of commands, or help on one command.", maxArgs: 1},
	Quit:     {usage: ":quit", desc: "Exit the shell."},
	Format:   {usage: ":format [table|dot|go|text]", desc: "Show or set how compiled NFAs are printed.", maxArgs: 1},
	Renumber: {usage: ":renumber [on|off]", desc: "Show or set whether printed NFAs are renumbered from 0 with the start state first.", maxArgs: 1},
	Save:     {usage: ":save NAME", desc: "Save the most recently compiled expression under NAME.", minArgs: 1, maxArgs: 1},
	Load:     {usage: ":load NAME|ID", desc: "Load a saved expression and print its NFA.", minArgs: 1, maxArgs: 1},
	List:     {usage: ":list", desc: "List all saved expressions."},
	Delete:   {usage: ":delete NAME|ID", desc: "Delete a saved expression.", minArgs: 1, maxArgs: 1},
	Show:     {usage: ":show", desc: "Print the most recently compiled NFA again."},
}

// Aliases maps shorthand names to their canonical forms. They are all
// uppercase.
var Aliases = map[string]string{
	"H":      Help,
	"?":      Help,
	"Q":      Quit,
	"EXIT":   Quit,
	"BYE":    Quit,
	"F":      Format,
	"FMT":    Format,
	"S":      Save,
	"L":      Load,
	"LS":     List,
	"RM":     Delete,
	"DEL":    Delete,
	"P":      Show,
	"PRINT":  Show,
	"NUMBER": Renumber,
}

// Names returns the canonical name of every command in the order they are
// listed in help.
func Names() []string {
	return []string{Help, Quit, Format, Renumber, Show, Save, Load, List, Delete}
}

// Usage returns the usage line and description of the named command. The name
// may be an alias. The returned bool is false if there is no such command.
func Usage(name string) (usage string, desc string, ok bool) {
	name = strings.ToUpper(strings.TrimPrefix(name, Prefix))
	if canon, isAlias := Aliases[name]; isAlias {
		name = canon
	}
	s, ok := specs[name]
	return s.usage, s.desc, ok
}

// IsCommand returns whether line is a shell command as opposed to an
// expression.
func IsCommand(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Prefix)
}

// Parse parses a command from the given line, which must start with Prefix.
// If it cannot, a non-nil error is returned that has a console message
// suitable for showing to the user.
func Parse(line string) (Command, error) {
	var cmd Command

	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, Prefix) {
		return cmd, cmderr.Newf("Commands must start with %q", Prefix)
	}

	tokens := strings.Fields(strings.TrimPrefix(line, Prefix))
	if len(tokens) < 1 {
		return cmd, cmderr.Newf("Type a command name after %q; try :help", Prefix)
	}

	name := strings.ToUpper(tokens[0])
	if canon, ok := Aliases[name]; ok {
		name = canon
	}

	s, ok := specs[name]
	if !ok {
		return cmd, cmderr.Newf("There is no command called %q; try :help", tokens[0])
	}

	args := tokens[1:]
	if len(args) < s.minArgs {
		return cmd, cmderr.Newf("Not enough arguments; usage: %s", s.usage)
	}
	if len(args) > s.maxArgs {
		return cmd, cmderr.Newf("Too many arguments; usage: %s", s.usage)
	}

	cmd.Name = name
	cmd.Args = args

	return cmd, nil
}

// ParseSwitch parses an on/off style argument.
func ParseSwitch(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "ON", "TRUE", "YES", "1":
		return true, nil
	case "OFF", "FALSE", "NO", "0":
		return false, nil
	default:
		return false, cmderr.Newf("%q is not on or off", s)
	}
}
