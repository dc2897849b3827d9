// Package renfa contains a CLI-driven engine that reads regular expressions
// and shell commands from an input stream, compiles each expression to an NFA,
// and prints the result until the user quits.
package renfa

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/renfa/automaton"
	"github.com/dekarrin/renfa/internal/cmderr"
	"github.com/dekarrin/renfa/internal/command"
	"github.com/dekarrin/renfa/internal/config"
	"github.com/dekarrin/renfa/internal/export"
	"github.com/dekarrin/renfa/internal/input"
	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/renfa/regex"
	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
)

// Engine contains the things needed to run an interactive shell attached to
// an input stream and an output stream.
type Engine struct {
	in          command.Reader
	out         *bufio.Writer
	db          store.Store
	forceDirect bool
	running     bool

	parseOpts regex.Options
	format    export.Format
	width     int
	renumber  bool

	// most recently compiled expression; nil until one succeeds.
	last *compiled
}

type compiled struct {
	expr string
	name string
	nfa  automaton.NFA
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream, and connect to the store cfg names.
// Defaults are filled in on cfg before use.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, cfg config.Config, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
		parseOpts:   cfg.Parse.Options(),
		format:      cfg.Output.Format,
		width:       cfg.Output.Width,
		renumber:    cfg.Output.Renumber,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	var err error
	if useReadline {
		eng.in, err = input.NewInteractiveReader(cfg.REPL.Prompt, cfg.REPL.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	eng.db, err = cfg.DB.Connect()
	if err != nil {
		eng.in.Close()
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode and the store.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}

	err = eng.db.Close()
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading lines from the input stream and executing them
// until the QUIT command is received or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "renfa: regular expression to NFA\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "================================\n"
	introMsg += "Type an expression to compile it, or :help for commands.\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("get user input: %w", err)
		}

		output, err := eng.Execute(line)
		if err != nil {
			output = eng.errorMessage(err)
		}
		if output != "" {
			if err := eng.write(output + "\n"); err != nil {
				return err
			}
		}
	}

	return eng.write("Goodbye\n")
}

// Execute runs a single line of shell input and returns what should be shown
// for it. Lines starting with command.Prefix are shell commands; every other
// line is a regular expression to compile. The returned error is suitable for
// showing to the user.
func (eng *Engine) Execute(line string) (string, error) {
	if command.IsCommand(line) {
		cmd, err := command.Parse(line)
		if err != nil {
			return "", err
		}
		return eng.executeCommand(cmd)
	}

	return eng.Compile(line)
}

// Compile compiles expr, records it as the most recent expression, and returns
// its NFA rendered in the current output format.
func (eng *Engine) Compile(expr string) (string, error) {
	nfa, err := regex.ParseWithOptions(expr, eng.parseOpts)
	if err != nil {
		return "", err
	}

	eng.last = &compiled{expr: expr, nfa: nfa}
	return eng.render(*eng.last)
}

func (eng *Engine) executeCommand(cmd command.Command) (string, error) {
	ctx := context.Background()

	switch cmd.Name {
	case command.Quit:
		eng.running = false
		return "", nil
	case command.Help:
		return eng.help(cmd.Arg(0))
	case command.Format:
		if len(cmd.Args) == 0 {
			return fmt.Sprintf("Output format is %s", eng.format), nil
		}
		f, err := export.ParseFormat(cmd.Arg(0))
		if err != nil {
			return "", cmderr.New(err.Error(), "")
		}
		eng.format = f
		return fmt.Sprintf("Output format set to %s", f), nil
	case command.Renumber:
		if len(cmd.Args) == 0 {
			return fmt.Sprintf("Renumbering is %s", onOff(eng.renumber)), nil
		}
		on, err := command.ParseSwitch(cmd.Arg(0))
		if err != nil {
			return "", err
		}
		eng.renumber = on
		return fmt.Sprintf("Renumbering turned %s", onOff(on)), nil
	case command.Show:
		if eng.last == nil {
			return "", cmderr.New("Nothing has been compiled yet", "")
		}
		return eng.render(*eng.last)
	case command.Save:
		return eng.save(ctx, cmd.Arg(0))
	case command.Load:
		e, err := eng.lookup(ctx, cmd.Arg(0))
		if err != nil {
			return "", err
		}
		eng.last = &compiled{expr: e.Regex, name: e.Name, nfa: e.NFA}
		return eng.render(*eng.last)
	case command.List:
		return eng.list(ctx)
	case command.Delete:
		e, err := eng.lookup(ctx, cmd.Arg(0))
		if err != nil {
			return "", err
		}
		if _, err := eng.db.Expressions().Delete(ctx, e.ID); err != nil {
			return "", cmderr.Wrapf(err, "Could not delete %q", e.Name)
		}
		return fmt.Sprintf("Deleted %q", e.Name), nil
	default:
		return "", cmderr.Newf("%s is not implemented", cmd.Name)
	}
}

func (eng *Engine) save(ctx context.Context, name string) (string, error) {
	if eng.last == nil {
		return "", cmderr.New("Nothing has been compiled yet; type an expression first", "")
	}

	e, err := eng.db.Expressions().Create(ctx, store.Expression{
		Name:  name,
		Regex: eng.last.expr,
		NFA:   eng.last.nfa,
	})
	if err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return "", cmderr.Wrapf(err, "An expression named %q is already saved", name)
		}
		return "", cmderr.Wrapf(err, "Could not save %q", name)
	}

	eng.last.name = e.Name
	return fmt.Sprintf("Saved %q as %s", e.Name, e.ID), nil
}

// lookup finds a saved expression by ID if ref is a UUID, otherwise by name.
func (eng *Engine) lookup(ctx context.Context, ref string) (store.Expression, error) {
	var e store.Expression
	var err error

	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		e, err = eng.db.Expressions().GetByID(ctx, id)
	} else {
		e, err = eng.db.Expressions().GetByName(ctx, ref)
	}

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e, cmderr.Wrapf(err, "There is no saved expression %q", ref)
		}
		return e, cmderr.Wrapf(err, "Could not look up %q", ref)
	}
	return e, nil
}

func (eng *Engine) list(ctx context.Context) (string, error) {
	all, err := eng.db.Expressions().GetAll(ctx)
	if err != nil {
		return "", cmderr.Wrapf(err, "Could not list saved expressions")
	}

	if len(all) == 0 {
		return "No expressions are saved", nil
	}

	data := [][]string{{"Name", "Expression", "States", "ID"}}
	for _, e := range all {
		data = append(data, []string{e.Name, e.Regex, strconv.Itoa(e.NFA.States().Len()), e.ID.String()})
	}

	return export.HeaderTable(data, eng.width), nil
}

func (eng *Engine) help(topic string) (string, error) {
	if topic != "" {
		usage, desc, ok := command.Usage(topic)
		if !ok {
			return "", cmderr.Newf("There is no command called %q", topic)
		}
		return usage + "\n" + rosed.Edit(desc).Wrap(eng.width).String(), nil
	}

	var sb strings.Builder
	sb.WriteString("Type a regular expression to compile it to an NFA. Expressions use\n")
	sb.WriteString("literal symbols, '|' for alternation, '*' for repetition, and '(' ')' for\n")
	sb.WriteString("grouping.\n\nCommands:\n")

	for _, name := range command.Names() {
		usage, desc, _ := command.Usage(name)
		sb.WriteString("  " + usage + "\n")
		for _, descLine := range strings.Split(rosed.Edit(desc).Wrap(eng.width-6).String(), "\n") {
			sb.WriteString("      " + descLine + "\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func (eng *Engine) render(c compiled) (string, error) {
	nfa := c.nfa
	if eng.renumber {
		nfa = nfa.Copy()
		nfa.NumberStates()
	}

	funcName := "NFA"
	if c.name != "" {
		funcName = exportedIdentifier(c.name)
	}

	out, err := export.RenderString(nfa, eng.format, export.Options{
		Width:    eng.width,
		Package:  "nfas",
		FuncName: funcName,
		Expr:     c.expr,
	})
	if err != nil {
		return "", cmderr.Wrapf(err, "Could not render NFA: %s", err.Error())
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// errorMessage gives the text to show the user for err.
func (eng *Engine) errorMessage(err error) string {
	var synErr regex.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.SourceLineWithCursor() + "\n" + rosed.Edit(synErr.Error()).Wrap(eng.width).String()
	}

	consoleMessage := cmderr.ConsoleMessage(err)
	return rosed.Edit(consoleMessage).Wrap(eng.width).String()
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// exportedIdentifier converts a saved expression name into an exported Go
// identifier, dropping characters that cannot appear in one.
func exportedIdentifier(name string) string {
	var sb strings.Builder
	upperNext := true
	for _, ch := range name {
		isLetter := ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		if !isLetter && !isDigit {
			upperNext = true
			continue
		}
		if sb.Len() == 0 && isDigit {
			sb.WriteString("NFA")
		}
		if upperNext {
			sb.WriteString(strings.ToUpper(string(ch)))
			upperNext = false
		} else {
			sb.WriteRune(ch)
		}
	}
	if sb.Len() == 0 {
		return "NFA"
	}
	return sb.String()
}
