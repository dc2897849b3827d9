/*
Renfa compiles regular expressions into NFAs using Thompson's construction.

With no -e flag it starts an interactive shell that reads expressions and shell
commands from stdin and prints each compiled NFA to stdout until the ":quit"
command is input or input ends.

Usage:

	renfa [flags]
	renfa [flags] -e EXPR

The flags are:

	-v, --version
		Give the current version of renfa and then exit.

	-c, --config FILE
		Load settings from the given TOML config file. Flags given on the
		command line override settings in the file.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

	-f, --format FORMAT
		Print NFAs in the given format. Must be one of table, dot, go, or text.
		Defaults to table.

	-e, --expr EXPR
		Compile EXPR, print its NFA, and exit without starting the shell. The
		exit code is non-zero if EXPR is not a valid expression.

	--db DRIVER[:PARAMS]
		Use the given DB connection string for saved expressions. DRIVER must
		be one of inmem or sqlite. sqlite needs the path to the data directory
		such as sqlite:path/to/db_dir. Defaults to inmem.

Once the shell has started, type ":help" for an explanation of the commands.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dekarrin/renfa"
	"github.com/dekarrin/renfa/internal/config"
	"github.com/dekarrin/renfa/internal/export"
	"github.com/dekarrin/renfa/internal/version"
	"github.com/dekarrin/renfa/regex"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitShellError indicates an unsuccessful program execution due to a
	// problem while the shell was running.
	ExitShellError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError

	// ExitSyntaxError indicates that the expression given with -e could not
	// be compiled.
	ExitSyntaxError
)

var (
	returnCode int = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of renfa and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagFormat  = pflag.StringP("format", "f", "", "Print NFAs in the given format (table, dot, go, or text).")
	flagExpr    = pflag.StringP("expr", "e", "", "Compile the given expression, print it, and exit.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string for saved expressions.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if pflag.Lookup("expr").Changed {
		returnCode = compileOnce(*flagExpr, cfg)
		return
	}

	eng, initErr := renfa.New(os.Stdin, os.Stdout, cfg, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err = eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitShellError
		return
	}
}

// loadConfig reads the config file if one was given and applies the flags on
// top of it.
func loadConfig() (config.Config, error) {
	var cfg config.Config

	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}

	if pflag.Lookup("format").Changed {
		f, err := export.ParseFormat(*flagFormat)
		if err != nil {
			return cfg, fmt.Errorf("--format: %w", err)
		}
		cfg.Output.Format = f
	}

	if pflag.Lookup("db").Changed {
		db, err := config.ParseDBConnString(*flagDB)
		if err != nil {
			return cfg, fmt.Errorf("--db: %w", err)
		}
		cfg.DB = db
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// compileOnce compiles expr and prints its NFA to stdout. It returns the exit
// code to use.
func compileOnce(expr string, cfg config.Config) int {
	nfa, err := regex.ParseWithOptions(expr, cfg.Parse.Options())
	if err != nil {
		var synErr regex.SyntaxError
		if errors.As(err, &synErr) {
			fmt.Fprintf(os.Stderr, "%s\n", synErr.FullMessage())
			return ExitSyntaxError
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitSyntaxError
	}

	if cfg.Output.Renumber {
		nfa.NumberStates()
	}

	err = export.Render(os.Stdout, nfa, cfg.Output.Format, export.Options{
		Width: cfg.Output.Width,
		Expr:  expr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitShellError
	}

	return ExitSuccess
}
