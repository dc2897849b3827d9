// Package config loads the TOML configuration file shared by the renfa shell
// and server.
//
// A config file looks like:
//
//	format = "RENFA"
//	type = "CONFIG"
//
//	[parse]
//	max_depth = 1000
//	normalize = false
//
//	[output]
//	format = "table"
//	width = 80
//	renumber = false
//
//	[repl]
//	prompt = "> "
//	history_file = ""
//
//	[server]
//	listen = "localhost:8080"
//
//	[store]
//	db = "inmem"
//
// The format and type keys are optional but must have the values shown if
// present. Every other key is optional and falls back to its default.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/renfa/internal/export"
	"github.com/dekarrin/renfa/regex"
)

const (
	FileFormat = "RENFA"
	FileType   = "CONFIG"

	DefaultPrompt = "> "
	DefaultListen = "localhost:8080"
	DefaultWidth  = 80
	MinWidth      = 20
)

// Config is the complete configuration for a renfa program.
type Config struct {
	Parse  Parse
	Output Output
	REPL   REPL
	Server Server
	DB     Database
}

// Parse holds options for compiling expressions.
type Parse struct {
	MaxDepth  int
	Normalize bool
}

// Options gives the regex options p describes.
func (p Parse) Options() regex.Options {
	return regex.Options{
		MaxDepth:  p.MaxDepth,
		Normalize: p.Normalize,
	}
}

// Output holds options for displaying compiled NFAs.
type Output struct {
	Format   export.Format
	Width    int
	Renumber bool
}

// REPL holds options for the interactive shell.
type REPL struct {
	Prompt      string
	HistoryFile string
}

// Server holds options for the HTTP server.
type Server struct {
	Listen string
}

// FillDefaults returns a new Config identitical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.Parse.MaxDepth == 0 {
		newCFG.Parse.MaxDepth = regex.DefaultMaxDepth
	}
	if newCFG.Output.Width == 0 {
		newCFG.Output.Width = DefaultWidth
	}
	if newCFG.REPL.Prompt == "" {
		newCFG.REPL.Prompt = DefaultPrompt
	}
	if newCFG.Server.Listen == "" {
		newCFG.Server.Listen = DefaultListen
	}
	if newCFG.DB.Type == "" {
		newCFG.DB = Database{Type: DatabaseInMemory}
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if cfg.Parse.MaxDepth < 1 {
		return fmt.Errorf("parse: max_depth: must be at least 1, but is %d", cfg.Parse.MaxDepth)
	}
	if cfg.Output.Width < MinWidth {
		return fmt.Errorf("output: width: must be at least %d, but is %d", MinWidth, cfg.Output.Width)
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server: listen: must not be empty")
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("store: db: %w", err)
	}

	return nil
}

// marshaledConfig is the layout of a config file.
type marshaledConfig struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`

	Parse struct {
		MaxDepth  int  `toml:"max_depth"`
		Normalize bool `toml:"normalize"`
	} `toml:"parse"`

	Output struct {
		Format   string `toml:"format"`
		Width    int    `toml:"width"`
		Renumber bool   `toml:"renumber"`
	} `toml:"output"`

	REPL struct {
		Prompt      string `toml:"prompt"`
		HistoryFile string `toml:"history_file"`
	} `toml:"repl"`

	Server struct {
		Listen string `toml:"listen"`
	} `toml:"server"`

	Store struct {
		DB string `toml:"db"`
	} `toml:"store"`
}

// Load reads the config file at path. Defaults are not filled in.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads config file contents. Defaults are not filled in.
func Decode(data []byte) (Config, error) {
	var mc marshaledConfig

	md, err := toml.Decode(string(data), &mc)
	if err != nil {
		return Config{}, err
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i := range undec {
			keys[i] = undec[i].String()
		}
		return Config{}, fmt.Errorf("unknown key(s): %s", strings.Join(keys, ", "))
	}

	if mc.Format != "" && strings.ToUpper(mc.Format) != FileFormat {
		return Config{}, fmt.Errorf("format: must be %q, but is %q", FileFormat, mc.Format)
	}
	if mc.Type != "" && strings.ToUpper(mc.Type) != FileType {
		return Config{}, fmt.Errorf("type: must be %q, but is %q", FileType, mc.Type)
	}

	var cfg Config

	cfg.Parse.MaxDepth = mc.Parse.MaxDepth
	cfg.Parse.Normalize = mc.Parse.Normalize

	if mc.Output.Format != "" {
		cfg.Output.Format, err = export.ParseFormat(mc.Output.Format)
		if err != nil {
			return Config{}, fmt.Errorf("output: format: %w", err)
		}
	}
	cfg.Output.Width = mc.Output.Width
	cfg.Output.Renumber = mc.Output.Renumber

	cfg.REPL.Prompt = mc.REPL.Prompt
	cfg.REPL.HistoryFile = mc.REPL.HistoryFile

	cfg.Server.Listen = mc.Server.Listen

	if mc.Store.DB != "" {
		cfg.DB, err = ParseDBConnString(mc.Store.DB)
		if err != nil {
			return Config{}, fmt.Errorf("store: db: %w", err)
		}
	}

	return cfg, nil
}
