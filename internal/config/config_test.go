package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/renfa/internal/export"
	"github.com/dekarrin/renfa/regex"
	"github.com/stretchr/testify/assert"
)

func Test_Decode(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Config
		expectErr bool
	}{
		{
			name:   "empty file",
			input:  "",
			expect: Config{},
		},
		{
			name: "all sections",
			input: `format = "RENFA"
type = "CONFIG"

[parse]
max_depth = 50
normalize = true

[output]
format = "dot"
width = 100
renumber = true

[repl]
prompt = "re> "
history_file = "/tmp/renfa_history"

[server]
listen = ":9000"

[store]
db = "sqlite:/var/lib/renfa"
`,
			expect: Config{
				Parse:  Parse{MaxDepth: 50, Normalize: true},
				Output: Output{Format: export.FormatDOT, Width: 100, Renumber: true},
				REPL:   REPL{Prompt: "re> ", HistoryFile: "/tmp/renfa_history"},
				Server: Server{Listen: ":9000"},
				DB:     Database{Type: DatabaseSQLite, DataDir: "/var/lib/renfa"},
			},
		},
		{
			name:      "wrong format",
			input:     `format = "TQW"`,
			expectErr: true,
		},
		{
			name:      "wrong type",
			input:     `type = "DATA"`,
			expectErr: true,
		},
		{
			name:      "unknown key",
			input:     "[parse]\nmax_dept = 3\n",
			expectErr: true,
		},
		{
			name:      "bad output format",
			input:     "[output]\nformat = \"png\"\n",
			expectErr: true,
		},
		{
			name:      "bad db",
			input:     "[store]\ndb = \"postgres\"\n",
			expectErr: true,
		},
		{
			name:      "not toml",
			input:     "[parse\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Decode([]byte(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Load(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "renfa.toml")
	err := os.WriteFile(path, []byte("[output]\nwidth = 60\n"), 0644)
	if !assert.NoError(err) {
		return
	}

	cfg, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(60, cfg.Output.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}.FillDefaults()

	assert.Equal(regex.DefaultMaxDepth, cfg.Parse.MaxDepth)
	assert.Equal(DefaultWidth, cfg.Output.Width)
	assert.Equal(export.FormatTable, cfg.Output.Format)
	assert.Equal(DefaultPrompt, cfg.REPL.Prompt)
	assert.Equal(DefaultListen, cfg.Server.Listen)
	assert.Equal(Database{Type: DatabaseInMemory}, cfg.DB)
	assert.NoError(cfg.Validate())

	kept := Config{Output: Output{Width: 120}}.FillDefaults()
	assert.Equal(120, kept.Output.Width)
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{name: "max depth", modify: func(cfg *Config) { cfg.Parse.MaxDepth = -1 }},
		{name: "width", modify: func(cfg *Config) { cfg.Output.Width = 5 }},
		{name: "listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }},
		{name: "db", modify: func(cfg *Config) { cfg.DB = Database{Type: DatabaseSQLite} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}.FillDefaults()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{name: "inmem", input: "inmem", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem uppercase", input: "INMEM", expect: Database{Type: DatabaseInMemory}},
		{name: "sqlite with path", input: "sqlite:/data/dir", expect: Database{Type: DatabaseSQLite, DataDir: "/data/dir"}},
		{name: "sqlite keeps colons in path", input: "sqlite:C:/data", expect: Database{Type: DatabaseSQLite, DataDir: "C:/data"}},
		{name: "sqlite without path", input: "sqlite", expectErr: true},
		{name: "inmem with params", input: "inmem:foo", expectErr: true},
		{name: "none", input: "none", expectErr: true},
		{name: "unknown", input: "mysql:whatever", expectErr: true},
		{name: "empty", input: "", expectErr: true},
		{name: "type padded with spaces", input: " sqlite : /data ", expect: Database{Type: DatabaseSQLite, DataDir: "/data"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseDBConnString(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Database_String(t *testing.T) {
	assert := assert.New(t)

	for _, s := range []string{"inmem", "sqlite:/data"} {
		db, err := ParseDBConnString(s)
		assert.NoError(err)
		assert.Equal(s, db.String())
	}
}

func Test_Database_Connect(t *testing.T) {
	assert := assert.New(t)

	st, err := Database{Type: DatabaseInMemory}.Connect()
	if assert.NoError(err) {
		assert.NotNil(st.Expressions())
		assert.NoError(st.Close())
	}

	st, err = Database{Type: DatabaseSQLite, DataDir: filepath.Join(t.TempDir(), "nested", "dir")}.Connect()
	if assert.NoError(err) {
		assert.NotNil(st.Expressions())
		assert.NoError(st.Close())
	}

	for _, bad := range []Database{{}, {Type: "postgres"}, {Type: DatabaseSQLite}} {
		_, err = bad.Connect()
		assert.Error(err, "connect to %#v", bad)
	}
}
