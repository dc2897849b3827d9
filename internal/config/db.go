package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/renfa/internal/store/inmem"
	"github.com/dekarrin/renfa/internal/store/sqlite"
)

// DBType is the kind of store that saved expressions are kept in.
type DBType string

const (
	DatabaseInMemory DBType = "inmem"
	DatabaseSQLite   DBType = "sqlite"
)

func (dbt DBType) String() string {
	return string(dbt)
}

// Database selects and configures the store for saved expressions. The zero
// value has no type; FillDefaults replaces it with an in-memory store.
type Database struct {
	Type DBType

	// DataDir is the directory that an sqlite store keeps its files in. It is
	// not used by other types.
	DataDir string
}

// ParseDBConnString parses a connection string of the form "TYPE" or
// "TYPE:PARAMS". "inmem" takes no params; "sqlite" takes the path of its data
// directory, which may itself contain colons.
func ParseDBConnString(s string) (Database, error) {
	typeStr, params, _ := strings.Cut(s, ":")
	params = strings.TrimSpace(params)

	db := Database{Type: DBType(strings.ToLower(strings.TrimSpace(typeStr)))}

	switch db.Type {
	case DatabaseInMemory:
		if params != "" {
			return Database{}, fmt.Errorf("inmem DB takes no params but got %q", params)
		}
	case DatabaseSQLite:
		if params == "" {
			return Database{}, fmt.Errorf("sqlite DB needs a data directory, as in \"sqlite:path/to/dir\"")
		}
		db.DataDir = params
	default:
		return Database{}, fmt.Errorf("DB type %q is not one of 'inmem' or 'sqlite'", typeStr)
	}

	return db, nil
}

// String gives the connection string that ParseDBConnString would parse back
// into db.
func (db Database) String() string {
	if db.Type == DatabaseSQLite {
		return db.Type.String() + ":" + db.DataDir
	}
	return db.Type.String()
}

// Validate returns an error if db has an unknown type or is missing a setting
// its type needs.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("sqlite DB has no data directory")
		}
		return nil
	case "":
		return fmt.Errorf("no DB type set")
	default:
		return fmt.Errorf("unknown DB type %q", db.Type.String())
	}
}

// Connect opens the store that db describes. For sqlite, the data directory
// is created if it does not yet exist.
func (db Database) Connect() (store.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return st, nil
}
