// Package sqlite is a store.Store backed by a SQLite database file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/renfa/internal/store"
	"modernc.org/sqlite"
)

type datastore struct {
	dbFilename string

	db *sql.DB

	exprs *ExpressionsDB
}

// NewDatastore opens (creating if needed) the database file in storageDir and
// prepares its tables.
func NewDatastore(storageDir string) (store.Store, error) {
	st := &datastore{
		dbFilename: "renfa.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.exprs = &ExpressionsDB{db: st.db}
	if err := st.exprs.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("%s: %w", st.dbFilename, err)
	}

	return st, nil
}

func (s *datastore) Expressions() store.ExpressionRepository {
	return s.exprs
}

func (s *datastore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// SQLITE_CONSTRAINT, and every extended code built on it
		if sqliteErr.Code()&0xff == 19 {
			return store.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
