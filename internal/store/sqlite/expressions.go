package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/renfa/automaton"
	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

func NewExpressionsDBConn(file string) (*ExpressionsDB, error) {
	repo := &ExpressionsDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init()
}

type ExpressionsDB struct {
	db *sql.DB
}

func (repo *ExpressionsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS expressions (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		regex TEXT NOT NULL,
		nfa TEXT NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *ExpressionsDB) Create(ctx context.Context, expr store.Expression) (store.Expression, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return store.Expression{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO expressions (id, name, regex, nfa, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return store.Expression{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		expr.Name,
		expr.Regex,
		convertToDB_NFA(expr.NFA),
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return store.Expression{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *ExpressionsDB) GetAll(ctx context.Context) ([]store.Expression, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, regex, nfa, created FROM expressions ORDER BY name;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []store.Expression

	for rows.Next() {
		var id string
		var name string
		var regex string
		var nfa string
		var created int64

		err = rows.Scan(
			&id,
			&name,
			&regex,
			&nfa,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		expr, err := convertFromDB_Expression(id, name, regex, nfa, created)
		if err != nil {
			return all, err
		}

		all = append(all, expr)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ExpressionsDB) GetByID(ctx context.Context, id uuid.UUID) (store.Expression, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT name, regex, nfa, created FROM expressions WHERE id = ?;`,
		convertToDB_UUID(id),
	)

	var name string
	var regex string
	var nfa string
	var created int64

	err := row.Scan(
		&name,
		&regex,
		&nfa,
		&created,
	)
	if err != nil {
		return store.Expression{}, wrapDBError(err)
	}

	return convertFromDB_Expression(convertToDB_UUID(id), name, regex, nfa, created)
}

func (repo *ExpressionsDB) GetByName(ctx context.Context, name string) (store.Expression, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, regex, nfa, created FROM expressions WHERE name = ?;`,
		name,
	)

	var id string
	var regex string
	var nfa string
	var created int64

	err := row.Scan(
		&id,
		&regex,
		&nfa,
		&created,
	)
	if err != nil {
		return store.Expression{}, wrapDBError(err)
	}

	return convertFromDB_Expression(id, name, regex, nfa, created)
}

func (repo *ExpressionsDB) Delete(ctx context.Context, id uuid.UUID) (store.Expression, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM expressions WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, store.ErrNotFound
	}

	return curVal, nil
}

func (repo *ExpressionsDB) Close() error {
	return repo.db.Close()
}

func convertFromDB_Expression(id, name, regex, nfa string, created int64) (store.Expression, error) {
	expr := store.Expression{
		Name:  name,
		Regex: regex,
	}

	err := convertFromDB_UUID(id, &expr.ID)
	if err != nil {
		return expr, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	err = convertFromDB_NFA(nfa, &expr.NFA)
	if err != nil {
		return expr, fmt.Errorf("stored NFA for %s is invalid: %w", id, err)
	}
	convertFromDB_Time(created, &expr.Created)

	return expr, nil
}

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) {
	*target = time.Unix(i, 0)
}

func convertToDB_NFA(nfa automaton.NFA) string {
	data := rezi.EncBinary(nfa)
	return base64.StdEncoding.EncodeToString(data)
}

func convertFromDB_NFA(s string, target *automaton.NFA) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}

	var nfa automaton.NFA
	if _, err := rezi.DecBinary(data, &nfa); err != nil {
		return err
	}

	*target = nfa
	return nil
}
