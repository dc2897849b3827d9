// Package store provides persistence for compiled regular expressions.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/dekarrin/renfa/automaton"
	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
)

// Store holds all the repositories.
type Store interface {
	Expressions() ExpressionRepository
	Close() error
}

// Expression is a regular expression saved under a name along with the NFA
// that was compiled from it.
type Expression struct {
	ID      uuid.UUID
	Name    string
	Regex   string
	NFA     automaton.NFA
	Created time.Time
}

type ExpressionRepository interface {

	// Create creates a new Expression. All attributes except for
	// auto-generated fields are taken from the provided Expression. If an
	// Expression with the same name already exists, ErrConstraintViolation is
	// returned.
	Create(ctx context.Context, expr Expression) (Expression, error)
	GetByID(ctx context.Context, id uuid.UUID) (Expression, error)
	GetByName(ctx context.Context, name string) (Expression, error)

	// GetAll returns every Expression, ordered by name.
	GetAll(ctx context.Context) ([]Expression, error)

	// Delete removes the Expression with the given ID and returns it as it was
	// just before deletion.
	Delete(ctx context.Context, id uuid.UUID) (Expression, error)

	Close() error
}
