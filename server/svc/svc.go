// Package svc has services for compiling and storing expressions, decoupled
// from the API that accesses them.
package svc

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/renfa/automaton"
	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/renfa/regex"
	"github.com/dekarrin/renfa/server/serr"
	"github.com/google/uuid"
)

// Service is a service for compiling regular expressions and keeping the
// compiled NFAs in persistence.
//
// The zero-value of Service is not ready to be used; assign a valid store to
// DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB store.Store

	// ParseOptions is used for every compilation the service performs.
	ParseOptions regex.Options
}

// Compile compiles expr into an NFA without storing it. If expr is not valid
// the returned error is a regex.SyntaxError.
func (svc Service) Compile(expr string) (automaton.NFA, error) {
	return regex.ParseWithOptions(expr, svc.ParseOptions)
}

// CreateExpression compiles expr and stores it under name. Returns the newly
// stored expression.
//
// If expr is not valid the returned error is a regex.SyntaxError. Otherwise,
// the returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused it. If an expression with that name
// already exists, it will match serr.ErrAlreadyExists. If name is blank, it
// will match serr.ErrBadArgument. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (svc Service) CreateExpression(ctx context.Context, name, expr string) (store.Expression, error) {
	if strings.TrimSpace(name) == "" {
		return store.Expression{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	nfa, err := svc.Compile(expr)
	if err != nil {
		return store.Expression{}, err
	}

	created, err := svc.DB.Expressions().Create(ctx, store.Expression{
		Name:  name,
		Regex: expr,
		NFA:   nfa,
	})
	if err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return store.Expression{}, serr.New("an expression with that name already exists", serr.ErrAlreadyExists)
		}
		return store.Expression{}, serr.WrapDB("could not create expression", err)
	}

	return created, nil
}

// GetExpression returns the stored expression with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no expression with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if id is
// not a valid ID, it will match serr.ErrBadArgument.
func (svc Service) GetExpression(ctx context.Context, id string) (store.Expression, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return store.Expression{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	e, err := svc.DB.Expressions().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Expression{}, serr.ErrNotFound
		}
		return store.Expression{}, serr.WrapDB("could not get expression", err)
	}

	return e, nil
}

// GetAllExpressions returns all stored expressions, ordered by name.
func (svc Service) GetAllExpressions(ctx context.Context) ([]store.Expression, error) {
	all, err := svc.DB.Expressions().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return all, nil
}

// DeleteExpression deletes the stored expression with the given ID. It returns
// the expression as it was just before deletion.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no expression with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if id is
// not a valid ID, it will match serr.ErrBadArgument.
func (svc Service) DeleteExpression(ctx context.Context, id string) (store.Expression, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return store.Expression{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	e, err := svc.DB.Expressions().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Expression{}, serr.ErrNotFound
		}
		return store.Expression{}, serr.WrapDB("could not delete expression", err)
	}

	return e, nil
}
