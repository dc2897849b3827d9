package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/renfa/internal/util"
	"github.com/google/uuid"
)

func NewExpressionsRepository() *InMemoryExpressionsRepository {
	return &InMemoryExpressionsRepository{
		exprs:       make(map[uuid.UUID]store.Expression),
		byNameIndex: make(map[string]uuid.UUID),
	}
}

// InMemoryExpressionsRepository is safe for concurrent use. NFAs are copied on
// the way in and on the way out so that callers never share state with the
// repository.
type InMemoryExpressionsRepository struct {
	mtx         sync.RWMutex
	exprs       map[uuid.UUID]store.Expression
	byNameIndex map[string]uuid.UUID
}

func (imer *InMemoryExpressionsRepository) Close() error {
	return nil
}

func (imer *InMemoryExpressionsRepository) Create(ctx context.Context, expr store.Expression) (store.Expression, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return store.Expression{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	// make sure it's not already in the DB
	if _, ok := imer.byNameIndex[expr.Name]; ok {
		return store.Expression{}, store.ErrConstraintViolation
	}

	expr.ID = newUUID
	expr.Created = time.Now()
	expr.NFA = expr.NFA.Copy()

	imer.exprs[expr.ID] = expr
	imer.byNameIndex[expr.Name] = expr.ID

	return copyExpression(expr), nil
}

func (imer *InMemoryExpressionsRepository) GetAll(ctx context.Context) ([]store.Expression, error) {
	imer.mtx.RLock()
	defer imer.mtx.RUnlock()

	all := make([]store.Expression, len(imer.exprs))

	i := 0
	for k := range imer.exprs {
		all[i] = copyExpression(imer.exprs[k])
		i++
	}

	all = util.SortBy(all, func(l, r store.Expression) bool {
		return l.Name < r.Name
	})

	return all, nil
}

func (imer *InMemoryExpressionsRepository) GetByID(ctx context.Context, id uuid.UUID) (store.Expression, error) {
	imer.mtx.RLock()
	defer imer.mtx.RUnlock()

	expr, ok := imer.exprs[id]
	if !ok {
		return store.Expression{}, store.ErrNotFound
	}

	return copyExpression(expr), nil
}

func (imer *InMemoryExpressionsRepository) GetByName(ctx context.Context, name string) (store.Expression, error) {
	imer.mtx.RLock()
	defer imer.mtx.RUnlock()

	id, ok := imer.byNameIndex[name]
	if !ok {
		return store.Expression{}, store.ErrNotFound
	}

	return copyExpression(imer.exprs[id]), nil
}

func (imer *InMemoryExpressionsRepository) Delete(ctx context.Context, id uuid.UUID) (store.Expression, error) {
	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	expr, ok := imer.exprs[id]
	if !ok {
		return store.Expression{}, store.ErrNotFound
	}

	delete(imer.byNameIndex, expr.Name)
	delete(imer.exprs, expr.ID)

	return expr, nil
}

func copyExpression(expr store.Expression) store.Expression {
	expr.NFA = expr.NFA.Copy()
	return expr
}
