// Package inmem is a store.Store that keeps everything in memory. It does not
// persist between runs.
package inmem

import (
	"github.com/dekarrin/renfa/internal/store"
)

type datastore struct {
	exprs *InMemoryExpressionsRepository
}

func NewDatastore() store.Store {
	return &datastore{
		exprs: NewExpressionsRepository(),
	}
}

func (s *datastore) Expressions() store.ExpressionRepository {
	return s.exprs
}

func (s *datastore) Close() error {
	return s.exprs.Close()
}
