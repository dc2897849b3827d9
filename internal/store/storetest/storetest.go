// Package storetest has behavior tests shared by every store implementation.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/dekarrin/renfa/automaton"
	"github.com/dekarrin/renfa/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// SampleNFA returns the NFA for "ab" built by hand.
func SampleNFA() automaton.NFA {
	var nfa automaton.NFA
	nfa.AddState(0, false)
	nfa.AddState(1, false)
	nfa.AddState(2, false)
	nfa.AddState(3, true)
	nfa.SetStart(0)
	nfa.AddTransition(0, "a", 1)
	nfa.AddTransition(1, automaton.Epsilon, 2)
	nfa.AddTransition(2, "b", 3)
	return nfa
}

// ExpressionRepository runs the common tests against repos created by
// newRepo. A fresh, empty repo must be returned on every call.
func ExpressionRepository(t *testing.T, newRepo func(t *testing.T) store.ExpressionRepository) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		assert := assert.New(t)
		repo := newRepo(t)

		created, err := repo.Create(ctx, store.Expression{Name: "ab", Regex: "ab", NFA: SampleNFA()})
		if !assert.NoError(err) {
			return
		}
		assert.NotEqual(uuid.Nil, created.ID)
		assert.False(created.Created.IsZero())

		byID, err := repo.GetByID(ctx, created.ID)
		if !assert.NoError(err) {
			return
		}
		assert.Equal("ab", byID.Name)
		assert.Equal("ab", byID.Regex)
		assert.Equal(SampleNFA().Transitions(), byID.NFA.Transitions())
		assert.Equal([]int{3}, byID.NFA.FinalStates().Elements())
		assert.Equal(0, byID.NFA.MustStart())

		byName, err := repo.GetByName(ctx, "ab")
		if !assert.NoError(err) {
			return
		}
		assert.Equal(created.ID, byName.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		assert := assert.New(t)
		repo := newRepo(t)

		_, err := repo.Create(ctx, store.Expression{Name: "x", Regex: "a", NFA: SampleNFA()})
		assert.NoError(err)

		_, err = repo.Create(ctx, store.Expression{Name: "x", Regex: "b", NFA: SampleNFA()})
		assert.True(errors.Is(err, store.ErrConstraintViolation), "got error: %v", err)
	})

	t.Run("get missing", func(t *testing.T) {
		assert := assert.New(t)
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, uuid.New())
		assert.True(errors.Is(err, store.ErrNotFound), "got error: %v", err)

		_, err = repo.GetByName(ctx, "nope")
		assert.True(errors.Is(err, store.ErrNotFound), "got error: %v", err)
	})

	t.Run("get all is ordered by name", func(t *testing.T) {
		assert := assert.New(t)
		repo := newRepo(t)

		for _, name := range []string{"zeta", "alpha", "mu"} {
			_, err := repo.Create(ctx, store.Expression{Name: name, Regex: "ab", NFA: SampleNFA()})
			if !assert.NoError(err) {
				return
			}
		}

		all, err := repo.GetAll(ctx)
		if !assert.NoError(err) {
			return
		}

		var names []string
		for _, e := range all {
			names = append(names, e.Name)
		}
		assert.Equal([]string{"alpha", "mu", "zeta"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		assert := assert.New(t)
		repo := newRepo(t)

		created, err := repo.Create(ctx, store.Expression{Name: "gone", Regex: "ab", NFA: SampleNFA()})
		if !assert.NoError(err) {
			return
		}

		deleted, err := repo.Delete(ctx, created.ID)
		assert.NoError(err)
		assert.Equal("gone", deleted.Name)

		_, err = repo.GetByID(ctx, created.ID)
		assert.True(errors.Is(err, store.ErrNotFound))

		_, err = repo.Delete(ctx, created.ID)
		assert.True(errors.Is(err, store.ErrNotFound))

		// name is free again
		_, err = repo.Create(ctx, store.Expression{Name: "gone", Regex: "ab", NFA: SampleNFA()})
		assert.NoError(err)
	})
}
