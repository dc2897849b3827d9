package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Error(t *testing.T) {
	cause := errors.New("disk on fire")

	testCases := []struct {
		name   string
		err    Error
		expect string
	}{
		{name: "message only", err: New("bad thing"), expect: "bad thing"},
		{name: "cause only", err: New("", cause), expect: "disk on fire"},
		{name: "message and cause", err: New("could not save", cause, ErrDB), expect: "could not save: disk on fire"},
		{name: "wrapped db", err: WrapDB("", cause), expect: "disk on fire"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.err.Error())
		})
	}
}

func Test_Error_Is(t *testing.T) {
	assert := assert.New(t)

	cause := errors.New("disk on fire")
	err := WrapDB("could not save", cause)

	assert.ErrorIs(err, ErrDB)
	assert.ErrorIs(err, cause)
	assert.NotErrorIs(err, ErrNotFound)

	wrapped := fmt.Errorf("service: %w", New("no such thing", ErrNotFound))
	assert.ErrorIs(wrapped, ErrNotFound)
	assert.ErrorIs(wrapped, New("no such thing", ErrNotFound))
}
