package cmderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ConsoleMessage(t *testing.T) {
	cause := errors.New("disk on fire")

	testCases := []struct {
		name          string
		err           error
		expectConsole string
		expectError   string
	}{
		{
			name:          "plain error",
			err:           errors.New("boom"),
			expectConsole: "boom",
			expectError:   "boom",
		},
		{
			name:          "new with technical",
			err:           New("No such expression", "lookup: not found"),
			expectConsole: "No such expression",
			expectError:   "lookup: not found",
		},
		{
			name:          "newf",
			err:           Newf("Unknown format %q", "png"),
			expectConsole: `Unknown format "png"`,
			expectError:   `command error: Unknown format "png"`,
		},
		{
			name:          "wrapf",
			err:           Wrapf(cause, "Could not save %s", "x"),
			expectConsole: "Could not save x",
			expectError:   "command error: Could not save x: disk on fire",
		},
		{
			name:          "wrapped by fmt",
			err:           fmt.Errorf("outer: %w", New("inner message", "")),
			expectConsole: "inner message",
			expectError:   "outer: command error: inner message",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expectConsole, ConsoleMessage(tc.err))
			assert.Equal(tc.expectError, tc.err.Error())
		})
	}
}

func Test_Wrap_unwraps(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(cause, "msg", "tech")

	assert.True(t, errors.Is(err, cause))
}
