// Package cmderr has errors that carry a separate message for the console
// along with the usual technical message.
package cmderr

import (
	"errors"
	"fmt"
)

// consoleError is an error caused by a shell command that could not be
// carried out, either because it was malformed or because what it asked for
// is not possible.
//
// consoleError includes a human-readable message to show to the user as well
// as a typical more technical "error message" style message.
type consoleError struct {
	msg   string
	human string
	wrap  error
}

func (e *consoleError) Error() string {
	return e.msg
}

// ConsoleMessage shows the message that should be displayed to the user to
// describe the error.
func (e *consoleError) ConsoleMessage() string {
	return e.human
}

// Unwrap gives the error that the consoleError wraps, if it wraps one.
func (e *consoleError) Unwrap() error {
	return e.wrap
}

// New returns a new error that has both the message to show the user and the
// technical description of the error. If technical is empty, one is generated
// from the console message.
func New(console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("command error: %s", console)
	}
	return &consoleError{
		msg:   technical,
		human: console,
	}
}

// Newf returns a new error with a console message built from the given format
// string and arguments and an automatically generated Error() description.
func Newf(consoleFormat string, a ...interface{}) error {
	return New(fmt.Sprintf(consoleFormat, a...), "")
}

// Wrap is New but the returned error also wraps e.
func Wrap(e error, console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("command error: %s: %s", console, e.Error())
	}
	return &consoleError{
		msg:   technical,
		human: console,
		wrap:  e,
	}
}

// Wrapf is Newf but the returned error also wraps e.
func Wrapf(e error, consoleFormat string, a ...interface{}) error {
	return Wrap(e, fmt.Sprintf(consoleFormat, a...), "")
}

// ConsoleMessage gets the message to display to the console for the given
// error. If err is or wraps an error created by this package, its console
// message is returned. Otherwise, err.Error() is returned.
func ConsoleMessage(err error) string {
	var ce *consoleError
	if errors.As(err, &ce) {
		return ce.ConsoleMessage()
	}
	return err.Error()
}
