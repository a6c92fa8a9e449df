// Package exit provides the exit codes of metacheck.
package exit

import "fmt"

// Status represents the exit status of a command.
type Status int

// Exit codes of metacheck.
const (
	OK Status = iota
	// Failed is a validation failure or a runtime error.
	Failed
	// Usage is a command line or configuration error.
	Usage
)

// Error carries the exit status of the command that returned it.
type Error struct {
	Status Status
	Err    error
}

// Errorf returns an Error with status s and a formatted cause.
func Errorf(s Status, format string, args ...any) *Error {
	return &Error{Status: s, Err: fmt.Errorf(format, args...)}
}

// Wrap returns err with status s, or nil when err is nil.
func Wrap(s Status, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Status: s, Err: err}
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the process exit code.
func (e *Error) ExitCode() int { return int(e.Status) }
