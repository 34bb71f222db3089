package diff

import (
	"errors"
	"fmt"
)

// ErrRender is the sentinel matched by every RenderError.
var ErrRender = errors.New("diff renderer failed")

// ErrInvalidBackend is returned when a backend name is not recognised.
var ErrInvalidBackend = errors.New("invalid diff backend")

// RenderError reports a renderer exit code outside the 0/1 diff result range.
type RenderError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("diff renderer exited with code %d: %v", e.Code, e.Err)
	}

	return fmt.Sprintf("diff renderer exited with code %d", e.Code)
}

// Unwrap exposes the cause for errors.Is/errors.As consumers.
func (e *RenderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRender}
	}

	return []error{ErrRender, e.Err}
}

// ExitCode returns the code the process should exit with.
func (e *RenderError) ExitCode() int {
	return e.Code
}
