package watch

import (
	"errors"
	"fmt"
)

// ErrTransport is matched by every TransportError.
var ErrTransport = errors.New("watch stream failed")

// TransportError reports that the watch of a resource failed mid-stream.
type TransportError struct {
	Resource string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Resource, e.Err)
}

// Unwrap exposes the sentinel and the cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
