package k8s

import (
	"errors"
	"fmt"
)

var (
	// ErrScopeMismatch is matched by every ScopeMismatchError.
	ErrScopeMismatch = errors.New("namespace filter given for a cluster-scoped resource")
	// ErrInvalidSelector is returned when the label selector does not parse.
	ErrInvalidSelector = errors.New("invalid label selector")
)

// ScopeMismatchError reports a namespace filter on a cluster-scoped resource.
type ScopeMismatchError struct {
	Resource  string
	Namespace string
}

// Error implements the error interface.
func (e *ScopeMismatchError) Error() string {
	return fmt.Sprintf(
		"%s is cluster-scoped and cannot be filtered by namespace %q",
		e.Resource,
		e.Namespace,
	)
}

// Unwrap exposes the sentinel for errors.Is consumers.
func (e *ScopeMismatchError) Unwrap() error {
	return ErrScopeMismatch
}
