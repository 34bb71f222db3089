package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscovery is matched by every DiscoveryError.
	ErrDiscovery = errors.New("api discovery failed")
	// ErrResourceNotFound is matched by every ResolutionError.
	ErrResourceNotFound = errors.New("resource not found in cluster")
	// ErrNoVersions is returned when an enumerated group serves no versions.
	ErrNoVersions = errors.New("api group reports no versions")
)

// DiscoveryError reports a failure while building the catalog.
type DiscoveryError struct {
	// Group is the group being processed, empty for the core group or for
	// failures while listing groups.
	Group string
	Err   error
}

// Error implements the error interface.
func (e *DiscoveryError) Error() string {
	group := e.Group
	if group == CoreGroup {
		group = "core"
	}

	return fmt.Sprintf("%s: group %q: %v", ErrDiscovery, group, e.Err)
}

// Unwrap exposes the cause for errors.Is/errors.As consumers.
func (e *DiscoveryError) Unwrap() []error {
	return []error{ErrDiscovery, e.Err}
}

// ResolutionError reports that no resource matched a token.
type ResolutionError struct {
	Token string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resource %q not found in cluster", e.Token)
}

// Unwrap exposes the sentinel for errors.Is consumers.
func (e *ResolutionError) Unwrap() error {
	return ErrResourceNotFound
}
