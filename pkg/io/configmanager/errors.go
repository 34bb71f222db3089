package configmanager

import "errors"

var (
	// ErrInvalidMode is returned for an unknown output mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrResourceRequired is returned when no resource argument was given.
	ErrResourceRequired = errors.New("a resource type is required")
	// ErrTooManyArguments is returned for more than a resource and a name.
	ErrTooManyArguments = errors.New("too many arguments")
)
