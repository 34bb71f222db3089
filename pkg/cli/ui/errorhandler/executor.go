package errorhandler

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs a cobra command and folds whatever cobra printed on stderr
// into the returned error.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs cmd. It returns nil on success and a *CommandError otherwise;
// the original error stays reachable through errors.Is and errors.As.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	errWriter := cmd.ErrOrStderr()

	cmd.SetErr(&captured)
	defer cmd.SetErr(errWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(captured.String()),
		cause:   err,
	}
}

// CommandError is a failed command run together with cobra's normalized
// stderr output.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the error the command failed with.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// ExitCode returns the process exit code for the failure.
func (e *CommandError) ExitCode() int {
	if e == nil {
		return ExitOK
	}

	return ExitCode(e.cause)
}

// DefaultNormalizer cleans up cobra's stderr output.
type DefaultNormalizer struct{}

// Normalize trims whitespace and the leading "Error: " that cobra prints,
// keeping any usage hint on the following lines.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
