package errorhandler

import (
	"errors"

	"github.com/devantler-tech/kwatch/pkg/svc/diff"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitCode maps an error chain to the process exit code. A renderer failure
// keeps the renderer's own code; discovery, resolution, scope and transport
// failures and every other error exit with ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var renderErr *diff.RenderError
	if errors.As(err, &renderErr) {
		return renderErr.ExitCode()
	}

	return ExitFailure
}
