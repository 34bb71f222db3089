package diff

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Backend selects the renderer used by a Dispatcher.
type Backend string

const (
	// BackendStructural renders two side-by-side panes for the interactive view.
	BackendStructural Backend = "structural"
	// BackendLine prints a unified diff and reports an exit code.
	BackendLine Backend = "line"
)

// ValidBackends returns the supported backends.
func ValidBackends() []Backend {
	return []Backend{BackendStructural, BackendLine}
}

// Set implements pflag.Value.
func (b *Backend) Set(value string) error {
	for _, backend := range ValidBackends() {
		if strings.EqualFold(value, string(backend)) {
			*b = backend

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s)",
		ErrInvalidBackend,
		value,
		BackendStructural,
		BackendLine,
	)
}

// UnmarshalText lets configuration decoders parse backend names.
func (b *Backend) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

// IsValid reports whether the backend is supported.
func (b *Backend) IsValid() bool {
	return slices.Contains(ValidBackends(), *b)
}

// String returns the backend name.
func (b *Backend) String() string {
	return string(*b)
}

// Type returns the flag type name.
func (b *Backend) Type() string {
	return "Backend"
}

// Document is one serialised side of a diff. Path is only set once the
// document has been written to disk for a file-based renderer.
type Document struct {
	Label   string
	Path    string
	Content []byte
}

// Result is the outcome of one render. Line renderers set ExitCode; the
// structural renderer also fills Panes.
type Result struct {
	ExitCode int
	Panes    Panes
}

// Changed reports whether the renderer found differences.
func (r Result) Changed() bool {
	return r.ExitCode == ExitDifferent
}

// Exit codes shared by both renderers.
const (
	ExitEqual     = 0
	ExitDifferent = 1
	ExitTrouble   = 2
)

// Renderer is implemented only by the renderers in this package.
type Renderer interface {
	Backend() Backend
	Render(minus, plus Document) Result
	needsFiles() bool
}

// RendererOptions configures NewRenderer.
type RendererOptions struct {
	// Out receives line-oriented output.
	Out io.Writer
	// Fs is used by the line renderer to read documents back from disk.
	Fs afero.Fs
	// Display configures the structural renderer.
	Display DisplayOptions
	// Color enables ANSI colouring of line output.
	Color bool
}

// NewRenderer constructs the renderer for backend.
func NewRenderer(backend Backend, opts RendererOptions) (Renderer, error) {
	switch backend {
	case BackendLine:
		return newLineRenderer(opts.Out, opts.Fs, opts.Color), nil
	case BackendStructural:
		return newStructuralRenderer(opts.Display), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBackend, backend)
	}
}
