package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

const (
	tempDirName   = "kwatch"
	minusFileName = "minus.yaml"
	plusFileName  = "plus.yaml"
	tempDirMode   = 0o750
	tempFileMode  = 0o600
)

// Config configures a Dispatcher.
type Config struct {
	Renderer             Renderer
	IncludeManagedFields bool
	// Fs receives the temporary documents of file-based renderers.
	Fs afero.Fs
	// TempDir is the parent of the kwatch scratch directory; defaults to os.TempDir().
	TempDir string
}

// Dispatcher redacts a snapshot pair and sends it to the configured renderer.
type Dispatcher struct {
	pipeline Pipeline
	renderer Renderer
	fs       afero.Fs
	dir      string
}

// NewDispatcher builds a dispatcher with its own redaction pipeline.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("%w: renderer is required", ErrInvalidBackend)
	}

	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &Dispatcher{
		pipeline: NewPipeline(cfg.IncludeManagedFields),
		renderer: cfg.Renderer,
		fs:       fs,
		dir:      filepath.Join(tempDir, tempDirName),
	}, nil
}

// Backend returns the backend of the configured renderer.
func (d *Dispatcher) Backend() Backend {
	return d.renderer.Backend()
}

// SetPaneWidth sizes later side-by-side renders so that every pane line fits
// in width columns. Renderers that write their output directly ignore it.
func (d *Dispatcher) SetPaneWidth(width int) {
	resizable, ok := d.renderer.(interface{ setPaneWidth(width int) })
	if !ok || width <= 0 {
		return
	}

	resizable.setPaneWidth(width)
}

// Render diffs left against right. A nil left is treated as an empty
// document. Exit codes other than ExitEqual and ExitDifferent are returned as
// a *RenderError alongside the result.
func (d *Dispatcher) Render(left, right *unstructured.Unstructured) (Result, error) {
	redactedLeft, redactedRight := d.pipeline.Apply(left, right)

	minus, err := serialize(redactedLeft)
	if err != nil {
		return Result{ExitCode: ExitTrouble}, &RenderError{Code: ExitTrouble, Err: err}
	}

	plus, err := serialize(redactedRight)
	if err != nil {
		return Result{ExitCode: ExitTrouble}, &RenderError{Code: ExitTrouble, Err: err}
	}

	minus.Label = labelFor(left, "before")
	plus.Label = labelFor(right, "after")

	if d.renderer.needsFiles() {
		minus, plus, err = d.materialize(minus, plus)
		if err != nil {
			return Result{ExitCode: ExitTrouble}, &RenderError{Code: ExitTrouble, Err: err}
		}
	}

	result := d.renderer.Render(minus, plus)
	if result.ExitCode != ExitEqual && result.ExitCode != ExitDifferent {
		return result, &RenderError{Code: result.ExitCode}
	}

	return result, nil
}

// materialize writes both documents into the scratch directory.
func (d *Dispatcher) materialize(minus, plus Document) (Document, Document, error) {
	err := d.fs.MkdirAll(d.dir, tempDirMode)
	if err != nil {
		return minus, plus, fmt.Errorf("create diff scratch directory: %w", err)
	}

	minus.Path = filepath.Join(d.dir, minusFileName)
	plus.Path = filepath.Join(d.dir, plusFileName)

	for _, doc := range []Document{minus, plus} {
		err = afero.WriteFile(d.fs, doc.Path, doc.Content, tempFileMode)
		if err != nil {
			return minus, plus, fmt.Errorf("write %s: %w", doc.Path, err)
		}
	}

	return minus, plus, nil
}

func serialize(obj *unstructured.Unstructured) (Document, error) {
	if obj == nil || obj.Object == nil {
		return Document{}, nil
	}

	content, err := yaml.Marshal(obj.Object)
	if err != nil {
		return Document{}, fmt.Errorf("serialize document: %w", err)
	}

	return Document{Content: content}, nil
}

func labelFor(obj *unstructured.Unstructured, fallback string) string {
	if obj == nil {
		return fallback
	}

	if rv := obj.GetResourceVersion(); rv != "" {
		return fmt.Sprintf("%s@%s", obj.GetName(), rv)
	}

	return fallback
}
