package watch

import (
	"fmt"
	"path/filepath"

	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

const (
	exportDirMode  = 0o755
	exportFileMode = 0o644
)

// Exporter writes every snapshot to <dir>/<namespace>/<name>/<resourceVersion>.yaml.
// Cluster-scoped objects skip the namespace level.
type Exporter struct {
	fs  afero.Fs
	dir string
}

// NewExporter returns an exporter rooted at dir, or nil when dir is empty.
func NewExporter(fs afero.Fs, dir string) *Exporter {
	if dir == "" {
		return nil
	}

	return &Exporter{fs: fs, dir: dir}
}

// Path returns the file a snapshot is exported to.
func (e *Exporter) Path(snapshot store.Snapshot) string {
	parts := []string{e.dir}
	if snapshot.Identity.Namespace != "" {
		parts = append(parts, snapshot.Identity.Namespace)
	}

	parts = append(parts, snapshot.Identity.Name, snapshot.ResourceVersion+".yaml")

	return filepath.Join(parts...)
}

// Export writes the unredacted object of the snapshot.
func (e *Exporter) Export(snapshot store.Snapshot) error {
	path := e.Path(snapshot)

	content, err := yaml.Marshal(snapshot.Object.Object)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", snapshot.Identity, err)
	}

	err = e.fs.MkdirAll(filepath.Dir(path), exportDirMode)
	if err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	err = afero.WriteFile(e.fs, path, content, exportFileMode)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
