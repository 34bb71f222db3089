package diff

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// lineRenderer prints a unified diff of two files.
type lineRenderer struct {
	out     io.Writer
	fs      afero.Fs
	header  *fcolor.Color
	hunk    *fcolor.Color
	removed *fcolor.Color
	added   *fcolor.Color
}

func newLineRenderer(out io.Writer, fs afero.Fs, color bool) *lineRenderer {
	if out == nil {
		out = os.Stdout
	}

	if fs == nil {
		fs = afero.NewOsFs()
	}

	renderer := &lineRenderer{
		out:     out,
		fs:      fs,
		header:  fcolor.New(fcolor.Bold),
		hunk:    fcolor.New(fcolor.FgCyan),
		removed: fcolor.New(fcolor.FgRed),
		added:   fcolor.New(fcolor.FgGreen),
	}

	for _, c := range []*fcolor.Color{renderer.header, renderer.hunk, renderer.removed, renderer.added} {
		if color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return renderer
}

func (r *lineRenderer) Backend() Backend { return BackendLine }

func (r *lineRenderer) needsFiles() bool { return true }

// Render reads both documents from their paths and writes the unified diff.
func (r *lineRenderer) Render(minus, plus Document) Result {
	minusContent, err := afero.ReadFile(r.fs, minus.Path)
	if err != nil {
		logrus.WithError(err).WithField("path", minus.Path).Error("read minus document")

		return Result{ExitCode: ExitTrouble}
	}

	plusContent, err := afero.ReadFile(r.fs, plus.Path)
	if err != nil {
		logrus.WithError(err).WithField("path", plus.Path).Error("read plus document")

		return Result{ExitCode: ExitTrouble}
	}

	before := string(minusContent)
	after := string(plusContent)

	edits := myers.ComputeEdits(span.URIFromPath(minus.Path), before, after)
	unified := gotextdiff.ToUnified(labelOr(minus), labelOr(plus), before, edits)

	if len(unified.Hunks) == 0 {
		return Result{ExitCode: ExitEqual}
	}

	err = r.write(unified)
	if err != nil {
		logrus.WithError(err).Error("write unified diff")

		return Result{ExitCode: ExitTrouble}
	}

	return Result{ExitCode: ExitDifferent}
}

func (r *lineRenderer) write(unified gotextdiff.Unified) error {
	var builder strings.Builder

	builder.WriteString(r.header.Sprintf("--- %s", unified.From) + "\n")
	builder.WriteString(r.header.Sprintf("+++ %s", unified.To) + "\n")

	for _, hunk := range unified.Hunks {
		fromCount, toCount := 0, 0

		for _, line := range hunk.Lines {
			switch line.Kind {
			case gotextdiff.Delete:
				fromCount++
			case gotextdiff.Insert:
				toCount++
			case gotextdiff.Equal:
				fromCount++
				toCount++
			}
		}

		builder.WriteString(r.hunk.Sprintf("@@ -%d,%d +%d,%d @@", hunk.FromLine, fromCount, hunk.ToLine, toCount) + "\n")

		for _, line := range hunk.Lines {
			content := strings.TrimSuffix(line.Content, "\n")

			switch line.Kind {
			case gotextdiff.Delete:
				builder.WriteString(r.removed.Sprint("-"+content) + "\n")
			case gotextdiff.Insert:
				builder.WriteString(r.added.Sprint("+"+content) + "\n")
			case gotextdiff.Equal:
				builder.WriteString(" " + content + "\n")
			}
		}
	}

	_, err := io.WriteString(r.out, builder.String())
	if err != nil {
		return fmt.Errorf("write diff output: %w", err)
	}

	return nil
}

func labelOr(doc Document) string {
	if doc.Label != "" {
		return doc.Label
	}

	return doc.Path
}
