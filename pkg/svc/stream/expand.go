package stream

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	fcolor "github.com/fatih/color"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const (
	separatorRune = "─"
	eventSpacing  = 5
)

// Differ renders the diff between two versions of an object.
type Differ interface {
	Render(left, right *unstructured.Unstructured) (diff.Result, error)
}

// ExpandOptions configures an ExpandPrinter.
type ExpandOptions struct {
	Out    io.Writer
	Differ Differ
	// Width is the length of the separator lines.
	Width int
	Color bool
}

// ExpandPrinter prints a header and a diff for every new version of an
// object. The first version of an object only seeds its history.
type ExpandPrinter struct {
	out       io.Writer
	differ    Differ
	width     int
	versions  *store.Store
	value     *fcolor.Color
	separator *fcolor.Color
}

// NewExpandPrinter creates a printer with an empty history.
func NewExpandPrinter(opts ExpandOptions) *ExpandPrinter {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	printer := &ExpandPrinter{
		out:       opts.Out,
		differ:    opts.Differ,
		width:     width,
		versions:  store.New(),
		value:     fcolor.New(fcolor.FgHiYellow),
		separator: fcolor.New(fcolor.FgHiBlue),
	}

	for _, c := range []*fcolor.Color{printer.value, printer.separator} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return printer
}

// Run implements Printer. A *diff.RenderError stops the loop and is returned.
func (p *ExpandPrinter) Run(ctx context.Context, snapshots <-chan store.Snapshot) error {
	return consume(ctx, snapshots, p.print)
}

func (p *ExpandPrinter) print(snapshot store.Snapshot) error {
	p.versions.Insert(snapshot)

	previous, ok := p.versions.Sibling(snapshot)
	if !ok {
		return nil
	}

	err := p.header(snapshot)
	if err != nil {
		return err
	}

	result, err := p.differ.Render(previous.Object, snapshot.Object)
	if err != nil {
		return err
	}

	return p.panes(result.Panes)
}

func (p *ExpandPrinter) header(snapshot store.Snapshot) error {
	history := len(p.versions.History(snapshot.Identity))

	var builder strings.Builder

	if history > 2 {
		builder.WriteString(strings.Repeat("\n", eventSpacing) + "\n")
	}

	separator := p.separator.Sprint(strings.Repeat(separatorRune, p.width))

	fmt.Fprintln(&builder, separator)
	fmt.Fprintf(
		&builder,
		"Apiversion %s Kind: %s Namespace: %s Name: %s --- Event Number: %s\n",
		p.value.Sprint(snapshot.Object.GetAPIVersion()),
		p.value.Sprint(snapshot.Object.GetKind()),
		p.value.Sprint(snapshot.Identity.Namespace),
		p.value.Sprint(snapshot.Identity.Name),
		p.value.Sprint(history-1),
	)
	fmt.Fprintln(&builder, separator)

	_, err := io.WriteString(p.out, builder.String())
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}

// panes prints the output of renderers that return panes instead of
// writing directly.
func (p *ExpandPrinter) panes(panes diff.Panes) error {
	if panes.Empty() {
		return nil
	}

	text := panes.Left
	if panes.Right != "" {
		text = lipgloss.JoinHorizontal(lipgloss.Top, panes.Left, "  ", panes.Right)
	}

	_, err := fmt.Fprintln(p.out, text)
	if err != nil {
		return fmt.Errorf("failed to write diff: %w", err)
	}

	return nil
}
