package stream

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"k8s.io/apimachinery/pkg/util/duration"
)

const (
	nameColumnWidth = 63
	ageColumnWidth  = 20
)

// SimplePrinter prints one NAME/AGE row per snapshot.
type SimplePrinter struct {
	out io.Writer
	now func() time.Time
}

// NewSimplePrinter returns a printer writing to out. now defaults to time.Now.
func NewSimplePrinter(out io.Writer, now func() time.Time) *SimplePrinter {
	if now == nil {
		now = time.Now
	}

	return &SimplePrinter{out: out, now: now}
}

// Run implements Printer.
func (p *SimplePrinter) Run(ctx context.Context, snapshots <-chan store.Snapshot) error {
	_, err := fmt.Fprintf(p.out, "%-*s %-*s\n", nameColumnWidth, "NAME", ageColumnWidth, "AGE")
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return consume(ctx, snapshots, func(snapshot store.Snapshot) error {
		_, err := fmt.Fprintf(
			p.out,
			"%-*s %-*s\n",
			nameColumnWidth, snapshot.Identity.Name,
			ageColumnWidth, Age(snapshot, p.now()),
		)
		if err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}

		return nil
	})
}

// Age returns the kubectl-style age of the object in the snapshot.
func Age(snapshot store.Snapshot, now time.Time) string {
	created := snapshot.Object.GetCreationTimestamp()
	if created.IsZero() {
		return "<unknown>"
	}

	return duration.HumanDuration(now.Sub(created.Time))
}
