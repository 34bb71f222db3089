package watch

import (
	"context"
	"fmt"

	"github.com/devantler-tech/kwatch/pkg/svc/store"
)

// DefaultBuffer is the capacity of the channel between the bridge and its
// consumer. A full channel blocks the feed.
const DefaultBuffer = 32

// Bridge moves snapshots from a feed to a single consumer, exporting each
// one first when an exporter is configured.
type Bridge struct {
	feed     Feed
	exporter *Exporter
	out      chan store.Snapshot
}

// NewBridge creates a bridge. exporter may be nil.
func NewBridge(feed Feed, exporter *Exporter) *Bridge {
	return &Bridge{
		feed:     feed,
		exporter: exporter,
		out:      make(chan store.Snapshot, DefaultBuffer),
	}
}

// Snapshots is closed once Run returns.
func (b *Bridge) Snapshots() <-chan store.Snapshot {
	return b.out
}

// Run forwards snapshots until ctx is cancelled or the feed fails.
func (b *Bridge) Run(ctx context.Context) error {
	defer close(b.out)

	err := b.feed.Watch(ctx, func(snapshot store.Snapshot) error {
		if b.exporter != nil {
			err := b.exporter.Export(snapshot)
			if err != nil {
				return fmt.Errorf("failed to export snapshot: %w", err)
			}
		}

		select {
		case b.out <- snapshot:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return err
	}

	return nil
}
