package stream

import (
	"context"
	"os"

	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"golang.org/x/term"
)

const defaultWidth = 80

// Printer writes snapshots as they arrive until the channel closes or the
// context is cancelled.
type Printer interface {
	Run(ctx context.Context, snapshots <-chan store.Snapshot) error
}

// DetectWidth returns the width of the terminal attached to file, or 80 when
// file is not a terminal.
func DetectWidth(file *os.File) int {
	if file == nil {
		return defaultWidth
	}

	width, _, err := term.GetSize(int(file.Fd())) //nolint:gosec // file descriptors fit in int
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}

func consume(
	ctx context.Context,
	snapshots <-chan store.Snapshot,
	handle func(store.Snapshot) error,
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}

			err := handle(snapshot)
			if err != nil {
				return err
			}
		}
	}
}
