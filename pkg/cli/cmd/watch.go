package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/devantler-tech/kwatch/pkg/cli/ui/watch"
	"github.com/devantler-tech/kwatch/pkg/di"
	"github.com/devantler-tech/kwatch/pkg/io/configmanager"
	"github.com/devantler-tech/kwatch/pkg/k8s"
	"github.com/devantler-tech/kwatch/pkg/k8s/catalog"
	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	"github.com/devantler-tech/kwatch/pkg/svc/session"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"github.com/devantler-tech/kwatch/pkg/svc/stream"
	watchsvc "github.com/devantler-tech/kwatch/pkg/svc/watch"
	fcolor "github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// errQuit ends the ingestion goroutine once the presentation side is done.
var errQuit = errors.New("watch ended")

// consumer presents the snapshots of one watch.
type consumer func(ctx context.Context, snapshots <-chan store.Snapshot) error

// runWatch connects to the cluster, resolves the requested resource and runs
// ingestion and presentation until either side stops.
func runWatch(
	cmd *cobra.Command,
	injector di.Injector,
	config *configmanager.Config,
	getter genericclioptions.RESTClientGetter,
) error {
	fs, err := di.ResolveFs(injector)
	if err != nil {
		return err
	}

	connectorFactory, err := di.ResolveConnectorFactory(injector)
	if err != nil {
		return err
	}

	closeLog, err := configureLogging(cmd.ErrOrStderr(), fs, config)
	if err != nil {
		return err
	}
	defer closeLog()

	target, cluster, err := resolveTarget(connectorFactory(getter, config.UseTLS), config)
	if err != nil {
		return err
	}

	logrus.WithField("target", target.Describe()).Info("starting watch")

	present, err := newConsumer(cmd, fs, config, target)
	if err != nil {
		return err
	}

	bridge := watchsvc.NewBridge(
		watchsvc.NewListWatchFeed(cluster.Dynamic, target),
		watchsvc.NewExporter(fs, config.Export),
	)

	return runPipeline(cmd.Context(), bridge, present)
}

// resolveTarget opens the cluster connection and turns the resource argument
// into a watch target.
func resolveTarget(
	connector k8s.Connector,
	config *configmanager.Config,
) (k8s.Target, *k8s.Cluster, error) {
	cluster, err := connector.Connect()
	if err != nil {
		return k8s.Target{}, nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}

	resources, err := catalog.Build(cluster.Discovery)
	if err != nil {
		return k8s.Target{}, nil, err
	}

	resource, err := catalog.Resolve(resources, config.Resource)
	if err != nil {
		return k8s.Target{}, nil, err
	}

	target, err := k8s.NewTarget(resource, k8s.TargetOptions{
		Namespace:        config.Namespace,
		AllNamespaces:    config.AllNamespaces,
		DefaultNamespace: cluster.DefaultNamespace,
		LabelSelector:    config.Selector,
		Name:             config.Name,
	})
	if err != nil {
		return k8s.Target{}, nil, err
	}

	return target, cluster, nil
}

// newConsumer builds the presentation side for the configured mode.
func newConsumer(
	cmd *cobra.Command,
	fs afero.Fs,
	config *configmanager.Config,
	target k8s.Target,
) (consumer, error) {
	out := cmd.OutOrStdout()
	width := terminalWidth(out)

	switch config.Mode {
	case configmanager.ModeSimple:
		return stream.NewSimplePrinter(out, nil).Run, nil
	case configmanager.ModeExpand:
		dispatcher, err := newDispatcher(cmd, fs, config, width)
		if err != nil {
			return nil, err
		}

		printer := stream.NewExpandPrinter(stream.ExpandOptions{
			Out:    out,
			Differ: dispatcher,
			Width:  width,
			Color:  !fcolor.NoColor,
		})

		return printer.Run, nil
	default:
		dispatcher, err := newDispatcher(cmd, fs, config, width)
		if err != nil {
			return nil, err
		}

		controller := session.NewController(store.New(), dispatcher)

		return func(ctx context.Context, snapshots <-chan store.Snapshot) error {
			model := watch.New(controller, snapshots, watch.Options{Title: target.Describe()})

			return watch.Run(ctx, model)
		}, nil
	}
}

// newDispatcher returns the diff dispatcher for the configured backend. Its
// output spans width columns; the interactive view resizes the panes to its
// boxes once it knows the window size.
func newDispatcher(
	cmd *cobra.Command,
	fs afero.Fs,
	config *configmanager.Config,
	width int,
) (*diff.Dispatcher, error) {
	display := diff.DefaultDisplayOptions()
	display.Width = width
	display.Color = !fcolor.NoColor

	renderer, err := diff.NewRenderer(config.Backend(), diff.RendererOptions{
		Out:     cmd.OutOrStdout(),
		Fs:      fs,
		Display: display,
		Color:   !fcolor.NoColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create diff renderer: %w", err)
	}

	dispatcher, err := diff.NewDispatcher(diff.Config{
		Renderer:             renderer,
		IncludeManagedFields: config.IncludeManagedFields,
		Fs:                   fs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create diff dispatcher: %w", err)
	}

	return dispatcher, nil
}

// runPipeline runs ingestion and presentation side by side. A failure on
// either side cancels the other. The presentation side returning cancels
// ingestion and is not an error.
func runPipeline(ctx context.Context, bridge *watchsvc.Bridge, present consumer) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return bridge.Run(groupCtx)
	})

	group.Go(func() error {
		err := present(groupCtx, bridge.Snapshots())
		if err != nil {
			return err
		}

		return errQuit
	})

	err := group.Wait()
	if err != nil && !errors.Is(err, errQuit) {
		return err
	}

	return nil
}

// terminalWidth returns the width of out when it is a terminal.
func terminalWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok {
		return stream.DetectWidth(nil)
	}

	return stream.DetectWidth(file)
}
