package cmd

import (
	"fmt"

	"github.com/devantler-tech/kwatch/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/kwatch/pkg/di"
	"github.com/devantler-tech/kwatch/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

const longDescription = `Watch Kubernetes resources and inspect how every object changes.

The interactive view lists each observed version. Select a row to see what
changed since the previous version of the same object, press enter to list
only that object's history and esc to go back.

Examples:
  kwatch pods
  kwatch deploy web -n team-a
  kwatch configmaps -A -l app=web --mode expand
  kwatch nodes --mode simple`

// NewRootCmd creates the kwatch command with the default runtime.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the kwatch command resolving its services
// from runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	manager := configmanager.NewManager()
	kubeFlags := genericclioptions.NewConfigFlags(true)

	cmd := &cobra.Command{
		Use:          "kwatch <resource> [name]",
		Short:        "Watch Kubernetes resources and diff every change",
		Long:         longDescription,
		Args:         cobra.RangeArgs(1, 2), //nolint:mnd // resource and optional name
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	kubeFlags.AddFlags(cmd.Flags())
	manager.AddFlags(cmd.Flags())

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return manager.BindFlags(cmd.Flags())
	}

	cmd.RunE = di.RunEWithRuntime(runtime, func(cmd *cobra.Command, injector di.Injector) error {
		config, err := manager.Load(cmd.Flags().Args())
		if err != nil {
			return err
		}

		return runWatch(cmd, injector, config, kubeFlags)
	})

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
