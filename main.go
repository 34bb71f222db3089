// Package main is the entry point for kwatch.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/devantler-tech/kwatch/internal/buildmeta"
	"github.com/devantler-tech/kwatch/pkg/cli/cmd"
	"github.com/devantler-tech/kwatch/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/kwatch/pkg/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.WriteMessage(notify.Message{
				Level:   notify.LevelError,
				Content: fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack()),
				Writer:  errWriter,
			})

			exitCode = errorhandler.ExitFailure
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetContext(ctx)

	err := cmd.Execute(rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return errorhandler.ExitCode(err)
	}

	return errorhandler.ExitOK
}
