package errorhandler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/kwatch/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/kwatch/pkg/k8s"
	"github.com/devantler-tech/kwatch/pkg/k8s/catalog"
	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	"github.com/devantler-tech/kwatch/pkg/svc/watch"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBoom   = errors.New("boom")
	errBroken = errors.New("connection reset")
)

func TestExecutorExecuteSuccess(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:  "test",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.SetArgs([]string{})

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
	require.NoError(t, errorhandler.NewExecutor().Execute(nil))
}

func TestExecutorExecuteUnknownFlag(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:  "kwatch",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.SetArgs([]string{"--bogus"})

	err := errorhandler.NewExecutor().Execute(cmd)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "unknown flag: --bogus")
	assert.NotContains(t, err.Error(), "Error: ")
}

func TestCommandErrorWrapsCause(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:           "kwatch",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return &diff.RenderError{Code: 3, Err: errBoom}
		},
	}
	cmd.SetArgs([]string{})

	err := errorhandler.NewExecutor().Execute(cmd)

	var cmdErr *errorhandler.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, cmdErr.ExitCode())
	assert.Equal(t, "diff renderer exited with code 3: boom", cmdErr.Error())

	var nilErr *errorhandler.CommandError
	require.NoError(t, nilErr.Unwrap())
	assert.Empty(t, nilErr.Error())
	assert.Equal(t, errorhandler.ExitOK, nilErr.ExitCode())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", want: 0},
		{name: "generic", err: errBoom, want: 1},
		{name: "discovery", err: &catalog.DiscoveryError{Group: "apps", Err: errBroken}, want: 1},
		{name: "resolution", err: &catalog.ResolutionError{Token: "gizmos"}, want: 1},
		{name: "scope", err: &k8s.ScopeMismatchError{Resource: "nodes", Namespace: "x"}, want: 1},
		{name: "transport", err: &watch.TransportError{Resource: "pods", Err: errBroken}, want: 1},
		{name: "render", err: &diff.RenderError{Code: 2, Err: errBoom}, want: 2},
		{
			name: "wrapped render",
			err:  fmt.Errorf("session: %w", &diff.RenderError{Code: 7}),
			want: 7,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, errorhandler.ExitCode(testCase.err))
		})
	}
}

func TestDefaultNormalizerNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "blank", input: "   \n\t  ", want: ""},
		{name: "strips prefix", input: "  Error: something bad \nRun help\n", want: "something bad\nRun help"},
		{name: "no prefix", input: "plain", want: "plain"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, errorhandler.DefaultNormalizer{}.Normalize(testCase.input))
		})
	}
}
