package watch_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/kwatch/pkg/cli/ui/watch"
	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	"github.com/devantler-tech/kwatch/pkg/svc/session"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

var referenceTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

var errBroken = errors.New("renderer broken")

type failingDiffer struct{}

func (failingDiffer) Render(_, _ *unstructured.Unstructured) (diff.Result, error) {
	return diff.Result{}, errBroken
}

func snapshot(name, resourceVersion, value string) store.Snapshot {
	obj := &unstructured.Unstructured{}
	obj.SetAPIVersion("v1")
	obj.SetKind("ConfigMap")
	obj.SetNamespace("default")
	obj.SetName(name)
	obj.SetResourceVersion(resourceVersion)
	obj.SetCreationTimestamp(metav1.NewTime(referenceTime.Add(-time.Hour)))
	obj.Object["data"] = map[string]any{"key": value}

	return store.NewSnapshot(obj)
}

func newDispatcher(t *testing.T) *diff.Dispatcher {
	t.Helper()

	renderer, err := diff.NewRenderer(diff.BackendStructural, diff.RendererOptions{
		Display: diff.DisplayOptions{Width: 100, SideBySide: true},
	})
	require.NoError(t, err)

	dispatcher, err := diff.NewDispatcher(diff.Config{Renderer: renderer})
	require.NoError(t, err)

	return dispatcher
}

// newModel returns a model whose channel already holds snapshots and is
// closed afterwards.
func newModel(t *testing.T, differ session.Differ, snapshots ...store.Snapshot) *watch.Model {
	t.Helper()

	return newModelWithClipboard(t, differ, func(string) error { return nil }, snapshots...)
}

func newModelWithClipboard(
	t *testing.T,
	differ session.Differ,
	copyText func(string) error,
	snapshots ...store.Snapshot,
) *watch.Model {
	t.Helper()

	channel := make(chan store.Snapshot, len(snapshots))
	for _, item := range snapshots {
		channel <- item
	}

	close(channel)

	controller := session.NewController(store.New(), differ)
	model := watch.New(controller, channel, watch.Options{
		Title:     "configmaps (v1) in namespace default",
		Now:       func() time.Time { return referenceTime },
		Clipboard: copyText,
	})

	model.Update(tea.WindowSizeMsg{Width: 160, Height: 50})

	return model
}

// drain delivers every queued snapshot plus the close notification.
func drain(model *watch.Model, count int) {
	for range count + 1 {
		model.Update(model.Init()())
	}
}

func press(model *watch.Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := model.Update(msg)

	return cmd
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestModelListsIngestedSnapshots(t *testing.T) {
	t.Parallel()

	model := newModel(t, newDispatcher(t),
		snapshot("settings", "11", "a"),
		snapshot("other", "12", "b"),
	)
	drain(model, 2)

	controller := model.Controller()
	assert.Equal(t, 2, controller.Len())
	assert.Equal(t, -1, controller.SelectedIndex())

	view := model.View()
	assert.Contains(t, view, "Resources")
	assert.Contains(t, view, "settings")
	assert.Contains(t, view, "other")
	assert.Contains(t, view, "60m")
	assert.Contains(t, view, "2 objects")
	assert.Contains(t, view, "Overview")
	assert.Contains(t, view, "feed closed")
	assert.Contains(t, view, "select a resource")
}

func TestModelNavigation(t *testing.T) {
	t.Parallel()

	model := newModel(t, newDispatcher(t),
		snapshot("settings", "1", "old"),
		snapshot("other", "2", "x"),
		snapshot("settings", "3", "new"),
	)
	drain(model, 3)

	controller := model.Controller()

	require.Nil(t, press(model, runes("j")))
	assert.Equal(t, 0, controller.SelectedIndex())

	press(model, tea.KeyMsg{Type: tea.KeyDown})
	press(model, runes("j"))
	assert.Equal(t, 2, controller.SelectedIndex())
	assert.Contains(t, model.View(), "key: new")

	press(model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.ModeDrilldown, controller.Mode())
	assert.Equal(t, 2, controller.Len())
	assert.Contains(t, model.View(), "default/settings")

	press(model, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, session.ScrollStep, controller.Scroll())

	press(model, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, controller.Scroll())

	press(model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, session.ModeOverview, controller.Mode())
	assert.Equal(t, 3, controller.Len())
}

func TestModelQuit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "q", key: runes("q")},
		{name: "ctrl+c", key: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			model := newModel(t, newDispatcher(t))

			cmd := press(model, testCase.key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			require.NoError(t, model.Err())
			assert.Empty(t, model.View())
		})
	}
}

func TestModelStopsOnRenderFailure(t *testing.T) {
	t.Parallel()

	model := newModel(t, failingDiffer{}, snapshot("settings", "1", "a"))
	drain(model, 1)

	cmd := press(model, runes("j"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	require.ErrorIs(t, model.Err(), errBroken)
	assert.Contains(t, model.View(), "renderer broken")
}

func TestModelToggleHelp(t *testing.T) {
	t.Parallel()

	model := newModel(t, newDispatcher(t))

	assert.NotContains(t, model.View(), "scroll diff down")

	require.Nil(t, press(model, runes("?")))
	assert.Contains(t, model.View(), "scroll diff down")

	press(model, runes("?"))
	assert.NotContains(t, model.View(), "scroll diff down")
}

func TestModelIgnoresUnboundKeys(t *testing.T) {
	t.Parallel()

	model := newModel(t, newDispatcher(t), snapshot("settings", "1", "a"))
	drain(model, 1)

	require.Nil(t, press(model, runes("x")))
	assert.Equal(t, -1, model.Controller().SelectedIndex())
}

func TestModelCopiesNewerVersion(t *testing.T) {
	t.Parallel()

	var copied []string

	model := newModelWithClipboard(t, newDispatcher(t), func(text string) error {
		copied = append(copied, text)

		return nil
	}, snapshot("settings", "1", "old"), snapshot("settings", "2", "new"))
	drain(model, 2)

	require.Nil(t, press(model, runes("y")), "nothing to copy without a selection")
	assert.Empty(t, copied)

	press(model, runes("j"))
	press(model, runes("j"))

	require.NotNil(t, press(model, runes("y")))
	require.Len(t, copied, 1)
	assert.Contains(t, copied[0], "key: new")
	assert.NotContains(t, copied[0], "\x1b[")
	assert.Contains(t, model.View(), "copied")
}

func TestModelReportsClipboardFailure(t *testing.T) {
	t.Parallel()

	model := newModelWithClipboard(t, newDispatcher(t), func(string) error {
		return errBroken
	}, snapshot("settings", "1", "a"))
	drain(model, 1)

	press(model, runes("j"))

	require.NotNil(t, press(model, runes("y")))
	require.NoError(t, model.Err())
	assert.Contains(t, model.View(), "copy failed")
}

func TestModelNumbersRowsFromOne(t *testing.T) {
	t.Parallel()

	model := newModel(t, newDispatcher(t), snapshot("settings", "11", "a"))
	drain(model, 1)

	row := ""

	for line := range strings.SplitSeq(model.View(), "\n") {
		if strings.Contains(line, "settings") {
			row = line

			break
		}
	}

	require.NotEmpty(t, row)
	assert.Equal(t, []string{"1", "default", "settings", "60m", "11"}, strings.Fields(strings.Trim(row, "│ ")))
}

func TestModelSizesDiffToPanes(t *testing.T) {
	t.Parallel()

	model := newModel(t, newDispatcher(t), snapshot("settings", "1", strings.Repeat("word ", 60)))
	drain(model, 1)
	press(model, runes("j"))

	widest := func() int {
		width := 0
		for line := range strings.SplitSeq(model.Controller().Panes().Right, "\n") {
			width = max(width, lipgloss.Width(line))
		}

		return width
	}

	// 160 columns leave 78 for the content of each box.
	assert.LessOrEqual(t, widest(), 78)
	assert.Greater(t, widest(), 68)

	model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.LessOrEqual(t, widest(), 48)
	assert.Greater(t, widest(), 38)
	assert.Equal(t, 0, model.Controller().SelectedIndex())
}
