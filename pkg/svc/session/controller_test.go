package session_test

import (
	"errors"
	"testing"

	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	"github.com/devantler-tech/kwatch/pkg/svc/session"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

var errRenderFailed = errors.New("render failed")

// recordingDiffer remembers the resource versions of the last rendered pair.
type recordingDiffer struct {
	left, right string
	calls       int
	err         error
}

func (d *recordingDiffer) Render(left, right *unstructured.Unstructured) (diff.Result, error) {
	d.calls++
	d.left = ""

	if left != nil {
		d.left = left.GetName() + "@" + left.GetResourceVersion()
	}

	d.right = right.GetName() + "@" + right.GetResourceVersion()

	result := diff.Result{
		ExitCode: diff.ExitDifferent,
		Panes:    diff.Panes{Left: d.left, Right: d.right},
	}

	return result, d.err
}

func snapshot(name, resourceVersion string) store.Snapshot {
	obj := &unstructured.Unstructured{}
	obj.SetAPIVersion("v1")
	obj.SetKind("ConfigMap")
	obj.SetNamespace("default")
	obj.SetName(name)
	obj.SetResourceVersion(resourceVersion)

	return store.NewSnapshot(obj)
}

func newController(snapshots ...store.Snapshot) (*session.Controller, *recordingDiffer) {
	differ := &recordingDiffer{}
	controller := session.NewController(store.New(), differ)

	for _, item := range snapshots {
		controller.Ingest(item)
	}

	return controller, differ
}

func selectedVersion(t *testing.T, controller *session.Controller) string {
	t.Helper()

	selected, ok := controller.Selected()
	require.True(t, ok, "expected a selection")

	return selected.Identity.Name + "@" + selected.ResourceVersion
}

func TestNewControllerStartsInOverviewWithoutSelection(t *testing.T) {
	t.Parallel()

	controller, differ := newController()

	assert.Equal(t, session.ModeOverview, controller.Mode())
	assert.Equal(t, -1, controller.SelectedIndex())
	assert.True(t, controller.Panes().Empty())

	_, drilling := controller.Target()
	assert.False(t, drilling)

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.SelectPrevious())
	require.NoError(t, controller.Enter())
	require.NoError(t, controller.Escape())
	assert.Equal(t, -1, controller.SelectedIndex())
	assert.Zero(t, differ.calls)
}

func TestIngestNeverMovesSelection(t *testing.T) {
	t.Parallel()

	controller, _ := newController(snapshot("a", "1"))

	require.NoError(t, controller.SelectNext())
	controller.Ingest(snapshot("b", "2"))
	controller.Ingest(snapshot("c", "3"))

	assert.Equal(t, 0, controller.SelectedIndex())
	assert.Equal(t, 3, controller.Len())
	assert.Equal(t, 3, controller.Store().Len())
}

func TestSelectionWraps(t *testing.T) {
	t.Parallel()

	controller, _ := newController(snapshot("a", "1"), snapshot("b", "2"), snapshot("c", "3"))

	require.NoError(t, controller.SelectNext())
	assert.Equal(t, 0, controller.SelectedIndex())

	require.NoError(t, controller.SelectPrevious())
	assert.Equal(t, 2, controller.SelectedIndex(), "previous from the first item wraps to the last")

	require.NoError(t, controller.SelectNext())
	assert.Equal(t, 0, controller.SelectedIndex(), "next from the last item wraps to the first")

	require.NoError(t, controller.SelectNext())
	assert.Equal(t, 1, controller.SelectedIndex())
}

func TestSelectionDiffsAgainstStoredSibling(t *testing.T) {
	t.Parallel()

	controller, differ := newController(
		snapshot("a", "1"),
		snapshot("b", "2"),
		snapshot("a", "3"),
	)

	require.NoError(t, controller.SelectPrevious())
	require.NoError(t, controller.SelectPrevious())

	assert.Equal(t, "a@3", selectedVersion(t, controller))
	assert.Equal(t, "a@1", differ.left, "the predecessor comes from the store, not the list")
	assert.Equal(t, "a@3", differ.right)

	require.NoError(t, controller.SelectPrevious())
	assert.Equal(t, "b@2", selectedVersion(t, controller))
	assert.Empty(t, differ.left, "a first version has no predecessor")
}

func TestSelectionResetsScroll(t *testing.T) {
	t.Parallel()

	controller, _ := newController(snapshot("a", "1"), snapshot("b", "2"))

	require.NoError(t, controller.SelectNext())
	controller.ScrollDown()
	controller.ScrollDown()
	assert.Equal(t, 2*session.ScrollStep, controller.Scroll())

	require.NoError(t, controller.SelectNext())
	assert.Zero(t, controller.Scroll())
}

func TestScrollClampsAtZero(t *testing.T) {
	t.Parallel()

	controller, differ := newController(snapshot("a", "1"))

	require.NoError(t, controller.SelectNext())

	calls := differ.calls

	controller.ScrollDown()
	controller.ScrollUp()
	controller.ScrollUp()
	assert.Zero(t, controller.Scroll())

	controller.ScrollDown()
	controller.ScrollDown()
	controller.ScrollHome()
	assert.Zero(t, controller.Scroll())

	assert.Equal(t, 0, controller.SelectedIndex())
	assert.Equal(t, calls, differ.calls, "scrolling never recomputes the diff")
}

func TestEnterAndEscapeRestoreSelection(t *testing.T) {
	t.Parallel()

	controller, differ := newController(
		snapshot("a", "1"),
		snapshot("a", "2"),
		snapshot("b", "1"),
	)

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.SelectNext())
	assert.Equal(t, "a@2", selectedVersion(t, controller))

	require.NoError(t, controller.Enter())

	target, drilling := controller.Target()
	require.True(t, drilling)
	assert.Equal(t, session.ModeDrilldown, controller.Mode())
	assert.Equal(t, store.Identity{Namespace: "default", Name: "a"}, target)
	assert.Equal(t, 2, controller.Len())
	assert.Equal(t, 1, controller.SelectedIndex())
	assert.Equal(t, "a@1", differ.left)
	assert.Equal(t, "a@2", differ.right)

	require.NoError(t, controller.Escape())

	assert.Equal(t, session.ModeOverview, controller.Mode())
	assert.Equal(t, 3, controller.Len())
	assert.Equal(t, "a@2", selectedVersion(t, controller))
	assert.Equal(t, 1, controller.SelectedIndex())
}

func TestEscapeRelocatesByVersionNotPosition(t *testing.T) {
	t.Parallel()

	controller, _ := newController(
		snapshot("a", "1"),
		snapshot("b", "2"),
		snapshot("a", "3"),
		snapshot("c", "4"),
		snapshot("c", "5"),
	)

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.SelectNext())
	assert.Equal(t, "a@3", selectedVersion(t, controller))

	require.NoError(t, controller.Enter())
	assert.Equal(t, 1, controller.SelectedIndex())

	require.NoError(t, controller.Escape())
	assert.Equal(t, 2, controller.SelectedIndex())
	assert.Equal(t, "a@3", selectedVersion(t, controller))
}

func TestDrilldownIngestFiltersOtherIdentities(t *testing.T) {
	t.Parallel()

	controller, _ := newController(snapshot("a", "1"), snapshot("b", "2"))

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.Enter())

	controller.Ingest(snapshot("b", "3"))
	controller.Ingest(snapshot("a", "4"))

	assert.Equal(t, 2, controller.Len())
	assert.Equal(t, 0, controller.SelectedIndex())
	assert.Equal(t, 4, controller.Store().Len())

	require.NoError(t, controller.Escape())
	assert.Equal(t, 4, controller.Len())
	assert.Equal(t, "a@1", selectedVersion(t, controller))
}

func TestEnterSameIdentityIsNoop(t *testing.T) {
	t.Parallel()

	controller, differ := newController(snapshot("a", "1"), snapshot("a", "2"))

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.Enter())

	calls := differ.calls

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.Enter())

	assert.Equal(t, session.ModeDrilldown, controller.Mode())
	assert.Equal(t, 1, controller.SelectedIndex())
	assert.Equal(t, calls+1, differ.calls)
}

func TestEscapeOutsideDrilldownIsNoop(t *testing.T) {
	t.Parallel()

	controller, differ := newController(snapshot("a", "1"))

	require.NoError(t, controller.SelectNext())

	calls := differ.calls

	require.NoError(t, controller.Escape())
	assert.Equal(t, session.ModeOverview, controller.Mode())
	assert.Equal(t, calls, differ.calls)
}

func TestRenderFailureIsReturned(t *testing.T) {
	t.Parallel()

	controller, differ := newController(snapshot("a", "1"))
	differ.err = errRenderFailed

	err := controller.SelectNext()

	require.ErrorIs(t, err, errRenderFailed)
	assert.Equal(t, 0, controller.SelectedIndex())
}

func TestControllerWithStructuralDispatcher(t *testing.T) {
	t.Parallel()

	renderer, err := diff.NewRenderer(diff.BackendStructural, diff.RendererOptions{
		Display: diff.DisplayOptions{Width: 80, TabSize: diff.DefaultTabSize, SideBySide: true},
	})
	require.NoError(t, err)

	dispatcher, err := diff.NewDispatcher(diff.Config{Renderer: renderer})
	require.NoError(t, err)

	controller := session.NewController(store.New(), dispatcher)

	first := snapshot("a", "1")
	first.Object.Object["data"] = map[string]any{"key": "old"}

	second := snapshot("a", "2")
	second.Object.Object["data"] = map[string]any{"key": "new"}

	controller.Ingest(first)
	controller.Ingest(second)

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.SelectNext())

	panes := controller.Panes()
	assert.Contains(t, panes.Left, "key: old")
	assert.Contains(t, panes.Right, "key: new")
	assert.NotContains(t, panes.Left, "kind: ConfigMap")
}

func TestEscapeSelectsLatestCopyOfRedeliveredVersion(t *testing.T) {
	t.Parallel()

	controller, _ := newController(
		snapshot("a", "1"),
		snapshot("b", "2"),
		snapshot("a", "1"),
	)

	require.NoError(t, controller.SelectNext())
	require.NoError(t, controller.Enter())
	require.NoError(t, controller.Escape())

	assert.Equal(t, 2, controller.SelectedIndex())
	assert.Equal(t, "a@1", selectedVersion(t, controller))
}

// resizingDiffer records the pane widths it was given.
type resizingDiffer struct {
	recordingDiffer

	widths []int
}

func (d *resizingDiffer) SetPaneWidth(width int) {
	d.widths = append(d.widths, width)
}

func TestResize(t *testing.T) {
	t.Parallel()

	differ := &resizingDiffer{}
	controller := session.NewController(store.New(), differ)
	controller.Ingest(snapshot("a", "1"))

	require.NoError(t, controller.Resize(40))
	assert.Equal(t, []int{40}, differ.widths)
	assert.Zero(t, differ.calls, "nothing is rendered without a selection")

	require.NoError(t, controller.SelectNext())
	controller.ScrollDown()

	require.NoError(t, controller.Resize(60))
	assert.Equal(t, []int{40, 60}, differ.widths)
	assert.Equal(t, 2, differ.calls)
	assert.Equal(t, session.ScrollStep, controller.Scroll())
	assert.Equal(t, "a@1", differ.right)
}

func TestResizeIgnoresFixedWidthDiffers(t *testing.T) {
	t.Parallel()

	controller, differ := newController(snapshot("a", "1"))
	require.NoError(t, controller.SelectNext())

	require.NoError(t, controller.Resize(40))
	assert.Equal(t, 1, differ.calls)
}
