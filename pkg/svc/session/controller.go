package session

import (
	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ScrollStep is the number of lines one scroll action moves the diff panes.
const ScrollStep = 5

// Mode is the view mode of a session.
type Mode int

const (
	// ModeOverview lists every ingested snapshot in arrival order.
	ModeOverview Mode = iota
	// ModeDrilldown lists the history of a single identity.
	ModeDrilldown
)

// String returns the display name of the mode.
func (m Mode) String() string {
	if m == ModeDrilldown {
		return "drilldown"
	}

	return "overview"
}

// Differ renders the diff between two versions of an object.
// *diff.Dispatcher implements it.
type Differ interface {
	Render(left, right *unstructured.Unstructured) (diff.Result, error)
}

// PaneResizer is implemented by differs whose panes depend on the width
// available to them. *diff.Dispatcher implements it.
type PaneResizer interface {
	SetPaneWidth(width int)
}

// Controller is the state machine behind the interactive view. It owns the
// version store and must only be driven from one goroutine.
type Controller struct {
	store  *store.Store
	differ Differ

	mode     Mode
	target   store.Identity
	visible  []store.Snapshot
	selected int
	scroll   int
	panes    diff.Panes
}

// NewController returns a controller in overview mode with nothing selected.
func NewController(versions *store.Store, differ Differ) *Controller {
	return &Controller{
		store:    versions,
		differ:   differ,
		selected: -1,
	}
}

// Mode returns the current view mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Target returns the identity being drilled into.
func (c *Controller) Target() (store.Identity, bool) {
	return c.target, c.mode == ModeDrilldown
}

// Visible returns a copy of the listed snapshots.
func (c *Controller) Visible() []store.Snapshot {
	out := make([]store.Snapshot, len(c.visible))
	copy(out, c.visible)

	return out
}

// Len returns the number of listed snapshots.
func (c *Controller) Len() int {
	return len(c.visible)
}

// SelectedIndex returns the selected position in the visible list, or -1.
func (c *Controller) SelectedIndex() int {
	return c.selected
}

// Selected returns the selected snapshot.
func (c *Controller) Selected() (store.Snapshot, bool) {
	if c.selected < 0 || c.selected >= len(c.visible) {
		return store.Snapshot{}, false
	}

	return c.visible[c.selected], true
}

// Scroll returns the line offset of the diff panes.
func (c *Controller) Scroll() int {
	return c.scroll
}

// Panes returns the diff of the selected snapshot against its predecessor.
func (c *Controller) Panes() diff.Panes {
	return c.panes
}

// Store returns the version store fed by Ingest.
func (c *Controller) Store() *store.Store {
	return c.store
}

// Ingest records a snapshot. It is listed when it belongs to the current
// view; the selection never moves.
func (c *Controller) Ingest(snapshot store.Snapshot) {
	c.store.Insert(snapshot)

	if c.mode == ModeOverview || snapshot.Identity == c.target {
		c.visible = append(c.visible, snapshot)
	}
}

// SelectNext moves the selection down, wrapping to the top.
func (c *Controller) SelectNext() error {
	if len(c.visible) == 0 {
		return nil
	}

	next := 0
	if c.selected >= 0 && c.selected < len(c.visible)-1 {
		next = c.selected + 1
	}

	return c.selectAt(next)
}

// SelectPrevious moves the selection up, wrapping to the bottom.
func (c *Controller) SelectPrevious() error {
	if len(c.visible) == 0 {
		return nil
	}

	previous := 0

	switch {
	case c.selected == 0:
		previous = len(c.visible) - 1
	case c.selected > 0:
		previous = c.selected - 1
	}

	return c.selectAt(previous)
}

// Enter drills into the identity of the selected snapshot. Nothing happens
// without a selection or when already drilled into that identity.
func (c *Controller) Enter() error {
	selected, ok := c.Selected()
	if !ok {
		return nil
	}

	if c.mode == ModeDrilldown && c.target == selected.Identity {
		return nil
	}

	c.mode = ModeDrilldown
	c.target = selected.Identity
	c.visible = c.store.History(selected.Identity)

	index, found := c.store.IndexOf(selected)
	if !found {
		index = 0
	}

	return c.selectAt(index)
}

// Escape returns from a drill-down to the overview and selects the same
// version there.
func (c *Controller) Escape() error {
	if c.mode != ModeDrilldown {
		return nil
	}

	selected, hadSelection := c.Selected()

	c.mode = ModeOverview
	c.target = store.Identity{}
	c.visible = c.store.All()

	if !hadSelection {
		c.selected = -1
		c.panes = diff.Panes{}

		return nil
	}

	// A relist can deliver the same version again; the latest copy wins.
	index := 0

	for position, snapshot := range c.visible {
		if snapshot.SameVersion(selected) {
			index = position
		}
	}

	return c.selectAt(index)
}

// ScrollUp moves the diff panes up, stopping at the first line.
func (c *Controller) ScrollUp() {
	c.scroll = max(c.scroll-ScrollStep, 0)
}

// ScrollDown moves the diff panes down.
func (c *Controller) ScrollDown() {
	c.scroll += ScrollStep
}

// ScrollHome resets the diff panes to the first line.
func (c *Controller) ScrollHome() {
	c.scroll = 0
}

// Resize re-renders the selected diff for panes of width columns. Differs
// that are not a PaneResizer keep their size.
func (c *Controller) Resize(width int) error {
	resizer, ok := c.differ.(PaneResizer)
	if !ok {
		return nil
	}

	resizer.SetPaneWidth(width)

	if c.selected < 0 {
		return nil
	}

	scroll := c.scroll
	err := c.selectAt(c.selected)
	c.scroll = scroll

	return err
}

// selectAt selects index and recomputes the panes against the stored
// predecessor of the selected version.
func (c *Controller) selectAt(index int) error {
	c.selected = index
	c.scroll = 0

	selected := c.visible[index]

	var previous *unstructured.Unstructured
	if sibling, ok := c.store.Sibling(selected); ok {
		previous = sibling.Object
	}

	result, err := c.differ.Render(previous, selected.Object)
	c.panes = result.Panes

	if err != nil {
		return err
	}

	return nil
}
