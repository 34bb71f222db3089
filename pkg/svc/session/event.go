package session

import (
	"errors"

	"github.com/devantler-tech/kwatch/pkg/svc/store"
)

// ErrQuit is returned by Handle when the operator asked to quit.
var ErrQuit = errors.New("quit requested")

// Action is an operator command decoded from a key press.
type Action int

const (
	// ActionNone is ignored.
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionEnter
	ActionEscape
	ActionScrollUp
	ActionScrollDown
	ActionScrollHome
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionNext:       "next",
	ActionPrevious:   "previous",
	ActionEnter:      "enter",
	ActionEscape:     "escape",
	ActionScrollUp:   "scroll-up",
	ActionScrollDown: "scroll-down",
	ActionScrollHome: "scroll-home",
	ActionQuit:       "quit",
}

// String returns the name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}

// Event is one input of the session loop.
type Event interface {
	isEvent()
}

// SnapshotEvent carries a snapshot from the ingestion bridge.
type SnapshotEvent struct {
	Snapshot store.Snapshot
}

// KeyEvent carries an operator action.
type KeyEvent struct {
	Action Action
}

func (SnapshotEvent) isEvent() {}
func (KeyEvent) isEvent()      {}

// Handle applies one event. It returns ErrQuit for ActionQuit and any
// render failure of the transition.
func (c *Controller) Handle(event Event) error {
	switch event := event.(type) {
	case SnapshotEvent:
		c.Ingest(event.Snapshot)

		return nil
	case KeyEvent:
		return c.apply(event.Action)
	default:
		return nil
	}
}

func (c *Controller) apply(action Action) error {
	switch action {
	case ActionNext:
		return c.SelectNext()
	case ActionPrevious:
		return c.SelectPrevious()
	case ActionEnter:
		return c.Enter()
	case ActionEscape:
		return c.Escape()
	case ActionScrollUp:
		c.ScrollUp()
	case ActionScrollDown:
		c.ScrollDown()
	case ActionScrollHome:
		c.ScrollHome()
	case ActionQuit:
		return ErrQuit
	case ActionNone:
	}

	return nil
}
