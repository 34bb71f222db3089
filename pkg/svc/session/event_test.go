package session_test

import (
	"testing"

	"github.com/devantler-tech/kwatch/pkg/svc/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	t.Parallel()

	controller, _ := newController()

	events := []session.Event{
		session.SnapshotEvent{Snapshot: snapshot("a", "1")},
		session.SnapshotEvent{Snapshot: snapshot("a", "2")},
		session.SnapshotEvent{Snapshot: snapshot("b", "1")},
		session.KeyEvent{Action: session.ActionNext},
		session.KeyEvent{Action: session.ActionNext},
		session.KeyEvent{Action: session.ActionEnter},
	}

	for _, event := range events {
		require.NoError(t, controller.Handle(event))
	}

	assert.Equal(t, session.ModeDrilldown, controller.Mode())
	assert.Equal(t, 1, controller.SelectedIndex())

	require.NoError(t, controller.Handle(session.KeyEvent{Action: session.ActionScrollDown}))
	assert.Equal(t, session.ScrollStep, controller.Scroll())

	require.NoError(t, controller.Handle(session.KeyEvent{Action: session.ActionScrollUp}))
	require.NoError(t, controller.Handle(session.KeyEvent{Action: session.ActionScrollHome}))
	require.NoError(t, controller.Handle(session.KeyEvent{Action: session.ActionPrevious}))
	require.NoError(t, controller.Handle(session.KeyEvent{Action: session.ActionNone}))
	require.NoError(t, controller.Handle(session.KeyEvent{Action: session.ActionEscape}))

	assert.Equal(t, session.ModeOverview, controller.Mode())
	assert.Equal(t, "a@1", selectedVersion(t, controller))

	err := controller.Handle(session.KeyEvent{Action: session.ActionQuit})
	require.ErrorIs(t, err, session.ErrQuit)
}

func TestActionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action session.Action
		want   string
	}{
		{action: session.ActionNext, want: "next"},
		{action: session.ActionScrollHome, want: "scroll-home"},
		{action: session.ActionQuit, want: "quit"},
		{action: session.Action(99), want: "unknown"},
	}

	for _, testCase := range tests {
		t.Run(testCase.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, testCase.action.String())
		})
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "overview", session.ModeOverview.String())
	assert.Equal(t, "drilldown", session.ModeDrilldown.String())
}
