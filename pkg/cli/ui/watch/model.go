package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/devantler-tech/kwatch/pkg/svc/session"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"github.com/sirupsen/logrus"
)

// snapshotMsg delivers one snapshot from the ingestion channel.
type snapshotMsg struct {
	snapshot store.Snapshot
}

// feedClosedMsg reports that the ingestion channel was closed.
type feedClosedMsg struct{}

// copyFeedbackClearMsg hides the copy result in the status line.
type copyFeedbackClearMsg struct{}

const copyFeedbackDuration = 1500 * time.Millisecond

// Options configures a Model.
type Options struct {
	// Title names the watched resource in the status line.
	Title string
	// Now returns the current time for ages; defaults to time.Now.
	Now func() time.Time
	// Clipboard receives copied text; defaults to the system clipboard.
	Clipboard func(text string) error
}

// Model is the bubbletea model of the interactive watch. Snapshots and key
// presses are both applied inside Update, so the session controller only
// ever runs on the program goroutine.
type Model struct {
	controller *session.Controller
	snapshots  <-chan store.Snapshot
	keys       KeyMap
	help       help.Model
	table      table.Model
	title      string
	now        func() time.Time
	clipboard  func(text string) error

	width        int
	height       int
	feedClosed   bool
	copyFeedback string
	quitting     bool
	err          error
}

// New creates the view of controller fed from snapshots.
func New(
	controller *session.Controller,
	snapshots <-chan store.Snapshot,
	opts Options,
) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	model := &Model{
		controller: controller,
		snapshots:  snapshots,
		keys:       DefaultKeyMap(),
		help:       newHelpModel(),
		title:      opts.Title,
		now:        now,
		clipboard:  copyText,
		width:      defaultWidth,
		height:     defaultHeight,
	}

	model.table = table.New(
		table.WithColumns(columns(model.width)),
		table.WithHeight(tableRows),
		table.WithFocused(false),
		table.WithStyles(tableStyles(false)),
	)

	return model
}

// Err returns the failure that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Controller returns the session controller driven by the view.
func (m *Model) Controller() *session.Controller {
	return m.controller
}

// Init starts listening for snapshots.
func (m *Model) Init() tea.Cmd {
	return m.waitForSnapshot()
}

// Update applies one message to the session.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width))
		m.help.Width = m.width

		return m, m.settle(m.controller.Resize(paneWidth(m.width)))
	case tea.KeyMsg:
		return m.handleKey(msg)
	case snapshotMsg:
		return m, tea.Batch(m.handle(session.SnapshotEvent{Snapshot: msg.snapshot}), m.waitForSnapshot())
	case feedClosedMsg:
		m.feedClosed = true
		logrus.Debug("snapshot channel closed")

		return m, nil
	case copyFeedbackClearMsg:
		m.copyFeedback = ""

		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ToggleHelp) {
		m.help.ShowAll = !m.help.ShowAll

		return m, nil
	}

	if key.Matches(msg, m.keys.Copy) {
		return m, m.copyNewer()
	}

	return m, m.handle(session.KeyEvent{Action: m.keys.action(msg)})
}

// copyNewer puts the newer diff pane, without styling, on the clipboard.
func (m *Model) copyNewer() tea.Cmd {
	panes := m.controller.Panes()
	if panes.Empty() {
		return nil
	}

	m.copyFeedback = "copied"

	err := m.clipboard(ansi.Strip(panes.Right))
	if err != nil {
		logrus.WithError(err).Debug("clipboard unavailable")

		m.copyFeedback = "copy failed"
	}

	return tea.Tick(copyFeedbackDuration, func(time.Time) tea.Msg {
		return copyFeedbackClearMsg{}
	})
}

// handle applies an event to the controller and refreshes the table.
func (m *Model) handle(event session.Event) tea.Cmd {
	return m.settle(m.controller.Handle(event))
}

// settle quits on a failed or quitting transition and refreshes the table
// otherwise.
func (m *Model) settle(err error) tea.Cmd {
	switch {
	case errors.Is(err, session.ErrQuit):
		m.quitting = true

		return tea.Quit
	case err != nil:
		m.err = err
		m.quitting = true

		return tea.Quit
	}

	m.refreshTable()

	return nil
}

// waitForSnapshot blocks on the ingestion channel. It is re-armed after
// every snapshot.
func (m *Model) waitForSnapshot() tea.Cmd {
	snapshots := m.snapshots

	return func() tea.Msg {
		snapshot, ok := <-snapshots
		if !ok {
			return feedClosedMsg{}
		}

		return snapshotMsg{snapshot: snapshot}
	}
}

// Run starts the program and blocks until the operator quits, the context
// is cancelled or a transition fails.
func Run(ctx context.Context, model *Model) error {
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := program.Run()
	if err != nil {
		// The owner of ctx reports why it was cancelled.
		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("running watch program: %w", err)
	}

	return model.Err()
}
