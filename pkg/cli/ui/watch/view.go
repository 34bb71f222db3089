package watch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/kwatch/pkg/svc/session"
	"github.com/devantler-tech/kwatch/pkg/svc/stream"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultWidth  = 120
	defaultHeight = 40
	tableRows     = 10
	minPaneRows   = 3

	// boxChrome is the width taken by a rounded border plus padding.
	boxChrome = 4

	// fixedRows is the height taken by everything except the diff panes.
	fixedRows = tableRows + 10
)

// column width percentages for ID, NAMESPACE, NAME, AGE and REV.
var columnShares = []int{5, 30, 30, 20, 15}

// columns sizes the table columns to the available width.
func columns(width int) []table.Column {
	inner := max(width-boxChrome, len(columnShares))
	titles := []string{"ID", "NAMESPACE", "NAME", "AGE", "REV"}

	out := make([]table.Column, len(titles))
	for i, title := range titles {
		out[i] = table.Column{Title: title, Width: max(inner*columnShares[i]/100-1, 1)}
	}

	return out
}

// refreshTable rebuilds the rows from the visible snapshots.
func (m *Model) refreshTable() {
	visible := m.controller.Visible()
	now := m.now()

	rows := make([]table.Row, len(visible))
	for i, snapshot := range visible {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			snapshot.Identity.Namespace,
			snapshot.Identity.Name,
			stream.Age(snapshot, now),
			snapshot.ResourceVersion,
		}
	}

	m.table.SetRows(rows)

	selected := m.controller.SelectedIndex()
	m.table.SetStyles(tableStyles(selected >= 0))

	if selected >= 0 {
		m.table.SetCursor(selected)
	}
}

// View renders the table, status line, diff panes and help footer.
func (m *Model) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render("Error: "+m.err.Error()) + "\n"
		}

		return ""
	}

	sections := []string{
		m.renderTable(),
		m.renderStatus(),
		m.renderPanes(),
		m.help.View(m.keys),
	}

	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(sections, "\n"))
}

func (m *Model) renderTable() string {
	title := titleStyle.Render("Resources")

	return boxStyle.
		Width(max(m.width-2, 0)).
		Render(title + "\n" + m.table.View())
}

func (m *Model) renderStatus() string {
	parts := []string{
		"mode " + statusValueStyle.Render(cases.Title(language.English).String(m.controller.Mode().String())),
	}

	if target, ok := m.controller.Target(); ok {
		parts = append(parts, "object "+statusValueStyle.Render(target.String()))
	} else if m.title != "" {
		parts = append(parts, "watching "+statusValueStyle.Render(m.title))
	}

	parts = append(parts,
		fmt.Sprintf("%s listed", statusValueStyle.Render(strconv.Itoa(m.controller.Len()))),
		fmt.Sprintf("%s objects", statusValueStyle.Render(strconv.Itoa(m.controller.Store().Identities()))),
		fmt.Sprintf("%s versions", statusValueStyle.Render(strconv.Itoa(m.controller.Store().Len()))),
	)

	if m.feedClosed {
		parts = append(parts, "feed closed")
	}

	if m.copyFeedback != "" {
		parts = append(parts, statusValueStyle.Render(m.copyFeedback))
	}

	return statusStyle.Render(" " + strings.Join(parts, " · "))
}

// renderPanes draws the two diff panes. The scroll offset applies to both.
func (m *Model) renderPanes() string {
	rows := max(m.height-fixedRows, minPaneRows)
	width := paneWidth(m.width)

	panes := m.controller.Panes()
	if panes.Empty() {
		hint := "select a resource with j/k to see its changes"
		if m.controller.Mode() == session.ModeDrilldown {
			hint = "select a version with j/k to see its changes"
		}

		return boxStyle.
			Width(max(m.width-2, 0)).
			Height(rows).
			Render(placeholderStyle.Render(hint))
	}

	left := boxStyle.Width(width).Height(rows).
		Render(window(panes.Left, m.controller.Scroll(), rows))
	right := boxStyle.Width(width).Height(rows).
		Render(window(panes.Right, m.controller.Scroll(), rows))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// paneWidth is the content width of one of the two diff boxes.
func paneWidth(width int) int {
	return max(width/2-2, 1) //nolint:mnd // two boxes, each with a border
}

// window returns at most rows lines of text starting at offset.
func window(text string, offset, rows int) string {
	lines := strings.Split(text, "\n")
	if offset >= len(lines) {
		return ""
	}

	end := min(offset+rows, len(lines))

	return strings.Join(lines[offset:end], "\n")
}
