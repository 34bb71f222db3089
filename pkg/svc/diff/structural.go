package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// DefaultTabSize matches the tab width most terminals use.
	DefaultTabSize = 8
	// DefaultWidth is used when the terminal width is unknown.
	DefaultWidth = 80
	// contextLines is the number of unchanged lines kept around a change
	// when unchanged lines are suppressed.
	contextLines = 3
	minPaneWidth = 20
	// paneGap separates the two panes when they are printed side by side.
	paneGap = 2
	elisionMark  = "⋮"
)

// DisplayOptions configures the structural renderer. Width is the total
// width of the output; side by side, both panes and the gap between them
// share it.
type DisplayOptions struct {
	Color             bool
	Width             int
	TabSize           int
	SideBySide        bool
	SuppressUnchanged bool
}

// DefaultDisplayOptions returns options for a side-by-side view that hides
// unchanged lines far from any change.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Color:             true,
		Width:             DefaultWidth,
		TabSize:           DefaultTabSize,
		SideBySide:        true,
		SuppressUnchanged: true,
	}
}

// Panes holds the two rendered sides. In inline mode everything is in Left.
type Panes struct {
	Left  string
	Right string
}

// Empty reports whether neither pane has content.
func (p Panes) Empty() bool {
	return p.Left == "" && p.Right == ""
}

type rowKind int

const (
	rowEqual rowKind = iota
	rowChanged
	rowElided
)

// row is one aligned line pair. A side is absent when its pointer is nil.
type row struct {
	kind      rowKind
	left      *numberedLine
	right     *numberedLine
	leftDiff  bool
	rightDiff bool
}

type numberedLine struct {
	number int
	text   string
}

type structuralRenderer struct {
	opts    DisplayOptions
	removed lipgloss.Style
	added   lipgloss.Style
	gutter  lipgloss.Style
}

func newStructuralRenderer(opts DisplayOptions) *structuralRenderer {
	if opts.TabSize <= 0 {
		opts.TabSize = DefaultTabSize
	}

	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}

	renderer := &structuralRenderer{
		opts:    opts,
		removed: lipgloss.NewStyle(),
		added:   lipgloss.NewStyle(),
		gutter:  lipgloss.NewStyle(),
	}

	if opts.Color {
		renderer.removed = renderer.removed.Foreground(lipgloss.ANSIColor(9))
		renderer.added = renderer.added.Foreground(lipgloss.ANSIColor(10))
		renderer.gutter = renderer.gutter.Foreground(lipgloss.ANSIColor(8))
	}

	return renderer
}

func (r *structuralRenderer) Backend() Backend { return BackendStructural }

func (r *structuralRenderer) setPaneWidth(width int) {
	r.opts.Width = 2*width + paneGap
}

func (r *structuralRenderer) needsFiles() bool { return false }

// Render aligns both documents line by line and renders the panes.
func (r *structuralRenderer) Render(minus, plus Document) Result {
	rows, changed := r.align(string(minus.Content), string(plus.Content))
	if r.opts.SuppressUnchanged {
		rows = elide(rows)
	}

	var panes Panes
	if r.opts.SideBySide {
		panes = r.renderSideBySide(rows)
	} else {
		panes = Panes{Left: r.renderInline(rows)}
	}

	result := Result{ExitCode: ExitEqual, Panes: panes}
	if changed {
		result.ExitCode = ExitDifferent
	}

	return result
}

// align runs a line-mode diff and pairs deletions with the insertions that
// follow them so modified lines sit on the same row.
func (r *structuralRenderer) align(before, after string) ([]row, bool) {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lines)

	var (
		rows       []row
		changed    bool
		leftNum    = 1
		rightNum   = 1
		pendingDel []numberedLine
	)

	flush := func() {
		for _, line := range pendingDel {
			rows = append(rows, row{kind: rowChanged, left: &line, leftDiff: true})
		}

		pendingDel = nil
	}

	for _, chunk := range diffs {
		chunkLines := splitLines(chunk.Text)

		switch chunk.Type {
		case diffmatchpatch.DiffEqual:
			flush()

			for _, text := range chunkLines {
				left := numberedLine{number: leftNum, text: text}
				right := numberedLine{number: rightNum, text: text}
				rows = append(rows, row{kind: rowEqual, left: &left, right: &right})
				leftNum++
				rightNum++
			}
		case diffmatchpatch.DiffDelete:
			changed = true

			for _, text := range chunkLines {
				pendingDel = append(pendingDel, numberedLine{number: leftNum, text: text})
				leftNum++
			}
		case diffmatchpatch.DiffInsert:
			changed = true

			for _, text := range chunkLines {
				right := numberedLine{number: rightNum, text: text}
				rightNum++

				if len(pendingDel) > 0 {
					left := pendingDel[0]
					pendingDel = pendingDel[1:]
					rows = append(rows, row{
						kind: rowChanged, left: &left, right: &right, leftDiff: true, rightDiff: true,
					})

					continue
				}

				rows = append(rows, row{kind: rowChanged, right: &right, rightDiff: true})
			}
		}
	}

	flush()

	return rows, changed
}

// elide collapses runs of unchanged rows that are further than contextLines
// from any change into a single marker row.
func elide(rows []row) []row {
	keep := make([]bool, len(rows))

	for index, current := range rows {
		if current.kind != rowChanged {
			continue
		}

		for offset := max(0, index-contextLines); offset <= min(len(rows)-1, index+contextLines); offset++ {
			keep[offset] = true
		}
	}

	out := make([]row, 0, len(rows))
	elided := false

	for index, current := range rows {
		if keep[index] {
			out = append(out, current)
			elided = false

			continue
		}

		if !elided {
			out = append(out, row{kind: rowElided})
			elided = true
		}
	}

	return out
}

func (r *structuralRenderer) renderSideBySide(rows []row) Panes {
	paneWidth := max(minPaneWidth, (r.opts.Width-paneGap)/2)
	gutterWidth := gutterWidthFor(rows)
	textWidth := max(1, paneWidth-gutterWidth-1)

	var left, right []string

	for _, current := range rows {
		if current.kind == rowElided {
			left = append(left, r.gutter.Render(elisionMark))
			right = append(right, r.gutter.Render(elisionMark))

			continue
		}

		leftLines := r.cell(current.left, current.leftDiff, r.removed, gutterWidth, textWidth)
		rightLines := r.cell(current.right, current.rightDiff, r.added, gutterWidth, textWidth)

		height := max(len(leftLines), len(rightLines))
		left = append(left, padLines(leftLines, height)...)
		right = append(right, padLines(rightLines, height)...)
	}

	return Panes{Left: strings.Join(left, "\n"), Right: strings.Join(right, "\n")}
}

func (r *structuralRenderer) renderInline(rows []row) string {
	gutterWidth := gutterWidthFor(rows)
	textWidth := max(1, r.opts.Width-gutterWidth-3)

	var out []string

	for _, current := range rows {
		switch {
		case current.kind == rowElided:
			out = append(out, r.gutter.Render(elisionMark))
		case current.kind == rowEqual:
			out = append(out, prefixLines(" ", r.cell(current.right, false, r.added, gutterWidth, textWidth))...)
		default:
			if current.left != nil {
				out = append(out, prefixLines("-", r.cell(current.left, true, r.removed, gutterWidth, textWidth))...)
			}

			if current.right != nil {
				out = append(out, prefixLines("+", r.cell(current.right, true, r.added, gutterWidth, textWidth))...)
			}
		}
	}

	return strings.Join(out, "\n")
}

// cell renders one side of a row, wrapping long lines below a blank gutter.
func (r *structuralRenderer) cell(
	line *numberedLine,
	highlighted bool,
	style lipgloss.Style,
	gutterWidth, textWidth int,
) []string {
	if line == nil {
		return nil
	}

	text := strings.ReplaceAll(line.text, "\t", strings.Repeat(" ", r.opts.TabSize))
	wrapped := strings.Split(wordwrap.WrapString(text, uint(textWidth)), "\n") //nolint:gosec // textWidth >= 1

	out := make([]string, 0, len(wrapped))

	for index, segment := range wrapped {
		gutter := strings.Repeat(" ", gutterWidth)
		if index == 0 {
			gutter = fmt.Sprintf("%*d", gutterWidth, line.number)
		}

		if highlighted {
			segment = style.Render(segment)
		}

		out = append(out, r.gutter.Render(gutter)+" "+segment)
	}

	return out
}

func gutterWidthFor(rows []row) int {
	highest := 1

	for _, current := range rows {
		if current.left != nil {
			highest = max(highest, current.left.number)
		}

		if current.right != nil {
			highest = max(highest, current.right.number)
		}
	}

	return len(strconv.Itoa(highest))
}

func padLines(lines []string, height int) []string {
	for len(lines) < height {
		lines = append(lines, "")
	}

	return lines
}

func prefixLines(prefix string, lines []string) []string {
	for index := range lines {
		lines[index] = prefix + lines[index]
	}

	return lines
}

// splitLines splits text into lines without the trailing empty element that a
// final newline would produce.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
