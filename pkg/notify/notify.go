package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// Level selects the symbol and colour of a message.
type Level int

// Message levels.
const (
	// LevelError is printed red with ✗.
	LevelError Level = iota
	// LevelWarning is printed yellow with ⚠.
	LevelWarning
	// LevelActivity is printed uncoloured with ►.
	LevelActivity
	// LevelSuccess is printed green with ✔.
	LevelSuccess
	// LevelInfo is printed blue with ℹ.
	LevelInfo
)

// Message is one notification.
type Message struct {
	Level Level
	// Content is a format string when Args is non-empty.
	Content string
	Args    []any
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

type style struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(level Level) style {
	switch level {
	case LevelError:
		return style{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case LevelWarning:
		return style{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case LevelActivity:
		return style{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case LevelSuccess:
		return style{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case LevelInfo:
		return style{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	default:
		return style{color: fcolor.New(fcolor.Reset)}
	}
}

// Errorf writes an error message to writer.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Level: LevelError, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message to writer.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Level: LevelWarning, Content: format, Args: args, Writer: writer})
}

// Activityf writes a progress message to writer.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Level: LevelActivity, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message to writer.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Level: LevelSuccess, Content: format, Args: args, Writer: writer})
}

// Infof writes an informational message to writer.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Level: LevelInfo, Content: format, Args: args, Writer: writer})
}

// WriteMessage prints msg. Continuation lines of multi-line content are
// indented to line up with the first line. Write failures are reported on
// stderr and otherwise ignored.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	st := styleFor(msg.Level)

	_, err := st.color.Fprintf(writer, "%s%s\n", st.symbol, indent(content, st.symbol))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

func indent(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	padding := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = padding + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
