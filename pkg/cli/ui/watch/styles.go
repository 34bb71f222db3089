package watch

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette - uses standard ANSI colors (0-15) to respect user's terminal theme.
	primaryColor   = lipgloss.ANSIColor(14) // Bright cyan
	secondaryColor = lipgloss.ANSIColor(8)  // Bright black (gray)
	headerColor    = lipgloss.ANSIColor(12) // Bright blue
	selectedColor  = lipgloss.ANSIColor(9)  // Bright red
	valueColor     = lipgloss.ANSIColor(11) // Bright yellow
	errorColor     = lipgloss.ANSIColor(9)  // Bright red

	// boxStyle frames the resource table and the diff panes.
	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor)

	// titleStyle renders box titles.
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	// statusStyle renders the status line.
	statusStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	// statusValueStyle highlights values inside the status line.
	statusValueStyle = lipgloss.NewStyle().
				Foreground(valueColor)

	// errorStyle renders a fatal error before exit.
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// placeholderStyle renders hints in empty panes.
	placeholderStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Italic(true)
)

// tableStyles returns the resource table styles. The selected row is only
// highlighted once something is selected.
func tableStyles(hasSelection bool) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(headerColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(secondaryColor).
		BorderBottom(true).
		Bold(false)
	styles.Selected = lipgloss.NewStyle()

	if hasSelection {
		styles.Selected = styles.Selected.Foreground(selectedColor).Bold(true)
	}

	return styles
}

// newHelpModel returns a help footer styled with the palette.
func newHelpModel() help.Model {
	helpModel := help.New()
	helpModel.ShortSeparator = " • "
	helpModel.Ellipsis = "…"
	helpModel.Styles.ShortKey = lipgloss.NewStyle().Foreground(primaryColor)
	helpModel.Styles.FullKey = helpModel.Styles.ShortKey
	helpModel.Styles.ShortDesc = lipgloss.NewStyle().Foreground(secondaryColor)
	helpModel.Styles.FullDesc = helpModel.Styles.ShortDesc

	return helpModel
}
