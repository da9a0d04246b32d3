// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#990000"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}

	statusBackground = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}
	weekendShade     = lipgloss.AdaptiveColor{Light: "#F2F2F2", Dark: "#181818"}
)

// LaneColors cycle over lanes so neighbouring bars stay distinguishable.
var LaneColors = []lipgloss.Color{
	lipgloss.Color("#296FDF"),
	lipgloss.Color("#EA8811"),
	lipgloss.Color("#2E9E6A"),
	lipgloss.Color("#B04FC4"),
	lipgloss.Color("#D0473D"),
}

// Base styles
var (
	// Title is the style for the view title
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// Column header styles
var (
	Header = lipgloss.NewStyle().
		Foreground(Subtle)

	HeaderWeekend = lipgloss.NewStyle().
			Foreground(Subtle).
			Faint(true).
			Background(weekendShade)

	// HeaderMonthStart marks the first column of a month
	HeaderMonthStart = lipgloss.NewStyle().
				Bold(true).
				Foreground(WarningColor)

	HeaderToday = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)
)

// Grid styles
var (
	// GridRule is the column separator
	GridRule = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"})

	GridWeekend = lipgloss.NewStyle().
			Background(weekendShade)

	// GridToday is the vertical line through today's column
	GridToday = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// FocusMarker marks the focal date
	FocusMarker = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	EmptyGrid = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)
)

// BarStyle returns the item bar style for a lane.
func BarStyle(lane int) lipgloss.Style {
	if lane < 0 {
		lane = 0
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(LaneColors[lane%len(LaneColors)])
}

// BarSelected is the style for the selected item bar
var BarSelected = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}).
	Background(Highlight)

// StatusBar styles
var (
	// StatusBar is the base style for the status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(statusBackground).
			Padding(0, 1)

	// StatusBarKey is for keyboard shortcut hints
	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(statusBackground)

	// StatusBarText is for status bar descriptions
	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle).
			Background(statusBackground)

	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(statusBackground).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Background(statusBackground).
				Bold(true)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	// HelpSeparator is the separator between key and description
	HelpSeparator = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Input styles
var (
	// Input is the style for text inputs
	Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	// InputFocused is for focused inputs
	InputFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)

	// InputLabel is for input labels
	InputLabel = lipgloss.NewStyle().
			Bold(true)

	InputError = lipgloss.NewStyle().
			Foreground(ErrorColor)
)

// Dialog styles
var (
	// Dialog is the base style for dialog boxes
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	// DialogTitle is for dialog titles
	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			MarginBottom(1)
)

// Spinner style
var (
	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)
)
