package tui

import "github.com/charmbracelet/bubbles/key"

// Keymap contains all key bindings for the application.
type Keymap struct {
	// Scrolling
	Left      key.Binding
	Right     key.Binding
	PageLeft  key.Binding
	PageRight key.Binding

	// Selection
	Up   key.Binding
	Down key.Binding

	// Item actions
	DragEarlier key.Binding
	DragLater   key.Binding
	Reveal      key.Binding
	Edit        key.Binding
	Copy        key.Binding
	Save        key.Binding

	// Granularity
	DayView   key.Binding
	WeekView  key.Binding
	MonthView key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding

	// Focus
	Focus      key.Binding
	ClearFocus key.Binding

	// General
	Reset   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeymap returns the default key bindings. Arrow keys always work;
// vim adds the h/j/k/l style keys.
func DefaultKeymap(vim bool) Keymap {
	keys := func(arrow string, vimKey string) []string {
		if vim {
			return []string{vimKey, arrow}
		}
		return []string{arrow}
	}

	return Keymap{
		Left:      key.NewBinding(key.WithKeys(keys("left", "h")...), key.WithHelp("h/←", "scroll left")),
		Right:     key.NewBinding(key.WithKeys(keys("right", "l")...), key.WithHelp("l/→", "scroll right")),
		PageLeft:  key.NewBinding(key.WithKeys(keys("pgup", "H")...), key.WithHelp("H", "page left")),
		PageRight: key.NewBinding(key.WithKeys(keys("pgdown", "L")...), key.WithHelp("L", "page right")),

		Up:   key.NewBinding(key.WithKeys(keys("up", "k")...), key.WithHelp("k/↑", "previous item")),
		Down: key.NewBinding(key.WithKeys(keys("down", "j")...), key.WithHelp("j/↓", "next item")),

		DragEarlier: key.NewBinding(key.WithKeys("<", "shift+left"), key.WithHelp("<", "move item a day earlier")),
		DragLater:   key.NewBinding(key.WithKeys(">", "shift+right"), key.WithHelp(">", "move item a day later")),
		Reveal:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "scroll to item")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit item")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save items")),

		DayView:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "days")),
		WeekView:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weeks")),
		MonthView: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "months")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),

		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus centre date")),
		ClearFocus: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear focus")),

		Reset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset range")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Down, k.DragLater, k.DayView, k.WeekView, k.MonthView, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.PageLeft, k.PageRight, k.Up, k.Down},
		{k.DragEarlier, k.DragLater, k.Reveal, k.Edit, k.Copy, k.Save},
		{k.DayView, k.WeekView, k.MonthView, k.ZoomIn, k.ZoomOut},
		{k.Focus, k.ClearFocus, k.Reset, k.Refresh, k.Help, k.Quit},
	}
}
