// Package tui provides the terminal user interface for the timeline.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"

	"github.com/hy4ri/timeline-tui/internal/config"
	appLog "github.com/hy4ri/timeline-tui/internal/log"
	"github.com/hy4ri/timeline-tui/internal/source"
	"github.com/hy4ri/timeline-tui/internal/timeline"
	"github.com/hy4ri/timeline-tui/internal/tui/styles"
)

// doubleClickInterval is the longest gap between two clicks on the same cell
// that still counts as a double click.
const doubleClickInterval = 400 * time.Millisecond

// dragState tracks an item being dragged with the mouse.
type dragState struct {
	itemID int
	startX int
}

// panState tracks the grid being dragged to scroll.
type panState struct {
	startX      int
	startScroll float64
}

type click struct {
	x, y int
	at   time.Time
}

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	config   *config.Config
	sources  []config.SourceConfig
	schedule cron.Schedule
	now      func() time.Time

	// Layout state
	state      timeline.State
	loaded     bool
	scrollPx   float64 // horizontal scroll in layout pixels
	laneOffset int     // first lane shown

	// Selection
	selectedID  int
	hasSelected bool

	// Mouse gestures
	drag      *dragState
	pan       *panState
	lastClick click

	// UI state
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int

	// Components
	spinner spinner.Model
	help    help.Model
	keymap  Keymap
	form    *ItemForm

	notified map[int]bool
}

// NewApp creates a new App instance reading items from sources.
func NewApp(cfg *config.Config, sources []config.SourceConfig) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Normalize()

	var schedule cron.Schedule
	if spec := strings.TrimSpace(cfg.Reload); spec != "" {
		s, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
		}
		schedule = s
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.HelpSeparator
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.HelpSeparator

	app := &App{
		config:   cfg,
		sources:  sources,
		schedule: schedule,
		now:      time.Now,
		loading:  true,
		spinner:  s,
		help:     h,
		keymap:   DefaultKeymap(cfg.UI.VimMode),
		notified: make(map[int]bool),
	}

	opts := cfg.Options()
	opts.Today = app.today()
	state, err := timeline.New(nil, opts)
	if err != nil {
		return nil, err
	}
	app.state = state

	return app, nil
}

// State returns the current layout state.
func (a *App) State() timeline.State {
	return a.state
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadItems(),
		a.scheduleReload(),
	)
}

func (a *App) today() time.Time {
	return timeline.DayOf(a.now())
}

// loadItems reads every source in the background.
func (a *App) loadItems() tea.Cmd {
	sources := a.sources
	opts := source.Options{Today: a.today(), HorizonDays: a.config.ICSHorizonDays}
	return func() tea.Msg {
		res, err := source.LoadAll(sources, opts)
		if err != nil {
			return errMsg{err}
		}
		return itemsLoadedMsg{result: res}
	}
}

// scheduleReload waits for the next activation of the reload schedule.
func (a *App) scheduleReload() tea.Cmd {
	if a.schedule == nil {
		return nil
	}
	now := a.now()
	next := a.schedule.Next(now)
	if next.IsZero() {
		return nil
	}
	appLog.Debug("reload scheduled", "at", next.Format(time.RFC3339))
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return reloadTickMsg(t)
	})
}

// notifyToday sends one desktop notification for items starting today that
// have not been announced yet.
func (a *App) notifyToday() tea.Cmd {
	if !a.config.UI.NotifyToday {
		return nil
	}
	today := a.today()
	var names []string
	for _, it := range a.state.Items {
		if a.notified[it.ID] || !it.Start.Equal(today) {
			continue
		}
		a.notified[it.ID] = true
		names = append(names, it.Name)
	}
	if len(names) == 0 {
		return nil
	}

	title := fmt.Sprintf("%d item(s) start today", len(names))
	body := strings.Join(names, ", ")
	return func() tea.Msg {
		if err := beeep.Notify(title, body, ""); err != nil {
			appLog.Error("notification failed", err)
		}
		return nil
	}
}

// copySelected copies the selected item to the clipboard.
func (a *App) copySelected() tea.Cmd {
	it, ok := a.selectedItem()
	if !ok {
		return nil
	}
	text := it.String()
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{msg: "Failed to copy: " + err.Error()}
		}
		return statusMsg{msg: "Copied: " + text}
	}
}

// saveItems writes the current items back when they come from a single
// YAML item file.
func (a *App) saveItems() tea.Cmd {
	if len(a.sources) != 1 {
		return func() tea.Msg { return statusMsg{msg: "Save needs exactly one item file"} }
	}
	src := a.sources[0]
	if kind, err := source.KindOf(src.Path, src.Kind); err != nil || kind != source.KindYAML {
		return func() tea.Msg { return statusMsg{msg: "Only YAML item files can be saved"} }
	}

	items := append([]timeline.Item(nil), a.state.Items...)
	return func() tea.Msg {
		path, err := config.ExpandPath(src.Path)
		if err != nil {
			return errMsg{err}
		}
		if err := source.SaveYAML(path, items); err != nil {
			return errMsg{err}
		}
		appLog.Info("items saved", "path", path, "count", len(items))
		return statusMsg{msg: fmt.Sprintf("Saved %d items", len(items))}
	}
}

// Message types
type errMsg struct{ err error }
type statusMsg struct{ msg string }
type itemsLoadedMsg struct{ result source.Result }
type reloadTickMsg time.Time
