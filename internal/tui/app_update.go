package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	appLog "github.com/hy4ri/timeline-tui/internal/log"
	"github.com/hy4ri/timeline-tui/internal/timeline"
)

// Rows above the lanes: title, column header and ruler.
const gridTop = 3

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.clampScroll()
		a.syncEdges()
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case errMsg:
		a.loading = false
		a.err = msg.err
		appLog.Error("command failed", msg.err)
		return a, nil

	case statusMsg:
		a.statusMsg = msg.msg
		return a, nil

	case itemsLoadedMsg:
		return a.handleItemsLoaded(msg)

	case reloadTickMsg:
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.loadItems(), a.scheduleReload())
	}

	return a, nil
}

func (a *App) handleItemsLoaded(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	a.loading = false
	a.err = nil

	next := a.state.SetItems(msg.result.Items)
	if a.loaded {
		a.commit(next, true)
	} else {
		a.state = next
		a.scrollPx = 0
		a.loaded = true
	}

	if _, ok := a.state.Item(a.selectedID); !ok {
		a.hasSelected = false
	}
	if !a.hasSelected && len(a.state.Items) > 0 {
		a.selectedID = a.state.Items[0].ID
		a.hasSelected = true
	}

	a.statusMsg = fmt.Sprintf("Loaded %d items", len(a.state.Items))
	if n := len(msg.result.Rejected); n > 0 {
		a.statusMsg += fmt.Sprintf(", %d rejected", n)
	}
	appLog.Debug("state seeded", "items", len(a.state.Items), "columns", len(a.state.Columns), "lanes", a.state.LaneCount())

	a.clampScroll()
	a.syncEdges()
	return a, a.notifyToday()
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.form != nil {
		return a.handleFormKey(msg)
	}

	colW := a.state.Granularity.ColumnWidth()
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keymap.Left):
		a.scrollBy(-colW)
	case key.Matches(msg, a.keymap.Right):
		a.scrollBy(colW)
	case key.Matches(msg, a.keymap.PageLeft):
		a.scrollBy(-a.viewportPx())
	case key.Matches(msg, a.keymap.PageRight):
		a.scrollBy(a.viewportPx())
	case key.Matches(msg, a.keymap.Up):
		a.selectStep(-1)
	case key.Matches(msg, a.keymap.Down):
		a.selectStep(1)
	case key.Matches(msg, a.keymap.DragEarlier):
		a.shiftSelected(false)
	case key.Matches(msg, a.keymap.DragLater):
		a.shiftSelected(true)
	case key.Matches(msg, a.keymap.Reveal):
		a.revealSelected(true)
	case key.Matches(msg, a.keymap.Edit):
		if it, ok := a.selectedItem(); ok {
			a.form = NewItemForm(it)
		}
	case key.Matches(msg, a.keymap.Copy):
		cmd = a.copySelected()
	case key.Matches(msg, a.keymap.Save):
		cmd = a.saveItems()
	case key.Matches(msg, a.keymap.DayView):
		a.setGranularity(timeline.Day)
	case key.Matches(msg, a.keymap.WeekView):
		a.setGranularity(timeline.Week)
	case key.Matches(msg, a.keymap.MonthView):
		a.setGranularity(timeline.Month)
	case key.Matches(msg, a.keymap.ZoomIn):
		a.zoom(true)
	case key.Matches(msg, a.keymap.ZoomOut):
		a.zoom(false)
	case key.Matches(msg, a.keymap.Focus):
		a.focusAt(a.scrollPx + a.viewportPx()/2)
	case key.Matches(msg, a.keymap.ClearFocus):
		a.commit(a.state.ClearFocus(), false)
		a.statusMsg = "Focus cleared"
	case key.Matches(msg, a.keymap.Reset):
		a.commit(a.state.Reset(), true)
		if a.state.Focus == nil {
			a.scrollPx = 0
		}
		a.statusMsg = "Range reset"
	case key.Matches(msg, a.keymap.Refresh):
		a.loading = true
		cmd = tea.Batch(a.spinner.Tick, a.loadItems())
	default:
		return a, nil
	}

	a.syncEdges()
	return a, cmd
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.form = nil
		return a, nil
	case "enter":
		name, start, end, err := a.form.Values()
		if err != nil {
			a.form.SetError(err)
			return a, nil
		}
		next, err := a.state.UpdateItem(a.form.ItemID, name, start, end)
		if err != nil {
			a.form.SetError(err)
			return a, nil
		}
		a.commit(next, false)
		a.selectedID, a.hasSelected = a.form.ItemID, true
		a.form = nil
		a.revealSelected(false)
		a.statusMsg = "Item updated"
		a.syncEdges()
		return a, nil
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

// handleMouseMsg processes mouse input.
func (a *App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.form != nil {
		return a, nil
	}

	colW := a.state.Granularity.ColumnWidth()
	switch {
	case msg.Alt && msg.Button == tea.MouseButtonWheelUp:
		a.zoom(true)
	case msg.Alt && msg.Button == tea.MouseButtonWheelDown:
		a.zoom(false)
	case msg.Button == tea.MouseButtonWheelUp, msg.Button == tea.MouseButtonWheelLeft:
		a.scrollBy(-colW)
	case msg.Button == tea.MouseButtonWheelDown, msg.Button == tea.MouseButtonWheelRight:
		a.scrollBy(colW)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		a.mousePress(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		a.mouseMotion(msg.X)
	case msg.Action == tea.MouseActionRelease:
		a.mouseRelease(msg.X)
	default:
		return a, nil
	}

	a.syncEdges()
	return a, nil
}

func (a *App) mousePress(x, y int) {
	now := a.now()
	double := a.lastClick.x == x && a.lastClick.y == y && now.Sub(a.lastClick.at) <= doubleClickInterval
	a.lastClick = click{x: x, y: y, at: now}

	if y < gridTop {
		return
	}
	if p, ok := a.placementAt(x, y); ok {
		a.selectedID, a.hasSelected = p.Item.ID, true
		a.drag = &dragState{itemID: p.Item.ID, startX: x}
		return
	}
	if double {
		a.pan = nil
		a.lastClick = click{}
		a.focusAt(a.cellToPx(x))
		return
	}
	a.pan = &panState{startX: x, startScroll: a.scrollPx}
}

func (a *App) mouseMotion(x int) {
	if a.pan == nil {
		return
	}
	a.scrollPx = a.pan.startScroll - float64(x-a.pan.startX)*a.pixelsPerCell()
	a.clampScroll()
}

func (a *App) mouseRelease(x int) {
	a.pan = nil
	if a.drag == nil {
		return
	}
	d := a.drag
	a.drag = nil
	if x == d.startX {
		return
	}
	a.dragItem(d.itemID, float64(x-d.startX)*a.pixelsPerCell())
}

// commit installs next. Columns prepended by a same-granularity window
// change are compensated in the scroll offset so the visible dates stay put.
// With follow set, a pending recenter scrolls the focus to the middle.
func (a *App) commit(next timeline.State, follow bool) {
	if next.Granularity == a.state.Granularity && len(a.state.Columns) > 0 && len(next.Columns) > 0 {
		a.scrollPx += next.Mapper().Offset(a.state.Columns[0])
	}
	a.state = next
	if a.state.NeedsRecenter {
		if off, ok := a.state.CenterScroll(a.viewportPx()); ok && follow {
			a.scrollPx = off
		}
		a.state = a.state.AckRecenter()
	}
	a.clampScroll()
}

// syncEdges reports the scroll position to the window controller: within one
// column of an end counts as near that edge. A grid that does not overflow
// the viewport can never leave an edge, so it is grown at the end first.
func (a *App) syncEdges() {
	if a.width == 0 || len(a.state.Columns) == 0 {
		return
	}
	colW := a.state.Granularity.ColumnWidth()

	for a.state.GridWidth() <= a.viewportPx()+2*colW {
		a.commit(a.state.Extend(timeline.EdgeEnd, a.state.Granularity.ExtendSteps()), false)
		appLog.Debug("window extended", "edge", timeline.EdgeEnd, "columns", len(a.state.Columns))
	}

	if a.scrollPx <= colW {
		before := len(a.state.Columns)
		a.commit(a.state.NearEdge(timeline.EdgeStart), false)
		if len(a.state.Columns) != before {
			appLog.Debug("window extended", "edge", timeline.EdgeStart, "columns", len(a.state.Columns))
		}
	} else {
		a.state = a.state.LeaveEdge(timeline.EdgeStart)
	}

	if a.scrollPx+a.viewportPx() >= a.state.GridWidth()-colW {
		before := len(a.state.Columns)
		a.commit(a.state.NearEdge(timeline.EdgeEnd), false)
		if len(a.state.Columns) != before {
			appLog.Debug("window extended", "edge", timeline.EdgeEnd, "columns", len(a.state.Columns))
		}
	} else {
		a.state = a.state.LeaveEdge(timeline.EdgeEnd)
	}
}

func (a *App) pixelsPerCell() float64 {
	return a.config.Timeline.PixelsPerCell
}

// viewportPx is the visible grid width in layout pixels.
func (a *App) viewportPx() float64 {
	w := a.width
	if w < 1 {
		w = 1
	}
	return float64(w) * a.pixelsPerCell()
}

// cellToPx returns the layout pixel under the middle of terminal column x.
func (a *App) cellToPx(x int) float64 {
	return a.scrollPx + (float64(x)+0.5)*a.pixelsPerCell()
}

func (a *App) scrollBy(px float64) {
	a.scrollPx += px
	a.clampScroll()
}

func (a *App) clampScroll() {
	if limit := a.state.GridWidth() - a.viewportPx(); a.scrollPx > limit {
		a.scrollPx = limit
	}
	if a.scrollPx < 0 {
		a.scrollPx = 0
	}
}

// centerOn scrolls so that date sits in the middle of the viewport.
func (a *App) centerOn(date time.Time) {
	m := a.state.Mapper()
	a.scrollPx = m.Offset(date) + m.DayWidth(date)/2 - a.viewportPx()/2
	a.clampScroll()
}

// anchorDate is the focus, or the date under the middle of the viewport.
func (a *App) anchorDate() time.Time {
	if a.state.Focus != nil {
		return a.state.Focus.Date
	}
	date, err := a.state.Mapper().DateAt(a.scrollPx+a.viewportPx()/2, a.state.Columns)
	if err != nil {
		return a.state.Window.Min
	}
	return date
}

func (a *App) setGranularity(g timeline.Granularity) {
	target := a.anchorDate()
	next, err := a.state.ChangeGranularity(g, &target)
	if err != nil {
		a.err = err
		return
	}
	a.applyGranularity(next, target)
}

func (a *App) zoom(in bool) {
	target := a.anchorDate()
	var next timeline.State
	if in {
		next = a.state.ZoomIn(&target)
	} else {
		next = a.state.ZoomOut(&target)
	}
	a.applyGranularity(next, target)
}

func (a *App) applyGranularity(next timeline.State, target time.Time) {
	if next.Granularity == a.state.Granularity {
		return
	}
	a.commit(next, true)
	if a.state.Focus == nil {
		a.centerOn(target)
	}
	a.statusMsg = "Granularity: " + a.state.Granularity.String()
	appLog.Debug("granularity changed", "granularity", a.state.Granularity, "target", timeline.FormatDate(target))
}

func (a *App) focusAt(px float64) {
	next, err := a.state.SetFocusAt(px)
	if err != nil {
		a.err = err
		return
	}
	a.commit(next, false)
	a.statusMsg = "Focus: " + timeline.FormatDate(a.state.Focus.Date)
}

func (a *App) selectedItem() (timeline.Item, bool) {
	if !a.hasSelected {
		return timeline.Item{}, false
	}
	return a.state.Item(a.selectedID)
}

// selectStep moves the selection through items in start order.
func (a *App) selectStep(delta int) {
	items := a.state.Items
	if len(items) == 0 {
		return
	}
	idx := -1
	if a.hasSelected {
		for i, it := range items {
			if it.ID == a.selectedID {
				idx = i
				break
			}
		}
	}
	switch {
	case idx < 0:
		idx = 0
	case idx+delta < 0:
		idx = 0
	case idx+delta >= len(items):
		idx = len(items) - 1
	default:
		idx += delta
	}
	a.selectedID, a.hasSelected = items[idx].ID, true
	a.revealSelected(false)
}

// revealSelected materialises the selected item and scrolls it into view,
// centring it when center is set.
func (a *App) revealSelected(center bool) {
	it, ok := a.selectedItem()
	if !ok {
		return
	}
	next, rect, err := a.state.Reveal(it.ID)
	if err != nil {
		a.err = err
		return
	}
	a.commit(next, false)

	vp := a.viewportPx()
	colW := a.state.Granularity.ColumnWidth()
	switch {
	case center:
		a.scrollPx = rect.Left + rect.Width/2 - vp/2
	case rect.Left < a.scrollPx:
		a.scrollPx = rect.Left - colW
	case rect.Right() > a.scrollPx+vp:
		a.scrollPx = math.Min(rect.Left-colW, rect.Right()-vp+colW)
	}
	a.clampScroll()

	rows := a.laneRows()
	if it.Lane < a.laneOffset {
		a.laneOffset = it.Lane
	} else if it.Lane >= a.laneOffset+rows {
		a.laneOffset = it.Lane - rows + 1
	}
}

// shiftSelected moves the selected item one day later or earlier.
func (a *App) shiftSelected(later bool) {
	it, ok := a.selectedItem()
	if !ok {
		return
	}
	m := a.state.Mapper()
	delta := m.DayWidth(it.Start)
	if !later {
		delta = -m.DayWidth(timeline.AddDays(it.Start, -1))
	}
	a.dragItem(it.ID, delta)
}

func (a *App) dragItem(id int, deltaPx float64) {
	next, err := a.state.DragItem(id, deltaPx)
	if err != nil {
		a.err = err
		return
	}
	a.commit(next, false)
	if it, ok := a.state.Item(id); ok {
		a.statusMsg = "Moved " + it.String()
		appLog.Debug("item dragged", "id", id, "delta_px", deltaPx, "start", timeline.FormatDate(it.Start))
	}
}

// placementAt returns the item drawn at terminal cell (x, y).
func (a *App) placementAt(x, y int) (timeline.Placement, bool) {
	lane := y - gridTop + a.laneOffset
	px := a.cellToPx(x)
	for _, p := range a.state.Layout() {
		if p.Item.Lane == lane && px >= p.Rect.Left && px < p.Rect.Right() {
			return p, true
		}
	}
	return timeline.Placement{}, false
}
