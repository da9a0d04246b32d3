package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/timeline-tui/internal/timeline"
	"github.com/hy4ri/timeline-tui/internal/tui/styles"
	"github.com/mattn/go-runewidth"
)

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.form != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.form.View())
	}

	var b strings.Builder
	b.WriteString(a.renderTitle())
	b.WriteString("\n")
	b.WriteString(a.renderGrid())
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keymap))
	return b.String()
}

// laneRows is the number of terminal rows available for lanes.
func (a *App) laneRows() int {
	rows := a.height - gridTop - 1 - lipgloss.Height(a.help.View(a.keymap))
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a *App) renderTitle() string {
	first, last := a.state.ColumnBounds()
	parts := []string{
		styles.Title.Render("Timeline"),
		styles.Subtitle.Render(a.state.Granularity.String()),
		styles.HelpDesc.Render(fmt.Sprintf("%s → %s", timeline.FormatDate(first), timeline.FormatDate(last))),
		styles.HelpDesc.Render(fmt.Sprintf("%d items in %d lanes", len(a.state.Items), a.state.LaneCount())),
	}
	if a.state.Focus != nil {
		parts = append(parts, styles.FocusMarker.Render("◆ "+timeline.FormatDate(a.state.Focus.Date)))
	}
	if a.loading {
		parts = append(parts, a.spinner.View())
	}
	return truncateLine(strings.Join(parts, "  "), a.width)
}

// renderGrid draws the column header, the ruler and the visible lanes.
func (a *App) renderGrid() string {
	rows := a.laneRows()
	c := newCanvas(a.width, 2+rows)

	header := c.addStyle(styles.Header)
	headerWeekend := c.addStyle(styles.HeaderWeekend)
	headerMonth := c.addStyle(styles.HeaderMonthStart)
	headerToday := c.addStyle(styles.HeaderToday)
	rule := c.addStyle(styles.GridRule)
	weekend := c.addStyle(styles.GridWeekend)
	todayLine := c.addStyle(styles.GridToday)
	focus := c.addStyle(styles.FocusMarker)
	selected := c.addStyle(styles.BarSelected)
	empty := c.addStyle(styles.EmptyGrid)
	lanes := make([]int, len(styles.LaneColors))
	for i := range lanes {
		lanes[i] = c.addStyle(styles.BarStyle(i))
	}

	ppc := a.pixelsPerCell()
	g := a.state.Granularity
	colW := g.ColumnWidth()
	today := a.today()
	toCell := func(px float64) int {
		return int(math.Floor((px - a.scrollPx) / ppc))
	}

	// Columns have a uniform width, so only the visible index range is drawn.
	firstIdx := int(a.scrollPx / colW)
	lastIdx := int((a.scrollPx+a.viewportPx())/colW) + 1
	if lastIdx > len(a.state.Columns) {
		lastIdx = len(a.state.Columns)
	}
	cellsPerColumn := int(colW / ppc)

	for i := firstIdx; i < lastIdx; i++ {
		col := a.state.Columns[i]
		x := toCell(float64(i) * colW)

		style := header
		switch {
		case timeline.ContainsToday(col, g, today):
			style = headerToday
		case timeline.KindOf(col, g) == timeline.ColumnMonthStart:
			style = headerMonth
		case timeline.KindOf(col, g) == timeline.ColumnWeekend:
			style = headerWeekend
			for y := 2; y < 2+rows; y++ {
				c.shade(x, x+cellsPerColumn, y, weekend)
			}
		}
		c.text(x, 0, cellsPerColumn-1, headerLabel(col, g, cellsPerColumn-1), style)
		c.set(x, 1, '│', rule)
		c.fill(x+1, x+cellsPerColumn, 1, '─', rule)
	}

	m := a.state.Mapper()
	if first, last := a.state.ColumnBounds(); !today.Before(first) && !today.After(last) {
		x := toCell(m.Offset(today) + m.DayWidth(today)/2)
		c.set(x, 1, '┬', todayLine)
		for y := 2; y < 2+rows; y++ {
			c.set(x, y, '│', todayLine)
		}
	}
	if a.state.Focus != nil {
		x := toCell(a.state.Focus.Offset + m.DayWidth(a.state.Focus.Date)/2)
		c.set(x, 1, '▼', focus)
		for y := 2; y < 2+rows; y++ {
			c.set(x, y, '┆', focus)
		}
	}

	if len(a.state.Items) == 0 && !a.loading {
		c.text(2, 2, a.width-4, "No items. Add sources to the config or pass an item file.", empty)
	}

	for _, p := range a.state.Layout() {
		y := 2 + p.Item.Lane - a.laneOffset
		if y < 2 || y >= 2+rows {
			continue
		}
		x0 := toCell(p.Rect.Left)
		x1 := int(math.Ceil((p.Rect.Right() - a.scrollPx) / ppc))
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if x1 <= 0 || x0 >= a.width {
			continue
		}

		style := lanes[p.Item.Lane%len(lanes)]
		if a.hasSelected && p.Item.ID == a.selectedID {
			style = selected
		}
		c.fill(x0, x1, y, ' ', style)

		// Keep the label readable when the bar starts left of the viewport.
		labelX := x0 + 1
		if labelX < 1 {
			labelX = 1
		}
		c.text(labelX, y, x1-labelX-1, p.Item.Name, style)
	}

	return c.render()
}

func (a *App) renderStatusBar() string {
	var left string
	switch {
	case a.err != nil:
		left = styles.StatusBarError.Render("Error: " + a.err.Error())
	case a.statusMsg != "":
		left = styles.StatusBarSuccess.Render(a.statusMsg)
	default:
		if it, ok := a.selectedItem(); ok {
			left = styles.StatusBarText.Render(fmt.Sprintf("#%d %s  %dd  lane %d", it.ID, it.String(), it.Duration(), it.Lane+1))
		}
	}

	right := styles.StatusBarKey.Render(timeline.FormatDate(a.anchorDate()))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBar.Render(left + strings.Repeat(" ", gap) + right)
}

// headerLabel falls back to a compact label when the full one does not fit.
func headerLabel(col time.Time, g timeline.Granularity, width int) string {
	label := timeline.HeaderLabel(col, g)
	if runewidth.StringWidth(label) <= width {
		return label
	}
	switch g {
	case timeline.Day:
		return col.Format("02")
	case timeline.Week:
		return col.Format("01/02")
	default:
		return col.Format("Jan")
	}
}

// truncateLine cuts a styled line to width visible cells.
func truncateLine(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
