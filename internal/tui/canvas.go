package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// plain is the palette index of unstyled cells.
const plain = 0

type cell struct {
	r     rune
	style int
	// cont marks the right half of a double-width rune.
	cont bool
}

// canvas is a fixed grid of terminal cells that is rendered row by row,
// styling runs of cells that share a palette entry.
type canvas struct {
	width   int
	rows    [][]cell
	palette []lipgloss.Style
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:   width,
		rows:    make([][]cell, height),
		palette: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for y := range c.rows {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.rows[y] = row
	}
	return c
}

// addStyle registers s and returns its palette index.
func (c *canvas) addStyle(s lipgloss.Style) int {
	c.palette = append(c.palette, s)
	return len(c.palette) - 1
}

func (c *canvas) inside(x, y int) bool {
	return y >= 0 && y < len(c.rows) && x >= 0 && x < c.width
}

func (c *canvas) set(x, y int, r rune, style int) {
	if !c.inside(x, y) {
		return
	}
	c.rows[y][x] = cell{r: r, style: style}
}

// shade restyles cells in [x0, x1) of row y without touching their runes.
func (c *canvas) shade(x0, x1, y, style int) {
	for x := x0; x < x1; x++ {
		if c.inside(x, y) {
			c.rows[y][x].style = style
		}
	}
}

// fill writes r over [x0, x1) of row y.
func (c *canvas) fill(x0, x1, y int, r rune, style int) {
	for x := x0; x < x1; x++ {
		c.set(x, y, r, style)
	}
}

// text writes s at x, truncated to maxWidth cells. Cells left of the canvas
// are clipped.
func (c *canvas) text(x, y, maxWidth int, s string, style int) {
	s = truncateString(s, maxWidth)
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && x+1 >= c.width {
			return
		}
		c.set(x, y, r, style)
		if w == 2 {
			if c.inside(x+1, y) {
				c.rows[y][x+1] = cell{style: style, cont: true}
			}
			// A wide rune cut at the left edge leaves half a glyph.
			if x < 0 && c.inside(x+1, y) {
				c.rows[y][x+1] = cell{r: ' ', style: style}
			}
		}
		x += w
	}
}

func (c *canvas) render() string {
	lines := make([]string, len(c.rows))
	for y, row := range c.rows {
		var b, run strings.Builder
		current := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == plain {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.palette[current].Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// truncateString truncates a string to the given width, appending "…" if truncated.
// It handles wide characters correctly using runewidth.
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxLen {
		return s
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxLen-1 { // -1 for ellipsis
			return s[:i] + "…"
		}
		w += rw
	}

	return s
}
