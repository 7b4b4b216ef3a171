package tui

import (
	"math"
	"strings"
)

type cell struct {
	r   rune
	ink ink
}

// canvas is a fixed-size grid of terminal cells.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, ink: k}
}

func (c *canvas) at(x, y int) (cell, bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return cell{}, false
	}
	return c.cells[y*c.w+x], true
}

// text writes s left to right starting at (x, y), clipping at the edges.
func (c *canvas) text(x, y int, s string, k ink) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, k)
	}
}

// line draws a straight segment between two cells with r. Endpoints are
// left untouched so node glyphs drawn there survive.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, k ink) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(dx)*t))
		y := y0 + int(math.Round(float64(dy)*t))
		// A lit segment wins over a dim one crossing the same cell.
		if cur, ok := c.at(x, y); ok && cur.ink == inkEdgeLit && k == inkEdgeDim {
			continue
		}
		c.set(x, y, r, k)
	}
}

// render paints the grid, grouping runs of equal ink into one styled span.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].ink == row[start].ink {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				run.WriteRune(cl.r)
			}
			if st, ok := inks[row[start].ink]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
