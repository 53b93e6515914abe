// Package render draws a dealt spread on a terminal character grid.
//
// The spread's canvas is four cells wide and four cells tall. It is scaled so
// its width fills the requested number of terminal columns; rows are scaled by
// half as much again because a terminal cell is roughly twice as tall as it
// is wide.
package render

import (
	"io"
	"math"
	"strings"

	"github.com/arcanaland/querent/internal/layout"
	"github.com/arcanaland/querent/internal/spread"
)

// Grid is the number of cells along each side of the canvas
const Grid = spread.Grid

// MinWidth is the narrowest canvas drawn, in terminal columns
const MinWidth = 40

type role uint8

const (
	roleNone role = iota
	roleLabel
	roleCard
	roleKeywords
	roleNote
)

type glyph struct {
	r    rune
	role role
}

type line struct {
	s  string
	ro role
}

// Options control how a spread is drawn
type Options struct {
	Width   int         // terminal columns available
	Cell    layout.Size // cell size the spread was materialized with
	Color   bool        // emit 24-bit colour escapes
	Palette Palette
}

// Canvas is a character grid sized for one spread
type Canvas struct {
	cols, rows int
	sx, sy     float64
	grid       [][]glyph
}

// NewCanvas sizes a canvas for the given options
func NewCanvas(opts Options) *Canvas {
	width := max(opts.Width, MinWidth)

	sx := float64(width) / (Grid * opts.Cell.Width)
	sy := sx / 2
	rows := int(math.Ceil(Grid * opts.Cell.Height * sy))

	grid := make([][]glyph, rows)
	for i := range grid {
		grid[i] = make([]glyph, width)
		for j := range grid[i] {
			grid[i][j] = glyph{r: ' '}
		}
	}
	return &Canvas{cols: width, rows: rows, sx: sx, sy: sy, grid: grid}
}

// cellBox maps a canvas region onto inclusive character coordinates
func (c *Canvas) cellBox(r layout.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(r.Min.X * c.sx))
	y0 = int(math.Round(r.Min.Y * c.sy))
	x1 = int(math.Round(r.Max.X*c.sx)) - 1
	y1 = int(math.Round(r.Max.Y*c.sy)) - 1
	return max(x0, 0), max(y0, 0), min(x1, c.cols-1), min(y1, c.rows-1)
}

func (c *Canvas) set(x, y int, r rune, ro role) {
	if y < 0 || y >= c.rows || x < 0 || x >= c.cols {
		return
	}
	c.grid[y][x] = glyph{r: r, role: ro}
}

// text writes s starting at (x, y), clipped at column limit (inclusive)
func (c *Canvas) text(x, y, limit int, s string, ro role) {
	for _, r := range s {
		if x > limit {
			return
		}
		c.set(x, y, r, ro)
		x++
	}
}

func (c *Canvas) box(x0, y0, x1, y1 int) {
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', roleNone)
		c.set(x, y1, '─', roleNone)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', roleNone)
		c.set(x1, y, '│', roleNone)
	}
	c.set(x0, y0, '┌', roleNone)
	c.set(x1, y0, '┐', roleNone)
	c.set(x0, y1, '└', roleNone)
	c.set(x1, y1, '┘', roleNone)
}

// Place draws one placement: a box holding the position label, the card,
// then its keywords and note wrapped to whatever room is left
func (c *Canvas) Place(pl spread.Placement) {
	x0, y0, x1, y1 := c.cellBox(pl.Region)
	if x1-x0 < 2 || y1-y0 < 2 {
		return
	}
	c.box(x0, y0, x1, y1)

	left, right := x0+1, x1-1
	lines := []line{
		{pl.Label, roleLabel},
		{pl.Card.String(), roleCard},
	}
	width := right - left + 1
	if kw := pl.Card.Keywords(); kw != "" {
		for _, l := range WrapText(kw, width) {
			lines = append(lines, line{l, roleKeywords})
		}
	}
	if pl.Card.Note != "" {
		for _, l := range WrapText(pl.Card.Note, width) {
			lines = append(lines, line{l, roleNote})
		}
	}

	y := y0 + 1
	for _, l := range lines {
		if y >= y1 {
			return
		}
		c.text(left, y, right, l.s, l.ro)
		y++
	}
}

// Write writes the canvas, dropping blank rows above and below the drawing
func (c *Canvas) Write(w io.Writer, opts Options) error {
	first, last := 0, c.rows-1
	for first <= last && c.blank(first) {
		first++
	}
	for last >= first && c.blank(last) {
		last--
	}

	var b strings.Builder
	for y := first; y <= last; y++ {
		var row strings.Builder
		current := roleNone
		for _, g := range c.grid[y] {
			if opts.Color && g.role != current {
				if col, ok := opts.Palette.color(g.role); ok {
					row.WriteString(ansiForeground(col))
				} else {
					row.WriteString(ansiReset)
				}
				current = g.role
			}
			row.WriteRune(g.r)
		}
		if opts.Color && current != roleNone {
			row.WriteString(ansiReset)
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (c *Canvas) blank(y int) bool {
	for _, g := range c.grid[y] {
		if g.r != ' ' {
			return false
		}
	}
	return true
}

// Spread draws every placement of s onto a fresh canvas and writes it to w
func Spread(w io.Writer, s *spread.Spread, opts Options) error {
	c := NewCanvas(opts)
	for _, pl := range s.Placements {
		c.Place(pl)
	}
	return c.Write(w, opts)
}
