// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	eighths   = 8
	fullTurn  = 360.0
	quarters  = 4
	halfCell  = 0.5
	coverFull = 1 - 1e-9
)

// Terminal metrics of a single text row. A cell is one unit high; the baseline sits a fifth
// of a cell above its bottom edge.
var Terminal = Metrics{Ascent: 0.8, Descent: 0.2} //nolint:mnd

// leftBlocks holds the left-aligned partial block glyphs, indexed by eighths of coverage.
var leftBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// pies holds the pie glyphs used for arcs that fit into a single cell, by quarter turns.
var pies = []rune{'○', '◔', '◑', '◕', '●'}

// Cell is one character position of the grid.
type Cell struct {
	Rune rune
	FG   lipgloss.Color
	BG   lipgloss.Color

	// continuation marks the trailing half of a double width rune.
	continuation bool
}

// Grid is a Surface backed by a fixed size grid of terminal cells.
type Grid struct {
	width   int
	height  int
	cells   []Cell
	metrics Metrics
}

var _ Surface = (*Grid)(nil)

// New creates a blank grid. Negative dimensions are treated as zero.
func New(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)

	g := &Grid{
		width:   width,
		height:  height,
		cells:   make([]Cell, width*height),
		metrics: Terminal,
	}

	for i := range g.cells {
		g.cells[i].Rune = ' '
	}

	return g
}

// Size implements Surface.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Metrics implements Measurer.
func (g *Grid) Metrics() Metrics {
	return g.metrics
}

// TextBounds implements Measurer.
func (g *Grid) TextBounds(text string) Rect {
	return textBounds(g.metrics, text)
}

func textBounds(m Metrics, text string) Rect {
	return Rect{
		Left:   0,
		Top:    -m.Ascent,
		Right:  float64(lipgloss.Width(text)),
		Bottom: m.Descent,
	}
}

// TerminalMeasurer measures text the way a Grid does without allocating one.
type TerminalMeasurer struct{}

// Metrics implements Measurer.
func (TerminalMeasurer) Metrics() Metrics { return Terminal }

// TextBounds implements Measurer.
func (TerminalMeasurer) TextBounds(text string) Rect { return textBounds(Terminal, text) }

// Cell returns the cell at column x and row y. Out of range positions return a zero Cell.
func (g *Grid) Cell(x, y int) Cell {
	if !g.inside(x, y) {
		return Cell{}
	}

	return g.cells[y*g.width+x]
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) at(x, y int) *Cell {
	return &g.cells[y*g.width+x]
}

// rows returns the rows whose centre lies inside [top, bottom).
func (g *Grid) rows(top, bottom float64) (int, int) {
	first := max(int(math.Ceil(top-halfCell)), 0)
	last := min(int(math.Ceil(bottom-halfCell)), g.height)

	return first, last
}

// FillRect implements Surface.
//
// Cells fully inside the rectangle take the colour as background. A cell cut by the right
// edge of the rectangle gets a left-aligned partial block in the colour; a cell cut by the
// left edge takes the colour as background behind whatever partial block it already holds,
// so two adjacent rectangles share a boundary cell.
func (g *Grid) FillRect(r Rect, c lipgloss.Color) {
	if r.Empty() {
		return
	}

	top, bottom := g.rows(r.Top, r.Bottom)
	firstCol := max(int(math.Floor(r.Left)), 0)
	lastCol := min(int(math.Ceil(r.Right)), g.width)

	for y := top; y < bottom; y++ {
		for x := firstCol; x < lastCol; x++ {
			left := math.Max(r.Left, float64(x))
			right := math.Min(r.Right, float64(x+1))
			cover := right - left

			if cover <= 0 {
				continue
			}

			cell := g.at(x, y)
			startsInside := r.Left <= float64(x)
			endsInside := r.Right >= float64(x+1)

			switch {
			case cover >= coverFull:
				*cell = Cell{Rune: ' ', BG: c}
			case startsInside:
				n := int(math.Round(cover * eighths))
				switch n {
				case 0:
				case eighths:
					*cell = Cell{Rune: ' ', BG: c}
				default:
					cell.Rune = leftBlocks[n]
					cell.FG = c
				}
			case endsInside && isLeftBlock(cell.Rune):
				cell.BG = c
			case cover >= halfCell:
				*cell = Cell{Rune: ' ', BG: c}
			}
		}
	}
}

func isLeftBlock(r rune) bool {
	for _, b := range leftBlocks[1 : len(leftBlocks)-1] {
		if r == b {
			return true
		}
	}

	return false
}

// FillArc implements Surface.
//
// An arc whose bounding box fits into one cell is drawn as a pie glyph showing the sweep
// rounded up to the next quarter turn. Larger arcs are rasterised: a cell is painted when
// its centre lies inside the ellipse and within the swept angle.
func (g *Grid) FillArc(r Rect, startAngle, sweepAngle float64, c lipgloss.Color) {
	if r.Empty() || sweepAngle <= 0 {
		return
	}

	sweepAngle = math.Min(sweepAngle, fullTurn)

	if r.Width() <= 1 && r.Height() <= 1 {
		x, y := int(math.Floor(r.CenterX())), int(math.Floor(r.CenterY()))
		if !g.inside(x, y) {
			return
		}

		n := int(math.Ceil(sweepAngle / fullTurn * quarters))
		n = min(max(n, 1), quarters)
		cell := g.at(x, y)
		cell.Rune = pies[n]
		cell.FG = c
		cell.continuation = false

		return
	}

	cx, cy := r.CenterX(), r.CenterY()
	rx, ry := r.Width()/2, r.Height()/2 //nolint:mnd
	top, bottom := g.rows(r.Top, r.Bottom)

	for y := top; y < bottom; y++ {
		for x := max(int(math.Floor(r.Left)), 0); x < min(int(math.Ceil(r.Right)), g.width); x++ {
			dx := (float64(x) + halfCell - cx) / rx
			dy := (float64(y) + halfCell - cy) / ry

			if dx*dx+dy*dy > 1 {
				continue
			}

			angle := math.Atan2(dy, dx) * 180 / math.Pi //nolint:mnd
			rel := math.Mod(angle-startAngle+2*fullTurn, fullTurn)

			if rel <= sweepAngle {
				*g.at(x, y) = Cell{Rune: ' ', BG: c}
			}
		}
	}
}

// DrawText implements Surface.
// The text row is the one holding the top of the glyphs; text is clipped at the grid edges.
func (g *Grid) DrawText(text string, centerX, baseline float64, c lipgloss.Color) {
	if text == "" {
		return
	}

	y := int(math.Floor(baseline - g.metrics.Ascent + halfCell))
	if y < 0 || y >= g.height {
		return
	}

	x := int(math.Floor(centerX - float64(lipgloss.Width(text))/2 + halfCell)) //nolint:mnd

	for _, r := range text {
		w := lipgloss.Width(string(r))
		if w == 0 {
			continue
		}

		if x >= 0 && x+w <= g.width {
			cell := g.at(x, y)
			cell.Rune = r
			cell.FG = c
			cell.continuation = false

			for i := 1; i < w; i++ {
				next := g.at(x+i, y)
				next.continuation = true
				next.BG = cell.BG
			}
		}

		x += w
	}
}

// Plain returns the grid contents without any styling, one line per row.
func (g *Grid) Plain() string {
	var b strings.Builder

	for y := range g.height {
		if y > 0 {
			b.WriteByte('\n')
		}

		for x := range g.width {
			if cell := g.at(x, y); !cell.continuation {
				b.WriteRune(cell.Rune)
			}
		}
	}

	return b.String()
}

// String renders the grid with lipgloss, grouping runs of identically styled cells.
func (g *Grid) String() string {
	var b strings.Builder

	for y := range g.height {
		if y > 0 {
			b.WriteByte('\n')
		}

		var (
			run     strings.Builder
			current Cell
		)

		flush := func() {
			if run.Len() == 0 {
				return
			}

			b.WriteString(styleFor(current).Render(run.String()))
			run.Reset()
		}

		for x := range g.width {
			cell := g.at(x, y)
			if cell.continuation {
				continue
			}

			if run.Len() > 0 && (cell.FG != current.FG || cell.BG != current.BG) {
				flush()
			}

			current = *cell
			run.WriteRune(cell.Rune)
		}

		flush()
	}

	return b.String()
}

func styleFor(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.FG != "" {
		s = s.Foreground(c.FG)
	}

	if c.BG != "" {
		s = s.Background(c.BG)
	}

	return s
}
