// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"

	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/ui/styles"
)

// Rect is a rectangle of terminal cells in layout coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// PositionFunc maps a document position to the cell it is drawn at.
// It reports false when the position is not on screen.
type PositionFunc func(document.Pos) (Rect, bool)

// Options controls a render pass.
type Options struct {
	// Width of the text column in cells.
	Width int

	Theme *styles.Theme

	// Focused draws the cursor.
	Focused bool

	// Highlight enables syntax colouring of code blocks the cursor is not in.
	Highlight bool
}

// segment records where one visual line of a slot was drawn.
type segment struct {
	block, cell int
	row         int
	start, end  int
	cols        []int // column of every offset from start to end
}

func (s segment) col(off int) int {
	i := off - s.start
	if i < 0 {
		i = 0
	}
	if i >= len(s.cols) {
		i = len(s.cols) - 1
	}
	return s.cols[i]
}

// Layout is a rendered document together with the geometry needed to map
// document positions to cells and back.
type Layout struct {
	lines []string
	segs  []segment
	width int
}

// Lines returns the rendered lines. Every line is exactly Width cells wide.
func (l *Layout) Lines() []string { return l.lines }

// Height returns the number of rendered lines.
func (l *Layout) Height() int { return len(l.lines) }

// Width returns the width the layout was rendered at.
func (l *Layout) Width() int { return l.width }

// String joins the rendered lines.
func (l *Layout) String() string { return strings.Join(l.lines, "\n") }

// PositionAt returns the cell p is drawn at.
func (l *Layout) PositionAt(p document.Pos) (Rect, bool) {
	found := -1
	for i, s := range l.segs {
		if s.block != p.Block || s.cell != p.Cell {
			continue
		}
		if s.start <= p.Offset && p.Offset <= s.end {
			found = i
		}
	}
	if found < 0 {
		return Rect{}, false
	}
	s := l.segs[found]
	return Rect{X: s.col(p.Offset), Y: s.row, W: 1, H: 1}, true
}

// PosAt returns the document position closest to the cell at x, y.
func (l *Layout) PosAt(x, y int) (document.Pos, bool) {
	if len(l.segs) == 0 {
		return document.Pos{}, false
	}
	best := -1
	bestDist := 0
	for i, s := range l.segs {
		d := s.row - y
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	row := l.segs[best].row

	// Several cells of a table row share a line; pick by column.
	pick := best
	for i, s := range l.segs {
		if s.row != row {
			continue
		}
		if s.cols[0] <= x {
			pick = i
		}
	}
	s := l.segs[pick]

	off := s.start
	prev := -1
	for i, c := range s.cols {
		if c > x {
			break
		}
		if c != prev {
			off = s.start + i
			prev = c
		}
	}
	return document.Pos{Block: s.block, Cell: s.cell, Offset: off}, true
}
