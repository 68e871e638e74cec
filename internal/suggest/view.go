// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/jeranaias/folio/internal/layout"
	"github.com/jeranaias/folio/internal/ui/styles"
)

const (
	// MaxVisible is the number of rows shown before the list scrolls.
	MaxVisible = 8

	// MenuWidth is the outer width of the menu box.
	MenuWidth = 44

	iconWidth  = 3
	titleWidth = 14
)

// window returns the first visible index so that the selection stays on
// screen.
func (c *Controller) window() int {
	n := len(c.items)
	if n <= MaxVisible {
		return 0
	}
	top := c.selected - MaxVisible + 1
	if top < 0 {
		top = 0
	}
	if top > n-MaxVisible {
		top = n - MaxVisible
	}
	return top
}

// View renders the menu box. It returns "" when the menu is not visible.
func (c *Controller) View(th *styles.Theme) string {
	if !c.Visible() {
		return ""
	}
	inner := MenuWidth - 4 // border and padding

	top := c.window()
	end := top + MaxVisible
	if end > len(c.items) {
		end = len(c.items)
	}

	rows := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		it := c.items[i]
		icon := padRight(it.Icon, iconWidth)
		title := padRight(it.Title, titleWidth)
		descW := inner - iconWidth - titleWidth
		desc := truncate.StringWithTail(it.Description, uint(descW), "…")
		desc = padRight(desc, descW)

		if i == c.selected {
			rows = append(rows, th.MenuSelected.Render(icon+title+desc))
			continue
		}
		rows = append(rows, th.MenuItem.Render(icon+title)+th.MenuDesc.Render(desc))
	}
	return th.Menu.Width(MenuWidth - 2).Render(strings.Join(rows, "\n"))
}

// ItemAt maps a row inside the rendered box to a candidate index.
func (c *Controller) ItemAt(row int) (int, bool) {
	if !c.Visible() {
		return 0, false
	}
	i := c.window() + row - 1 // top border
	if row < 1 || row > MaxVisible || i >= len(c.items) {
		return 0, false
	}
	return i, true
}

// Place positions a box of size w by h next to anchor inside bounds: below
// the anchor line, or above it when there is no room below. The box starts
// at the anchor column and is shifted left to stay inside bounds.
func Place(anchor layout.Rect, w, h int, bounds layout.Rect) (x, y int) {
	x = anchor.X
	if x+w > bounds.X+bounds.W {
		x = bounds.X + bounds.W - w
	}
	if x < bounds.X {
		x = bounds.X
	}

	y = anchor.Bottom()
	if y+h > bounds.Bottom() && anchor.Y-h >= bounds.Y {
		y = anchor.Y - h
	}
	if y < bounds.Y {
		y = bounds.Y
	}
	return x, y
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
