// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio/internal/layout"
	"github.com/jeranaias/folio/internal/suggest"
	"github.com/jeranaias/folio/internal/ui/components"
)

// =============================================================================
// PAGE GEOMETRY
// =============================================================================

const (
	pageBorder  = 1
	pagePadding = 2

	// pageChrome is the width the page box adds around the text column.
	pageChrome = 2 * (pageBorder + pagePadding)
)

func (m *Model) statusHeight() int {
	if m.cfg.UI.ShowStatusBar {
		return 1
	}
	return 0
}

// bodyHeight is the number of rows between header and status bar.
func (m *Model) bodyHeight() int {
	h := m.height - components.HeaderHeight - m.statusHeight()
	if h < 1 {
		h = 1
	}
	return h
}

// pageWidth is the outer width of the page box.
func (m *Model) pageWidth() int {
	w := m.cfg.Editor.PageWidth
	if w > m.width {
		w = m.width
	}
	if min := layout.MinWidth + pageChrome; w < min {
		w = min
	}
	return w
}

func (m *Model) textWidth() int { return m.pageWidth() - pageChrome }

func (m *Model) pageLeft() int {
	left := (m.width - m.pageWidth()) / 2
	if left < 0 {
		left = 0
	}
	return left
}

// textOrigin is the screen cell of layout cell (0, 0).
func (m *Model) textOrigin() (x, y int) {
	return m.pageLeft() + pageBorder + pagePadding,
		components.HeaderHeight + pageBorder - m.page.YOffset
}

// toScreen converts layout coordinates to screen coordinates.
func (m *Model) toScreen(x, y int) (int, int) {
	ox, oy := m.textOrigin()
	return ox + x, oy + y
}

// surface is the visible part of the text column in layout coordinates.
func (m *Model) surface() layout.Rect {
	return layout.Rect{X: 0, Y: m.page.YOffset - pageBorder, W: m.textWidth(), H: m.bodyHeight()}
}

// pageRows is the height of one A4 sheet in text rows. Terminal cells are
// about twice as tall as they are wide.
func (m *Model) pageRows() int {
	rows := (m.cfg.Editor.PageWidth*297/210 + 1) / 2
	if rows < 10 {
		rows = 10
	}
	return rows
}

// render lays the document out and loads the page box into the viewport.
func (m *Model) render() {
	m.lay = layout.Render(m.doc, layout.Options{
		Width:     m.textWidth(),
		Theme:     m.theme,
		Focused:   m.focused,
		Highlight: true,
	})

	lines := m.lay.Lines()
	rows := m.pageRows()
	pad := (rows - len(lines)%rows) % rows
	if len(lines) == 0 {
		pad = rows
	}
	if pad > 0 {
		blank := strings.Repeat(" ", m.textWidth())
		padded := make([]string, len(lines), len(lines)+pad)
		copy(padded, lines)
		for i := 0; i < pad; i++ {
			padded = append(padded, blank)
		}
		lines = padded
	}

	box := m.theme.Page.Width(m.pageWidth() - 2*pageBorder).Render(strings.Join(lines, "\n"))
	if left := m.pageLeft(); left > 0 {
		box = lipgloss.NewStyle().PaddingLeft(left).Render(box)
	}

	offset := m.page.YOffset
	m.page.SetContent(box)
	m.page.SetYOffset(offset)
}

// =============================================================================
// FLOATING UI PLACEMENT
// =============================================================================

func (m *Model) slashHeight() int {
	n := len(m.slash.Items())
	if n > suggest.MaxVisible {
		n = suggest.MaxVisible
	}
	return n + 2
}

// slashBox renders the slash menu and returns its screen position.
func (m *Model) slashBox() (view string, x, y int, ok bool) {
	if !m.slash.Visible() {
		return "", 0, 0, false
	}
	anchor, found := m.lay.PositionAt(m.slash.Anchor())
	if !found {
		return "", 0, 0, false
	}
	lx, ly := suggest.Place(anchor, suggest.MenuWidth, m.slashHeight(), m.surface())
	x, y = m.toScreen(lx, ly)
	return m.slash.View(m.theme), x, y, true
}

func (m *Model) paletteOrigin() (x, y int) {
	w, h := lipgloss.Size(m.palette.View())
	return components.Center(m.width, m.height, w, h)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the editor: header, page and status bar, with the toolbar,
// the slash menu and any modal drawn on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{m.header.View(), m.page.View()}
	if m.cfg.UI.ShowStatusBar {
		parts = append(parts, m.status.View())
	}
	screen := strings.Join(parts, "\n")

	top := components.HeaderHeight
	bottom := top + m.bodyHeight()

	if m.toolbar.Visible() {
		r := m.toolbar.Rect()
		x, y := m.toScreen(r.X, r.Y)
		if y >= top && y < bottom {
			screen = components.Overlay(screen, m.toolbar.View(m.theme), x, y)
		}
	}

	if view, x, y, ok := m.slashBox(); ok {
		screen = components.Overlay(screen, view, x, y)
	}

	for _, view := range []string{m.help.View(), m.prompt.View(), m.palette.View()} {
		if view == "" {
			continue
		}
		w, h := lipgloss.Size(view)
		x, y := components.Center(m.width, m.height, w, h)
		screen = components.Overlay(screen, view, x, y)
	}
	return screen
}
