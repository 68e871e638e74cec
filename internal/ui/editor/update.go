// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/suggest"
	"github.com/jeranaias/folio/internal/toolbar"
	"github.com/jeranaias/folio/internal/ui/components"
	"github.com/jeranaias/folio/internal/ui/styles"
	"github.com/jeranaias/folio/internal/util"
)

// doubleClickInterval is the longest gap between two presses on the same
// cell that still selects a word.
const doubleClickInterval = 400 * time.Millisecond

// wheelLines is how far one wheel notch scrolls the page.
const wheelLines = 3

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case action.RunMsg:
		cmds = append(cmds, m.dispatcher.Dispatch(msg.Action))

	case toolbar.BlurMsg:
		cmds = append(cmds, m.toolbar.Update(msg))

	case components.StatusClearMsg:
		m.status.Update(msg)

	case ExportDoneMsg:
		cmds = append(cmds, m.handleExportDone(msg))

	case PrintDoneMsg:
		cmds = append(cmds, m.handlePrintDone(msg))

	case ConfigReloadedMsg:
		cmds = append(cmds, m.applyUIConfig(msg.Config), waitForConfig(m.watcher))

	case ConfigErrorMsg:
		log.Printf("config: reload failed: %v", msg.Err)
		cmds = append(cmds,
			m.status.SetMessage("Config not reloaded: "+msg.Err.Error(), components.MessageError),
			waitForConfig(m.watcher))

	default:
		// Cursor blink and similar ticks for whichever input is active.
		cmds = append(cmds, m.updateInputs(msg))
	}

	if m.quitting {
		return m, tea.Quit
	}

	cmds = append(cmds, m.settleFocus())
	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.palette.Visible() {
		_, cmd = m.palette.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.prompt.Visible() {
		_, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.header.Editing() {
		cmds = append(cmds, m.header.Update(msg))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// FOCUS AND LAYOUT
// =============================================================================

// settleFocus moves focus off the page while a modal surface is open and
// back when it closes. Losing focus starts the toolbar's blur grace.
func (m *Model) settleFocus() tea.Cmd {
	modal := m.palette.Visible() || m.prompt.Visible() || m.help.Visible() || m.header.Editing()
	switch {
	case modal && m.focused:
		m.focused = false
		m.dragging = false
		return m.toolbar.Blur()
	case !modal && !m.focused:
		m.focused = true
		m.toolbar.Focus()
		m.toolbarDirty = true
	}
	return nil
}

// refresh lays the page out again and brings the floating UI in line with
// the document.
func (m *Model) refresh() {
	sel := m.doc.Selection()
	version := m.doc.Version()
	changed := m.lay == nil || sel != m.lastSel || version != m.lastVersion
	m.lastSel, m.lastVersion = sel, version

	m.render()
	if changed {
		m.scrollToCursor()
		m.toolbarDirty = true
	}

	m.slash.Sync()

	if m.toolbarDirty {
		m.toolbarDirty = false
		if m.focused {
			m.toolbar.Sync(m.lay.PositionAt, m.surface())
		} else if changed {
			m.toolbar.Hide()
		}
	}

	m.status.SetPage(m.cursorPage())
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.status.SetWidth(width)
	m.page.Width = width
	m.page.Height = m.bodyHeight()
	m.toolbarDirty = true
	if m.help.Visible() {
		m.help.Show(width, height, m.theme.IsDark)
	}
}

// scrollToCursor keeps the cursor row inside the page viewport.
func (m *Model) scrollToCursor() {
	r, ok := m.lay.PositionAt(m.doc.Selection().Head)
	if !ok {
		return
	}
	row := r.Y + pageBorder
	if r.Y == 0 {
		row = 0
	}
	h := m.page.Height
	switch {
	case row < m.page.YOffset:
		m.page.SetYOffset(row)
	case row >= m.page.YOffset+h:
		m.page.SetYOffset(row - h + 1)
	}
}

// cursorPage returns the A4 page the cursor is on, counting from 1.
func (m *Model) cursorPage() int {
	r, ok := m.lay.PositionAt(m.doc.Selection().Head)
	if !ok {
		return 1
	}
	return r.Y/m.pageRows() + 1
}

// =============================================================================
// KEYBOARD
// =============================================================================

// handleKey routes a key: palette shortcut, then the open modal surface,
// then the toolbar, the slash menu and finally the page.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Palette) {
		if !m.palette.Visible() {
			m.header.Commit()
			m.prompt.Hide()
			m.help.Hide()
			m.slash.Close()
		}
		return m.palette.Toggle(m.theme.IsDark)
	}

	if m.palette.Visible() {
		_, cmd := m.palette.Update(msg)
		return cmd
	}
	if m.prompt.Visible() {
		_, cmd := m.prompt.Update(msg)
		return cmd
	}
	if m.help.Visible() {
		return m.help.Update(msg)
	}
	if m.header.Editing() {
		return m.header.Update(msg)
	}

	if handled, cmd := m.toolbar.HandleKey(msg); handled {
		return cmd
	}
	if handled, cmd := m.slash.HandleKey(msg); handled {
		return cmd
	}
	return m.editorKey(msg)
}

// editorKey applies a key to the page.
func (m *Model) editorKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	vertical := false
	defer func() {
		if !vertical {
			m.goalX = -1
		}
	}()

	for _, b := range k.actionBindings() {
		if key.Matches(msg, b.binding) {
			return m.dispatcher.Dispatch(action.Action{Kind: b.kind})
		}
	}

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
	case key.Matches(msg, k.Copy):
		if m.doc.Selection().Empty() {
			m.quitting = true
			return nil
		}
		return m.copySelection(false)
	case key.Matches(msg, k.Cut):
		return m.copySelection(true)
	case key.Matches(msg, k.Paste):
		return m.pasteClipboard()

	case key.Matches(msg, k.Help):
		m.help.Show(m.width, m.height, m.theme.IsDark)
	case key.Matches(msg, k.Title):
		return m.header.StartEditing()
	case key.Matches(msg, k.Theme):
		return m.dispatcher.Dispatch(action.Action{Kind: action.ToggleTheme})

	case key.Matches(msg, k.SelectAll):
		m.doc.SelectAll()
	case key.Matches(msg, k.HardBreak):
		m.doc.InsertHardBreak()
	case key.Matches(msg, k.Newline):
		m.doc.InsertNewline()
	case key.Matches(msg, k.Indent):
		m.doc.Indent()
	case key.Matches(msg, k.Outdent):
		m.doc.Outdent()
	case key.Matches(msg, k.ToggleTask):
		m.doc.ToggleTaskChecked()
	case key.Matches(msg, k.Backspace):
		m.doc.DeleteBackward()
	case key.Matches(msg, k.Delete):
		m.doc.DeleteForward()

	case key.Matches(msg, k.Left):
		m.doc.Move(document.UnitGrapheme, false, false)
	case key.Matches(msg, k.Right):
		m.doc.Move(document.UnitGrapheme, true, false)
	case key.Matches(msg, k.SelectLeft):
		m.doc.Move(document.UnitGrapheme, false, true)
	case key.Matches(msg, k.SelectRight):
		m.doc.Move(document.UnitGrapheme, true, true)
	case key.Matches(msg, k.WordLeft):
		m.doc.Move(document.UnitWord, false, false)
	case key.Matches(msg, k.WordRight):
		m.doc.Move(document.UnitWord, true, false)
	case key.Matches(msg, k.SelectWordL):
		m.doc.Move(document.UnitWord, false, true)
	case key.Matches(msg, k.SelectWordR):
		m.doc.Move(document.UnitWord, true, true)
	case key.Matches(msg, k.LineStart):
		m.doc.Move(document.UnitBlock, false, false)
	case key.Matches(msg, k.LineEnd):
		m.doc.Move(document.UnitBlock, true, false)
	case key.Matches(msg, k.SelectToStart):
		m.doc.Move(document.UnitBlock, false, true)
	case key.Matches(msg, k.SelectToEnd):
		m.doc.Move(document.UnitBlock, true, true)
	case key.Matches(msg, k.DocStart):
		m.doc.Move(document.UnitDocument, false, false)
	case key.Matches(msg, k.DocEnd):
		m.doc.Move(document.UnitDocument, true, false)

	case key.Matches(msg, k.Up):
		vertical = true
		m.moveVertical(-1, 1, false)
	case key.Matches(msg, k.Down):
		vertical = true
		m.moveVertical(1, 1, false)
	case key.Matches(msg, k.SelectUp):
		vertical = true
		m.moveVertical(-1, 1, true)
	case key.Matches(msg, k.SelectDown):
		vertical = true
		m.moveVertical(1, 1, true)
	case key.Matches(msg, k.PageUp):
		vertical = true
		m.moveVertical(-1, m.page.Height, false)
	case key.Matches(msg, k.PageDown):
		vertical = true
		m.moveVertical(1, m.page.Height, false)

	default:
		m.typeKey(msg)
	}
	return nil
}

// typeKey inserts printable input. Typing "/" may open the slash menu.
func (m *Model) typeKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeySpace:
		m.doc.InsertText(" ")
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		text := string(msg.Runes)
		if len(msg.Runes) > 1 {
			// Several runes in one message come from a terminal paste or an IME.
			m.paste(text)
			return
		}
		m.doc.InsertText(text)
		if text == string(suggest.TriggerChar) {
			m.slash.TriggerTyped()
		}
	}
}

// moveVertical moves the cursor rows lines up (dir -1) or down (dir 1),
// keeping the goal column. Past the first or last line it goes to the
// document edge.
func (m *Model) moveVertical(dir, rows int, extend bool) {
	head := m.doc.Selection().Head
	r, ok := m.lay.PositionAt(head)
	if !ok {
		return
	}
	if m.goalX < 0 {
		m.goalX = r.X
	}
	if rows < 1 {
		rows = 1
	}

	for y := r.Y + dir*rows; y >= 0 && y < m.lay.Height(); y += dir {
		p, ok := m.lay.PosAt(m.goalX, y)
		if !ok {
			break
		}
		pr, ok := m.lay.PositionAt(p)
		if !ok || (pr.Y-r.Y)*dir <= 0 {
			continue
		}
		if extend {
			m.doc.ExtendTo(p)
		} else {
			m.doc.SetCursor(p)
		}
		return
	}
	m.doc.Move(document.UnitDocument, dir > 0, extend)
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// copySelection puts the selected text on the clipboard and, for cut,
// deletes it once the clipboard accepted it.
func (m *Model) copySelection(cut bool) tea.Cmd {
	sel := m.doc.Selection()
	text := m.doc.SelectedText()
	if sel.Empty() || text == "" {
		return nil
	}
	if err := m.clip.WriteAll(text); err != nil {
		log.Printf("clipboard: write: %v", err)
		return m.status.SetMessage("Clipboard unavailable", components.MessageError)
	}
	if cut {
		m.doc.DeleteRange(sel.Range())
	}
	return nil
}

func (m *Model) pasteClipboard() tea.Cmd {
	text, err := m.clip.ReadAll()
	if err != nil {
		log.Printf("clipboard: read: %v", err)
		return m.status.SetMessage("Clipboard unavailable", components.MessageError)
	}
	m.paste(text)
	return nil
}

// paste inserts text in NFC with LF line endings.
func (m *Model) paste(text string) {
	text = norm.NFC.String(util.NormalizeNewlines(text))
	if text == "" {
		return
	}
	m.doc.Paste(text)
}

// =============================================================================
// MOUSE
// =============================================================================

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := msg.X, msg.Y

	switch {
	case m.palette.Visible():
		if msg.Type != tea.MouseLeft {
			return nil
		}
		px, py := m.paletteOrigin()
		return m.palette.Click(x-px, y-py)
	case m.prompt.Visible():
		return nil
	case m.help.Visible():
		return m.help.Update(msg)
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.page.LineUp(wheelLines)
		m.toolbarDirty = true
		return nil
	case tea.MouseWheelDown:
		m.page.LineDown(wheelLines)
		m.toolbarDirty = true
		return nil
	}

	if msg.Type == tea.MouseLeft && y < components.HeaderHeight {
		if y != 0 {
			return nil
		}
		switch m.header.Hit(x) {
		case components.RegionTitle:
			if !m.header.Editing() {
				return m.header.StartEditing()
			}
		case components.RegionTheme:
			m.header.Commit()
			return m.dispatcher.Dispatch(action.Action{Kind: action.ToggleTheme})
		}
		return nil
	}
	if msg.Type == tea.MouseLeft && m.header.Editing() {
		m.header.Commit()
	}

	if msg.Type == tea.MouseLeft && m.toolbar.Visible() {
		r := m.toolbar.Rect()
		tx, ty := m.toScreen(r.X, r.Y)
		if y == ty && x >= tx && x < tx+r.W {
			return m.toolbar.Click(x - tx)
		}
	}

	if msg.Type == tea.MouseLeft && m.slash.Visible() {
		if _, mx, my, ok := m.slashBox(); ok {
			w, h := suggest.MenuWidth, m.slashHeight()
			if x >= mx && x < mx+w && y >= my && y < my+h {
				if i, ok := m.slash.ItemAt(y - my); ok {
					return m.slash.Click(i)
				}
				return nil
			}
		}
	}

	return m.pageMouse(msg)
}

// pageMouse places the cursor, extends the selection while dragging and
// selects a word on double click.
func (m *Model) pageMouse(msg tea.MouseMsg) tea.Cmd {
	ox, oy := m.textOrigin()
	lx, ly := msg.X-ox, msg.Y-oy

	switch msg.Type {
	case tea.MouseLeft:
		if msg.Y < components.HeaderHeight || msg.Y >= components.HeaderHeight+m.bodyHeight() {
			return nil
		}
		p, ok := m.lay.PosAt(lx, ly)
		if !ok {
			return nil
		}
		now := time.Now()
		cell := [2]int{msg.X, msg.Y}
		double := cell == m.lastClickCell && now.Sub(m.lastClick) < doubleClickInterval
		m.lastClick, m.lastClickCell = now, cell

		switch {
		case double:
			m.doc.SelectWord(p)
			m.dragging = false
		case msg.Shift:
			m.doc.ExtendTo(p)
			m.dragging = true
		default:
			m.doc.SetCursor(p)
			m.dragging = true
		}

	case tea.MouseMotion:
		if !m.dragging {
			return nil
		}
		if p, ok := m.lay.PosAt(lx, ly); ok {
			m.doc.ExtendTo(p)
		}

	case tea.MouseRelease:
		m.dragging = false
	}
	return nil
}

// =============================================================================
// HOST RESULTS AND CONFIG
// =============================================================================

func (m *Model) handleExportDone(msg ExportDoneMsg) tea.Cmd {
	if msg.Err != nil {
		log.Printf("export: %v", msg.Err)
		return m.status.SetMessage("Export failed: "+msg.Err.Error(), components.MessageError)
	}
	return m.status.SetMessage("Exported to "+msg.Path, components.MessageSuccess)
}

func (m *Model) handlePrintDone(msg PrintDoneMsg) tea.Cmd {
	if msg.Err != nil {
		log.Printf("print: %v", msg.Err)
		return m.status.SetMessage("Print failed: "+msg.Err.Error(), components.MessageError)
	}
	return m.status.SetMessage("Sent to printer", components.MessageSuccess)
}

// applyUIConfig takes over the [ui] section of a reloaded config. The
// document engine settings stay as they were at startup.
func (m *Model) applyUIConfig(next *config.Config) tea.Cmd {
	if next == nil {
		return nil
	}
	ui := next.UI

	if ui.Theme != m.cfg.UI.Theme {
		dark := styles.NewTheme(ui.Theme).IsDark
		m.theme.SetDark(dark)
		m.header.Dark = dark
	}
	m.toolbar.SetWidth(ui.ToolbarWidth)
	m.toolbar.SetBlurGrace(next.BlurGrace())

	cfg := m.cfg.Clone()
	cfg.UI = ui
	m.cfg = cfg
	config.SetGlobal(cfg)

	m.resize(m.width, m.height)
	if m.debug {
		log.Printf("config: reloaded ui section %+v", ui)
	}
	return m.status.SetMessage("Configuration reloaded", components.MessageInfo)
}
