// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toolbar implements the floating formatting toolbar shown over a
// non-empty selection.
package toolbar

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/layout"
	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// BUTTONS
// =============================================================================

// Button is one toolbar toggle.
type Button struct {
	Label  string
	Help   string
	Action action.Kind
}

// Buttons lists the toolbar toggles in display order.
var Buttons = []Button{
	{Label: "B", Help: "Bold", Action: action.Bold},
	{Label: "I", Help: "Italic", Action: action.Italic},
	{Label: "U", Help: "Underline", Action: action.Underline},
	{Label: "S", Help: "Strikethrough", Action: action.Strike},
	{Label: "<>", Help: "Inline code", Action: action.Code},
	{Label: "H", Help: "Highlight", Action: action.Highlight},
	{Label: "Link", Help: "Link", Action: action.Link},
}

// buttonPadding is the horizontal padding each button style adds.
const buttonPadding = 2

// MinWidth is the narrowest toolbar that fits every button.
var MinWidth = func() int {
	w := 0
	for _, b := range Buttons {
		w += lipgloss.Width(b.Label) + buttonPadding
	}
	return w
}()

// DefaultWidth is the assumed toolbar width used for clamping.
const DefaultWidth = 30

// DefaultBlurGrace is how long the toolbar survives losing focus.
const DefaultBlurGrace = 200 * time.Millisecond

// pressKeys maps alt+1..alt+7 to the buttons.
var pressKeys = func() []key.Binding {
	out := make([]key.Binding, len(Buttons))
	for i, b := range Buttons {
		k := "alt+" + string(rune('1'+i))
		out[i] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, strings.ToLower(b.Help)))
	}
	return out
}()

// PressKeys returns the key bindings that press the buttons, for help views.
func PressKeys() []key.Binding { return pressKeys }

// =============================================================================
// CONTROLLER
// =============================================================================

// BlurMsg fires when the blur grace period of generation Gen ends.
type BlurMsg struct {
	Gen int
}

// DispatchFunc runs a toolbar command.
type DispatchFunc func(action.Action) tea.Cmd

// Options configures a Controller.
type Options struct {
	Width     int
	BlurGrace time.Duration
}

// Controller decides when the toolbar is shown and where.
type Controller struct {
	doc      *document.Document
	dispatch DispatchFunc

	width int
	grace time.Duration

	visible bool
	pos     Position

	focused bool // keyboard focus is inside the toolbar
	cursor  int  // focused button
	gen     int  // blur generation; bumping it cancels a pending blur

	debug bool
}

// NewController creates a hidden toolbar.
func NewController(doc *document.Document, dispatch DispatchFunc, opts Options) *Controller {
	c := &Controller{doc: doc, dispatch: dispatch}
	c.SetWidth(opts.Width)
	c.SetBlurGrace(opts.BlurGrace)
	return c
}

// SetWidth sets the assumed width used for placement.
func (c *Controller) SetWidth(w int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if w < MinWidth {
		w = MinWidth
	}
	c.width = w
}

// SetBlurGrace sets the delay between losing focus and hiding.
func (c *Controller) SetBlurGrace(d time.Duration) {
	if d <= 0 {
		d = DefaultBlurGrace
	}
	c.grace = d
}

// SetDebug enables transition logging.
func (c *Controller) SetDebug(on bool) { c.debug = on }

// Width returns the toolbar width.
func (c *Controller) Width() int { return c.width }

// Visible reports whether the toolbar is shown.
func (c *Controller) Visible() bool { return c.visible }

// Position returns where the toolbar is drawn. Only meaningful when visible.
func (c *Controller) Position() Position { return c.pos }

// Focused reports whether keyboard focus is inside the toolbar.
func (c *Controller) Focused() bool { return c.focused }

// Cursor returns the index of the focused button.
func (c *Controller) Cursor() int { return c.cursor }

// Rect returns the toolbar bounds in page coordinates.
func (c *Controller) Rect() layout.Rect {
	return layout.Rect{X: c.pos.Left, Y: c.pos.Top, W: c.width, H: 1}
}

// Hide hides the toolbar and drops keyboard focus.
func (c *Controller) Hide() {
	if c.debug && c.visible {
		log.Printf("toolbar: hide")
	}
	c.visible = false
	c.focused = false
}

// Sync recomputes visibility and position from the current selection. It is
// called on every selection change, after the page was laid out.
func (c *Controller) Sync(positionAt layout.PositionFunc, surface layout.Rect) {
	sel := c.doc.Selection()
	if sel.Empty() || positionAt == nil {
		c.Hide()
		return
	}
	start, ok := positionAt(sel.From())
	if !ok {
		c.Hide()
		return
	}
	end, ok := positionAt(sel.To())
	if !ok {
		c.Hide()
		return
	}
	c.pos = Compute(start, end, surface, c.width)
	c.visible = true
}

// Blur starts the grace period after the editor lost focus. The returned
// command delivers a BlurMsg when it ends.
func (c *Controller) Blur() tea.Cmd {
	c.gen++
	if !c.visible {
		return nil
	}
	gen := c.gen
	return tea.Tick(c.grace, func(time.Time) tea.Msg {
		return BlurMsg{Gen: gen}
	})
}

// Focus cancels a pending blur.
func (c *Controller) Focus() {
	c.gen++
}

// Update handles BlurMsg. The toolbar stays when focus moved into it or
// the editor regained focus in the meantime.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(BlurMsg); ok {
		if m.Gen == c.gen && !c.focused {
			c.Hide()
		}
	}
	return nil
}

// HandleKey routes a key while the toolbar is visible and reports whether
// it was consumed.
func (c *Controller) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !c.visible {
		return false, nil
	}
	for i, k := range pressKeys {
		if key.Matches(msg, k) {
			return true, c.Press(i)
		}
	}

	if !c.focused {
		if msg.Type == tea.KeyTab {
			c.focused = true
			c.cursor = 0
			c.gen++
			return true, nil
		}
		return false, nil
	}

	n := len(Buttons)
	switch msg.Type {
	case tea.KeyLeft, tea.KeyShiftTab:
		c.cursor = (c.cursor - 1 + n) % n
		return true, nil
	case tea.KeyRight, tea.KeyTab:
		c.cursor = (c.cursor + 1) % n
		return true, nil
	case tea.KeyEnter, tea.KeySpace:
		return true, c.Press(c.cursor)
	case tea.KeyEsc:
		c.focused = false
		return true, nil
	}

	// Anything else returns focus to the page.
	c.focused = false
	return false, nil
}

// Press runs button i on the current selection. The selection is left
// untouched so the toolbar stays up.
func (c *Controller) Press(i int) tea.Cmd {
	if i < 0 || i >= len(Buttons) {
		return nil
	}
	b := Buttons[i]
	if c.debug {
		log.Printf("toolbar: press %s", b.Action)
	}
	if c.dispatch == nil {
		return nil
	}
	return c.dispatch(action.Action{Kind: b.Action})
}

// ButtonAt maps a column relative to the toolbar's left edge to a button.
func (c *Controller) ButtonAt(x int) (int, bool) {
	at := 0
	for i, b := range Buttons {
		w := lipgloss.Width(b.Label) + buttonPadding
		if x >= at && x < at+w {
			return i, true
		}
		at += w
	}
	return 0, false
}

// Click presses the button under column x and moves focus into the
// toolbar, which keeps a pending blur from hiding it.
func (c *Controller) Click(x int) tea.Cmd {
	i, ok := c.ButtonAt(x)
	if !c.visible || !ok {
		return nil
	}
	c.gen++
	c.cursor = i
	return c.Press(i)
}

// View renders the toolbar row. Active marks are highlighted.
func (c *Controller) View(th *styles.Theme) string {
	if !c.visible {
		return ""
	}
	var sb strings.Builder
	for i, b := range Buttons {
		style := th.ToolbarButton
		switch {
		case c.focused && i == c.cursor:
			style = th.ToolbarButtonFocused
		case action.IsActive(c.doc, b.Action):
			style = th.ToolbarButtonActive
		}
		sb.WriteString(style.Render(b.Label))
	}
	return th.Toolbar.Width(c.width).Render(sb.String())
}
