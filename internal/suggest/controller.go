// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"log"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/document"
)

// TriggerChar opens the menu.
const TriggerChar = '/'

// State is the controller state.
type State int

const (
	Closed State = iota
	Open
)

// String returns the state name.
func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// DispatchFunc runs a chosen command.
type DispatchFunc func(action.Action) tea.Cmd

// Controller tracks the "/query" being typed and the highlighted candidate.
type Controller struct {
	doc      *document.Document
	dispatch DispatchFunc

	state    State
	trigger  document.Pos // position of the trigger character
	query    string
	items    []Item
	selected int

	debug bool
}

// NewController creates a closed controller for doc.
func NewController(doc *document.Document, dispatch DispatchFunc) *Controller {
	return &Controller{doc: doc, dispatch: dispatch}
}

// SetDebug enables transition logging.
func (c *Controller) SetDebug(on bool) { c.debug = on }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether the controller is open.
func (c *Controller) IsOpen() bool { return c.state == Open }

// Visible reports whether the menu has anything to show.
func (c *Controller) Visible() bool { return c.state == Open && len(c.items) > 0 }

// Query returns the text typed after the trigger.
func (c *Controller) Query() string { return c.query }

// Items returns the current candidates.
func (c *Controller) Items() []Item { return c.items }

// Selected returns the index of the highlighted candidate.
func (c *Controller) Selected() int { return c.selected }

// Anchor returns the position of the trigger character.
func (c *Controller) Anchor() document.Pos { return c.trigger }

// Range returns the span from the trigger through the cursor.
func (c *Controller) Range() document.Range {
	return document.Range{From: c.trigger, To: c.doc.Selection().Head}
}

// Close returns to Closed without running anything.
func (c *Controller) Close() {
	if c.state == Closed {
		return
	}
	if c.debug {
		log.Printf("suggest: close (query %q)", c.query)
	}
	c.state = Closed
	c.query = ""
	c.items = nil
	c.selected = 0
}

// TriggerTyped is called after a "/" was typed. It opens the menu when the
// character sits at a valid insertion point: an empty selection in a text
// block other than a code block, at the block start or after whitespace.
// Table cells hold inline text only, and every item transforms or inserts a
// top-level block, so "/" in a cell stays plain text.
func (c *Controller) TriggerTyped() bool {
	if c.state == Open {
		c.Sync()
		return false
	}
	sel := c.doc.Selection()
	if !sel.Empty() {
		return false
	}
	h := sel.Head
	b := c.doc.Block(h.Block)
	if b == nil || !b.IsText() || b.Kind == document.KindCodeBlock || h.Offset == 0 {
		return false
	}
	cs := b.Chars(h.Cell)
	if h.Offset > len(cs) || cs[h.Offset-1].R != TriggerChar {
		return false
	}
	if h.Offset >= 2 && !unicode.IsSpace(cs[h.Offset-2].R) {
		return false
	}

	c.state = Open
	c.trigger = document.Pos{Block: h.Block, Cell: h.Cell, Offset: h.Offset - 1}
	c.query = ""
	c.items = Items("")
	c.selected = 0
	if c.debug {
		log.Printf("suggest: open at %+v", c.trigger)
	}
	return true
}

// Sync recomputes the query and candidates after the document or the
// selection changed. The menu closes when the cursor leaves the trigger
// range, the trigger is deleted, or the query contains whitespace.
func (c *Controller) Sync() {
	if c.state != Open {
		return
	}
	sel := c.doc.Selection()
	h := sel.Head
	if !sel.Empty() || h.Block != c.trigger.Block || h.Cell != c.trigger.Cell || h.Offset <= c.trigger.Offset {
		c.Close()
		return
	}
	b := c.doc.Block(h.Block)
	if b == nil || !b.IsText() || b.Kind == document.KindCodeBlock {
		c.Close()
		return
	}
	cs := b.Chars(h.Cell)
	if c.trigger.Offset >= len(cs) || cs[c.trigger.Offset].R != TriggerChar || h.Offset > len(cs) {
		c.Close()
		return
	}

	runes := make([]rune, 0, h.Offset-c.trigger.Offset-1)
	for _, ch := range cs[c.trigger.Offset+1 : h.Offset] {
		if unicode.IsSpace(ch.R) {
			c.Close()
			return
		}
		runes = append(runes, ch.R)
	}
	query := string(runes)
	if query == c.query && c.items != nil {
		return
	}
	c.query = query

	items := Items(query)
	if !sameItems(items, c.items) {
		c.selected = 0
	}
	c.items = items
}

func sameItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Title != b[i].Title {
			return false
		}
	}
	return true
}

// HandleKey routes a key while the menu is open. It reports whether the key
// was consumed; unconsumed keys go to normal text input.
func (c *Controller) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.state != Open {
		return false, nil
	}
	n := len(c.items)

	switch msg.Type {
	case tea.KeyEsc:
		c.Close()
		return true, nil
	case tea.KeyUp:
		if n == 0 {
			return false, nil
		}
		c.selected = (c.selected - 1 + n) % n
		return true, nil
	case tea.KeyDown:
		if n == 0 {
			return false, nil
		}
		c.selected = (c.selected + 1) % n
		return true, nil
	case tea.KeyEnter:
		if n == 0 {
			return false, nil
		}
		return true, c.choose(c.selected)
	}
	return false, nil
}

// Click runs the candidate at index i.
func (c *Controller) Click(i int) tea.Cmd {
	if !c.Visible() || i < 0 || i >= len(c.items) {
		return nil
	}
	return c.choose(i)
}

// choose closes the menu and runs item i against the trigger range.
func (c *Controller) choose(i int) tea.Cmd {
	r := c.Range()
	a := action.Action{Kind: c.items[i].Action, Range: &r}
	if c.debug {
		log.Printf("suggest: choose %q", c.items[i].Title)
	}
	c.Close()
	if c.dispatch == nil {
		return nil
	}
	return c.dispatch(a)
}
