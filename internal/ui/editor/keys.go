// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/toolbar"
	"github.com/jeranaias/folio/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the editor page and its chrome.
type KeyMap struct {
	// Chrome
	Palette key.Binding
	Help    key.Binding
	Title   key.Binding
	Theme   key.Binding
	Quit    key.Binding

	// Clipboard
	Copy  key.Binding
	Cut   key.Binding
	Paste key.Binding

	// History
	Undo key.Binding
	Redo key.Binding

	// Marks
	Bold      key.Binding
	Italic    key.Binding
	Underline key.Binding
	Strike    key.Binding
	Code      key.Binding
	Highlight key.Binding

	// Structure
	HardBreak  key.Binding
	Newline    key.Binding
	Indent     key.Binding
	Outdent    key.Binding
	ToggleTask key.Binding
	SelectAll  key.Binding

	// Deletion
	Backspace key.Binding
	Delete    key.Binding

	// Movement; the select variants extend the selection
	Left          key.Binding
	Right         key.Binding
	Up            key.Binding
	Down          key.Binding
	WordLeft      key.Binding
	WordRight     key.Binding
	LineStart     key.Binding
	LineEnd       key.Binding
	DocStart      key.Binding
	DocEnd        key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	SelectLeft    key.Binding
	SelectRight   key.Binding
	SelectUp      key.Binding
	SelectDown    key.Binding
	SelectWordL   key.Binding
	SelectWordR   key.Binding
	SelectToStart key.Binding
	SelectToEnd   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Palette: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("C-k", "command palette")),
		Help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "keyboard reference")),
		Title:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("C-t", "rename document")),
		Theme:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "toggle dark mode")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("C-q", "quit")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("C-c", "copy (quit when nothing is selected)")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("C-x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("C-v", "paste")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("C-z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("C-y", "redo")),

		Bold:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("C-b", "bold")),
		Italic:    key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("M-i", "italic")),
		Underline: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "underline")),
		Strike:    key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("M-s", "strikethrough")),
		Code:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("C-e", "inline code")),
		Highlight: key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("M-h", "highlight")),

		HardBreak:  key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("M-Enter", "line break")),
		Newline:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "new block")),
		Indent:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "indent list item")),
		Outdent:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-Tab", "outdent list item")),
		ToggleTask: key.NewBinding(key.WithKeys("alt+x"), key.WithHelp("M-x", "check / uncheck task")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("C-a", "select all")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete")),

		Left:          key.NewBinding(key.WithKeys("left")),
		Right:         key.NewBinding(key.WithKeys("right")),
		Up:            key.NewBinding(key.WithKeys("up")),
		Down:          key.NewBinding(key.WithKeys("down")),
		WordLeft:      key.NewBinding(key.WithKeys("ctrl+left", "alt+left", "alt+b"), key.WithHelp("C-←", "previous word")),
		WordRight:     key.NewBinding(key.WithKeys("ctrl+right", "alt+right", "alt+f"), key.WithHelp("C-→", "next word")),
		LineStart:     key.NewBinding(key.WithKeys("home"), key.WithHelp("Home", "start of block")),
		LineEnd:       key.NewBinding(key.WithKeys("end"), key.WithHelp("End", "end of block")),
		DocStart:      key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("C-Home", "start of document")),
		DocEnd:        key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("C-End", "end of document")),
		PageUp:        key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "page up")),
		PageDown:      key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "page down")),
		SelectLeft:    key.NewBinding(key.WithKeys("shift+left")),
		SelectRight:   key.NewBinding(key.WithKeys("shift+right")),
		SelectUp:      key.NewBinding(key.WithKeys("shift+up")),
		SelectDown:    key.NewBinding(key.WithKeys("shift+down")),
		SelectWordL:   key.NewBinding(key.WithKeys("ctrl+shift+left")),
		SelectWordR:   key.NewBinding(key.WithKeys("ctrl+shift+right")),
		SelectToStart: key.NewBinding(key.WithKeys("shift+home")),
		SelectToEnd:   key.NewBinding(key.WithKeys("shift+end")),
	}
}

// actionBindings pairs the shortcuts that run a dispatcher command with it.
func (k KeyMap) actionBindings() []struct {
	binding key.Binding
	kind    action.Kind
} {
	return []struct {
		binding key.Binding
		kind    action.Kind
	}{
		{k.Bold, action.Bold},
		{k.Italic, action.Italic},
		{k.Underline, action.Underline},
		{k.Strike, action.Strike},
		{k.Code, action.Code},
		{k.Highlight, action.Highlight},
		{k.Undo, action.Undo},
		{k.Redo, action.Redo},
	}
}

// =============================================================================
// HELP TEXT DATA
// =============================================================================

// HelpSections groups the bindings for the keyboard reference.
func (k KeyMap) HelpSections() []components.HelpSection {
	menus := []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "slash commands at the start of a word")),
		k.Palette,
		k.Help,
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "focus the selection toolbar")),
	}
	menus = append(menus, toolbar.PressKeys()...)

	return []components.HelpSection{
		{Title: "Document", Bindings: []key.Binding{k.Title, k.Theme, k.Undo, k.Redo, k.SelectAll, k.Quit}},
		{Title: "Clipboard", Bindings: []key.Binding{k.Copy, k.Cut, k.Paste}},
		{Title: "Formatting", Bindings: []key.Binding{k.Bold, k.Italic, k.Underline, k.Strike, k.Code, k.Highlight}},
		{Title: "Blocks", Bindings: []key.Binding{k.Newline, k.HardBreak, k.Indent, k.Outdent, k.ToggleTask}},
		{Title: "Navigation", Bindings: []key.Binding{k.WordLeft, k.WordRight, k.LineStart, k.LineEnd, k.DocStart, k.DocEnd, k.PageUp, k.PageDown}},
		{Title: "Menus", Bindings: menus},
	}
}
