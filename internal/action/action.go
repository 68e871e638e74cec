// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package action defines the editor commands shared by the slash menu, the
// selection toolbar and the command palette, and the dispatcher that runs
// them against the document.
package action

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/document"
)

// Kind identifies one editor command.
type Kind int

const (
	None Kind = iota

	// Block transforms
	Paragraph
	Heading1
	Heading2
	Heading3
	BulletList
	OrderedList
	TaskList
	Blockquote
	CodeBlock
	Divider
	Table
	Image

	// Inline marks
	Bold
	Italic
	Underline
	Strike
	Code
	Highlight
	Link
	ClearFormatting

	// Alignment
	AlignLeft
	AlignCenter
	AlignRight

	// History and host side effects
	Undo
	Redo
	Print
	ToggleTheme
	ExportText
)

var kindNames = map[Kind]string{
	None:            "none",
	Paragraph:       "paragraph",
	Heading1:        "heading1",
	Heading2:        "heading2",
	Heading3:        "heading3",
	BulletList:      "bulletList",
	OrderedList:     "orderedList",
	TaskList:        "taskList",
	Blockquote:      "blockquote",
	CodeBlock:       "codeBlock",
	Divider:         "divider",
	Table:           "table",
	Image:           "image",
	Bold:            "bold",
	Italic:          "italic",
	Underline:       "underline",
	Strike:          "strike",
	Code:            "code",
	Highlight:       "highlight",
	Link:            "link",
	ClearFormatting: "clearFormatting",
	AlignLeft:       "alignLeft",
	AlignCenter:     "alignCenter",
	AlignRight:      "alignRight",
	Undo:            "undo",
	Redo:            "redo",
	Print:           "print",
	ToggleTheme:     "toggleTheme",
	ExportText:      "exportText",
}

// String returns the command name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// NeedsURL reports whether the command takes a URL argument.
func (k Kind) NeedsURL() bool {
	return k == Image || k == Link
}

// Mark returns the inline mark toggled by k.
func (k Kind) Mark() (document.Mark, bool) {
	switch k {
	case Bold:
		return document.Bold, true
	case Italic:
		return document.Italic, true
	case Underline:
		return document.Underline, true
	case Strike:
		return document.Strike, true
	case Code:
		return document.Code, true
	case Highlight:
		return document.Highlight, true
	}
	return 0, false
}

// Action is one invocation of a command.
type Action struct {
	Kind Kind

	// Range is deleted in the same transaction before the command runs.
	// The slash menu uses it to remove the typed "/query".
	Range *document.Range

	// Arg carries the URL for Image and Link.
	Arg string
}

// RunMsg asks the shell to dispatch an action. Menus return it from their
// Update so the action runs after they have closed.
type RunMsg struct {
	Action Action
}

// Run returns a command that delivers a RunMsg.
func Run(a Action) tea.Cmd {
	return func() tea.Msg { return RunMsg{Action: a} }
}

// IsActive reports whether a mark or link command is active at the
// current selection of doc.
func IsActive(doc *document.Document, k Kind) bool {
	if k == Link {
		return doc.IsLinkActive()
	}
	if m, ok := k.Mark(); ok {
		return doc.IsActive(m)
	}
	return false
}
