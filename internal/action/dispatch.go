// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package action

import (
	"errors"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/document"
)

// Host performs the effects that live outside the document. Each method
// returns a command for the Bubble Tea runtime; nil is fine.
type Host interface {
	Print(doc *document.Document) tea.Cmd
	ToggleTheme() tea.Cmd
	ExportText(doc *document.Document) tea.Cmd

	// PromptURL asks the user for a URL. When the user confirms a
	// non-empty value the host dispatches pending again with Arg set.
	PromptURL(pending Action, title string) tea.Cmd
}

// ErrUnknownKind is returned by Apply for commands it cannot run.
var ErrUnknownKind = errors.New("unknown action")

// Dispatcher runs actions against one document.
type Dispatcher struct {
	doc   *document.Document
	host  Host
	debug bool
}

// NewDispatcher creates a dispatcher for doc.
func NewDispatcher(doc *document.Document, host Host) *Dispatcher {
	return &Dispatcher{doc: doc, host: host}
}

// SetDebug enables logging of every dispatched action.
func (d *Dispatcher) SetDebug(on bool) {
	d.debug = on
}

// Dispatch runs exactly one command: a document edit or a host side effect.
// Image and Link without Arg ask the host for a URL first.
func (d *Dispatcher) Dispatch(a Action) tea.Cmd {
	if d.debug {
		log.Printf("action: dispatch %s range=%v arg=%q", a.Kind, a.Range != nil, a.Arg)
	}

	switch a.Kind {
	case None:
		return nil
	case Print:
		return d.host.Print(d.doc)
	case ToggleTheme:
		return d.host.ToggleTheme()
	case ExportText:
		return d.host.ExportText(d.doc)
	}

	a.Arg = strings.TrimSpace(a.Arg)
	if a.Kind == Link && a.Arg == "" && a.Range == nil && d.doc.IsLinkActive() {
		d.doc.UnsetLink()
		return nil
	}
	if a.Kind.NeedsURL() && a.Arg == "" {
		title := "Image URL"
		if a.Kind == Link {
			title = "Link URL"
		}
		return d.host.PromptURL(a, title)
	}

	if err := d.Apply(a); err != nil {
		log.Printf("action: %s: %v", a.Kind, err)
	}
	return nil
}

// Apply runs a document command in a single transaction, first deleting
// a.Range when it is set. Undo and Redo ignore the range.
func (d *Dispatcher) Apply(a Action) error {
	switch a.Kind {
	case Undo:
		d.doc.Undo()
		return nil
	case Redo:
		d.doc.Redo()
		return nil
	}
	return d.doc.Transact(func() error {
		if a.Range != nil {
			d.doc.DeleteRange(*a.Range)
		}
		return apply(d.doc, a)
	})
}

func apply(doc *document.Document, a Action) error {
	if m, ok := a.Kind.Mark(); ok {
		doc.ToggleMark(m)
		return nil
	}

	switch a.Kind {
	case Paragraph:
		doc.SetParagraph()
	case Heading1:
		doc.SetHeading(1)
	case Heading2:
		doc.SetHeading(2)
	case Heading3:
		doc.SetHeading(3)
	case BulletList:
		doc.ToggleBulletList()
	case OrderedList:
		doc.ToggleOrderedList()
	case TaskList:
		doc.ToggleTaskList()
	case Blockquote:
		doc.ToggleBlockquote()
	case CodeBlock:
		doc.ToggleCodeBlock()
	case Divider:
		doc.SetHorizontalRule()
	case Table:
		doc.InsertTable(3, 3, true)
	case Image:
		doc.SetImage(a.Arg)
	case Link:
		doc.SetLink(a.Arg)
	case ClearFormatting:
		doc.UnsetAllMarks()
	case AlignLeft:
		doc.SetTextAlign(document.AlignLeft)
	case AlignCenter:
		doc.SetTextAlign(document.AlignCenter)
	case AlignRight:
		doc.SetTextAlign(document.AlignRight)
	default:
		return ErrUnknownKind
	}
	return nil
}
