// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import "github.com/jeranaias/folio/internal/action"

// Group names, in display order.
const (
	GroupFormatting = "Formatting"
	GroupBlocks     = "Blocks"
	GroupAlignment  = "Alignment"
	GroupActions    = "Actions"
)

// Groups lists the groups in display order.
var Groups = []string{GroupFormatting, GroupBlocks, GroupAlignment, GroupActions}

// Entry is one selectable palette item.
type Entry struct {
	Label    string
	Group    string
	Shortcut string
	Action   action.Kind
}

// Entries returns the palette items. The theme entry names the mode it
// switches to, so its label depends on dark.
func Entries(dark bool) []Entry {
	theme := "Dark Mode"
	if dark {
		theme = "Light Mode"
	}
	return []Entry{
		{Label: "Bold", Group: GroupFormatting, Shortcut: "ctrl+b", Action: action.Bold},
		{Label: "Italic", Group: GroupFormatting, Shortcut: "alt+i", Action: action.Italic},
		{Label: "Underline", Group: GroupFormatting, Shortcut: "ctrl+u", Action: action.Underline},
		{Label: "Strikethrough", Group: GroupFormatting, Shortcut: "alt+s", Action: action.Strike},
		{Label: "Clear formatting", Group: GroupFormatting, Action: action.ClearFormatting},

		{Label: "Paragraph", Group: GroupBlocks, Action: action.Paragraph},
		{Label: "Heading 1", Group: GroupBlocks, Action: action.Heading1},
		{Label: "Heading 2", Group: GroupBlocks, Action: action.Heading2},
		{Label: "Heading 3", Group: GroupBlocks, Action: action.Heading3},
		{Label: "Bullet List", Group: GroupBlocks, Action: action.BulletList},
		{Label: "Numbered List", Group: GroupBlocks, Action: action.OrderedList},
		{Label: "Task List", Group: GroupBlocks, Action: action.TaskList},
		{Label: "Blockquote", Group: GroupBlocks, Action: action.Blockquote},
		{Label: "Code Block", Group: GroupBlocks, Action: action.CodeBlock},
		{Label: "Divider", Group: GroupBlocks, Action: action.Divider},
		{Label: "Table", Group: GroupBlocks, Action: action.Table},

		{Label: "Align Left", Group: GroupAlignment, Action: action.AlignLeft},
		{Label: "Align Center", Group: GroupAlignment, Action: action.AlignCenter},
		{Label: "Align Right", Group: GroupAlignment, Action: action.AlignRight},

		{Label: "Undo", Group: GroupActions, Shortcut: "ctrl+z", Action: action.Undo},
		{Label: "Redo", Group: GroupActions, Shortcut: "ctrl+y", Action: action.Redo},
		{Label: "Print Document", Group: GroupActions, Action: action.Print},
		{Label: theme, Group: GroupActions, Shortcut: "ctrl+d", Action: action.ToggleTheme},
		{Label: "Export as Text", Group: GroupActions, Action: action.ExportText},
	}
}
