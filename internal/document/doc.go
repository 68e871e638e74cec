// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document implements the rich-text document model behind the editor.
//
// A document is a flat list of blocks. Text blocks (paragraphs, headings,
// list items, code blocks) hold runs of marked characters, tables hold one
// run per cell, and dividers and images hold no text at all. Every change
// goes through a command method that records undo history and notifies
// subscribers once per committed change. With Options.Typography set,
// typed punctuation such as "--" or "..." is rewritten by TypographyRules.
//
// # Key Types
//
//   - Document: the editable model with selection, history and events
//   - Block: one top-level element
//   - Pos, Range, Selection: addresses inside the document
//   - Event: SelectionUpdate and Update notifications
//   - InputRule: a typing rewrite, see TypographyRules
//
// # Usage
//
//	doc := document.New(document.Options{Placeholder: "Start writing..."})
//	doc.InsertText("Hello")
//	doc.SelectAll()
//	doc.ToggleMark(document.Bold)
//	fmt.Println(doc.Markdown()) // **Hello**
package document
