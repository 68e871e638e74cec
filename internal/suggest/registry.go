// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest implements the slash command menu: a fixed registry of
// block commands and the controller that opens on "/" and routes keys.
package suggest

import (
	"strings"

	"github.com/jeranaias/folio/internal/action"
)

// Item is one entry of the slash menu.
type Item struct {
	Title       string
	Description string
	Icon        string
	Action      action.Kind
}

// registry is the fixed, ordered list of slash commands.
var registry = []Item{
	{Title: "Text", Description: "Plain paragraph text", Icon: "T", Action: action.Paragraph},
	{Title: "Heading 1", Description: "Large section heading", Icon: "H1", Action: action.Heading1},
	{Title: "Heading 2", Description: "Medium section heading", Icon: "H2", Action: action.Heading2},
	{Title: "Heading 3", Description: "Small section heading", Icon: "H3", Action: action.Heading3},
	{Title: "Bullet List", Description: "Unordered list of items", Icon: "•", Action: action.BulletList},
	{Title: "Numbered List", Description: "Ordered list of items", Icon: "1.", Action: action.OrderedList},
	{Title: "Task List", Description: "Checklist with checkboxes", Icon: "[]", Action: action.TaskList},
	{Title: "Quote", Description: "Blockquote for citations", Icon: "\"", Action: action.Blockquote},
	{Title: "Code Block", Description: "Fenced code block", Icon: "<>", Action: action.CodeBlock},
	{Title: "Divider", Description: "Horizontal separator line", Icon: "--", Action: action.Divider},
	{Title: "Table", Description: "Insert a 3×3 table", Icon: "##", Action: action.Table},
	{Title: "Image", Description: "Embed an image from URL", Icon: "[]", Action: action.Image},
}

// All returns every slash command in definition order.
func All() []Item {
	return append([]Item(nil), registry...)
}

// Items returns the commands whose title contains query, ignoring case,
// in definition order. An empty query returns all of them.
func Items(query string) []Item {
	q := strings.ToLower(query)
	out := make([]Item, 0, len(registry))
	for _, it := range registry {
		if strings.Contains(strings.ToLower(it.Title), q) {
			out = append(out, it)
		}
	}
	return out
}
