// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/export"
)

// =============================================================================
// ACTION HOST
// =============================================================================

// host carries out the dispatcher's side effects on the shell.
type host struct {
	m *Model
}

// Print renders the print view off the UI goroutine.
func (h host) Print(doc *document.Document) tea.Cmd {
	snap := export.Freeze(doc)
	opts := export.OptionsFromConfig(h.m.cfg, h.m.header.Title)
	return func() tea.Msg {
		path, err := export.Print(snap, opts)
		return PrintDoneMsg{Path: path, Err: err}
	}
}

// ToggleTheme flips the palette immediately so the next frame and the
// command palette label already reflect it.
func (h host) ToggleTheme() tea.Cmd {
	m := h.m
	dark := m.theme.Toggle()
	m.header.Dark = dark
	if m.debug {
		log.Printf("theme: %s", m.theme.ModeName())
	}
	return nil
}

// ExportText writes the plain text projection off the UI goroutine.
func (h host) ExportText(doc *document.Document) tea.Cmd {
	snap := export.Freeze(doc)
	opts := export.OptionsFromConfig(h.m.cfg, h.m.header.Title)
	return func() tea.Msg {
		path, err := export.ExportText(snap, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// PromptURL opens the URL prompt, prefilled with the current link target.
func (h host) PromptURL(pending action.Action, title string) tea.Cmd {
	m := h.m
	value := ""
	if pending.Kind == action.Link {
		value = m.doc.LinkHref()
	}
	m.slash.Close()
	return m.prompt.Show(pending, title, value)
}
