// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY - Keyboard reference rendered from Markdown
// =============================================================================

// HelpSection is one group of key bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpMarkdown renders sections as Markdown tables.
func HelpMarkdown(sections []HelpSection) string {
	var sb strings.Builder
	sb.WriteString("# Keyboard reference\n")
	for _, s := range sections {
		sb.WriteString("\n## " + s.Title + "\n\n")
		sb.WriteString("| Key | Action |\n| --- | --- |\n")
		for _, b := range s.Bindings {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			sb.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
		}
	}
	return sb.String()
}

// Help is a scrollable keyboard reference.
type Help struct {
	sections []HelpSection
	viewport viewport.Model
	visible  bool
	theme    *styles.Theme
}

// NewHelp creates a hidden help overlay listing sections.
func NewHelp(theme *styles.Theme, sections []HelpSection) *Help {
	return &Help{sections: sections, theme: theme}
}

// Visible reports whether the help overlay is open.
func (h *Help) Visible() bool { return h.visible }

// Hide closes the overlay.
func (h *Help) Hide() { h.visible = false }

// Show renders the reference for a width by height area.
func (h *Help) Show(width, height int, dark bool) {
	w := width - 8
	if w > 76 {
		w = 76
	}
	if w < 30 {
		w = 30
	}
	hh := height - 4
	if hh < 5 {
		hh = 5
	}

	h.viewport = viewport.New(w, hh)
	h.viewport.SetContent(renderMarkdown(HelpMarkdown(h.sections), w-2, dark))
	h.visible = true
}

// renderMarkdown renders md with glamour, falling back to the raw text.
func renderMarkdown(md string, width int, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("help: renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("help: render: %v", err)
		return md
	}
	return strings.Trim(out, "\n")
}

// Update scrolls the reference. Esc, q and f1 close it.
func (h *Help) Update(msg tea.Msg) tea.Cmd {
	if !h.visible {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "q", "f1":
			h.Hide()
			return nil
		}
	}
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd
}

// View renders the overlay box.
func (h *Help) View() string {
	if !h.visible {
		return ""
	}
	return h.theme.HelpBox.Render(h.viewport.View())
}
