// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// URL PROMPT - Modal single-line input for link and image URLs
// =============================================================================

// PromptWidth is the outer width of the prompt box.
const PromptWidth = 54

// Prompt asks for a URL on behalf of a pending action.
type Prompt struct {
	input   textinput.Model
	title   string
	pending action.Action
	visible bool
	theme   *styles.Theme
}

// NewPrompt creates a hidden prompt.
func NewPrompt(theme *styles.Theme) *Prompt {
	ti := textinput.New()
	ti.Placeholder = "https://"
	ti.Prompt = "> "
	ti.CharLimit = 2048
	ti.Width = PromptWidth - 10
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	return &Prompt{input: ti, theme: theme}
}

// Show opens the prompt for pending, prefilled with value.
func (p *Prompt) Show(pending action.Action, title, value string) tea.Cmd {
	p.pending = pending
	p.title = title
	p.visible = true
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Hide closes the prompt without running anything.
func (p *Prompt) Hide() {
	p.visible = false
	p.input.Blur()
}

// Visible reports whether the prompt is open.
func (p *Prompt) Visible() bool { return p.visible }

// Title returns the prompt title.
func (p *Prompt) Title() string { return p.title }

// Pending returns the action waiting for a URL.
func (p *Prompt) Pending() action.Action { return p.pending }

// Update handles a message while the prompt is open. Enter with a
// non-empty value runs the pending action with the value as its argument;
// Esc or an empty value cancels without touching the document.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			p.Hide()
			return p, nil
		case tea.KeyEnter:
			value := strings.TrimSpace(p.input.Value())
			p.Hide()
			if value == "" {
				return p, nil
			}
			a := p.pending
			a.Arg = value
			return p, action.Run(a)
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt box.
func (p *Prompt) View() string {
	if !p.visible {
		return ""
	}
	th := p.theme
	help := th.PaletteHelp.Render("enter confirm · esc cancel")
	content := lipgloss.JoinVertical(lipgloss.Left,
		th.PromptTitle.Render(p.title),
		"",
		p.input.View(),
		"",
		help,
	)
	return th.PromptBox.Width(PromptWidth - 2).Render(content)
}
