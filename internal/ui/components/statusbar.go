// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Page info, hints and transient messages
// =============================================================================

// MessageKind selects the styling of a transient message.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageSuccess
	MessageError
)

// DefaultMessageDuration is how long an info or success message stays.
const DefaultMessageDuration = 4 * time.Second

// ErrorMessageDuration is how long an error message stays (longer to read).
const ErrorMessageDuration = 8 * time.Second

// PageInfo is the fixed paper description.
const PageInfo = "A4 · 210 × 297 mm"

// Hint is shown on the right when no message is active.
const Hint = "/ for commands · ctrl+k palette · f1 help"

// StatusClearMsg clears the message with the given ID.
type StatusClearMsg struct {
	ID int
}

// StatusBar is the bottom bar.
type StatusBar struct {
	Page  int
	Width int

	message string
	kind    MessageKind
	msgID   int

	theme *styles.Theme
}

// NewStatusBar creates a status bar on page 1.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Page: 1, Width: 80, theme: theme}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetPage updates the page the cursor is on.
func (s *StatusBar) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// Message returns the active message, if any.
func (s *StatusBar) Message() string { return s.message }

// SetMessage shows text until the returned command clears it.
func (s *StatusBar) SetMessage(text string, kind MessageKind) tea.Cmd {
	s.msgID++
	s.message = text
	s.kind = kind

	d := DefaultMessageDuration
	if kind == MessageError {
		d = ErrorMessageDuration
	}
	id := s.msgID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}

// Update clears the message when its timer fires. A newer message is kept.
func (s *StatusBar) Update(msg tea.Msg) {
	if m, ok := msg.(StatusClearMsg); ok && m.ID == s.msgID {
		s.message = ""
	}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	th := s.theme
	inner := s.Width - 2 // padding
	if inner < 10 {
		inner = 10
	}

	left := th.ShortcutDesc.Render(PageInfo+" · ") + th.ShortcutKey.Render("Page "+toStr(s.Page))

	var right string
	switch {
	case s.message != "" && s.kind == MessageError:
		right = styles.RenderError(s.message)
	case s.message != "" && s.kind == MessageSuccess:
		right = styles.RenderSuccess(s.message)
	case s.message != "":
		right = th.ShortcutKey.Render(s.message)
	default:
		right = s.hint()
	}

	room := inner - lipgloss.Width(left) - 1
	if lipgloss.Width(right) > room {
		right = truncate.StringWithTail(right, uint(max(room, 0)), "…")
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return th.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// hint renders the shortcut hint with keys highlighted.
func (s *StatusBar) hint() string {
	th := s.theme
	parts := []struct{ key, desc string }{
		{"/", "for commands"},
		{"ctrl+k", "palette"},
		{"f1", "help"},
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, th.ShortcutKey.Render(p.key)+" "+th.ShortcutDesc.Render(p.desc))
	}
	return strings.Join(out, th.ShortcutDesc.Render(" · "))
}
