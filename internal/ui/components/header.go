// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with document title, counters and theme toggle
// =============================================================================

// DefaultTitle replaces an empty document title.
const DefaultTitle = "Untitled Document"

// Brand is the application name shown at the left of the header.
const Brand = "folio"

// HeaderRegion identifies a clickable part of the header.
type HeaderRegion int

const (
	RegionNone HeaderRegion = iota
	RegionTitle
	RegionTheme
)

// HeaderHeight is the number of rows the header occupies.
const HeaderHeight = 2

// Header is the title bar. The title switches between a label and an
// inline editor.
type Header struct {
	Title string
	Words int
	Chars int
	Dark  bool
	Width int

	editing bool
	input   textinput.Model
	theme   *styles.Theme
}

// NewHeader creates a header showing DefaultTitle.
func NewHeader(theme *styles.Theme) *Header {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Placeholder = DefaultTitle

	return &Header{
		Title: DefaultTitle,
		Width: 80,
		input: ti,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetCounts updates the word and character counters.
func (h *Header) SetCounts(words, chars int) {
	h.Words = words
	h.Chars = chars
}

// SetTitle sets the title, falling back to DefaultTitle when it is blank.
func (h *Header) SetTitle(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	h.Title = title
}

// Editing reports whether the title editor is active.
func (h *Header) Editing() bool { return h.editing }

// StartEditing switches the title into edit mode.
func (h *Header) StartEditing() tea.Cmd {
	h.editing = true
	h.input.SetValue(h.Title)
	h.input.CursorEnd()
	return h.input.Focus()
}

// Commit leaves edit mode, keeping the typed title.
func (h *Header) Commit() {
	if !h.editing {
		return
	}
	h.editing = false
	h.input.Blur()
	h.SetTitle(h.input.Value())
}

// Update feeds a message to the title editor. Enter and Esc commit.
func (h *Header) Update(msg tea.Msg) tea.Cmd {
	if !h.editing {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter, tea.KeyEsc:
			h.Commit()
			return nil
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return cmd
}

// themeLabel names the mode the toggle switches to.
func (h *Header) themeLabel() string {
	if h.Dark {
		return "Light mode"
	}
	return "Dark mode"
}

// layout computes the visible pieces of the header row.
func (h *Header) layout() (brand, title, counts, button string, inner int) {
	th := h.theme
	inner = h.Width - 2 // padding
	if inner < 20 {
		inner = 20
	}

	brand = th.HeaderBrand.Render(Brand) + th.HeaderCount.Render(" │ ")
	counts = th.HeaderCount.Render(plural(h.Words, "word") + " · " + plural(h.Chars, "char"))
	button = th.HeaderButton.Render(h.themeLabel())

	avail := inner - lipgloss.Width(brand) - lipgloss.Width(counts) - lipgloss.Width(button) - 2
	if avail < 8 {
		// Narrow terminals drop the counters first.
		counts = ""
		avail = inner - lipgloss.Width(brand) - lipgloss.Width(button) - 1
	}
	if avail < 1 {
		avail = 1
	}

	if h.editing {
		h.input.Width = avail - 1
		title = th.HeaderEditing.Render(padTo(h.input.View(), avail))
	} else {
		title = th.HeaderTitle.Render(truncate.StringWithTail(h.Title, uint(avail), "…"))
	}
	return brand, title, counts, button, inner
}

// View renders the header.
func (h *Header) View() string {
	brand, title, counts, button, inner := h.layout()

	left := brand + title
	right := counts
	if right != "" {
		right += " "
	}
	right += button

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	row := left + strings.Repeat(" ", gap) + right
	return h.theme.Header.Width(h.Width).Render(row)
}

// Hit maps a column of the header row to a clickable region.
func (h *Header) Hit(x int) HeaderRegion {
	brand, title, _, button, inner := h.layout()
	x-- // padding

	start := lipgloss.Width(brand)
	if x >= start && x < start+lipgloss.Width(title) {
		return RegionTitle
	}
	bw := lipgloss.Width(button)
	if x >= inner-bw && x < inner {
		return RegionTheme
	}
	return RegionNone
}
