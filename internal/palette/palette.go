// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package palette implements the ctrl+k command palette: a grouped,
// filterable list of every editor command.
package palette

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// COMMAND PALETTE
// =============================================================================

const (
	// BoxWidth is the outer width of the palette box.
	BoxWidth = 56

	// MaxRows is the number of list rows shown, group headings included.
	MaxRows = 14
)

// Palette is the modal command list.
type Palette struct {
	// Input field for filtering
	input textinput.Model

	// All entries for the current theme and the ones matching the filter
	entries  []Entry
	filtered []Entry

	// Selected index into filtered
	selected int

	visible bool
	theme   *styles.Theme
}

// New creates a closed palette.
func New(theme *styles.Theme) *Palette {
	ti := textinput.New()
	ti.Placeholder = "Type a command or search..."
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = BoxWidth - 10
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	return &Palette{input: ti, theme: theme}
}

// =============================================================================
// PUBLIC METHODS
// =============================================================================

// Show opens the palette with an empty filter. dark selects the label of
// the theme entry.
func (p *Palette) Show(dark bool) tea.Cmd {
	p.visible = true
	p.entries = Entries(dark)
	p.input.Reset()
	p.updateFiltered()
	return p.input.Focus()
}

// Hide closes the palette.
func (p *Palette) Hide() {
	p.visible = false
	p.input.Blur()
}

// Toggle opens a closed palette and closes an open one.
func (p *Palette) Toggle(dark bool) tea.Cmd {
	if p.visible {
		p.Hide()
		return nil
	}
	return p.Show(dark)
}

// Visible reports whether the palette is open.
func (p *Palette) Visible() bool { return p.visible }

// Filtered returns the entries matching the filter, grouped.
func (p *Palette) Filtered() []Entry { return p.filtered }

// Selected returns the index of the highlighted entry.
func (p *Palette) Selected() int { return p.selected }

// Query returns the filter text.
func (p *Palette) Query() string { return p.input.Value() }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles messages while the palette is open. Choosing an entry
// closes the palette before the returned command delivers the action.
func (p *Palette) Update(msg tea.Msg) (*Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(p.filtered)
		switch msg.String() {
		case "esc":
			p.Hide()
			return p, nil

		case "enter":
			if n == 0 {
				return p, nil
			}
			return p, p.choose(p.selected)

		case "up", "ctrl+p":
			if n > 0 {
				p.selected = (p.selected - 1 + n) % n
			}
			return p, nil

		case "down", "ctrl+n", "tab":
			if n > 0 {
				p.selected = (p.selected + 1) % n
			}
			return p, nil
		}
	}

	previousValue := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != previousValue {
		p.updateFiltered()
	}
	return p, cmd
}

func (p *Palette) choose(i int) tea.Cmd {
	e := p.filtered[i]
	p.Hide()
	return action.Run(action.Action{Kind: e.Action})
}

// Click handles a mouse press at (x, y) relative to the box's top-left
// corner. A press outside the box closes the palette; a press on an entry
// chooses it.
func (p *Palette) Click(x, y int) tea.Cmd {
	if !p.visible {
		return nil
	}
	w, h := lipgloss.Size(p.View())
	if x < 0 || y < 0 || x >= w || y >= h {
		p.Hide()
		return nil
	}
	if i, ok := p.entryAtRow(y - listTop); ok {
		return p.choose(i)
	}
	return nil
}

// =============================================================================
// FILTERING
// =============================================================================

type labels []Entry

func (l labels) String(i int) string { return l[i].Label }
func (l labels) Len() int            { return len(l) }

// updateFiltered recomputes the matching entries. Groups keep their order;
// inside a group entries are ranked by fuzzy score.
func (p *Palette) updateFiltered() {
	p.selected = 0
	filter := strings.TrimSpace(p.input.Value())
	if filter == "" {
		p.filtered = append([]Entry(nil), p.entries...)
		return
	}

	byGroup := map[string][]Entry{}
	for _, m := range fuzzy.FindFrom(filter, labels(p.entries)) {
		e := p.entries[m.Index]
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}
	p.filtered = p.filtered[:0]
	for _, g := range Groups {
		p.filtered = append(p.filtered, byGroup[g]...)
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// listTop is the row of the first list line inside the box: border,
// padding, header, input and separator.
const listTop = 5

// row is one rendered list line: a group heading or an entry.
type row struct {
	group string
	entry int // index into filtered, -1 for headings
}

// rows lays out the visible list lines, scrolled so the selected entry is
// on screen.
func (p *Palette) rows() []row {
	var all []row
	sel := 0
	group := ""
	for i, e := range p.filtered {
		if e.Group != group {
			group = e.Group
			all = append(all, row{group: group, entry: -1})
		}
		if i == p.selected {
			sel = len(all)
		}
		all = append(all, row{entry: i})
	}
	if len(all) <= MaxRows {
		return all
	}
	top := sel - MaxRows + 1
	if top < 0 {
		top = 0
	}
	return all[top : top+MaxRows]
}

func (p *Palette) entryAtRow(r int) (int, bool) {
	rows := p.rows()
	if r < 0 || r >= len(rows) || rows[r].entry < 0 {
		return 0, false
	}
	return rows[r].entry, true
}

// View renders the palette box. The caller centres it over the editor.
func (p *Palette) View() string {
	if !p.visible {
		return ""
	}
	th := p.theme
	inner := BoxWidth - 6 // border and padding

	header := th.PaletteHeader.Render("Commands")
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(strings.Repeat("─", inner))

	var list []string
	for _, r := range p.rows() {
		if r.entry < 0 {
			list = append(list, th.PaletteGroup.Render(r.group))
			continue
		}
		list = append(list, p.renderEntry(p.filtered[r.entry], r.entry == p.selected, inner))
	}
	body := strings.Join(list, "\n")
	if len(p.filtered) == 0 {
		body = th.PaletteEmpty.Render("No results found.")
	}

	help := th.PaletteHelp.Render("↑/↓ navigate · enter select · esc close")

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		p.input.View(),
		sep,
		body,
		"",
		help,
	)
	return th.PaletteBox.Width(BoxWidth - 2).Render(content)
}

// renderEntry renders one entry row, label left and shortcut right.
func (p *Palette) renderEntry(e Entry, selected bool, width int) string {
	th := p.theme
	style := th.PaletteItem
	if selected {
		style = th.PaletteItemSelected
	}
	avail := width - 2 // item padding
	label := truncate.StringWithTail(e.Label, uint(avail-lipgloss.Width(e.Shortcut)-1), "…")
	gap := avail - lipgloss.Width(label) - lipgloss.Width(e.Shortcut)
	if gap < 1 {
		gap = 1
	}
	shortcut := e.Shortcut
	if !selected {
		shortcut = th.PaletteShortcut.Render(shortcut)
	}
	return style.Render(label + strings.Repeat(" ", gap) + shortcut)
}
