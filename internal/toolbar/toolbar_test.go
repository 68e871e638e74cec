// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package toolbar

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/layout"
	"github.com/jeranaias/folio/internal/ui/styles"
)

type promptHost struct {
	prompts []action.Action
}

func (h *promptHost) Print(*document.Document) tea.Cmd      { return nil }
func (h *promptHost) ToggleTheme() tea.Cmd                  { return nil }
func (h *promptHost) ExportText(*document.Document) tea.Cmd { return nil }
func (h *promptHost) PromptURL(a action.Action, _ string) tea.Cmd {
	h.prompts = append(h.prompts, a)
	return nil
}

var surface = layout.Rect{X: 0, Y: 0, W: 80, H: 40}

// fakePositions puts block i on row 5+2i, offset n at column n+2.
func fakePositions(p document.Pos) (layout.Rect, bool) {
	return layout.Rect{X: p.Offset + 2, Y: 5 + 2*p.Block, W: 1, H: 1}, true
}

func setup(t *testing.T) (*document.Document, *Controller, *promptHost) {
	t.Helper()
	doc := document.New(document.Options{})
	doc.InsertText("hello world")
	require.True(t, doc.SelectWord(document.Pos{Offset: 1}))

	host := &promptHost{}
	d := action.NewDispatcher(doc, host)
	c := NewController(doc, d.Dispatch, Options{BlurGrace: time.Millisecond})
	c.Sync(fakePositions, surface)
	require.True(t, c.Visible())
	return doc, c, host
}

// =============================================================================
// PLACEMENT
// =============================================================================

func TestCompute(t *testing.T) {
	at := func(x, y int) layout.Rect { return layout.Rect{X: x, Y: y, W: 1, H: 1} }

	tests := []struct {
		name       string
		start, end layout.Rect
		surface    layout.Rect
		want       Position
	}{
		{"centred", at(20, 5), at(40, 5), surface, Position{Top: 3, Left: 15}},
		{"clamped right", at(70, 5), at(78, 5), surface, Position{Top: 3, Left: 50}},
		{"clamped left", at(1, 5), at(5, 5), surface, Position{Top: 3, Left: 0}},
		{"surface offset", at(6, 5), at(6, 5), layout.Rect{X: 4, Y: 0, W: 60, H: 40}, Position{Top: 3, Left: 4}},
		{"below when no room above", at(10, 1), at(30, 2), surface, Position{Top: 4, Left: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.start, tt.end, tt.surface, 30))
		})
	}
}

func TestCompute_LeftAlwaysInsideSurface(t *testing.T) {
	s := layout.Rect{X: 3, Y: 0, W: 70, H: 20}
	for x1 := s.X; x1 < s.X+s.W; x1++ {
		for _, span := range []int{0, 5, 30} {
			x2 := x1 + span
			if x2 >= s.X+s.W {
				x2 = s.X + s.W - 1
			}
			p := Compute(layout.Rect{X: x1, Y: 10, W: 1, H: 1}, layout.Rect{X: x2, Y: 10, W: 1, H: 1}, s, 30)
			assert.GreaterOrEqual(t, p.Left, s.X)
			assert.LessOrEqual(t, p.Left, s.X+s.W-30)
		}
	}
}

// =============================================================================
// VISIBILITY
// =============================================================================

func TestSync(t *testing.T) {
	doc, c, _ := setup(t)
	assert.Equal(t, Position{Top: 3, Left: 0}, c.Position())

	doc.SetCursor(document.Pos{Offset: 3})
	c.Sync(fakePositions, surface)
	assert.False(t, c.Visible())

	doc.SelectAll()
	c.Sync(func(document.Pos) (layout.Rect, bool) { return layout.Rect{}, false }, surface)
	assert.False(t, c.Visible(), "no layout means no toolbar")
}

func TestBlur(t *testing.T) {
	t.Run("hides after grace", func(t *testing.T) {
		_, c, _ := setup(t)
		cmd := c.Blur()
		require.NotNil(t, cmd)
		c.Update(cmd())
		assert.False(t, c.Visible())
	})

	t.Run("focus cancels", func(t *testing.T) {
		_, c, _ := setup(t)
		cmd := c.Blur()
		c.Focus()
		c.Update(cmd())
		assert.True(t, c.Visible())
	})

	t.Run("click inside toolbar keeps it", func(t *testing.T) {
		_, c, _ := setup(t)
		cmd := c.Blur()
		c.Click(0)
		c.Update(cmd())
		assert.True(t, c.Visible())
	})

	t.Run("keyboard focus keeps it", func(t *testing.T) {
		_, c, _ := setup(t)
		handled, _ := c.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
		require.True(t, handled)
		cmd := c.Blur()
		c.Update(cmd())
		assert.True(t, c.Visible())
	})
}

// =============================================================================
// BUTTONS
// =============================================================================

func TestClickBold_KeepsSelection(t *testing.T) {
	doc, c, _ := setup(t)
	before := doc.Selection()

	c.Click(1) // inside "B"
	assert.Equal(t, "**hello** world", doc.Markdown())
	assert.Equal(t, before, doc.Selection())

	c.Sync(fakePositions, surface)
	assert.True(t, c.Visible())
}

func TestKeyboardPress(t *testing.T) {
	doc, c, _ := setup(t)

	handled, _ := c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}, Alt: true})
	assert.True(t, handled)
	assert.Equal(t, "<u>hello</u> world", doc.Markdown())

	c.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, c.Focused())
	c.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	c.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	c.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, len(Buttons)-1, c.Cursor())
	c.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "<u>**hello**</u> world", doc.Markdown())

	handled, _ = c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, handled)
	assert.False(t, c.Focused())
}

func TestLinkButton(t *testing.T) {
	doc, c, host := setup(t)
	link := len(Buttons) - 1

	assert.Nil(t, c.Press(link))
	require.Len(t, host.prompts, 1)
	assert.Equal(t, action.Link, host.prompts[0].Kind)
	assert.Equal(t, "hello world", doc.Markdown(), "no mutation before a URL is given")

	d := action.NewDispatcher(doc, host)
	pending := host.prompts[0]
	pending.Arg = "https://example.com"
	d.Dispatch(pending)
	assert.Equal(t, "[hello](https://example.com) world", doc.Markdown())

	c.Press(link)
	assert.Equal(t, "hello world", doc.Markdown())
	assert.Len(t, host.prompts, 1)
}

func TestButtonAt(t *testing.T) {
	_, c, _ := setup(t)
	tests := []struct {
		x    int
		want int
		ok   bool
	}{
		{0, 0, true},
		{2, 0, true},
		{3, 1, true},
		{12, 4, true},
		{15, 4, true},
		{19, 6, true},
		{24, 6, true},
		{25, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		i, ok := c.ButtonAt(tt.x)
		assert.Equal(t, tt.ok, ok, "x=%d", tt.x)
		assert.Equal(t, tt.want, i, "x=%d", tt.x)
	}
	assert.Equal(t, 25, MinWidth)
}

func TestView(t *testing.T) {
	th := styles.NewTheme(styles.ModeLight)
	doc, c, _ := setup(t)

	out := c.View(th)
	assert.Equal(t, DefaultWidth, lipgloss.Width(out))
	assert.Equal(t, "B I U S <> H Link", trimSpaces(ansi.Strip(out)))

	doc.SetCursor(document.Pos{})
	c.Sync(fakePositions, surface)
	assert.Empty(t, c.View(th))
}

func TestWidthClamp(t *testing.T) {
	c := NewController(document.New(document.Options{}), nil, Options{Width: 5})
	assert.Equal(t, MinWidth, c.Width())
	c.SetWidth(0)
	assert.Equal(t, DefaultWidth, c.Width())
}

func trimSpaces(s string) string {
	out := []rune{}
	space := false
	for _, r := range s {
		if r == ' ' {
			space = true
			continue
		}
		if space && len(out) > 0 {
			out = append(out, ' ')
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
