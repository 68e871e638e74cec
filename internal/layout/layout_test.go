// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/ui/styles"
)

func chars(s string) []document.Char {
	var cs []document.Char
	for _, r := range s {
		cs = append(cs, document.Char{R: r})
	}
	return cs
}

func render(doc *document.Document, width int) *Layout {
	return Render(doc, Options{Width: width, Theme: styles.NewTheme(styles.ModeLight), Focused: true})
}

// =============================================================================
// WRAP TESTS
// =============================================================================

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  [][2]int
	}{
		{"empty", "", 10, [][2]int{{0, 0}}},
		{"fits", "hello", 10, [][2]int{{0, 5}}},
		{"word break", "hello world", 6, [][2]int{{0, 6}, {6, 11}}},
		{"hard break", "ab\ncd", 10, [][2]int{{0, 2}, {3, 5}}},
		{"trailing break", "a\n", 10, [][2]int{{0, 1}, {2, 2}}},
		{"long word", "abcdefgh", 3, [][2]int{{0, 3}, {3, 6}, {6, 8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			for _, l := range wrap(chars(tt.text), tt.width, true) {
				got = append(got, [2]int{l.start, l.end})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrap_WideRunes(t *testing.T) {
	lines := wrap(chars("日本語"), 4, false)
	require.Len(t, lines, 2)
	assert.Equal(t, 4, lines[0].width)
	assert.Equal(t, 2, lines[1].width)
}

func TestLineFor_SoftWrapPrefersNextLine(t *testing.T) {
	lines := wrap(chars("hello world"), 6, true)
	assert.Equal(t, 0, lineFor(lines, 5))
	assert.Equal(t, 1, lineFor(lines, 6))
	assert.Equal(t, 1, lineFor(lines, 11))
}

// =============================================================================
// GEOMETRY TESTS
// =============================================================================

func TestPositionAt_Paragraphs(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("hello")
	doc.InsertNewline()
	doc.InsertText("world")

	l := render(doc, 30)
	r, ok := l.PositionAt(document.Pos{Block: 0, Offset: 5})
	require.True(t, ok)
	assert.Equal(t, Rect{X: 5, Y: 0, W: 1, H: 1}, r)

	r, ok = l.PositionAt(document.Pos{Block: 1, Offset: 2})
	require.True(t, ok)
	assert.Equal(t, 2, r.X)
	assert.Equal(t, 2, r.Y, "blocks are separated by a blank line")
}

func TestPositionAt_ListAndQuotePrefixes(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("item")
	doc.ToggleBulletList()
	doc.InsertNewline()
	doc.InsertText("quoted")
	doc.ToggleBulletList()
	doc.ToggleBlockquote()

	l := render(doc, 30)
	r, ok := l.PositionAt(document.Pos{Block: 0})
	require.True(t, ok)
	assert.Equal(t, 2, r.X)

	r, ok = l.PositionAt(document.Pos{Block: 1})
	require.True(t, ok)
	assert.Equal(t, 2, r.X)
	assert.Equal(t, 2, r.Y)
}

func TestPositionAt_CenterAlign(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("ab")
	doc.SetTextAlign(document.AlignCenter)

	l := render(doc, 21)
	r, ok := l.PositionAt(document.Pos{})
	require.True(t, ok)
	assert.Equal(t, (21-1-2)/2, r.X)
}

func TestPositionAt_TableCells(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertTable(3, 3, true)

	l := render(doc, 40)
	// (40-1)/3 - 3 = 10 columns of text per cell.
	r, ok := l.PositionAt(document.Pos{Block: 0, Cell: 0})
	require.True(t, ok)
	assert.Equal(t, Rect{X: 2, Y: 1, W: 1, H: 1}, r)

	r, ok = l.PositionAt(document.Pos{Block: 0, Cell: 1})
	require.True(t, ok)
	assert.Equal(t, 15, r.X)

	r, ok = l.PositionAt(document.Pos{Block: 0, Cell: 3})
	require.True(t, ok)
	assert.Equal(t, 3, r.Y, "second row follows a rule")
}

func TestPositionAt_Unknown(t *testing.T) {
	doc := document.New(document.Options{})
	l := render(doc, 30)
	_, ok := l.PositionAt(document.Pos{Block: 5})
	assert.False(t, ok)
}

func TestPosAt_RoundTrip(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("hello world, this wraps")
	doc.InsertNewline()
	doc.InsertTable(2, 2, false)

	l := render(doc, 20)
	positions := []document.Pos{
		{Block: 0, Offset: 3},
		{Block: 0, Offset: 14},
		{Block: 1, Cell: 1},
		{Block: 1, Cell: 2},
	}
	for _, p := range positions {
		r, ok := l.PositionAt(p)
		require.True(t, ok, "%+v", p)
		got, ok := l.PosAt(r.X, r.Y)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

// =============================================================================
// RENDER TESTS
// =============================================================================

func TestRender_LinesFillWidth(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("Title")
	doc.SetHeading(1)
	doc.InsertNewline()
	doc.InsertText("one")
	doc.ToggleOrderedList()
	doc.InsertNewline()
	doc.InsertText("two")
	doc.SetHorizontalRule()
	doc.InsertText("fmt.Println()")
	doc.ToggleCodeBlock()
	doc.InsertNewline()
	doc.SetImage("https://example.com/cat.png")

	const width = 32
	l := render(doc, width)
	for i, line := range l.Lines() {
		assert.Equal(t, width, lipgloss.Width(line), "line %d: %q", i, line)
	}
}

func TestRender_Content(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("first")
	doc.ToggleOrderedList()
	doc.InsertNewline()
	doc.InsertText("second")
	doc.InsertNewline()
	doc.InsertNewline()
	doc.SetImage("cat.png")

	plain := ansi.Strip(render(doc, 30).String())
	assert.Contains(t, plain, "1. first")
	assert.Contains(t, plain, "2. second")
	assert.Contains(t, plain, "[image: cat.png]")
}

func TestRender_Placeholder(t *testing.T) {
	doc := document.New(document.Options{Placeholder: "Start writing..."})
	l := render(doc, 30)

	require.Equal(t, 1, l.Height())
	assert.True(t, strings.HasPrefix(ansi.Strip(l.Lines()[0]), "Start writing..."))

	r, ok := l.PositionAt(document.Pos{})
	require.True(t, ok)
	assert.Equal(t, 0, r.X)
}
