// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeEach(d *Document, s string) {
	for _, r := range s {
		d.InsertText(string(r))
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestUndo_CoalescesTypingUntilWhitespace(t *testing.T) {
	d := New(Options{})
	typeEach(d, "hi there")
	require.Equal(t, "hi there", d.Text())

	require.True(t, d.Undo())
	assert.Equal(t, "hi ", d.Text())
	require.True(t, d.Undo())
	assert.Equal(t, "", d.Text())
	assert.False(t, d.CanUndo())

	require.True(t, d.Redo())
	assert.Equal(t, "hi ", d.Text())
}

func TestUndo_NewEditClearsRedo(t *testing.T) {
	d := New(Options{})
	d.InsertText("a")
	d.Undo()
	require.True(t, d.CanRedo())
	d.InsertText("b")
	assert.False(t, d.CanRedo())
}

func TestUndo_HistoryLimit(t *testing.T) {
	d := New(Options{HistoryLimit: 2})
	d.SetHeading(1)
	d.SetHeading(2)
	d.SetHeading(3)

	assert.True(t, d.Undo())
	assert.True(t, d.Undo())
	assert.False(t, d.Undo())
	assert.Equal(t, 1, d.Block(0).Level)
}

func TestTransact_SingleUndoStep(t *testing.T) {
	d := New(Options{})
	d.InsertText("abc")

	updates := 0
	d.Subscribe(func(ev Event) {
		if ev.Kind == EventUpdate {
			updates++
		}
	})

	err := d.Transact(func() error {
		d.SelectAll()
		d.DeleteBackward()
		d.InsertText("x")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "x", d.Text())
	assert.Equal(t, 1, updates)

	d.Undo()
	assert.Equal(t, "abc", d.Text())
}

func TestTransact_ErrorRollsBack(t *testing.T) {
	d := New(Options{})
	d.InsertText("abc")
	v := d.Version()

	boom := errors.New("boom")
	err := d.Transact(func() error {
		d.InsertText("zzz")
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "abc", d.Text())
	assert.Equal(t, v, d.Version())

	d.InsertText("d")
	assert.Equal(t, "abcd", d.Text())
}

// =============================================================================
// EVENT TESTS
// =============================================================================

func TestEvents_SelectionBeforeUpdate(t *testing.T) {
	d := New(Options{})
	var got []EventKind
	unsubscribe := d.Subscribe(func(ev Event) { got = append(got, ev.Kind) })

	d.InsertText("a")
	assert.Equal(t, []EventKind{EventSelectionUpdate, EventUpdate}, got)

	got = nil
	d.SetCursor(Pos{})
	assert.Equal(t, []EventKind{EventSelectionUpdate}, got)

	got = nil
	d.SetCursor(Pos{})
	assert.Empty(t, got)

	unsubscribe()
	d.InsertText("b")
	assert.Empty(t, got)
}

// =============================================================================
// EDITING TESTS
// =============================================================================

func TestDeleteBackward_GraphemeClusters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"ascii", "ab", "a"},
		{"combining accent", "xe\u0301", "x"},
		{"flag", "x\U0001F1FA\U0001F1F8", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Options{})
			d.InsertText(tt.text)
			d.DeleteBackward()
			assert.Equal(t, tt.want, d.Text())
		})
	}
}

func TestDeleteRange_AcrossBlocks(t *testing.T) {
	d := New(Options{})
	d.InsertText("ab")
	d.InsertNewline()
	d.InsertText("cd")
	require.Equal(t, 2, d.Len())

	d.DeleteRange(Range{From: Pos{Block: 0, Offset: 1}, To: Pos{Block: 1, Offset: 1}})
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "ad", d.Text())
	assert.Equal(t, Cursor(Pos{Offset: 1}), d.Selection())
}

func TestSlashCommandStyleReplace(t *testing.T) {
	d := New(Options{})
	d.InsertText("/head")

	err := d.Transact(func() error {
		d.DeleteRange(Range{From: Pos{}, To: Pos{Offset: 5}})
		d.SetHeading(1)
		return nil
	})
	require.NoError(t, err)

	b := d.Block(0)
	assert.Equal(t, KindHeading, b.Kind)
	assert.Equal(t, 1, b.Level)
	assert.Empty(t, b.Text)
}

func TestInsertNewline_EmptyListItemLifts(t *testing.T) {
	d := New(Options{})
	d.InsertText("a")
	d.ToggleBulletList()
	d.InsertNewline()
	require.Equal(t, 2, d.Len())
	assert.Equal(t, KindBulletList, d.Block(1).Kind)

	d.InsertNewline()
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, KindParagraph, d.Block(1).Kind)
}

func TestInsertNewline_HeadingEndMakesParagraph(t *testing.T) {
	d := New(Options{})
	d.InsertText("Title")
	d.SetHeading(2)
	d.InsertNewline()

	require.Equal(t, 2, d.Len())
	assert.Equal(t, KindHeading, d.Block(0).Kind)
	assert.Equal(t, KindParagraph, d.Block(1).Kind)
}

func TestPaste_SplitsLinesIntoBlocks(t *testing.T) {
	d := New(Options{})
	require.True(t, d.Paste("a\r\nb"))
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "a\n\nb", d.Text())

	d.Undo()
	assert.True(t, d.IsEmpty())
}

// =============================================================================
// BLOCK TESTS
// =============================================================================

func TestInsertTable_CursorInFirstCell(t *testing.T) {
	d := New(Options{})
	require.True(t, d.InsertTable(3, 3, true))

	require.Equal(t, 2, d.Len())
	tb := d.Block(0)
	assert.Equal(t, KindTable, tb.Kind)
	assert.Equal(t, 9, tb.Cells())
	assert.True(t, tb.Table.HeaderRow)
	assert.Equal(t, Cursor(Pos{}), d.Selection())

	d.InsertText("x")
	assert.Equal(t, "x", tb.PlainText(0))
}

func TestSetHorizontalRule_ThenBackspaceRemovesIt(t *testing.T) {
	d := New(Options{})
	d.InsertText("ab")
	d.SetHorizontalRule()

	require.Equal(t, 3, d.Len())
	assert.Equal(t, KindDivider, d.Block(1).Kind)
	assert.Equal(t, Pos{Block: 2}, d.Selection().Head)

	d.DeleteBackward()
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, KindParagraph, d.Block(1).Kind)
}

func TestToggleLists(t *testing.T) {
	d := New(Options{})
	d.InsertText("x")

	d.ToggleTaskList()
	assert.Equal(t, KindTaskList, d.Block(0).Kind)
	d.ToggleTaskChecked()
	assert.True(t, d.Block(0).Checked)

	d.ToggleBulletList()
	assert.Equal(t, KindBulletList, d.Block(0).Kind)
	assert.False(t, d.Block(0).Checked)

	d.Indent()
	assert.Equal(t, 1, d.Block(0).Indent)

	d.ToggleBulletList()
	assert.Equal(t, KindParagraph, d.Block(0).Kind)
	assert.Equal(t, 0, d.Block(0).Indent)
}

func TestToggleBlockquote(t *testing.T) {
	d := New(Options{})
	d.InsertText("q")
	d.ToggleBlockquote()
	assert.True(t, d.Block(0).Quoted)
	d.ToggleBlockquote()
	assert.False(t, d.Block(0).Quoted)
}

// =============================================================================
// MARK TESTS
// =============================================================================

func TestToggleMark_Word(t *testing.T) {
	d := New(Options{})
	d.InsertText("hello world")
	d.SelectWord(Pos{Offset: 1})

	require.True(t, d.ToggleMark(Bold))
	assert.True(t, d.IsActive(Bold))
	assert.Equal(t, "**hello** world", d.Markdown())

	require.True(t, d.ToggleMark(Bold))
	assert.False(t, d.IsActive(Bold))
}

func TestToggleMark_StoredForNextInsert(t *testing.T) {
	d := New(Options{})
	d.ToggleMark(Italic)
	assert.True(t, d.IsActive(Italic))

	d.InsertText("x")
	assert.Equal(t, Italic, d.Block(0).Text[0].Marks)
}

func TestToggleMark_CodeBlockUnchanged(t *testing.T) {
	d := New(Options{})
	d.InsertText("fmt")
	d.ToggleCodeBlock()
	d.SelectAll()
	assert.False(t, d.ToggleMark(Bold))
}

func TestSetLink(t *testing.T) {
	d := New(Options{})
	d.InsertText("go here")
	d.SelectWord(Pos{Offset: 0})
	require.True(t, d.SetLink("https://go.dev"))

	d.SetCursor(Pos{Offset: 1})
	assert.True(t, d.IsLinkActive())
	assert.Equal(t, "https://go.dev", d.LinkHref())
	assert.Equal(t, "[go](https://go.dev) here", d.Markdown())

	require.True(t, d.UnsetLink())
	assert.False(t, d.IsLinkActive())
}

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestMarkdown_Blocks(t *testing.T) {
	d := New(Options{})
	d.InsertText("Title")
	d.SetHeading(1)
	d.InsertNewline()
	d.InsertText("one")
	d.ToggleOrderedList()
	d.InsertNewline()
	d.InsertText("two")

	assert.Equal(t, "# Title\n\n1. one\n2. two", d.Markdown())
}

func TestMarkdown_EscapesText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a*b", `a\*b`},
		{"1. not a list", `1\. not a list`},
		{"- dash", `\- dash`},
		{"#tag", `\#tag`},
	}
	for _, tt := range tests {
		d := New(Options{})
		d.InsertText(tt.text)
		assert.Equal(t, tt.want, d.Markdown(), tt.text)
	}
}

func TestText_JoinsBlocks(t *testing.T) {
	d := New(Options{})
	d.InsertText("a")
	d.InsertNewline()
	d.InsertText("b")
	d.SetHorizontalRule()
	d.InsertText("c")

	assert.Equal(t, "a\n\nb\n\nc", d.Text())
}
