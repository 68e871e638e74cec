// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typographic() *Document {
	return New(Options{Typography: true})
}

// =============================================================================
// INPUT RULE TESTS
// =============================================================================

func TestTypography_Rules(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  string
	}{
		{"em dash", "a--b", "a—b"},
		{"ellipsis", "wait...", "wait…"},
		{"double quotes", `say "hi"`, "say “hi”"},
		{"apostrophe", "it's", "it’s"},
		{"single quotes", "'x'", "‘x’"},
		{"left arrow", "a<-b", "a←b"},
		{"right arrow", "a->b", "a→b"},
		{"copyright", "(c) 2025", "© 2025"},
		{"trademark", "Go(tm)", "Go™"},
		{"servicemark", "(sm)", "℠"},
		{"registered", "(r)", "®"},
		{"one half", "1/2 cup", "½ cup"},
		{"one quarter", "1/4 ", "¼ "},
		{"three quarters", "3/4 ", "¾ "},
		{"plus minus", "+/-", "±"},
		{"not equal", "a != b", "a ≠ b"},
		{"guillemets", "<<oui>>", "«oui»"},
		{"multiplication", "2x3", "2×3"},
		{"superscript two", "m^2", "m²"},
		{"superscript three", "m^3", "m³"},
		{"plain text untouched", "hello world", "hello world"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := typographic()
			typeEach(d, tc.typed)
			assert.Equal(t, tc.want, d.Text())
		})
	}
}

func TestTypography_CursorFollowsReplacement(t *testing.T) {
	d := typographic()
	typeEach(d, "a--")
	assert.Equal(t, Cursor(Pos{Offset: 2}), d.Selection())

	typeEach(d, "b")
	assert.Equal(t, "a—b", d.Text())
}

func TestTypography_SkipsCodeBlocks(t *testing.T) {
	d := typographic()
	require.True(t, d.ToggleCodeBlock())
	typeEach(d, "x -> y...")
	assert.Equal(t, "x -> y...", d.Text())
}

func TestTypography_SkipsInlineCode(t *testing.T) {
	d := typographic()
	d.ToggleMark(Code)
	typeEach(d, "a--")
	assert.Equal(t, "a--", d.Text())
}

func TestTypography_KeepsMarks(t *testing.T) {
	d := typographic()
	d.ToggleMark(Bold)
	typeEach(d, "a--")

	text := d.Block(0).Text
	require.Len(t, text, 2)
	assert.Equal(t, '—', text[1].R)
	assert.True(t, text[1].Marks.Has(Bold))
}

func TestTypography_InTableCell(t *testing.T) {
	d := typographic()
	require.True(t, d.InsertTable(2, 2, true))
	typeEach(d, "a->b")
	assert.Equal(t, "a→b", d.Block(0).PlainText(0))
}

func TestTypography_SharesUndoStepWithTyping(t *testing.T) {
	d := typographic()
	typeEach(d, "a --")
	require.Equal(t, "a —", d.Text())

	require.True(t, d.Undo())
	assert.Equal(t, "a ", d.Text())
}

func TestTypography_NotAppliedToPaste(t *testing.T) {
	d := typographic()
	d.Paste("a -- \"b\"")
	assert.Equal(t, "a -- \"b\"", d.Text())
}

func TestTypography_Disabled(t *testing.T) {
	d := New(Options{})
	typeEach(d, "a--")
	assert.Equal(t, "a--", d.Text())
}
