// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestToStr(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{9, "9"},
		{10, "10"},
		{1000, "1000"},
		{-123, "-123"},
		{-9223372036854775808, "-9223372036854775808"},
	}

	for _, tc := range tests {
		if got := toStr(tc.input); got != tc.want {
			t.Errorf("toStr(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFmtNumberGroups(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}

	for _, tc := range tests {
		if got := fmtNumber(tc.input); got != tc.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPluralZero(t *testing.T) {
	if got := plural(0, "word"); got != "0 words" {
		t.Errorf("plural(0) = %q", got)
	}
}

func TestPadTo(t *testing.T) {
	if got := padTo("ab", 4); got != "ab  " {
		t.Errorf("padTo(ab, 4) = %q", got)
	}
	if got := padTo("abcdef", 4); got != "abcdef" {
		t.Errorf("padTo must not truncate, got %q", got)
	}
	if got := padTo("é", 2); got != "é " {
		t.Errorf("padTo counts cells, got %q", got)
	}
}
