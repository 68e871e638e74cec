// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_CreatesParentDirs(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "exports", "2025", "document.txt")

	if err := AtomicWriteFile(path, []byte("one\n\ntwo"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "one\n\ntwo" {
		t.Errorf("content = %q", got)
	}

	if runtime.GOOS != "windows" {
		private := filepath.Join(root, "private", "config.toml")
		if err := AtomicWriteFile(private, []byte("[ui]\n"), 0o600); err != nil {
			t.Fatalf("AtomicWriteFile: %v", err)
		}
		info, err := os.Stat(filepath.Dir(private))
		if err != nil {
			t.Fatalf("stat dir: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o700 {
			t.Errorf("private parent dir mode = %o, want 700", perm)
		}
	}
}

func TestAtomicWriteFile_OverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "document.txt")

	for _, content := range []string{"first draft", "final"} {
		if err := AtomicWriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("AtomicWriteFile(%q): %v", content, err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "final" {
		t.Errorf("content = %q, want %q", got, "final")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only document.txt", len(entries))
	}
}

// =============================================================================
// TEXT HELPER TESTS
// =============================================================================

func TestCounts(t *testing.T) {
	testCases := []struct {
		input string
		words int
		chars int
	}{
		{"", 0, 0},
		{"   ", 0, 3},
		{"hello world", 2, 11},
		{"  two\n\nlines  ", 2, 14},
		{"caf\u00e9 \u65e5\u672c", 2, 7},
	}

	for _, tc := range testCases {
		if got := CountWords(tc.input); got != tc.words {
			t.Errorf("CountWords(%q) = %d, want %d", tc.input, got, tc.words)
		}
		if got := CountChars(tc.input); got != tc.chars {
			t.Errorf("CountChars(%q) = %d, want %d", tc.input, got, tc.chars)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a\r\nb", "a\nb"},
		{"a\rb\r\nc", "a\nb\nc"},
	}

	for _, tc := range testCases {
		if got := NormalizeNewlines(tc.input); got != tc.expected {
			t.Errorf("NormalizeNewlines(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	testCases := []struct {
		input    string
		maxWidth int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"\u65e5\u672c\u8a9e\u6587", 7, "\u65e5\u672c..."},
	}

	for _, tc := range testCases {
		if got := TruncateWidth(tc.input, tc.maxWidth); got != tc.expected {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.expected)
		}
	}
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Untitled Document", "untitled-document"},
		{"  Q3 -- Report!  ", "q3-report"},
		{"???", "document"},
		{"", "document"},
	}

	for _, tc := range testCases {
		if got := Slug(tc.input); got != tc.expected {
			t.Errorf("Slug(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
