// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// boundaries returns the rune offsets of every grapheme cluster boundary
// in cs, including 0 and len(cs).
func boundaries(cs []Char) []int {
	out := []int{0}
	if len(cs) == 0 {
		return out
	}
	g := uniseg.NewGraphemes(charsString(cs))
	off := 0
	for g.Next() {
		off += len(g.Runes())
		out = append(out, off)
	}
	return out
}

// graphemeBefore returns the start of the cluster that ends at or spans off.
func graphemeBefore(cs []Char, off int) int {
	if off <= 0 {
		return 0
	}
	prev := 0
	for _, b := range boundaries(cs) {
		if b >= off {
			return prev
		}
		prev = b
	}
	return prev
}

// graphemeAfter returns the end of the cluster that starts at or spans off.
func graphemeAfter(cs []Char, off int) int {
	if off >= len(cs) {
		return len(cs)
	}
	for _, b := range boundaries(cs) {
		if b > off {
			return b
		}
	}
	return len(cs)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Mn, r)
}

// wordAfter returns the offset after the next word starting at off.
func wordAfter(cs []Char, off int) int {
	i := off
	for i < len(cs) && !isWordRune(cs[i].R) {
		i++
	}
	for i < len(cs) && isWordRune(cs[i].R) {
		i++
	}
	return i
}

// wordBefore returns the offset of the start of the word ending before off.
func wordBefore(cs []Char, off int) int {
	i := off
	for i > 0 && !isWordRune(cs[i-1].R) {
		i--
	}
	for i > 0 && isWordRune(cs[i-1].R) {
		i--
	}
	return i
}
