// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/jeranaias/folio/internal/document"
)

// unit is one grapheme cluster of a text slot.
type unit struct {
	start, end int // rune offsets
	text       string
	width      int
	space      bool
	newline    bool
}

// line is one visual line of a slot. end excludes a trailing hard break.
type line struct {
	start, end int
	units      []unit
	width      int
}

func unitsOf(cs []document.Char) []unit {
	if len(cs) == 0 {
		return nil
	}
	runes := make([]rune, len(cs))
	for i, c := range cs {
		runes[i] = c.R
	}
	var out []unit
	g := uniseg.NewGraphemes(string(runes))
	off := 0
	for g.Next() {
		rs := g.Runes()
		u := unit{start: off, end: off + len(rs), text: string(rs)}
		switch {
		case len(rs) == 1 && rs[0] == '\n':
			u.newline = true
		case len(rs) == 1 && rs[0] == '\t':
			u.text = "    "
			u.width = 4
			u.space = true
		default:
			u.width = runewidth.StringWidth(u.text)
			if u.width == 0 {
				u.width = 1
				u.text = " "
			}
			u.space = len(rs) == 1 && unicode.IsSpace(rs[0])
		}
		out = append(out, u)
		off += len(rs)
	}
	return out
}

// wrap splits cs into visual lines no wider than width. Hard breaks always
// end a line. With word set, soft breaks fall after whitespace when possible.
func wrap(cs []document.Char, width int, word bool) []line {
	if width < 1 {
		width = 1
	}
	units := unitsOf(cs)
	var out []line

	runStart := 0
	for i, u := range units {
		if !u.newline {
			continue
		}
		out = append(out, wrapRun(units[runStart:i], u.start, width, word)...)
		runStart = i + 1
	}
	at := 0
	if n := len(units); n > 0 {
		at = units[n-1].end
	}
	out = append(out, wrapRun(units[runStart:], at, width, word)...)
	return out
}

// wrapRun wraps a run of units without hard breaks. at is the offset of an
// empty run.
func wrapRun(units []unit, at, width int, word bool) []line {
	if len(units) == 0 {
		return []line{{start: at, end: at}}
	}
	var out []line
	for start := 0; start < len(units); {
		used := 0
		overflow := start
		for overflow < len(units) {
			w := units[overflow].width
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if word && overflow < len(units) {
			if br, ok := wordBreak(units, start, overflow); ok {
				end = br
			}
		}
		if end <= start {
			end = start + 1
		}

		l := line{start: units[start].start, end: units[end-1].end, units: units[start:end]}
		for _, u := range l.units {
			l.width += u.width
		}
		out = append(out, l)
		start = end
	}
	return out
}

// wordBreak returns the index just after the last whitespace run inside
// units[start:overflow].
func wordBreak(units []unit, start, overflow int) (int, bool) {
	last := -1
	i := start
	for i < overflow {
		if !units[i].space {
			i++
			continue
		}
		j := i + 1
		for j < overflow && units[j].space {
			j++
		}
		last = j
		i = j
	}
	if last <= start {
		return 0, false
	}
	return last, true
}

// lineFor returns the index of the line holding off. An offset at a soft
// wrap belongs to the later line.
func lineFor(lines []line, off int) int {
	idx := 0
	for i, l := range lines {
		if l.start <= off && off <= l.end {
			idx = i
		}
	}
	return idx
}
