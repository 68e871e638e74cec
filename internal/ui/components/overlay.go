// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// =============================================================================
// OVERLAY COMPOSITING
// =============================================================================

// Overlay draws fg on top of bg with its top-left corner at cell (x, y).
// Lines of bg that are too short are padded; fg lines falling below bg are
// dropped. Styling on both sides of the overlay is preserved.
func Overlay(bg, fg string, x, y int) string {
	if fg == "" {
		return bg
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)

	for i := 0; i < len(fgLines) && y+i < len(bgLines); i++ {
		line := bgLines[y+i]
		w := ansi.StringWidth(line)

		left := ansi.Truncate(line, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ""
		if w > x+fgW {
			right = ansi.Cut(line, x+fgW, w)
		}

		fgLine := fgLines[i]
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		}
		bgLines[y+i] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

// Center returns the top-left corner that centres a w by h box inside a
// bgW by bgH area.
func Center(bgW, bgH, w, h int) (x, y int) {
	x = (bgW - w) / 2
	y = (bgH - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
