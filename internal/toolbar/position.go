// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package toolbar

import "github.com/jeranaias/folio/internal/layout"

// Position is the top-left cell of the toolbar in page coordinates.
type Position struct {
	Top  int
	Left int
}

// Lift is how many rows above the selection start the toolbar sits: its
// own row plus one gap row.
const Lift = 2

// Compute places a toolbar width cells wide over the selection running from
// start to end. It is centred on the selection midpoint and clamped so it
// never leaves surface horizontally. When there is no room above the
// selection it goes one gap row below the selection end.
func Compute(start, end, surface layout.Rect, width int) Position {
	mid := (start.X + end.X) / 2
	right := surface.X + surface.W

	left := mid - width/2
	if left > right-width {
		left = right - width
	}
	if left < surface.X {
		left = surface.X
	}

	top := start.Y - Lift
	if top < surface.Y {
		top = end.Bottom() + 1
	}
	return Position{Top: top, Left: left}
}
