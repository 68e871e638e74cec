// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

// Unit is the step size of a cursor movement.
type Unit int

const (
	UnitGrapheme Unit = iota
	UnitWord
	UnitBlock
	UnitDocument
)

// SetSelection replaces the selection. Positions are clamped.
func (d *Document) SetSelection(s Selection) bool {
	d.begin()
	defer d.end(editSelect)
	prev := d.sel
	d.setSelection(s)
	return d.sel != prev
}

// SetCursor collapses the selection to p.
func (d *Document) SetCursor(p Pos) bool {
	return d.SetSelection(Cursor(p))
}

// ExtendTo moves the head of the selection to p, keeping the anchor.
func (d *Document) ExtendTo(p Pos) bool {
	return d.SetSelection(Selection{Anchor: d.sel.Anchor, Head: p})
}

// SelectAll selects the whole document.
func (d *Document) SelectAll() bool {
	return d.SetSelection(Selection{Anchor: Pos{}, Head: d.endOf(len(d.blocks) - 1)})
}

// SelectWord selects the word around p.
func (d *Document) SelectWord(p Pos) bool {
	p = d.clamp(p)
	cs := d.blocks[p.Block].chars(p.Cell)
	start, end := p.Offset, p.Offset
	for start > 0 && isWordRune(cs[start-1].R) {
		start--
	}
	for end < len(cs) && isWordRune(cs[end].R) {
		end++
	}
	a, h := p, p
	a.Offset, h.Offset = start, end
	return d.SetSelection(Selection{Anchor: a, Head: h})
}

// Move moves the cursor by one unit. With extend the anchor stays put and
// the selection grows; without it a non-empty selection collapses towards
// the direction of travel first.
func (d *Document) Move(u Unit, forward, extend bool) bool {
	if !extend && !d.sel.Empty() && u == UnitGrapheme {
		if forward {
			return d.SetCursor(d.sel.To())
		}
		return d.SetCursor(d.sel.From())
	}
	target := d.step(d.sel.Head, u, forward)
	if extend {
		return d.ExtendTo(target)
	}
	return d.SetCursor(target)
}

func (d *Document) step(p Pos, u Unit, forward bool) Pos {
	cs := d.blocks[p.Block].chars(p.Cell)
	switch u {
	case UnitDocument:
		if forward {
			return d.endOf(len(d.blocks) - 1)
		}
		return Pos{}

	case UnitBlock:
		if forward {
			p.Offset = len(cs)
		} else {
			p.Offset = 0
		}
		return p

	case UnitWord:
		if forward {
			if p.Offset >= len(cs) {
				next, _ := d.nextSlot(p)
				return next
			}
			p.Offset = wordAfter(cs, p.Offset)
			return p
		}
		if p.Offset == 0 {
			prev, _ := d.prevSlot(p)
			return prev
		}
		p.Offset = wordBefore(cs, p.Offset)
		return p

	default:
		if forward {
			if p.Offset >= len(cs) {
				next, _ := d.nextSlot(p)
				return next
			}
			p.Offset = graphemeAfter(cs, p.Offset)
			return p
		}
		if p.Offset == 0 {
			prev, _ := d.prevSlot(p)
			return prev
		}
		p.Offset = graphemeBefore(cs, p.Offset)
		return p
	}
}
