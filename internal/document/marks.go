// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import "strings"

// =============================================================================
// INLINE MARKS
// =============================================================================

// eachChar calls fn for every character covered by the selection, skipping
// code blocks where marks do not apply.
func (d *Document) eachChar(fn func(c *Char)) {
	for _, tr := range d.slices(d.sel.Range()) {
		b := d.blocks[tr.Block]
		if b.Kind == KindCodeBlock {
			continue
		}
		cs := b.chars(tr.Cell)
		for i := tr.Start; i < tr.End; i++ {
			fn(&cs[i])
		}
	}
}

// ToggleMark adds m to the selection, or removes it when every selected
// character already has it. With an empty selection the mark is toggled
// for the next insertion.
func (d *Document) ToggleMark(m Mark) bool {
	if d.sel.Empty() {
		marks, link := d.insertionMarks(d.sel.Head)
		d.stored = &storedMarks{marks: marks ^ m, link: link}
		return true
	}

	d.begin()
	defer d.end(editOther)
	start := d.mutations

	add := !d.IsActive(m)
	d.eachChar(func(c *Char) {
		next := c.Marks &^ m
		if add {
			next = c.Marks | m
		}
		if next != c.Marks {
			c.Marks = next
			d.touch()
		}
	})
	return d.mutations > start
}

// IsActive reports whether m applies at the cursor, or to every selected
// character.
func (d *Document) IsActive(m Mark) bool {
	if d.sel.Empty() {
		marks, _ := d.insertionMarks(d.sel.Head)
		return marks.Has(m)
	}
	seen := false
	all := true
	d.eachChar(func(c *Char) {
		seen = true
		if !c.Marks.Has(m) {
			all = false
		}
	})
	return seen && all
}

// ActiveMarks returns the marks active for the current selection.
func (d *Document) ActiveMarks() Mark {
	var out Mark
	for _, m := range AllMarks {
		if d.IsActive(m) {
			out |= m
		}
	}
	return out
}

// UnsetAllMarks clears every mark and link from the selection.
func (d *Document) UnsetAllMarks() bool {
	if d.sel.Empty() {
		d.stored = &storedMarks{}
		return true
	}
	d.begin()
	defer d.end(editOther)
	start := d.mutations

	changed := false
	d.eachChar(func(c *Char) {
		if c.Marks != 0 || c.Link != "" {
			c.Marks = 0
			c.Link = ""
			changed = true
		}
	})
	if changed {
		d.touch()
	}
	return d.mutations > start
}

// =============================================================================
// LINKS
// =============================================================================

// linkRange widens an empty selection to the link around the cursor.
func (d *Document) linkRange() (Range, bool) {
	if !d.sel.Empty() {
		return d.sel.Range(), true
	}
	p := d.sel.Head
	cs := d.blocks[p.Block].chars(p.Cell)
	href := ""
	switch {
	case p.Offset > 0 && cs[p.Offset-1].Link != "":
		href = cs[p.Offset-1].Link
	case p.Offset < len(cs) && cs[p.Offset].Link != "":
		href = cs[p.Offset].Link
	default:
		return Range{}, false
	}
	start, end := p.Offset, p.Offset
	for start > 0 && cs[start-1].Link == href {
		start--
	}
	for end < len(cs) && cs[end].Link == href {
		end++
	}
	from, to := p, p
	from.Offset, to.Offset = start, end
	return Range{From: from, To: to}, true
}

// IsLinkActive reports whether the selection is entirely linked, or the
// cursor sits inside a link.
func (d *Document) IsLinkActive() bool {
	return d.LinkHref() != ""
}

// LinkHref returns the link target of the selection, or "" when it is not
// uniformly linked.
func (d *Document) LinkHref() string {
	r, ok := d.linkRange()
	if !ok {
		return ""
	}
	href := ""
	first := true
	for _, tr := range d.slices(r) {
		cs := d.blocks[tr.Block].chars(tr.Cell)
		for i := tr.Start; i < tr.End; i++ {
			if first {
				href = cs[i].Link
				first = false
			} else if cs[i].Link != href {
				return ""
			}
		}
	}
	return href
}

// SetLink links the selection to href. An empty href removes the link.
func (d *Document) SetLink(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" {
		return d.UnsetLink()
	}
	r, ok := d.linkRange()
	if !ok {
		return false
	}
	return d.applyLink(r, href)
}

// UnsetLink removes the link from the selection, or from the whole link
// around the cursor.
func (d *Document) UnsetLink() bool {
	r, ok := d.linkRange()
	if !ok {
		return false
	}
	return d.applyLink(r, "")
}

func (d *Document) applyLink(r Range, href string) bool {
	d.begin()
	defer d.end(editOther)
	start := d.mutations

	for _, tr := range d.slices(r) {
		b := d.blocks[tr.Block]
		if b.Kind == KindCodeBlock {
			continue
		}
		cs := b.chars(tr.Cell)
		for i := tr.Start; i < tr.End; i++ {
			if cs[i].Link != href {
				cs[i].Link = href
				d.touch()
			}
		}
	}
	return d.mutations > start
}
