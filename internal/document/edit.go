// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// TEXT INSERTION
// =============================================================================

// InsertText replaces the selection with typed text s. The new text
// carries the stored marks, or the marks of the text before the cursor.
// Input rules then run on the text before the cursor.
func (d *Document) InsertText(s string) bool {
	if s == "" {
		return false
	}
	d.begin()
	defer d.end(editInsert)
	start := d.mutations

	d.insertText(s)
	d.applyInputRules()
	return d.mutations > start
}

func (d *Document) insertText(s string) {
	if !d.sel.Empty() {
		d.deleteRange(d.sel.Range())
	}
	p := d.sel.Head
	b := d.blocks[p.Block]
	if b.Kind.IsAtom() {
		d.insertBlocks(p.Block+1, newBlock(KindParagraph))
		p = d.startOf(p.Block + 1)
		b = d.blocks[p.Block]
	}

	marks, link := d.insertionMarks(p)
	if b.Kind == KindCodeBlock {
		marks, link = 0, ""
	}
	ins := charsFrom(s, marks, link)
	cs := b.chars(p.Cell)
	out := make([]Char, 0, len(cs)+len(ins))
	out = append(out, cs[:p.Offset]...)
	out = append(out, ins...)
	out = append(out, cs[p.Offset:]...)
	b.setChars(p.Cell, out)
	d.touch()
	p.Offset += len(ins)
	d.setCursor(p)
}

// insertionMarks returns the marks new text at p receives.
func (d *Document) insertionMarks(p Pos) (Mark, string) {
	if d.stored != nil {
		return d.stored.marks, d.stored.link
	}
	cs := d.blocks[p.Block].chars(p.Cell)
	switch {
	case p.Offset > 0 && p.Offset <= len(cs):
		c := cs[p.Offset-1]
		return c.Marks, c.Link
	case p.Offset == 0 && len(cs) > 0:
		return cs[0].Marks, cs[0].Link
	}
	return 0, ""
}

// InsertHardBreak inserts a line break that stays inside the current block.
func (d *Document) InsertHardBreak() bool {
	return d.InsertText("\n")
}

// Paste inserts multi-line text. Lines become separate blocks except
// inside code blocks and table cells, where they stay line breaks. Input
// rules do not run on pasted text.
func (d *Document) Paste(text string) bool {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return false
	}
	changed := false
	_ = d.Transact(func() error {
		for i, line := range strings.Split(text, "\n") {
			if i > 0 && d.InsertNewline() {
				changed = true
			}
			if line == "" {
				continue
			}
			start := d.mutations
			d.insertText(line)
			if d.mutations > start {
				changed = true
			}
		}
		return nil
	})
	return changed
}

// =============================================================================
// BLOCK SPLITTING
// =============================================================================

// InsertNewline splits the current block at the cursor. Inside code blocks
// and table cells it inserts a line break instead. On an empty list item or
// quoted paragraph it lifts the block out first.
func (d *Document) InsertNewline() bool {
	d.begin()
	defer d.end(editOther)
	start := d.mutations

	if !d.sel.Empty() {
		d.deleteRange(d.sel.Range())
	}
	p := d.sel.Head
	b := d.blocks[p.Block]

	switch {
	case b.Kind.IsAtom():
		d.insertBlocks(p.Block+1, newBlock(KindParagraph))
		d.setCursor(d.startOf(p.Block + 1))

	case b.Kind == KindTable:
		d.insertText("\n")

	case b.Kind == KindCodeBlock:
		if p.Offset == len(b.Text) && strings.HasSuffix(charsString(b.Text), "\n\n") {
			// Third Enter at the end of a code block leaves it.
			b.Text = b.Text[:len(b.Text)-2]
			d.touch()
			d.insertBlocks(p.Block+1, newBlock(KindParagraph))
			d.setCursor(d.startOf(p.Block + 1))
		} else {
			d.insertText("\n")
		}

	case len(b.Text) == 0 && (b.Kind.IsList() || b.Quoted):
		d.lift(b)

	default:
		d.splitBlock(p)
	}
	return d.mutations > start
}

// splitBlock moves the text after p into a new block below.
func (d *Document) splitBlock(p Pos) {
	b := d.blocks[p.Block]
	nb := newBlock(b.Kind)
	nb.Level = b.Level
	nb.Indent = b.Indent
	nb.Quoted = b.Quoted
	nb.Align = b.Align
	nb.Lang = b.Lang
	if b.Kind == KindHeading && p.Offset == len(b.Text) {
		nb.Kind = KindParagraph
		nb.Level = 0
	}
	nb.Text = append([]Char(nil), b.Text[p.Offset:]...)
	b.Text = append([]Char(nil), b.Text[:p.Offset]...)
	d.insertBlocks(p.Block+1, nb)
	d.setCursor(d.startOf(p.Block + 1))
}

// lift moves a block one level out: a nested list item is outdented,
// a top-level item becomes a paragraph, a quoted block leaves the quote.
func (d *Document) lift(b *Block) {
	switch {
	case b.Kind.IsList() && b.Indent > 0:
		b.Indent--
	case b.Kind.IsList():
		b.Kind = KindParagraph
		b.Checked = false
	case b.Quoted:
		b.Quoted = false
	default:
		return
	}
	d.touch()
}

func (d *Document) insertBlocks(at int, bs ...*Block) {
	out := make([]*Block, 0, len(d.blocks)+len(bs))
	out = append(out, d.blocks[:at]...)
	out = append(out, bs...)
	out = append(out, d.blocks[at:]...)
	d.blocks = out
	d.touch()
}

func (d *Document) removeBlocks(from, to int) {
	d.blocks = append(d.blocks[:from:from], d.blocks[to:]...)
	d.touch()
}

// =============================================================================
// DELETION
// =============================================================================

// DeleteRange removes the content between r.From and r.To.
func (d *Document) DeleteRange(r Range) bool {
	d.begin()
	defer d.end(editDelete)
	start := d.mutations

	d.deleteRange(r)
	return d.mutations > start
}

func (d *Document) deleteRange(r Range) {
	r = r.Normalized()
	from, to := d.clamp(r.From), d.clamp(r.To)
	if from == to {
		d.setCursor(from)
		return
	}

	if from.Block == to.Block {
		b := d.blocks[from.Block]
		if from.Cell == to.Cell {
			cs := b.chars(from.Cell)
			b.setChars(from.Cell, append(cs[:from.Offset:from.Offset], cs[to.Offset:]...))
		} else {
			for cell := from.Cell; cell <= to.Cell; cell++ {
				cs := b.chars(cell)
				switch cell {
				case from.Cell:
					b.setChars(cell, cs[:from.Offset:from.Offset])
				case to.Cell:
					b.setChars(cell, append([]Char(nil), cs[to.Offset:]...))
				default:
					b.setChars(cell, nil)
				}
			}
		}
		d.touch()
		d.setCursor(from)
		return
	}

	first, last := d.blocks[from.Block], d.blocks[to.Block]
	cursor := from
	var keep []*Block
	switch {
	case first.IsText() && last.IsText():
		first.Text = append(first.Text[:from.Offset:from.Offset], last.Text[to.Offset:]...)
		keep = []*Block{first}
	case first.IsText():
		first.Text = first.Text[:from.Offset:from.Offset]
		keep = []*Block{first}
	case last.IsText():
		last.Text = append([]Char(nil), last.Text[to.Offset:]...)
		keep = []*Block{last}
		cursor = d.startOf(from.Block)
	}
	if len(keep) == 0 {
		keep = []*Block{newBlock(KindParagraph)}
		cursor = d.startOf(from.Block)
	}

	out := make([]*Block, 0, len(d.blocks))
	out = append(out, d.blocks[:from.Block]...)
	out = append(out, keep...)
	out = append(out, d.blocks[to.Block+1:]...)
	d.blocks = out
	d.touch()
	d.setCursor(cursor)
}

// DeleteBackward deletes the selection, or the grapheme cluster before the
// cursor. At the start of a block it lifts the block or joins it with the
// one above.
func (d *Document) DeleteBackward() bool {
	d.begin()
	defer d.end(editDelete)
	start := d.mutations

	if !d.sel.Empty() {
		d.deleteRange(d.sel.Range())
		return d.mutations > start
	}

	p := d.sel.Head
	b := d.blocks[p.Block]
	switch {
	case b.Kind.IsAtom():
		d.removeAtom(p.Block, false)

	case b.Kind == KindTable:
		if p.Offset > 0 {
			d.deleteChars(p, graphemeBefore(b.chars(p.Cell), p.Offset), p.Offset)
		} else if p.Cell > 0 {
			prev, _ := d.prevSlot(p)
			d.setCursor(prev)
		}

	case p.Offset > 0:
		d.deleteChars(p, graphemeBefore(b.Text, p.Offset), p.Offset)

	case b.Kind.IsList() || b.Quoted:
		d.lift(b)

	case b.Kind == KindCodeBlock && len(b.Text) == 0:
		b.Kind = KindParagraph
		d.touch()

	default:
		d.joinBackward(p.Block)
	}
	return d.mutations > start
}

// DeleteForward deletes the selection, or the grapheme cluster after the
// cursor. At the end of a block it joins the next block into this one.
func (d *Document) DeleteForward() bool {
	d.begin()
	defer d.end(editDelete)
	start := d.mutations

	if !d.sel.Empty() {
		d.deleteRange(d.sel.Range())
		return d.mutations > start
	}

	p := d.sel.Head
	b := d.blocks[p.Block]
	cs := b.chars(p.Cell)
	switch {
	case b.Kind.IsAtom():
		d.removeAtom(p.Block, true)

	case p.Offset < len(cs):
		d.deleteChars(p, p.Offset, graphemeAfter(cs, p.Offset))

	case b.Kind == KindTable:
		if p.Cell+1 < b.Cells() {
			next, _ := d.nextSlot(p)
			d.setCursor(next)
		}

	default:
		d.joinForward(p.Block)
	}
	return d.mutations > start
}

func (d *Document) deleteChars(p Pos, from, to int) {
	b := d.blocks[p.Block]
	cs := b.chars(p.Cell)
	b.setChars(p.Cell, append(cs[:from:from], cs[to:]...))
	d.touch()
	p.Offset = from
	d.setCursor(p)
}

// removeAtom deletes a divider or image and places the cursor next to it.
func (d *Document) removeAtom(i int, forward bool) {
	d.removeBlocks(i, i+1)
	if len(d.blocks) == 0 {
		d.blocks = []*Block{newBlock(KindParagraph)}
		d.setCursor(Pos{})
		return
	}
	switch {
	case forward && i < len(d.blocks):
		d.setCursor(d.startOf(i))
	case i > 0:
		d.setCursor(d.endOf(i - 1))
	default:
		d.setCursor(d.startOf(0))
	}
}

func (d *Document) joinBackward(i int) {
	if i == 0 {
		return
	}
	b, prev := d.blocks[i], d.blocks[i-1]
	switch {
	case prev.Kind.IsAtom():
		d.removeBlocks(i-1, i)
		d.setCursor(d.startOf(i - 1))
	case prev.Kind == KindTable:
		d.setCursor(d.endOf(i - 1))
	case len(prev.Text) == 0 && prev.Kind == KindParagraph:
		d.removeBlocks(i-1, i)
		d.setCursor(d.startOf(i - 1))
	default:
		at := len(prev.Text)
		prev.Text = append(prev.Text, b.Text...)
		d.removeBlocks(i, i+1)
		d.setCursor(Pos{Block: i - 1, Offset: at})
	}
}

func (d *Document) joinForward(i int) {
	if i+1 >= len(d.blocks) {
		return
	}
	b, next := d.blocks[i], d.blocks[i+1]
	switch {
	case next.Kind.IsAtom():
		d.removeBlocks(i+1, i+2)
	case next.Kind == KindTable:
		return
	case len(b.Text) == 0 && b.Kind == KindParagraph:
		d.removeBlocks(i, i+1)
		d.setCursor(d.startOf(i))
	default:
		b.Text = append(b.Text, next.Text...)
		d.removeBlocks(i+1, i+2)
	}
}
