// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

// =============================================================================
// BLOCK TYPE COMMANDS
// =============================================================================

// selectedTextBlocks returns the text blocks touched by the selection.
func (d *Document) selectedTextBlocks() []*Block {
	r := d.sel.Range()
	var out []*Block
	for i := r.From.Block; i <= r.To.Block && i < len(d.blocks); i++ {
		if b := d.blocks[i]; b.IsText() {
			out = append(out, b)
		}
	}
	return out
}

// setKind converts every selected text block with conv. It reports
// whether any block changed.
func (d *Document) setKind(conv func(b *Block)) bool {
	d.begin()
	defer d.end(editOther)
	start := d.mutations

	for _, b := range d.selectedTextBlocks() {
		before := *b
		conv(b)
		if b.Kind != before.Kind || b.Level != before.Level || b.Indent != before.Indent ||
			b.Quoted != before.Quoted || b.Checked != before.Checked {
			d.touch()
		}
	}
	return d.mutations > start
}

func allKind(bs []*Block, kind BlockKind) bool {
	if len(bs) == 0 {
		return false
	}
	for _, b := range bs {
		if b.Kind != kind {
			return false
		}
	}
	return true
}

func toParagraph(b *Block) {
	b.Kind = KindParagraph
	b.Level = 0
	b.Indent = 0
	b.Checked = false
}

// SetParagraph turns the selected blocks into plain paragraphs.
func (d *Document) SetParagraph() bool {
	return d.setKind(toParagraph)
}

// SetHeading turns the selected blocks into headings of the given level.
func (d *Document) SetHeading(level int) bool {
	if level < 1 || level > 3 {
		return false
	}
	return d.setKind(func(b *Block) {
		toParagraph(b)
		b.Kind = KindHeading
		b.Level = level
	})
}

// ToggleHeading sets the heading level, or reverts to paragraphs when the
// selected blocks already are headings of that level.
func (d *Document) ToggleHeading(level int) bool {
	bs := d.selectedTextBlocks()
	all := len(bs) > 0
	for _, b := range bs {
		if b.Kind != KindHeading || b.Level != level {
			all = false
		}
	}
	if all {
		return d.SetParagraph()
	}
	return d.SetHeading(level)
}

func (d *Document) toggleList(kind BlockKind) bool {
	if allKind(d.selectedTextBlocks(), kind) {
		return d.setKind(toParagraph)
	}
	return d.setKind(func(b *Block) {
		if b.Kind != kind {
			b.Checked = false
		}
		if !b.Kind.IsList() {
			b.Indent = 0
		}
		b.Kind = kind
		b.Level = 0
	})
}

// ToggleBulletList wraps the selected blocks in a bullet list or unwraps them.
func (d *Document) ToggleBulletList() bool { return d.toggleList(KindBulletList) }

// ToggleOrderedList wraps the selected blocks in a numbered list or unwraps them.
func (d *Document) ToggleOrderedList() bool { return d.toggleList(KindOrderedList) }

// ToggleTaskList wraps the selected blocks in a checklist or unwraps them.
func (d *Document) ToggleTaskList() bool { return d.toggleList(KindTaskList) }

// ToggleTaskChecked flips the checkbox of the selected task items.
func (d *Document) ToggleTaskChecked() bool {
	return d.setKind(func(b *Block) {
		if b.Kind == KindTaskList {
			b.Checked = !b.Checked
		}
	})
}

// ToggleBlockquote quotes the selected blocks, or unquotes them when all
// of them are quoted.
func (d *Document) ToggleBlockquote() bool {
	bs := d.selectedTextBlocks()
	all := len(bs) > 0
	for _, b := range bs {
		if !b.Quoted {
			all = false
		}
	}
	return d.setKind(func(b *Block) { b.Quoted = !all })
}

// ToggleCodeBlock turns the selected blocks into code blocks, dropping their
// inline marks, or back into paragraphs.
func (d *Document) ToggleCodeBlock() bool {
	if allKind(d.selectedTextBlocks(), KindCodeBlock) {
		return d.setKind(toParagraph)
	}
	return d.setKind(func(b *Block) {
		toParagraph(b)
		b.Kind = KindCodeBlock
		b.Align = AlignLeft
	})
}

// Indent nests the selected list items one level deeper.
func (d *Document) Indent() bool {
	return d.setKind(func(b *Block) {
		if b.Kind.IsList() && b.Indent < MaxIndent {
			b.Indent++
		}
	})
}

// Outdent moves the selected list items one level out.
func (d *Document) Outdent() bool {
	return d.setKind(func(b *Block) {
		if b.Kind.IsList() && b.Indent > 0 {
			b.Indent--
		}
	})
}

// SetTextAlign aligns the selected text blocks. Code blocks keep their
// alignment.
func (d *Document) SetTextAlign(a Align) bool {
	d.begin()
	defer d.end(editOther)
	start := d.mutations

	for _, b := range d.selectedTextBlocks() {
		if b.Kind == KindCodeBlock || b.Align == a {
			continue
		}
		b.Align = a
		d.touch()
	}
	return d.mutations > start
}

// =============================================================================
// BLOCK INSERTION
// =============================================================================

// SetHorizontalRule inserts a divider at the cursor.
func (d *Document) SetHorizontalRule() bool {
	return d.insertBlockAtCursor(newBlock(KindDivider))
}

// InsertTable inserts a rows by cols table and places the cursor in its
// first cell.
func (d *Document) InsertTable(rows, cols int, withHeaderRow bool) bool {
	if rows < 1 || cols < 1 {
		return false
	}
	return d.insertBlockAtCursor(newTable(rows, cols, withHeaderRow))
}

// SetImage inserts an image block pointing at src.
func (d *Document) SetImage(src string) bool {
	if src == "" {
		return false
	}
	b := newBlock(KindImage)
	b.Src = src
	return d.insertBlockAtCursor(b)
}

// insertBlockAtCursor places nb at the cursor. An empty paragraph is
// replaced, other text blocks are split. A text block always follows nb so
// the cursor has somewhere to go.
func (d *Document) insertBlockAtCursor(nb *Block) bool {
	d.begin()
	defer d.end(editOther)
	start := d.mutations

	if !d.sel.Empty() {
		d.deleteRange(d.sel.Range())
	}
	p := d.sel.Head
	b := d.blocks[p.Block]

	at := p.Block + 1
	switch {
	case !b.IsText():
	case b.Kind == KindParagraph && len(b.Text) == 0 && !b.Quoted:
		d.removeBlocks(p.Block, p.Block+1)
		at = p.Block
	case p.Offset == 0:
		at = p.Block
	case p.Offset < len(b.Text):
		d.splitBlock(p)
	}
	d.insertBlocks(at, nb)

	if at+1 >= len(d.blocks) || !d.blocks[at+1].IsText() {
		d.insertBlocks(at+1, newBlock(KindParagraph))
	}
	if nb.Kind == KindTable {
		d.setCursor(Pos{Block: at})
	} else {
		d.setCursor(d.startOf(at + 1))
	}
	return d.mutations > start
}
