// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import "log"

// DefaultHistoryLimit is the number of undo steps kept when Options leaves it unset.
const DefaultHistoryLimit = 1000

// Options configures a document at construction time.
type Options struct {
	// HistoryLimit caps the undo stack. Zero uses DefaultHistoryLimit,
	// a negative value disables history.
	HistoryLimit int

	// Placeholder is shown by renderers while the document is empty.
	Placeholder string

	// Typography rewrites typed punctuation with TypographyRules.
	Typography bool

	// Debug logs every committed change.
	Debug bool
}

// Document is the rich-text document model. All content changes go through
// its command methods, which keep an undo history and notify subscribers.
// A Document is not safe for concurrent use.
type Document struct {
	opts   Options
	blocks []*Block
	sel    Selection
	rules  []InputRule

	// Marks applied to the next insertion when set.
	stored *storedMarks

	hist    history
	version uint64

	listeners []subscription
	nextSub   int

	// Commit bookkeeping.
	depth     int
	mutations int
	txBefore  snapshot
	txMut     int
	lastKind  editKind
	lastSel   Selection
}

type storedMarks struct {
	marks Mark
	link  string
}

type subscription struct {
	id int
	fn Listener
}

type editKind int

const (
	editOther editKind = iota
	editInsert
	editDelete
	editHistory
	editSelect
)

// New creates a document holding one empty paragraph.
func New(opts Options) *Document {
	if opts.HistoryLimit == 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	d := &Document{
		opts:   opts,
		blocks: []*Block{newBlock(KindParagraph)},
	}
	if opts.Typography {
		d.rules = TypographyRules
	}
	return d
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Options returns the construction options.
func (d *Document) Options() Options { return d.opts }

// Len returns the number of top-level blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Block returns block i. The returned block shares storage with the
// document and must be treated as read-only.
func (d *Document) Block(i int) *Block {
	if i < 0 || i >= len(d.blocks) {
		return nil
	}
	return d.blocks[i]
}

// Selection returns the current selection.
func (d *Document) Selection() Selection { return d.sel }

// Version increments on every content change.
func (d *Document) Version() uint64 { return d.version }

// IsEmpty reports whether the document is a single empty paragraph.
func (d *Document) IsEmpty() bool {
	if len(d.blocks) != 1 {
		return false
	}
	b := d.blocks[0]
	return b.Kind == KindParagraph && len(b.Text) == 0
}

// Subscribe registers fn for change events and returns a function that
// removes it. Listeners run synchronously in commit order.
func (d *Document) Subscribe(fn Listener) func() {
	d.nextSub++
	id := d.nextSub
	d.listeners = append(d.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range d.listeners {
			if s.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) emit(kind EventKind) {
	ev := Event{Kind: kind, Version: d.version}
	subs := append([]subscription(nil), d.listeners...)
	for _, s := range subs {
		s.fn(ev)
	}
}

// =============================================================================
// COMMITS
// =============================================================================

// begin opens a change scope. Scopes nest; only the outermost commits.
func (d *Document) begin() {
	if d.depth == 0 {
		d.txBefore = d.snapshot()
		d.txMut = d.mutations
	}
	d.depth++
}

// end closes a change scope and, for the outermost one, records history
// and notifies subscribers.
func (d *Document) end(kind editKind) {
	d.depth--
	if d.depth > 0 {
		return
	}
	d.normalize()

	docChanged := d.mutations != d.txMut
	selChanged := d.sel != d.txBefore.sel

	if docChanged {
		if kind != editHistory && !d.coalesces(kind) {
			d.recordUndo(d.txBefore)
		}
		d.version++
		d.lastKind = kind
		d.lastSel = d.sel
		if d.opts.Debug {
			log.Printf("document: v%d %d blocks", d.version, len(d.blocks))
		}
	} else if selChanged {
		d.lastKind = editSelect
	}
	if docChanged || selChanged {
		d.stored = nil
	}

	if selChanged {
		d.emit(EventSelectionUpdate)
	}
	if docChanged {
		d.emit(EventUpdate)
	}
}

// coalesces reports whether an edit merges into the previous undo step.
// Consecutive insertions at a continuous cursor form one step until a
// word boundary.
func (d *Document) coalesces(kind editKind) bool {
	if kind != editInsert || d.lastKind != editInsert {
		return false
	}
	if d.txBefore.sel != d.lastSel || len(d.hist.undo) == 0 {
		return false
	}
	p := d.txBefore.sel.Head
	b := d.blockAt(p.Block)
	if b == nil {
		return false
	}
	cs := b.chars(p.Cell)
	if p.Offset > 0 && p.Offset <= len(cs) && isSpace(cs[p.Offset-1].R) {
		return false
	}
	return true
}

func (d *Document) touch() {
	d.mutations++
}

func (d *Document) setSelection(s Selection) {
	d.sel = Selection{Anchor: d.clamp(s.Anchor), Head: d.clamp(s.Head)}
}

func (d *Document) setCursor(p Pos) {
	d.setSelection(Cursor(p))
}

// Transact runs fn as a single change: one undo step and one round of
// notifications. If fn returns an error every change it made is discarded.
// Nested transactions join the outermost one.
func (d *Document) Transact(fn func() error) error {
	outer := d.depth == 0
	d.begin()
	before := d.txBefore
	if err := fn(); err != nil {
		if outer {
			d.restore(before)
			d.mutations = d.txMut
		}
		d.depth--
		return err
	}
	d.end(editOther)
	return nil
}

// normalize restores the structural invariants after a change.
func (d *Document) normalize() {
	if len(d.blocks) == 0 {
		d.blocks = []*Block{newBlock(KindParagraph)}
		d.touch()
	}
	for _, b := range d.blocks {
		if b.Kind == KindTable && b.Table != nil {
			want := b.Table.Rows * b.Table.Cols
			if len(b.Table.Cells) < want {
				b.Table.Cells = append(b.Table.Cells, make([][]Char, want-len(b.Table.Cells))...)
			}
		}
		if b.Kind == KindCodeBlock {
			for i := range b.Text {
				b.Text[i].Marks = 0
				b.Text[i].Link = ""
			}
		}
	}
	d.sel = Selection{Anchor: d.clamp(d.sel.Anchor), Head: d.clamp(d.sel.Head)}
}

// =============================================================================
// HISTORY
// =============================================================================

type snapshot struct {
	blocks []*Block
	sel    Selection
}

type history struct {
	undo []snapshot
	redo []snapshot
}

func (d *Document) snapshot() snapshot {
	blocks := make([]*Block, len(d.blocks))
	for i, b := range d.blocks {
		blocks[i] = b.clone()
	}
	return snapshot{blocks: blocks, sel: d.sel}
}

func (d *Document) restore(s snapshot) {
	d.blocks = make([]*Block, len(s.blocks))
	for i, b := range s.blocks {
		d.blocks[i] = b.clone()
	}
	d.sel = s.sel
}

func (d *Document) recordUndo(prev snapshot) {
	limit := d.opts.HistoryLimit
	if limit <= 0 {
		return
	}
	d.hist.undo = append(d.hist.undo, prev)
	if len(d.hist.undo) > limit {
		d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
	}
	d.hist.redo = nil
}

// CanUndo reports whether Undo would change the document.
func (d *Document) CanUndo() bool { return len(d.hist.undo) > 0 }

// CanRedo reports whether Redo would change the document.
func (d *Document) CanRedo() bool { return len(d.hist.redo) > 0 }

// Undo reverts the most recent change.
func (d *Document) Undo() bool {
	if len(d.hist.undo) == 0 {
		return false
	}
	d.begin()
	defer d.end(editHistory)

	cur := d.snapshot()
	i := len(d.hist.undo) - 1
	prev := d.hist.undo[i]
	d.hist.undo = d.hist.undo[:i]
	d.hist.redo = append(d.hist.redo, cur)

	d.restore(prev)
	d.touch()
	return true
}

// Redo reapplies the most recently undone change.
func (d *Document) Redo() bool {
	if len(d.hist.redo) == 0 {
		return false
	}
	d.begin()
	defer d.end(editHistory)

	cur := d.snapshot()
	i := len(d.hist.redo) - 1
	next := d.hist.redo[i]
	d.hist.redo = d.hist.redo[:i]
	if d.opts.HistoryLimit > 0 {
		d.hist.undo = append(d.hist.undo, cur)
		if len(d.hist.undo) > d.opts.HistoryLimit {
			d.hist.undo = d.hist.undo[len(d.hist.undo)-d.opts.HistoryLimit:]
		}
	}

	d.restore(next)
	d.touch()
	return true
}

// =============================================================================
// POSITION HELPERS
// =============================================================================

func (d *Document) blockAt(i int) *Block {
	if i < 0 || i >= len(d.blocks) {
		return nil
	}
	return d.blocks[i]
}

// clamp moves p to the nearest valid position.
func (d *Document) clamp(p Pos) Pos {
	if len(d.blocks) == 0 {
		return Pos{}
	}
	if p.Block < 0 {
		return Pos{}
	}
	if p.Block >= len(d.blocks) {
		return d.endOf(len(d.blocks) - 1)
	}
	b := d.blocks[p.Block]
	if p.Cell < 0 {
		p.Cell = 0
	}
	if n := b.Cells(); p.Cell >= n {
		p.Cell = n - 1
	}
	if b.Kind != KindTable {
		p.Cell = 0
	}
	n := len(b.chars(p.Cell))
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset > n {
		p.Offset = n
	}
	return p
}

// Clamp returns the nearest valid position to p.
func (d *Document) Clamp(p Pos) Pos {
	return d.clamp(p)
}

func (d *Document) startOf(block int) Pos {
	return Pos{Block: block}
}

func (d *Document) endOf(block int) Pos {
	b := d.blocks[block]
	cell := b.Cells() - 1
	if b.Kind != KindTable {
		cell = 0
	}
	return Pos{Block: block, Cell: cell, Offset: len(b.chars(cell))}
}

// nextSlot returns the start of the slot after p's slot.
func (d *Document) nextSlot(p Pos) (Pos, bool) {
	b := d.blocks[p.Block]
	if b.Kind == KindTable && p.Cell+1 < b.Cells() {
		return Pos{Block: p.Block, Cell: p.Cell + 1}, true
	}
	if p.Block+1 < len(d.blocks) {
		return d.startOf(p.Block + 1), true
	}
	return p, false
}

// prevSlot returns the end of the slot before p's slot.
func (d *Document) prevSlot(p Pos) (Pos, bool) {
	b := d.blocks[p.Block]
	if b.Kind == KindTable && p.Cell > 0 {
		return Pos{Block: p.Block, Cell: p.Cell - 1, Offset: len(b.chars(p.Cell - 1))}, true
	}
	if p.Block > 0 {
		return d.endOf(p.Block - 1), true
	}
	return p, false
}

// textRange is the part of one slot covered by a Range.
type textRange struct {
	Block int
	Cell  int
	Start int
	End   int
}

// slices splits r into per-slot pieces in document order.
func (d *Document) slices(r Range) []textRange {
	r = r.Normalized()
	from, to := d.clamp(r.From), d.clamp(r.To)
	var out []textRange
	for bi := from.Block; bi <= to.Block; bi++ {
		b := d.blocks[bi]
		if b.Kind.IsAtom() {
			continue
		}
		for cell := 0; cell < b.Cells(); cell++ {
			if bi == from.Block && cell < from.Cell {
				continue
			}
			if bi == to.Block && cell > to.Cell {
				break
			}
			n := len(b.chars(cell))
			start, end := 0, n
			if bi == from.Block && cell == from.Cell {
				start = from.Offset
			}
			if bi == to.Block && cell == to.Cell {
				end = to.Offset
			}
			if start > end {
				start = end
			}
			out = append(out, textRange{Block: bi, Cell: cell, Start: start, End: end})
		}
	}
	return out
}
