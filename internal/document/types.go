// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import "github.com/google/uuid"

// =============================================================================
// BLOCK KINDS
// =============================================================================

// BlockKind identifies the structural type of a block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindBulletList
	KindOrderedList
	KindTaskList
	KindCodeBlock
	KindDivider
	KindTable
	KindImage
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBulletList:
		return "bulletList"
	case KindOrderedList:
		return "orderedList"
	case KindTaskList:
		return "taskList"
	case KindCodeBlock:
		return "codeBlock"
	case KindDivider:
		return "horizontalRule"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// IsList reports whether the kind is one of the list item kinds.
func (k BlockKind) IsList() bool {
	return k == KindBulletList || k == KindOrderedList || k == KindTaskList
}

// IsAtom reports whether the kind has no editable text.
func (k BlockKind) IsAtom() bool {
	return k == KindDivider || k == KindImage
}

// =============================================================================
// MARKS
// =============================================================================

// Mark is a bit set of inline formatting marks.
type Mark uint16

const (
	Bold Mark = 1 << iota
	Italic
	Underline
	Strike
	Code
	Highlight
)

// AllMarks lists every inline mark in display order.
var AllMarks = []Mark{Bold, Italic, Underline, Strike, Code, Highlight}

// Has reports whether m contains every bit of other.
func (m Mark) Has(other Mark) bool {
	return m&other == other
}

// String returns the mark name for a single mark.
func (m Mark) String() string {
	switch m {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strike:
		return "strike"
	case Code:
		return "code"
	case Highlight:
		return "highlight"
	default:
		return "marks"
	}
}

// Align is the horizontal alignment of a text block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// =============================================================================
// CONTENT
// =============================================================================

// Char is a single rune with the marks applied to it.
type Char struct {
	R     rune
	Marks Mark
	Link  string
}

// Span is a run of text sharing the same marks and link.
type Span struct {
	Text  string
	Marks Mark
	Link  string
}

// Table holds the cells of a table block in row-major order.
type Table struct {
	Rows      int
	Cols      int
	HeaderRow bool
	Cells     [][]Char
}

// Block is one top-level element of the document.
type Block struct {
	ID      string
	Kind    BlockKind
	Level   int  // heading level, 1..3
	Indent  int  // list nesting depth
	Quoted  bool // rendered inside a blockquote
	Align   Align
	Checked bool // task items
	Lang    string
	Src     string // images
	Text    []Char
	Table   *Table
}

// MaxIndent is the deepest list nesting supported.
const MaxIndent = 4

func newBlock(kind BlockKind) *Block {
	return &Block{ID: uuid.New().String(), Kind: kind}
}

func newTable(rows, cols int, header bool) *Block {
	b := newBlock(KindTable)
	b.Table = &Table{
		Rows:      rows,
		Cols:      cols,
		HeaderRow: header,
		Cells:     make([][]Char, rows*cols),
	}
	return b
}

// IsText reports whether the block holds a single editable run of text.
func (b *Block) IsText() bool {
	return !b.Kind.IsAtom() && b.Kind != KindTable
}

// Cells returns the number of editable slots in the block.
func (b *Block) Cells() int {
	if b.Kind == KindTable && b.Table != nil {
		return len(b.Table.Cells)
	}
	return 1
}

// PlainText returns the runes of the block or of one table cell.
func (b *Block) PlainText(cell int) string {
	return charsString(b.chars(cell))
}

func (b *Block) chars(cell int) []Char {
	switch {
	case b.Kind == KindTable && b.Table != nil:
		if cell < 0 || cell >= len(b.Table.Cells) {
			return nil
		}
		return b.Table.Cells[cell]
	case b.Kind.IsAtom():
		return nil
	default:
		return b.Text
	}
}

func (b *Block) setChars(cell int, cs []Char) {
	if b.Kind == KindTable && b.Table != nil {
		if cell >= 0 && cell < len(b.Table.Cells) {
			b.Table.Cells[cell] = cs
		}
		return
	}
	if !b.Kind.IsAtom() {
		b.Text = cs
	}
}

// Chars returns the characters of the block or table cell. The slice must
// not be modified.
func (b *Block) Chars(cell int) []Char {
	return b.chars(cell)
}

func (b *Block) clone() *Block {
	c := *b
	if b.Text != nil {
		c.Text = append([]Char(nil), b.Text...)
	}
	if b.Table != nil {
		t := *b.Table
		t.Cells = make([][]Char, len(b.Table.Cells))
		for i, cell := range b.Table.Cells {
			if cell != nil {
				t.Cells[i] = append([]Char(nil), cell...)
			}
		}
		c.Table = &t
	}
	return &c
}

// SpansOf groups characters into runs with identical marks and link.
func SpansOf(cs []Char) []Span {
	var spans []Span
	var runes []rune
	for i, c := range cs {
		if i > 0 && (c.Marks != cs[i-1].Marks || c.Link != cs[i-1].Link) {
			spans = append(spans, Span{Text: string(runes), Marks: cs[i-1].Marks, Link: cs[i-1].Link})
			runes = runes[:0]
		}
		runes = append(runes, c.R)
	}
	if len(runes) > 0 {
		last := cs[len(cs)-1]
		spans = append(spans, Span{Text: string(runes), Marks: last.Marks, Link: last.Link})
	}
	return spans
}

func charsString(cs []Char) string {
	runes := make([]rune, len(cs))
	for i, c := range cs {
		runes[i] = c.R
	}
	return string(runes)
}

func charsFrom(s string, marks Mark, link string) []Char {
	cs := make([]Char, 0, len(s))
	for _, r := range s {
		cs = append(cs, Char{R: r, Marks: marks, Link: link})
	}
	return cs
}

// =============================================================================
// POSITIONS
// =============================================================================

// Pos addresses a point between two characters. Offset counts runes inside
// the block text, or inside table cell Cell for table blocks.
type Pos struct {
	Block  int
	Cell   int
	Offset int
}

// Compare orders two positions in document order.
func Compare(a, b Pos) int {
	switch {
	case a.Block != b.Block:
		return sign(a.Block - b.Block)
	case a.Cell != b.Cell:
		return sign(a.Cell - b.Cell)
	default:
		return sign(a.Offset - b.Offset)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Range is a span of the document between two positions.
type Range struct {
	From Pos
	To   Pos
}

// Normalized returns the range with From before To.
func (r Range) Normalized() Range {
	if Compare(r.From, r.To) > 0 {
		return Range{From: r.To, To: r.From}
	}
	return r
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool {
	return r.From == r.To
}

// Selection is the user's selection. Head is where the cursor is drawn.
type Selection struct {
	Anchor Pos
	Head   Pos
}

// Cursor returns an empty selection at p.
func Cursor(p Pos) Selection {
	return Selection{Anchor: p, Head: p}
}

// Empty reports whether the selection is a caret with no range.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// Range returns the selected range in document order.
func (s Selection) Range() Range {
	return Range{From: s.Anchor, To: s.Head}.Normalized()
}

// From returns the earlier end of the selection.
func (s Selection) From() Pos {
	return s.Range().From
}

// To returns the later end of the selection.
func (s Selection) To() Pos {
	return s.Range().To
}

// =============================================================================
// EVENTS
// =============================================================================

// EventKind identifies a change notification.
type EventKind int

const (
	// EventSelectionUpdate fires when the selection moved.
	EventSelectionUpdate EventKind = iota
	// EventUpdate fires when the document content changed.
	EventUpdate
)

// Event is delivered to subscribers after every committed change.
type Event struct {
	Kind    EventKind
	Version uint64
}

// Listener receives document events.
type Listener func(Event)
