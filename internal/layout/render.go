// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/ui/styles"
)

// MinWidth is the narrowest text column Render accepts.
const MinWidth = 12

type renderer struct {
	doc      *document.Document
	opts     Options
	th       *styles.Theme
	sel      document.Selection
	from, to document.Pos
	out      *Layout
	ordinal  map[int]int
}

// Render lays doc out in a column opts.Width cells wide. opts.Theme must
// be set.
func Render(doc *document.Document, opts Options) *Layout {
	if opts.Width < MinWidth {
		opts.Width = MinWidth
	}
	sel := doc.Selection()
	r := &renderer{
		doc:     doc,
		opts:    opts,
		th:      opts.Theme,
		sel:     sel,
		from:    sel.From(),
		to:      sel.To(),
		out:     &Layout{width: opts.Width},
		ordinal: map[int]int{},
	}

	if doc.IsEmpty() && doc.Options().Placeholder != "" {
		r.placeholder(doc.Options().Placeholder)
		return r.out
	}

	for i := 0; i < doc.Len(); i++ {
		b := doc.Block(i)
		if i > 0 {
			prev := doc.Block(i - 1)
			if !(b.Kind.IsList() && prev.Kind.IsList() && b.Quoted == prev.Quoted) {
				r.emit(spaces(opts.Width))
			}
		}
		r.count(b)

		switch {
		case b.Kind.IsAtom():
			r.atom(i, b)
		case b.Kind == document.KindTable:
			r.table(i, b)
		case b.Kind == document.KindCodeBlock:
			r.codeBlock(i, b)
		default:
			r.textBlock(i, b)
		}
	}
	return r.out
}

// =============================================================================
// HELPERS
// =============================================================================

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func (r *renderer) emit(s string) int {
	r.out.lines = append(r.out.lines, s)
	return len(r.out.lines) - 1
}

func (r *renderer) addSegment(block, cell, row int, ln line, cols []int, x int) {
	abs := make([]int, len(cols))
	for i, c := range cols {
		abs[i] = c + x
	}
	r.out.segs = append(r.out.segs, segment{
		block: block,
		cell:  cell,
		row:   row,
		start: ln.start,
		end:   ln.end,
		cols:  abs,
	})
}

// count tracks ordered list numbering the same way the Markdown export does.
func (r *renderer) count(b *document.Block) {
	if !b.Kind.IsList() {
		r.ordinal = map[int]int{}
		return
	}
	for k := range r.ordinal {
		if k > b.Indent || (k == b.Indent && b.Kind != document.KindOrderedList) {
			delete(r.ordinal, k)
		}
	}
	if b.Kind == document.KindOrderedList {
		r.ordinal[b.Indent]++
	}
}

func (r *renderer) quote(b *document.Block) (string, int) {
	if !b.Quoted {
		return "", 0
	}
	return r.th.QuoteBar.Render("│ "), 2
}

func (r *renderer) selected(p document.Pos) bool {
	if r.sel.Empty() {
		return false
	}
	return document.Compare(r.from, p) <= 0 && document.Compare(p, r.to) < 0
}

// cursorIn returns the cursor offset when it is drawn on line li of a slot.
func (r *renderer) cursorIn(block, cell int, lines []line, li int) (int, bool) {
	if !r.opts.Focused || !r.sel.Empty() {
		return 0, false
	}
	h := r.sel.Head
	if h.Block != block || h.Cell != cell {
		return 0, false
	}
	if lineFor(lines, h.Offset) != li {
		return 0, false
	}
	return h.Offset, true
}

// touches reports whether the selection reaches block i.
func (r *renderer) touches(i int) bool {
	return r.from.Block <= i && i <= r.to.Block
}

type runKey struct {
	marks    document.Mark
	link     bool
	selected bool
	cursor   bool
}

func (r *renderer) style(base lipgloss.Style, k runKey) lipgloss.Style {
	s := base
	if k.marks.Has(document.Bold) {
		s = s.Bold(true)
	}
	if k.marks.Has(document.Italic) {
		s = s.Italic(true)
	}
	if k.marks.Has(document.Underline) {
		s = s.Underline(true)
	}
	if k.marks.Has(document.Strike) {
		s = s.Strikethrough(true)
	}
	if k.marks.Has(document.Code) {
		s = s.Foreground(styles.InlineCodeFg).Background(styles.InlineCodeBg)
	}
	if k.marks.Has(document.Highlight) {
		s = s.Background(styles.HighlightBg)
	}
	if k.link {
		s = s.Foreground(styles.LinkColor).Underline(true)
	}
	if k.selected {
		s = s.Background(styles.SelectionBg)
	}
	if k.cursor {
		s = s.Reverse(true)
	}
	return s
}

// line renders line li of a slot. It returns the styled text, the column
// of every offset on the line and the drawn width, which includes a cursor
// cell past the last character when the cursor sits there.
func (r *renderer) line(block, cell int, cs []document.Char, lines []line, li int, base lipgloss.Style) (string, []int, int) {
	ln := lines[li]
	cur, hasCursor := r.cursorIn(block, cell, lines, li)

	var sb strings.Builder
	cols := make([]int, 0, ln.end-ln.start+1)
	x := 0

	var run strings.Builder
	var key runKey
	open := false
	flush := func() {
		if open && run.Len() > 0 {
			sb.WriteString(r.style(base, key).Render(run.String()))
		}
		run.Reset()
	}

	for _, u := range ln.units {
		c := cs[u.start]
		k := runKey{
			marks:    c.Marks,
			link:     c.Link != "",
			selected: r.selected(document.Pos{Block: block, Cell: cell, Offset: u.start}),
			cursor:   hasCursor && u.start <= cur && cur < u.end,
		}
		if !open || k != key {
			flush()
			key = k
			open = true
		}
		run.WriteString(u.text)
		for o := u.start; o < u.end; o++ {
			cols = append(cols, x)
		}
		x += u.width
	}
	flush()
	cols = append(cols, x)

	if hasCursor && cur == ln.end {
		sb.WriteString(r.th.Cursor.Render(" "))
		x++
	}
	return sb.String(), cols, x
}

func alignShift(a document.Align, avail, width int) int {
	free := avail - 1 - width
	if free <= 0 {
		return 0
	}
	switch a {
	case document.AlignCenter:
		return free / 2
	case document.AlignRight:
		return free
	}
	return 0
}

// =============================================================================
// BLOCKS
// =============================================================================

func (r *renderer) placeholder(text string) {
	w := r.opts.Width
	text = truncate.StringWithTail(text, uint(w-1), "…")
	var s string
	if r.opts.Focused {
		rs := []rune(text)
		s = r.th.Placeholder.Reverse(true).Render(string(rs[:1])) + r.th.Placeholder.Render(string(rs[1:]))
	} else {
		s = r.th.Placeholder.Render(text)
	}
	row := r.emit(s + spaces(w-runewidth.StringWidth(text)))
	r.out.segs = append(r.out.segs, segment{row: row, cols: []int{0}})
}

func (r *renderer) textBlock(i int, b *document.Block) {
	quote, qw := r.quote(b)
	base := r.th.Paragraph
	first, rest := "", ""
	pw := 0

	switch b.Kind {
	case document.KindHeading:
		lvl := b.Level
		if lvl < 1 || lvl > 3 {
			lvl = 3
		}
		base = r.th.Heading[lvl]
	case document.KindBulletList, document.KindOrderedList, document.KindTaskList:
		marker := "• "
		switch b.Kind {
		case document.KindOrderedList:
			marker = fmt.Sprintf("%d. ", r.ordinal[b.Indent])
		case document.KindTaskList:
			marker = "[ ] "
			if b.Checked {
				marker = "[x] "
				base = r.th.TaskDone
			}
		}
		ind := spaces(2 * b.Indent)
		first = ind + r.th.ListMarker.Render(marker)
		pw = len(ind) + runewidth.StringWidth(marker)
		rest = spaces(pw)
	}

	avail := r.opts.Width - qw - pw
	lines := wrap(b.Text, avail-1, true)
	for li, ln := range lines {
		text, cols, w := r.line(i, 0, b.Text, lines, li, base)
		shift := alignShift(b.Align, avail, ln.width)
		prefix := rest
		if li == 0 {
			prefix = first
		}
		row := r.emit(quote + prefix + spaces(shift) + text + spaces(avail-shift-w))
		r.addSegment(i, 0, row, ln, cols, qw+pw+shift)
	}
}

func (r *renderer) codeBlock(i int, b *document.Block) {
	quote, qw := r.quote(b)
	bg := r.th.CodeBlock.Render
	inner := r.opts.Width - qw - 2

	lines := wrap(b.Text, inner-1, false)
	var hl []string
	if r.opts.Highlight && !r.touches(i) {
		hl = highlight(b.PlainText(0), b.Lang, inner-1, r.th.IsDark)
		if len(hl) != len(lines) {
			hl = nil
		}
	}

	if b.Lang != "" {
		badge := r.th.CodeLang.Render(b.Lang)
		r.emit(quote + bg(spaces(inner+2-lipgloss.Width(badge))) + badge)
	}
	for li, ln := range lines {
		text, cols, w := r.line(i, 0, b.Text, lines, li, r.th.CodeBlock)
		if hl != nil {
			text, w = hl[li], ln.width
		}
		row := r.emit(quote + bg(" ") + text + bg(spaces(inner-w)+" "))
		r.addSegment(i, 0, row, ln, cols, qw+1)
	}
}

func (r *renderer) atom(i int, b *document.Block) {
	quote, qw := r.quote(b)
	avail := r.opts.Width - qw

	var text string
	st := r.th.Divider
	if b.Kind == document.KindImage {
		text = truncate.StringWithTail("[image: "+b.Src+"]", uint(avail), "…")
		st = r.th.Image
	} else {
		text = strings.Repeat("─", avail)
	}

	h := r.sel.Head
	switch {
	case r.opts.Focused && r.sel.Empty() && h.Block == i:
		st = st.Reverse(true)
	case r.selected(document.Pos{Block: i}):
		st = st.Background(styles.SelectionBg)
	}
	row := r.emit(quote + st.Render(text) + spaces(avail-runewidth.StringWidth(text)))
	r.out.segs = append(r.out.segs, segment{block: i, row: row, cols: []int{qw}})
}

func (r *renderer) table(i int, b *document.Block) {
	t := b.Table
	if t == nil || t.Cols == 0 {
		return
	}
	quote, qw := r.quote(b)
	avail := r.opts.Width - qw
	cw := (avail-1)/t.Cols - 3
	if cw < 1 {
		cw = 1
	}
	total := 1 + t.Cols*(cw+3)
	border := r.th.TableBorder.Render

	rule := func(l, m, rt string) {
		parts := make([]string, t.Cols)
		for c := range parts {
			parts[c] = strings.Repeat("─", cw+2)
		}
		r.emit(quote + border(l+strings.Join(parts, m)+rt) + spaces(avail-total))
	}

	rule("┌", "┬", "┐")
	for row := 0; row < t.Rows; row++ {
		base := r.th.Paragraph
		if t.HeaderRow && row == 0 {
			base = r.th.TableHeader
		}

		wrapped := make([][]line, t.Cols)
		height := 1
		for c := 0; c < t.Cols; c++ {
			wrapped[c] = wrap(b.Chars(row*t.Cols+c), cw-1, true)
			if len(wrapped[c]) > height {
				height = len(wrapped[c])
			}
		}

		for k := 0; k < height; k++ {
			type pending struct {
				cell int
				ln   line
				cols []int
				x    int
			}
			var segs []pending
			var sb strings.Builder
			sb.WriteString(quote + border("│"))
			x := qw + 1
			for c := 0; c < t.Cols; c++ {
				cell := row*t.Cols + c
				if k < len(wrapped[c]) {
					text, cols, w := r.line(i, cell, b.Chars(cell), wrapped[c], k, base)
					sb.WriteString(" " + text + spaces(cw-w) + " ")
					segs = append(segs, pending{cell: cell, ln: wrapped[c][k], cols: cols, x: x + 1})
				} else {
					sb.WriteString(spaces(cw + 2))
				}
				sb.WriteString(border("│"))
				x += cw + 3
			}
			rowIdx := r.emit(sb.String() + spaces(avail-total))
			for _, p := range segs {
				r.addSegment(i, p.cell, rowIdx, p.ln, p.cols, p.x)
			}
		}
		if row < t.Rows-1 {
			rule("├", "┼", "┤")
		}
	}
	rule("└", "┴", "┘")
}
