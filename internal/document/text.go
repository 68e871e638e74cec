// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"fmt"
	"strings"
)

// BlockSeparator joins blocks in the plain-text projection.
const BlockSeparator = "\n\n"

// =============================================================================
// PLAIN TEXT
// =============================================================================

// Text returns the plain-text projection of the document: the text of every
// text block and table cell joined by BlockSeparator. Dividers and images
// contribute nothing.
func (d *Document) Text() string {
	var parts []string
	for _, b := range d.blocks {
		if b.Kind.IsAtom() {
			continue
		}
		for cell := 0; cell < b.Cells(); cell++ {
			parts = append(parts, charsString(b.chars(cell)))
		}
	}
	return strings.Join(parts, BlockSeparator)
}

// SelectedText returns the text covered by the selection, one line per
// block or cell.
func (d *Document) SelectedText() string {
	if d.sel.Empty() {
		return ""
	}
	var parts []string
	for _, tr := range d.slices(d.sel.Range()) {
		cs := d.blocks[tr.Block].chars(tr.Cell)
		parts = append(parts, charsString(cs[tr.Start:tr.End]))
	}
	return strings.Join(parts, "\n")
}

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown renders the document as CommonMark with GFM tables, task lists
// and strikethrough. Underline and highlight use inline HTML.
func (d *Document) Markdown() string {
	var sb strings.Builder
	ordinal := map[int]int{}
	for i, b := range d.blocks {
		if i > 0 {
			prev := d.blocks[i-1]
			if b.Kind.IsList() && prev.Kind.IsList() && b.Quoted == prev.Quoted {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		if b.Kind.IsList() {
			for k := range ordinal {
				if k > b.Indent || (k == b.Indent && b.Kind != KindOrderedList) {
					delete(ordinal, k)
				}
			}
		} else {
			ordinal = map[int]int{}
		}

		var body string
		switch b.Kind {
		case KindHeading:
			body = strings.Repeat("#", b.Level) + " " + inlineMarkdown(b.Text)
		case KindBulletList:
			body = listIndent(b.Indent) + "- " + inlineMarkdown(b.Text)
		case KindOrderedList:
			ordinal[b.Indent]++
			body = listIndent(b.Indent) + fmt.Sprintf("%d. ", ordinal[b.Indent]) + inlineMarkdown(b.Text)
		case KindTaskList:
			box := "[ ]"
			if b.Checked {
				box = "[x]"
			}
			body = listIndent(b.Indent) + "- " + box + " " + inlineMarkdown(b.Text)
		case KindCodeBlock:
			fence := "```"
			text := charsString(b.Text)
			for strings.Contains(text, fence) {
				fence += "`"
			}
			body = fence + b.Lang + "\n" + text + "\n" + fence
		case KindDivider:
			body = "---"
		case KindImage:
			body = "![](" + b.Src + ")"
		case KindTable:
			body = tableMarkdown(b.Table)
		default:
			body = escapeBlockStart(inlineMarkdown(b.Text))
		}

		if b.Align != AlignLeft && b.Kind != KindCodeBlock && !b.Kind.IsList() {
			body = fmt.Sprintf("<div style=\"text-align: %s\">\n\n%s\n\n</div>", b.Align, body)
		}
		if b.Quoted {
			body = quoteLines(body)
		}
		sb.WriteString(body)
	}
	return sb.String()
}

func listIndent(level int) string {
	return strings.Repeat("   ", level)
}

func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

func tableMarkdown(t *Table) string {
	if t == nil || t.Cols == 0 {
		return ""
	}
	var sb strings.Builder
	row := func(r int) {
		sb.WriteString("|")
		for c := 0; c < t.Cols; c++ {
			cell := inlineMarkdown(t.Cells[r*t.Cols+c])
			cell = strings.ReplaceAll(cell, "\n", "<br>")
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	start := 0
	if t.HeaderRow && t.Rows > 0 {
		row(0)
		start = 1
	} else {
		sb.WriteString("|" + strings.Repeat("   |", t.Cols) + "\n")
	}
	sb.WriteString("|" + strings.Repeat(" --- |", t.Cols) + "\n")
	for r := start; r < t.Rows; r++ {
		row(r)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// inlineMarkdown renders marked text. Runs sharing a link are wrapped in
// one link, emphasis delimiters never touch whitespace.
func inlineMarkdown(cs []Char) string {
	var sb strings.Builder
	spans := SpansOf(cs)
	for i := 0; i < len(spans); {
		href := spans[i].Link
		j := i
		var inner strings.Builder
		for j < len(spans) && spans[j].Link == href {
			inner.WriteString(spanMarkdown(spans[j]))
			j++
		}
		if href != "" {
			sb.WriteString("[" + inner.String() + "](" + escapeURL(href) + ")")
		} else {
			sb.WriteString(inner.String())
		}
		i = j
	}
	return sb.String()
}

func spanMarkdown(s Span) string {
	text := s.Text
	if s.Marks == 0 || strings.TrimSpace(text) == "" {
		return escapeMarkdown(text)
	}
	trimmed := strings.TrimSpace(text)
	lead := text[:strings.Index(text, trimmed)]
	trail := text[len(lead)+len(trimmed):]

	var body string
	if s.Marks.Has(Code) {
		tick := "`"
		for strings.Contains(trimmed, tick) {
			tick += "`"
		}
		pad := ""
		if strings.HasPrefix(trimmed, "`") || strings.HasSuffix(trimmed, "`") {
			pad = " "
		}
		body = tick + pad + trimmed + pad + tick
	} else {
		body = escapeMarkdown(trimmed)
	}
	if s.Marks.Has(Italic) {
		body = "_" + body + "_"
	}
	if s.Marks.Has(Bold) {
		body = "**" + body + "**"
	}
	if s.Marks.Has(Strike) {
		body = "~~" + body + "~~"
	}
	if s.Marks.Has(Underline) {
		body = "<u>" + body + "</u>"
	}
	if s.Marks.Has(Highlight) {
		body = "<mark>" + body + "</mark>"
	}
	return escapeMarkdown(lead) + body + escapeMarkdown(trail)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"~", `\~`,
	"!", `\!`,
	"\n", "  \n",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// escapeBlockStart keeps paragraph text from being read as a list marker.
func escapeBlockStart(s string) string {
	if s == "" {
		return s
	}
	if s[0] == '-' || s[0] == '+' {
		return `\` + s
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[:i] + `\` + s[i:]
	}
	return s
}

func escapeURL(href string) string {
	r := strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")
	return r.Replace(href)
}
