// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"log"
	"regexp"
	"unicode/utf8"
)

// =============================================================================
// INPUT RULES
// =============================================================================

// InputRule rewrites the text before the cursor once it ends with Pattern.
// When Pattern has a capture group only the group is replaced.
type InputRule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// openQuote matches the characters a quote may follow to count as opening.
const openQuote = `(?:^|[\s{\[(<'"\x{2018}\x{201C}])`

// TypographyRules are the smart punctuation rules applied while typing.
// The first matching rule wins.
var TypographyRules = []InputRule{
	{"em dash", regexp.MustCompile(`--$`), "—"},
	{"ellipsis", regexp.MustCompile(`\.\.\.$`), "…"},
	{"open double quote", regexp.MustCompile(openQuote + `(")$`), "“"},
	{"close double quote", regexp.MustCompile(`"$`), "”"},
	{"open single quote", regexp.MustCompile(openQuote + `(')$`), "‘"},
	{"close single quote", regexp.MustCompile(`'$`), "’"},
	{"left arrow", regexp.MustCompile(`<-$`), "←"},
	{"right arrow", regexp.MustCompile(`->$`), "→"},
	{"copyright", regexp.MustCompile(`\(c\)$`), "©"},
	{"trademark", regexp.MustCompile(`\(tm\)$`), "™"},
	{"servicemark", regexp.MustCompile(`\(sm\)$`), "℠"},
	{"registered", regexp.MustCompile(`\(r\)$`), "®"},
	{"one half", regexp.MustCompile(`(?:^|\s)(1/2)\s$`), "½"},
	{"plus minus", regexp.MustCompile(`\+/-$`), "±"},
	{"not equal", regexp.MustCompile(`!=$`), "≠"},
	{"left guillemet", regexp.MustCompile(`<<$`), "«"},
	{"right guillemet", regexp.MustCompile(`>>$`), "»"},
	{"multiplication", regexp.MustCompile(`\d+\s?([*x])\s?\d+$`), "×"},
	{"superscript two", regexp.MustCompile(`\^2$`), "²"},
	{"superscript three", regexp.MustCompile(`\^3$`), "³"},
	{"one quarter", regexp.MustCompile(`(?:^|\s)(1/4)\s$`), "¼"},
	{"three quarters", regexp.MustCompile(`(?:^|\s)(3/4)\s$`), "¾"},
}

// applyInputRules runs the first matching rule against the text before a
// collapsed cursor. Code blocks and text marked as code are left alone.
// Callers hold a change scope, so the rewrite shares the typing's undo step.
func (d *Document) applyInputRules() {
	if len(d.rules) == 0 || !d.sel.Empty() {
		return
	}
	p := d.sel.Head
	b := d.blocks[p.Block]
	if b.Kind == KindCodeBlock {
		return
	}
	cs := b.chars(p.Cell)
	if p.Offset == 0 || p.Offset > len(cs) || cs[p.Offset-1].Marks.Has(Code) {
		return
	}
	before := charsString(cs[:p.Offset])

	for _, r := range d.rules {
		loc := r.Pattern.FindStringSubmatchIndex(before)
		if loc == nil {
			continue
		}
		start, end := loc[0], loc[1]
		if len(loc) >= 4 && loc[2] >= 0 {
			start, end = loc[2], loc[3]
		}
		from := utf8.RuneCountInString(before[:start])
		to := utf8.RuneCountInString(before[:end])

		repl := charsFrom(r.Replace, cs[from].Marks, cs[from].Link)
		out := make([]Char, 0, len(cs)-(to-from)+len(repl))
		out = append(out, cs[:from]...)
		out = append(out, repl...)
		out = append(out, cs[to:]...)
		b.setChars(p.Cell, out)
		d.touch()

		p.Offset += len(repl) - (to - from)
		d.setCursor(p)
		if d.opts.Debug {
			log.Printf("document: input rule %s", r.Name)
		}
		return
	}
}
