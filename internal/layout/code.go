// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
)

// highlight colours code with chroma and returns one string per source
// line. It returns nil when a line would not fit in width or the code
// contains tabs, so the plain rendering keeps its geometry.
func highlight(code, language string, width int, dark bool) []string {
	if strings.Contains(code, "\t") {
		return nil
	}
	want := strings.Split(code, "\n")
	for _, l := range want {
		if runewidth.StringWidth(l) > width {
			return nil
		}
	}

	// Get lexer for language
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	name := "github"
	if dark {
		name = "monokai"
	}
	style := chromaStyles.Get(name)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return nil
	}

	out := strings.Split(buf.String(), "\n")
	if len(out) < len(want) {
		return nil
	}
	out = out[:len(want)]
	for i := range out {
		out[i] += "\x1b[0m"
	}
	return out
}
