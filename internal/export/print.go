// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/util"
)

// =============================================================================
// PRINT EXPORTER
// =============================================================================

// printMarkdown renders GFM with the inline HTML used for underline,
// highlight and alignment.
var printMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// PrintExporter renders a document as a standalone A4 HTML page that opens
// the print dialog when loaded.
type PrintExporter struct {
	title string
}

// NewPrintExporter creates a print exporter for a document titled title.
func NewPrintExporter(title string) *PrintExporter {
	if strings.TrimSpace(title) == "" {
		title = config.DefaultTitle
	}
	return &PrintExporter{title: title}
}

// Export converts the document Markdown to a print-ready HTML page.
func (e *PrintExporter) Export(doc Source) ([]byte, error) {
	var body bytes.Buffer
	if err := printMarkdown.Convert([]byte(doc.Markdown()), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(e.title)))
	sb.WriteString("    <meta name=\"generator\" content=\"folio\">\n")
	sb.WriteString(printCSS)
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("<main class=\"page\">\n")
	sb.Write(body.Bytes())
	sb.WriteString("</main>\n")
	sb.WriteString("<script>window.addEventListener('load', function () { window.print(); });</script>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileName returns a name derived from the title.
func (e *PrintExporter) FileName() string {
	return util.Slug(e.title) + ".html"
}

// MimeType returns the MIME type for HTML.
func (e *PrintExporter) MimeType() string {
	return "text/html"
}

// Print writes the print view to a temp file and hands it to the system
// opener, whose print dialog does the printing. Returns the temp file path.
func Print(doc Source, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	exporter := NewPrintExporter(opts.Title)

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("print failed: %w", err)
	}

	f, err := os.CreateTemp("", "folio-"+util.Slug(exporter.title)+"-*.html")
	if err != nil {
		return "", fmt.Errorf("create print file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write print file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close print file: %w", err)
	}

	if err := openFile(opts.OpenCommand, path); err != nil {
		return path, fmt.Errorf("open print view: %w", err)
	}
	return path, nil
}

// printCSS lays the page out on A4 paper with 20mm margins.
const printCSS = `    <style>
        @page {
            size: A4;
            margin: 20mm;
        }

        * {
            box-sizing: border-box;
        }

        body {
            margin: 0;
            font-family: Georgia, "Times New Roman", serif;
            font-size: 12pt;
            line-height: 1.6;
            color: #1f2937;
            background: #ffffff;
        }

        .page {
            max-width: 210mm;
            margin: 0 auto;
        }

        @media screen {
            body { background: #e5e5e5; }
            .page {
                min-height: 297mm;
                padding: 20mm;
                background: #ffffff;
                box-shadow: 0 2px 12px rgba(0, 0, 0, 0.15);
            }
        }

        h1, h2, h3 {
            font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif;
            line-height: 1.25;
            page-break-after: avoid;
        }

        h1 { font-size: 24pt; }
        h2 { font-size: 18pt; }
        h3 { font-size: 14pt; }

        blockquote {
            margin: 1em 0;
            padding-left: 1em;
            border-left: 3px solid #c4b5fd;
            color: #4b5563;
        }

        pre, code {
            font-family: "SF Mono", Monaco, Consolas, monospace;
            font-size: 10pt;
        }

        pre {
            padding: 12px;
            background: #f3f4f6;
            border-radius: 4px;
            white-space: pre-wrap;
            page-break-inside: avoid;
        }

        :not(pre) > code {
            padding: 1px 4px;
            background: #f3f4f6;
            color: #be123c;
            border-radius: 3px;
        }

        mark { background: #fef08a; }

        table {
            width: 100%;
            border-collapse: collapse;
            page-break-inside: avoid;
        }

        th, td {
            padding: 6px 8px;
            border: 1px solid #d4d4d4;
            text-align: left;
        }

        th { background: #f5f5f5; }

        hr {
            border: none;
            border-top: 1px solid #d4d4d4;
            margin: 2em 0;
        }

        img { max-width: 100%; }

        a { color: #2563eb; }

        li input[type="checkbox"] { margin-right: 0.5em; }
    </style>
`
