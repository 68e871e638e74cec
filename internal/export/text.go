// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextFileName is the default name of the plain text export.
const TextFileName = "document.txt"

// TextExporter exports the plain text projection of a document: block
// texts joined by blank lines, with no markup.
type TextExporter struct{}

// NewTextExporter creates a new text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export returns the document text as UTF-8.
func (e *TextExporter) Export(doc Source) ([]byte, error) {
	return []byte(doc.Text()), nil
}

// FileName returns document.txt.
func (e *TextExporter) FileName() string {
	return TextFileName
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
