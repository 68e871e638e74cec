// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes folio documents out of the terminal.
//
// # Key Types
//
//   - Exporter: Main export interface
//   - TextExporter: Plain text projection, saved as document.txt
//   - PrintExporter: A4 HTML page rendered with goldmark
//   - Options: Export configuration options
//
// # Usage
//
// Export plain text:
//
//	path, err := export.ExportText(doc, export.OptionsFromConfig(cfg, title))
//
// Print through the system browser:
//
//	_, err := export.Print(doc, opts)
package export
