// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across folio.
//
// # Key Functions
//
// Text:
//   - CountWords, CountChars: The header counters
//   - NormalizeNewlines: Clipboard line endings
//   - TruncateWidth: Cell-aware truncation with ellipsis
//   - Slug: File name stems from document titles
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
