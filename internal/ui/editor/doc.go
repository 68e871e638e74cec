// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor is the folio editor shell: a Bubble Tea model that owns
// the document and wires the page, the slash command menu, the selection
// toolbar, the command palette and the chrome around them.
//
// Keys are routed in a fixed order. Ctrl+K always toggles the palette;
// otherwise an open modal (palette, URL prompt, help, title editor) takes
// the key, then the toolbar, then the slash menu, and finally the page.
//
// Usage:
//
//	m := editor.New(editor.Options{Config: cfg})
//	defer m.Close()
//	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
//	_, err := p.Run()
package editor
