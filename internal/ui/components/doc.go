// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the chrome around the folio page: the title
header, the status bar, the URL prompt, the help overlay and the overlay
compositor used to float menus over the page.

# Components

Header (header.go) - Brand, editable document title, word and character
counters and the theme toggle.

StatusBar (statusbar.go) - Paper size, current page, shortcut hints and
transient messages that clear themselves.

Prompt (prompt.go) - Modal URL input used by the link and image commands.

Help (help.go) - Keyboard reference rendered from Markdown with glamour.

# Theme Integration

All components accept a *styles.Theme:

	theme := styles.NewTheme(styles.ModeAuto)
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetCounts(12, 64)
	view := header.View()

# Overlays

Floating boxes are drawn over already rendered content:

	screen = components.Overlay(screen, menu, x, y)
*/
package components
