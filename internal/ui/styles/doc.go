// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the folio editor.

This package defines the color palette and the lip gloss styles used by the
page, the floating menus and the chrome around them. All colors use Lip Gloss
AdaptiveColor so a single palette serves light and dark terminals.

# Color System (colors.go)

  - Purple - Primary accent for active buttons and selected items
  - Cyan - Brand color, shortcuts and second level headings
  - Emerald - Success states
  - Rose - Errors

Document colors (SelectionBg, HighlightBg, InlineCodeBg, CodeBlockBg,
QuoteBar) style the page content.

# Theme System (theme.go)

The Theme struct resolves light or dark at startup and can flip at runtime:

	theme := styles.NewTheme(styles.ModeAuto)
	theme.Toggle() // switches palette, restyles everything

# Usage Example

	import "github.com/jeranaias/folio/internal/ui/styles"

	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)
*/
package styles
