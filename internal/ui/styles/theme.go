// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeLight = "light"
	ModeDark  = "dark"
	ModeAuto  = "auto"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App  lipgloss.Style
	Page lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header        lipgloss.Style
	HeaderBrand   lipgloss.Style
	HeaderTitle   lipgloss.Style
	HeaderEditing lipgloss.Style
	HeaderCount   lipgloss.Style
	HeaderButton  lipgloss.Style

	// ==========================================================================
	// DOCUMENT STYLES
	// ==========================================================================

	Paragraph   lipgloss.Style
	Heading     [4]lipgloss.Style // indexed by level, 1..3
	Placeholder lipgloss.Style
	ListMarker  lipgloss.Style
	TaskDone    lipgloss.Style
	QuoteBar    lipgloss.Style
	CodeBlock   lipgloss.Style
	CodeLang    lipgloss.Style
	Divider     lipgloss.Style
	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	Image       lipgloss.Style
	Cursor      lipgloss.Style
	Selection   lipgloss.Style

	// ==========================================================================
	// SELECTION TOOLBAR STYLES
	// ==========================================================================

	Toolbar              lipgloss.Style
	ToolbarButton        lipgloss.Style
	ToolbarButtonActive  lipgloss.Style
	ToolbarButtonFocused lipgloss.Style

	// ==========================================================================
	// SUGGESTION MENU STYLES
	// ==========================================================================

	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuDesc     lipgloss.Style
	MenuEmpty    lipgloss.Style

	// ==========================================================================
	// COMMAND PALETTE STYLES
	// ==========================================================================

	PaletteBox          lipgloss.Style
	PaletteHeader       lipgloss.Style
	PaletteGroup        lipgloss.Style
	PaletteItem         lipgloss.Style
	PaletteItemSelected lipgloss.Style
	PaletteShortcut     lipgloss.Style
	PaletteEmpty        lipgloss.Style
	PaletteHelp         lipgloss.Style

	// ==========================================================================
	// PROMPT AND HELP STYLES
	// ==========================================================================

	PromptBox   lipgloss.Style
	PromptTitle lipgloss.Style
	HelpBox     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	LinkStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. mode is one of
// ModeLight, ModeDark or ModeAuto; anything else is treated as auto.
func NewTheme(mode string) *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeLight:
		isDark = false
	case ModeDark:
		isDark = true
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}
	t.SetDark(isDark)
	return t
}

// SetDark switches between the light and dark palettes at runtime.
func (t *Theme) SetDark(isDark bool) {
	t.IsDark = isDark
	lipgloss.SetHasDarkBackground(isDark)
	t.initStyles()
}

// Toggle flips the palette and reports whether it is now dark.
func (t *Theme) Toggle() bool {
	t.SetDark(!t.IsDark)
	return t.IsDark
}

// ModeName returns "dark" or "light".
func (t *Theme) ModeName() string {
	if t.IsDark {
		return ModeDark
	}
	return ModeLight
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Page = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 2)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.HeaderEditing = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Underline(true)

	t.HeaderCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.HeaderButton = lipgloss.NewStyle().
		Foreground(Purple).
		Padding(0, 1)

	// Document
	t.Paragraph = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Heading[1] = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(Purple)
	t.Heading[2] = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.Heading[3] = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.Heading[0] = t.Heading[3]

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ListMarker = lipgloss.NewStyle().Foreground(Purple)
	t.TaskDone = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)

	t.QuoteBar = lipgloss.NewStyle().Foreground(QuoteBar)

	t.CodeBlock = lipgloss.NewStyle().
		Background(CodeBlockBg).
		Foreground(TextPrimary)

	t.CodeLang = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 1).
		Bold(true)

	t.Divider = lipgloss.NewStyle().Foreground(OverlayDim)
	t.TableBorder = lipgloss.NewStyle().Foreground(OverlayDim)
	t.TableHeader = lipgloss.NewStyle().Bold(true)

	t.Image = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Cursor = lipgloss.NewStyle().Reverse(true)
	t.Selection = lipgloss.NewStyle().Background(SelectionBg)

	// Selection toolbar
	t.Toolbar = lipgloss.NewStyle().
		Background(SurfaceBright).
		Foreground(TextPrimary)

	t.ToolbarButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ToolbarButtonActive = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.ToolbarButtonFocused = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true).
		Bold(true).
		Padding(0, 1)

	// Suggestion menu
	t.Menu = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MenuSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true)

	t.MenuDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MenuEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Command palette
	t.PaletteBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.PaletteHeader = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.PaletteGroup = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	t.PaletteItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PaletteItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.PaletteShortcut = lipgloss.NewStyle().
		Foreground(Cyan)

	t.PaletteEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.PaletteHelp = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Prompt and help
	t.PromptBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 2)

	t.PromptTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.HelpBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.LinkStyle = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
