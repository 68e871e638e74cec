// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/ui/components"
	"github.com/jeranaias/folio/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newTestModel(t *testing.T) (*Model, *fakeClipboard) {
	t.Helper()
	t.Cleanup(config.ResetGlobalForTesting)

	cfg := config.Default()
	cfg.UI.Theme = styles.ModeLight
	cfg.UI.BlurGraceMs = 5000
	cfg.Export.OutputDir = t.TempDir()

	clip := &fakeClipboard{}
	m := New(Options{Config: cfg, Clipboard: clip})
	t.Cleanup(m.Close)
	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, clip
}

// runCmd executes cmd and gives up on commands that wait for a timer.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// drain runs cmd and feeds every resulting message back into the model.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 100; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := runCmd(c).(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	drain(t, m, cmd)
}

func press(t *testing.T, m *Model, kt tea.KeyType) {
	t.Helper()
	send(t, m, tea.KeyMsg{Type: kt})
}

func alt(t *testing.T, m *Model, r rune) {
	t.Helper()
	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true})
}

func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// =============================================================================
// TYPING AND COUNTERS
// =============================================================================

func TestTyping_UpdatesCounters(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(t, m, "two words")

	words, chars := m.Counts()
	assert.Equal(t, 2, words)
	assert.Equal(t, 9, chars)
	assert.Equal(t, "two words", m.Document().Text())
	assert.Contains(t, ansi.Strip(m.View()), "two words")
}

func TestUpDown_KeepsColumn(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(t, m, "one")
	press(t, m, tea.KeyEnter)
	typeText(t, m, "two")

	press(t, m, tea.KeyUp)
	assert.Equal(t, document.Pos{Block: 0, Offset: 3}, m.Document().Selection().Head)

	press(t, m, tea.KeyDown)
	assert.Equal(t, document.Pos{Block: 1, Offset: 3}, m.Document().Selection().Head)

	press(t, m, tea.KeyUp)
	press(t, m, tea.KeyUp)
	assert.Equal(t, document.Pos{}, m.Document().Selection().Head, "moving up from the first line goes to the start")
}

// =============================================================================
// SLASH MENU
// =============================================================================

func TestSlash_InsertsTable(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(t, m, "/")
	require.True(t, m.Slash().IsOpen())
	typeText(t, m, "table")
	assert.Equal(t, "table", m.Slash().Query())

	press(t, m, tea.KeyEnter)

	assert.False(t, m.Slash().IsOpen())
	b := m.Document().Block(0)
	require.Equal(t, document.KindTable, b.Kind)
	assert.Equal(t, 3, b.Table.Rows)
	assert.Equal(t, 3, b.Table.Cols)
	assert.NotContains(t, m.Document().Text(), "/table")
}

func TestSlash_EscapeKeepsText(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(t, m, "/")
	require.True(t, m.Slash().IsOpen())

	press(t, m, tea.KeyEsc)
	assert.False(t, m.Slash().IsOpen())
	assert.Equal(t, "/", m.Document().Text())
}

// =============================================================================
// PALETTE AND THEME
// =============================================================================

func TestPalette_TogglesTheme(t *testing.T) {
	m, _ := newTestModel(t)
	require.False(t, m.Dark())

	press(t, m, tea.KeyCtrlK)
	require.True(t, m.Palette().Visible())
	assert.False(t, m.Focused(), "the page loses focus while the palette is open")

	typeText(t, m, "mode")
	require.Len(t, m.Palette().Filtered(), 1)
	assert.Equal(t, "Dark Mode", m.Palette().Filtered()[0].Label)

	press(t, m, tea.KeyEnter)
	assert.False(t, m.Palette().Visible())
	assert.True(t, m.Dark())
	assert.True(t, m.Header().Dark)
	assert.True(t, m.Focused())

	press(t, m, tea.KeyCtrlK)
	typeText(t, m, "mode")
	require.Len(t, m.Palette().Filtered(), 1)
	assert.Equal(t, "Light Mode", m.Palette().Filtered()[0].Label)

	press(t, m, tea.KeyEsc)
	assert.False(t, m.Palette().Visible())
}

func TestThemeShortcut(t *testing.T) {
	m, _ := newTestModel(t)
	press(t, m, tea.KeyCtrlD)
	assert.True(t, m.Dark())
	press(t, m, tea.KeyCtrlD)
	assert.False(t, m.Dark())
}

// =============================================================================
// TOOLBAR AND LINK PROMPT
// =============================================================================

func TestToolbar_BoldSelection(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(t, m, "hello")

	press(t, m, tea.KeyCtrlA)
	require.True(t, m.Toolbar().Visible())

	alt(t, m, '1')
	assert.Equal(t, "**hello**", m.Document().Markdown())
	assert.True(t, m.Toolbar().Visible(), "the toolbar stays over the selection")
}

func TestToolbar_HiddenWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(t, m, "hello")
	assert.False(t, m.Toolbar().Visible())

	press(t, m, tea.KeyCtrlA)
	require.True(t, m.Toolbar().Visible())

	press(t, m, tea.KeyRight)
	assert.False(t, m.Toolbar().Visible())
}

func TestLinkPrompt(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(t, m, "docs")
	press(t, m, tea.KeyCtrlA)

	alt(t, m, '7')
	require.True(t, m.Prompt().Visible())
	assert.Equal(t, action.Link, m.Prompt().Pending().Kind)
	assert.False(t, m.Focused())

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("https://go.dev")})
	press(t, m, tea.KeyEnter)

	assert.False(t, m.Prompt().Visible())
	assert.Equal(t, "[docs](https://go.dev)", m.Document().Markdown())
	assert.True(t, m.Focused())
}

// =============================================================================
// HEADER
// =============================================================================

func TestTitleEditing(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, components.DefaultTitle, m.Title())

	press(t, m, tea.KeyCtrlT)
	require.True(t, m.Header().Editing())
	press(t, m, tea.KeyCtrlU)
	typeText(t, m, "Q3 Report")
	press(t, m, tea.KeyEnter)

	assert.False(t, m.Header().Editing())
	assert.Equal(t, "Q3 Report", m.Title())
	assert.Empty(t, m.Document().Text(), "title keys do not reach the page")

	press(t, m, tea.KeyCtrlT)
	press(t, m, tea.KeyCtrlU)
	press(t, m, tea.KeyEnter)
	assert.Equal(t, components.DefaultTitle, m.Title())
}

func TestHeaderClickStartsEditing(t *testing.T) {
	m, _ := newTestModel(t)
	send(t, m, tea.MouseMsg{X: 10, Y: 0, Type: tea.MouseLeft})
	assert.True(t, m.Header().Editing())
	assert.False(t, m.Focused())
}

// =============================================================================
// CLIPBOARD
// =============================================================================

func TestCutAndPaste(t *testing.T) {
	m, clip := newTestModel(t)
	typeText(t, m, "hello world")

	press(t, m, tea.KeyCtrlA)
	press(t, m, tea.KeyCtrlX)
	assert.Equal(t, "hello world", clip.text)
	assert.True(t, m.Document().IsEmpty())

	press(t, m, tea.KeyCtrlV)
	assert.Equal(t, "hello world", m.Document().Text())
}

func TestPaste_NormalizesText(t *testing.T) {
	m, clip := newTestModel(t)
	clip.text = "é\r\nx"

	press(t, m, tea.KeyCtrlV)
	assert.Equal(t, "é\n\nx", m.Document().Text())
}

func TestTyping_MultiRuneInsert(t *testing.T) {
	m, _ := newTestModel(t)

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e\u0301/x -- y")})
	assert.Equal(t, "\u00e9/x -- y", m.Document().Text())
	assert.False(t, m.Slash().IsOpen())
}

func TestTyping_SmartPunctuation(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(t, m, "wait... a--b")
	assert.Equal(t, "wait\u2026 a\u2014b", m.Document().Text())
}

func TestCopy_ClipboardFailure(t *testing.T) {
	m, clip := newTestModel(t)
	typeText(t, m, "hello")
	press(t, m, tea.KeyCtrlA)

	clip.err = errors.New("no display")
	press(t, m, tea.KeyCtrlC)
	assert.False(t, m.Quitting())
	assert.Equal(t, "Clipboard unavailable", m.Status().Message())
	assert.Equal(t, "hello", m.Document().Text())
}

func TestCtrlC_QuitsWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

// =============================================================================
// HOST EFFECTS
// =============================================================================

func TestExportText(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(t, m, "one")
	press(t, m, tea.KeyEnter)
	typeText(t, m, "two")

	send(t, m, action.RunMsg{Action: action.Action{Kind: action.ExportText}})

	path := filepath.Join(m.cfg.Export.OutputDir, "document.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\n\ntwo", string(data))
	assert.Contains(t, m.Status().Message(), "Exported to")
}

func TestExportFailureShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	send(t, m, ExportDoneMsg{Err: errors.New("disk full")})
	assert.Equal(t, "Export failed: disk full", m.Status().Message())
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	press(t, m, tea.KeyF1)
	require.True(t, m.Help().Visible())
	assert.False(t, m.Focused())

	press(t, m, tea.KeyF1)
	assert.False(t, m.Help().Visible())
	assert.True(t, m.Focused())
}

// =============================================================================
// CONFIG RELOAD AND SIZING
// =============================================================================

func TestConfigReload_AppliesUISection(t *testing.T) {
	m, _ := newTestModel(t)

	next := m.cfg.Clone()
	next.UI.Theme = styles.ModeDark
	next.UI.ToolbarWidth = 40
	next.Editor.PageWidth = 150

	send(t, m, ConfigReloadedMsg{Config: next})

	assert.True(t, m.Dark())
	assert.Equal(t, 40, m.Toolbar().Width())
	assert.Equal(t, config.DefaultPageWidth, m.cfg.Editor.PageWidth, "editor settings apply on restart")
	assert.Equal(t, "Configuration reloaded", m.Status().Message())
}

func TestView_SmallTerminal(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(t, m, "hello")

	send(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.NotPanics(t, func() { _ = m.View() })
	assert.NotEmpty(t, m.View())
}
