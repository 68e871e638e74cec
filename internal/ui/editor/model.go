// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/action"
	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/document"
	"github.com/jeranaias/folio/internal/layout"
	"github.com/jeranaias/folio/internal/palette"
	"github.com/jeranaias/folio/internal/suggest"
	"github.com/jeranaias/folio/internal/toolbar"
	"github.com/jeranaias/folio/internal/ui/components"
	"github.com/jeranaias/folio/internal/ui/styles"
	"github.com/jeranaias/folio/internal/util"
)

// =============================================================================
// CLIPBOARD
// =============================================================================

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// =============================================================================
// MODEL
// =============================================================================

// Options configures a new editor.
type Options struct {
	// Config supplies every setting; nil uses config.Default().
	Config *config.Config

	// Title overrides editor.initial_title.
	Title string

	// Theme overrides ui.theme ("light", "dark" or "auto").
	Theme string

	// Clipboard replaces the system clipboard.
	Clipboard Clipboard

	// Watcher, when set, feeds config reloads into the editor.
	Watcher *config.Watcher
}

// Model is the editor shell. It owns the document and wires the slash
// menu, the selection toolbar, the command palette and the chrome to it.
type Model struct {
	cfg   *config.Config
	theme *styles.Theme
	keys  KeyMap
	debug bool

	// Document engine
	doc         *document.Document
	dispatcher  *action.Dispatcher
	unsubscribe func()

	// Floating UI
	slash   *suggest.Controller
	toolbar *toolbar.Controller
	palette *palette.Palette
	prompt  *components.Prompt
	help    *components.Help

	// Chrome
	header *components.Header
	status *components.StatusBar
	page   viewport.Model

	// Current page layout and the state it was built from
	lay          *layout.Layout
	lastSel      document.Selection
	lastVersion  uint64
	toolbarDirty bool

	clip    Clipboard
	watcher *config.Watcher

	// Dimensions
	width  int
	height int

	focused  bool
	quitting bool

	// Vertical movement keeps its column across short lines.
	goalX int

	// Mouse selection
	dragging      bool
	lastClick     time.Time
	lastClickCell [2]int
}

// New creates an editor holding an empty document.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	mode := cfg.UI.Theme
	if opts.Theme != "" {
		mode = opts.Theme
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}

	theme := styles.NewTheme(mode)
	doc := document.New(document.Options{
		HistoryLimit: cfg.Editor.HistoryLimit,
		Placeholder:  cfg.Editor.Placeholder,
		Typography:   cfg.Editor.Typography,
		Debug:        cfg.Debug,
	})

	m := &Model{
		cfg:     cfg,
		theme:   theme,
		keys:    DefaultKeyMap(),
		debug:   cfg.Debug,
		doc:     doc,
		palette: palette.New(theme),
		prompt:  components.NewPrompt(theme),
		header:  components.NewHeader(theme),
		status:  components.NewStatusBar(theme),
		page:    viewport.New(80, 20),
		clip:    clip,
		watcher: opts.Watcher,
		focused: true,
		goalX:   -1,
	}

	m.dispatcher = action.NewDispatcher(doc, host{m: m})
	m.dispatcher.SetDebug(cfg.Debug)

	m.slash = suggest.NewController(doc, m.dispatcher.Dispatch)
	m.slash.SetDebug(cfg.Debug)

	m.toolbar = toolbar.NewController(doc, m.dispatcher.Dispatch, toolbar.Options{
		Width:     cfg.UI.ToolbarWidth,
		BlurGrace: cfg.BlurGrace(),
	})
	m.toolbar.SetDebug(cfg.Debug)

	m.help = components.NewHelp(theme, m.keys.HelpSections())

	title := cfg.Editor.InitialTitle
	if opts.Title != "" {
		title = opts.Title
	}
	m.header.SetTitle(title)
	m.header.Dark = theme.IsDark

	m.unsubscribe = doc.Subscribe(m.onDocumentEvent)

	m.resize(80, 24)
	m.refresh()
	return m
}

// onDocumentEvent recounts words and characters after every content change.
func (m *Model) onDocumentEvent(ev document.Event) {
	if ev.Kind != document.EventUpdate {
		return
	}
	text := m.doc.Text()
	m.header.SetCounts(util.CountWords(text), util.CountChars(text))
}

// Init starts listening for config reloads.
func (m *Model) Init() tea.Cmd {
	return waitForConfig(m.watcher)
}

// Close releases the document subscription and the config watcher.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	if m.watcher != nil {
		m.watcher.Close()
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Document returns the edited document.
func (m *Model) Document() *document.Document { return m.doc }

// Title returns the document title.
func (m *Model) Title() string { return m.header.Title }

// Counts returns the word and character counters.
func (m *Model) Counts() (words, chars int) { return m.header.Words, m.header.Chars }

// Dark reports whether the dark palette is active.
func (m *Model) Dark() bool { return m.theme.IsDark }

// Focused reports whether the page has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Quitting reports whether the editor asked to exit.
func (m *Model) Quitting() bool { return m.quitting }

// Slash returns the slash command controller.
func (m *Model) Slash() *suggest.Controller { return m.slash }

// Toolbar returns the selection toolbar controller.
func (m *Model) Toolbar() *toolbar.Controller { return m.toolbar }

// Palette returns the command palette.
func (m *Model) Palette() *palette.Palette { return m.palette }

// Prompt returns the URL prompt.
func (m *Model) Prompt() *components.Prompt { return m.prompt }

// Help returns the keyboard reference overlay.
func (m *Model) Help() *components.Help { return m.help }

// Header returns the title header.
func (m *Model) Header() *components.Header { return m.header }

// Status returns the status bar.
func (m *Model) Status() *components.StatusBar { return m.status }
