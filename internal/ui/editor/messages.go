// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/config"
)

// =============================================================================
// HOST MESSAGES
// =============================================================================

// ExportDoneMsg reports the result of a plain text export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// PrintDoneMsg reports the result of handing the print view to the system.
type PrintDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a config file that could not be reloaded.
type ConfigErrorMsg struct {
	Err error
}

// waitForConfig blocks until the watcher has something to report.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg := <-w.Changes():
			return ConfigReloadedMsg{Config: cfg}
		case err := <-w.Errors():
			return ConfigErrorMsg{Err: err}
		}
	}
}
