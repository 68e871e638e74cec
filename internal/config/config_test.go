// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory at a temp dir and clears FOLIO_*.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"FOLIO_THEME", "FOLIO_PAGE_WIDTH", "FOLIO_EXPORT_DIR", "FOLIO_DEBUG"} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "document.txt", cfg.Export.Filename)
	assert.Equal(t, "Untitled Document", cfg.Editor.InitialTitle)
	assert.Equal(t, 200*time.Millisecond, cfg.BlurGrace())
	assert.True(t, cfg.UI.ShowStatusBar)
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PrefersTOMLOverJSON(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".folio", "config.toml"), "[ui]\ntheme = \"dark\"\n")
	writeFile(t, filepath.Join(home, ".folio", "config.json"), `{"ui":{"theme":"light"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_FallsBackToJSON(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".folio", "config.json"), `{"editor":{"page_width":100}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Editor.PageWidth)
	assert.Equal(t, DefaultToolbarWidth, cfg.UI.ToolbarWidth)
}

func TestLoadTOML_SparseFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[export]\noutput_dir = \"/tmp/out\"\n")

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.Export.OutputDir)
	assert.Equal(t, DefaultFilename, cfg.Export.Filename)
	assert.Equal(t, DefaultPageWidth, cfg.Editor.PageWidth)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.True(t, cfg.Editor.Typography)
	assert.Equal(t, filepath.Join("/tmp/out", "document.txt"), cfg.ExportPath())
}

func TestLoadTOML_TypographyOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[editor]\ntypography = false\n")

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.False(t, cfg.Editor.Typography)
}

func TestLoadTOML_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui\ntheme = ")

	_, err := LoadTOML(path)
	assert.Error(t, err)
}

func TestLoadFromPath_RejectsInvalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"sepia\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "ui.theme", verrs[0].Field)
}

func TestSaveTOML_ReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.Editor.PageWidth = 72

	require.NoError(t, cfg.SaveTOML(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.Equal(t, 72, loaded.Editor.PageWidth)
}

// =============================================================================
// VALIDATION AND OVERRIDES
// =============================================================================

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"theme", func(c *Config) { c.UI.Theme = "blue" }, "ui.theme"},
		{"narrow page", func(c *Config) { c.Editor.PageWidth = 10 }, "editor.page_width"},
		{"wide page", func(c *Config) { c.Editor.PageWidth = 500 }, "editor.page_width"},
		{"history", func(c *Config) { c.Editor.HistoryLimit = 0 }, "editor.history_limit"},
		{"toolbar", func(c *Config) { c.UI.ToolbarWidth = 5 }, "ui.toolbar_width"},
		{"grace", func(c *Config) { c.UI.BlurGraceMs = -1 }, "ui.blur_grace_ms"},
		{"filename path", func(c *Config) { c.Export.Filename = "a/b.txt" }, "export.filename"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.ValidateErrors()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FOLIO_THEME", "DARK")
	t.Setenv("FOLIO_PAGE_WIDTH", "120")
	t.Setenv("FOLIO_EXPORT_DIR", "/srv/out")
	t.Setenv("FOLIO_DEBUG", "yes")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 120, cfg.Editor.PageWidth)
	assert.Equal(t, "/srv/out", cfg.Export.OutputDir)
	assert.True(t, cfg.Debug)
}

func TestApplyEnvOverrides_IgnoresBadNumbers(t *testing.T) {
	isolate(t)
	t.Setenv("FOLIO_PAGE_WIDTH", "wide")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, DefaultPageWidth, cfg.Editor.PageWidth)
}

// =============================================================================
// KEY ACCESS
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("ui.theme", "dark"))
	require.NoError(t, cfg.Set("editor.page-width", "90"))
	require.NoError(t, cfg.Set("UI.show_status_bar", "false"))

	v, err := cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.Equal(t, 90, cfg.Editor.PageWidth)
	assert.False(t, cfg.UI.ShowStatusBar)

	assert.Error(t, cfg.Set("editor.page_width", "wide"))
	assert.Error(t, cfg.Set("ui.nope", "1"))
	_, err = cfg.Get("ui")
	assert.Error(t, err)
}

func TestGetAllKeys(t *testing.T) {
	keys := Default().GetAllKeys()
	assert.Contains(t, keys, "ui.theme")
	assert.Contains(t, keys, "export.filename")
	assert.Contains(t, keys, "print.open_command")
	assert.IsIncreasing(t, keys)
}

func TestClone_IsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.UI.Theme = "dark"
	assert.Equal(t, DefaultTheme, cfg.UI.Theme)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	writeFile(t, path, "[ui]\ntheme = \"dark\"\ntoolbar_width = 40\n")

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.Equal(t, 40, cfg.UI.ToolbarWidth)
	case err := <-w.Errors():
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	writeFile(t, path, "[ui]\ntoolbar_width = 3\n")

	select {
	case err := <-w.Errors():
		assert.Error(t, err)
	case <-w.Changes():
		t.Fatal("invalid config should not be delivered")
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.UI.Theme = "dark"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "dark", Global().UI.Theme)
}

func TestGlobal_LoadsOnce(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".folio", "config.toml"), "[editor]\npage_width = 64\n")
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	assert.Equal(t, 64, Global().Editor.PageWidth)
	assert.Same(t, Global(), Global())
}
