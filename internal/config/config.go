// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/folio/internal/util"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete folio configuration.
type Config struct {
	// Version of the configuration format
	Version string `toml:"version" json:"version"`

	// Debug enables the debug log in the config directory
	Debug bool `toml:"debug" json:"debug"`

	Editor EditorConfig `toml:"editor" json:"editor"`
	UI     UIConfig     `toml:"ui" json:"ui"`
	Export ExportConfig `toml:"export" json:"export"`
	Print  PrintConfig  `toml:"print" json:"print"`
}

// EditorConfig holds the document engine settings. These are read once at
// startup; a running editor never picks up changes to them.
type EditorConfig struct {
	// Placeholder shown in an empty first paragraph
	Placeholder string `toml:"placeholder" json:"placeholder"`

	// HistoryLimit caps the undo stack
	HistoryLimit int `toml:"history_limit" json:"history_limit"`

	// PageWidth is the page width in columns, padding included
	PageWidth int `toml:"page_width" json:"page_width"`

	// InitialTitle is the document title at startup
	InitialTitle string `toml:"initial_title" json:"initial_title"`

	// Typography turns on smart punctuation while typing
	Typography bool `toml:"typography" json:"typography"`
}

// UIConfig holds the chrome settings. These are hot-reloaded by the watcher.
type UIConfig struct {
	// Theme is "light", "dark" or "auto"
	Theme string `toml:"theme" json:"theme"`

	// ToolbarWidth is the selection toolbar width in columns
	ToolbarWidth int `toml:"toolbar_width" json:"toolbar_width"`

	// BlurGraceMs is how long the toolbar survives an editor blur
	BlurGraceMs int `toml:"blur_grace_ms" json:"blur_grace_ms"`

	// ShowStatusBar toggles the bottom status bar
	ShowStatusBar bool `toml:"show_status_bar" json:"show_status_bar"`
}

// ExportConfig controls plain text export.
type ExportConfig struct {
	// OutputDir is where the export is written; empty means the working directory
	OutputDir string `toml:"output_dir" json:"output_dir"`

	// Filename of the export
	Filename string `toml:"filename" json:"filename"`

	// OpenAfterExport opens the exported file with the system handler
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
}

// PrintConfig controls the print command.
type PrintConfig struct {
	// OpenCommand opens the print view; empty selects the platform default
	OpenCommand string `toml:"open_command" json:"open_command"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	CurrentVersion = "1.0.0"

	DefaultPlaceholder  = "Type '/' for commands..."
	DefaultHistoryLimit = 500
	DefaultPageWidth    = 84
	DefaultTitle        = "Untitled Document"
	DefaultTheme        = "auto"
	DefaultToolbarWidth = 30
	DefaultBlurGraceMs  = 200
	DefaultFilename     = "document.txt"

	MinPageWidth    = 40
	MaxPageWidth    = 200
	MinToolbarWidth = 25
	MaxToolbarWidth = 80
	MaxBlurGraceMs  = 5000
	MaxHistoryLimit = 10000
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Editor: EditorConfig{
			Placeholder:  DefaultPlaceholder,
			HistoryLimit: DefaultHistoryLimit,
			PageWidth:    DefaultPageWidth,
			InitialTitle: DefaultTitle,
			Typography:   true,
		},
		UI: UIConfig{
			Theme:         DefaultTheme,
			ToolbarWidth:  DefaultToolbarWidth,
			BlurGraceMs:   DefaultBlurGraceMs,
			ShowStatusBar: true,
		},
		Export: ExportConfig{
			Filename: DefaultFilename,
		},
	}
}

// BlurGrace returns the toolbar blur grace period as a duration.
func (c *Config) BlurGrace() time.Duration {
	return time.Duration(c.UI.BlurGraceMs) * time.Millisecond
}

// ExportPath returns the full path the plain text export is written to.
func (c *Config) ExportPath() string {
	return filepath.Join(c.Export.OutputDir, c.Export.Filename)
}

// =============================================================================
// CONFIG PATHS
// =============================================================================

// ConfigDir returns the path to the folio config directory (~/.folio).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".folio"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the path of the debug log.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folio.log"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads configuration from ~/.folio/config.toml, falling back to
// config.json and then to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	loaded := false

	if _, err := os.Stat(tomlPath); err == nil {
		cfg, err = LoadTOML(tomlPath)
		if err != nil {
			return nil, err
		}
		loaded = true
	}

	if !loaded {
		jsonPath, err := ConfigPathJSON()
		if err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				cfg, err = LoadJSON(jsonPath)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file. Missing keys keep their
// default values.
func LoadTOML(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON config %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// LoadFromPath loads configuration from an explicit path, choosing the
// format by extension. Used by the --config flag.
func LoadFromPath(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = LoadJSON(path)
	default:
		cfg, err = LoadTOML(path)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults replaces zero values left behind by sparse files.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Editor.HistoryLimit == 0 {
		c.Editor.HistoryLimit = d.Editor.HistoryLimit
	}
	if c.Editor.PageWidth == 0 {
		c.Editor.PageWidth = d.Editor.PageWidth
	}
	if strings.TrimSpace(c.Editor.InitialTitle) == "" {
		c.Editor.InitialTitle = d.Editor.InitialTitle
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.ToolbarWidth == 0 {
		c.UI.ToolbarWidth = d.UI.ToolbarWidth
	}
	if c.Export.Filename == "" {
		c.Export.Filename = d.Export.Filename
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save saves the configuration to the default TOML location.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return c.SaveTOML(path)
}

// SaveTOML writes the configuration as TOML with a short header.
func (c *Config) SaveTOML(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# folio configuration\n")
	buf.WriteString("# Generated " + time.Now().Format(time.RFC3339) + "\n\n")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// SaveJSON writes the configuration as indented JSON.
func (c *Config) SaveJSON(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, data, 0600)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every problem found by Validate.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validate checks the configuration and returns ValidationErrors when any
// field is out of range.
func (c *Config) Validate() error {
	if errs := c.ValidateErrors(); len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateErrors returns every validation problem, or nil.
func (c *Config) ValidateErrors() ValidationErrors {
	var errs ValidationErrors

	switch c.UI.Theme {
	case "light", "dark", "auto":
	default:
		errs = append(errs, ValidationError{"ui.theme", "must be light, dark or auto"})
	}

	if c.Editor.PageWidth < MinPageWidth || c.Editor.PageWidth > MaxPageWidth {
		errs = append(errs, ValidationError{"editor.page_width",
			fmt.Sprintf("must be between %d and %d", MinPageWidth, MaxPageWidth)})
	}
	if c.Editor.HistoryLimit < 1 || c.Editor.HistoryLimit > MaxHistoryLimit {
		errs = append(errs, ValidationError{"editor.history_limit",
			fmt.Sprintf("must be between 1 and %d", MaxHistoryLimit)})
	}
	if c.UI.ToolbarWidth < MinToolbarWidth || c.UI.ToolbarWidth > MaxToolbarWidth {
		errs = append(errs, ValidationError{"ui.toolbar_width",
			fmt.Sprintf("must be between %d and %d", MinToolbarWidth, MaxToolbarWidth)})
	}
	if c.UI.BlurGraceMs < 0 || c.UI.BlurGraceMs > MaxBlurGraceMs {
		errs = append(errs, ValidationError{"ui.blur_grace_ms",
			fmt.Sprintf("must be between 0 and %d", MaxBlurGraceMs)})
	}
	if c.Export.Filename == "" || strings.ContainsAny(c.Export.Filename, `/\`) {
		errs = append(errs, ValidationError{"export.filename", "must be a bare file name"})
	}

	return errs
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies FOLIO_* environment variables. Invalid numeric
// values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FOLIO_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("FOLIO_PAGE_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Editor.PageWidth = n
		}
	}
	if v := os.Getenv("FOLIO_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("FOLIO_DEBUG"); v != "" {
		c.Debug = parseBool(v)
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// KEY ACCESS
// =============================================================================

// Get returns the value at a dot-notation key such as "ui.theme".
func (c *Config) Get(key string) (interface{}, error) {
	v, err := c.field(key)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Set assigns a value given as a string at a dot-notation key.
func (c *Config) Set(key, value string) error {
	v, err := c.field(key)
	if err != nil {
		return err
	}
	if err := setFieldValue(v, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// field walks the struct by toml tag names.
func (c *Config) field(key string) (reflect.Value, error) {
	parts := strings.Split(normalizeFieldName(key), ".")
	v := reflect.ValueOf(c).Elem()

	for _, part := range parts {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
		found := false
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if tomlName(t.Field(i)) == part {
				v = v.Field(i)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if v.Kind() == reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%s is a section, not a key", key)
	}
	return v, nil
}

func normalizeFieldName(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func tomlName(f reflect.StructField) string {
	tag := f.Tag.Get("toml")
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}

func setFieldValue(v reflect.Value, value string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		v.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", v.Kind())
	}
	return nil
}

// GetAllKeys lists every settable key in sorted order.
func (c *Config) GetAllKeys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + tomlName(f)
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(*c), "")
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
// Load errors fall back to defaults.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalMu.Lock()
		globalConfig = cfg
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// ResetGlobalForTesting clears the process-wide configuration.
func ResetGlobalForTesting() {
	globalMu.Lock()
	globalConfig = nil
	globalOnce = sync.Once{}
	globalMu.Unlock()
}
