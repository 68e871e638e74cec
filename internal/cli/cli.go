// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Argument parsing and the small commands of folio.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/jeranaias/folio/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdEdit Command = iota
	CmdConfig
	CmdVersion
	CmdHelp
)

func (c Command) String() string {
	switch c {
	case CmdEdit:
		return "edit"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Editor flags
	Theme      string
	Title      string
	Width      int
	ConfigPath string
	Debug      bool

	// Output
	JSON bool

	// config subcommand and its operands
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Force      bool
}

// boolFlags never take a value.
var boolFlags = []string{"debug", "json", "force", "help", "h", "version", "v"}

// stringFlags are the flags that take a value.
var stringFlags = map[string]bool{"theme": true, "title": true, "width": true, "config": true}

const usageText = `folio - a print-layout rich text editor for the terminal

Usage:
  folio [edit] [flags]           Open the editor (default)
  folio config [show]            Show the effective configuration
  folio config path              Print the config file location
  folio config init [--force]    Write a default config file
  folio config keys              List configuration keys
  folio config get <key>         Print one setting
  folio config set <key> <value> Change one setting
  folio version                  Show version information
  folio help                     Show this help

Flags:
  --theme light|dark|auto        Colour theme for this session
  --title <text>                 Initial document title
  --width <cells>                Page width in terminal cells
  --config <path>                Use this config file (.toml or .json)
  --debug                        Log to ~/.folio/folio.log
  --json                         JSON output for config and version

Environment:
  FOLIO_THEME, FOLIO_PAGE_WIDTH, FOLIO_EXPORT_DIR, FOLIO_DEBUG

In the editor:
  /          Slash commands at the start of a line or after a space
  ctrl+k     Command palette
  f1         Keyboard reference
  ctrl+q     Quit
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information, as JSON when jsonMode is set.
func PrintVersion(w io.Writer, jsonMode bool) error {
	if jsonMode {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(w)
	}
	fmt.Fprintf(w, "folio %s\n", Version)
	fmt.Fprintf(w, "  Commit:  %s\n", GitCommit)
	fmt.Fprintf(w, "  Built:   %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
	return nil
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses the arguments after the program name.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)

	args := Args{
		Theme:      strings.ToLower(p.Flag("theme")),
		Title:      p.Flag("title"),
		ConfigPath: p.Flag("config"),
		Debug:      p.BoolFlag("debug"),
		JSON:       p.BoolFlag("json"),
		Force:      p.BoolFlag("force"),
	}

	for _, name := range p.Flags() {
		if stringFlags[name] || contains(boolFlags, name) {
			continue
		}
		return CmdHelp, args, &ValidationError{
			Field:   "flag",
			Value:   "--" + name,
			Reason:  "unknown flag",
			Example: "folio --theme dark",
		}
	}
	for name := range stringFlags {
		if p.BoolFlag(name) {
			return CmdHelp, args, &ValidationError{
				Field:   name,
				Reason:  "flag needs a value",
				Example: "folio --" + name + " <value>",
			}
		}
	}

	if p.HasFlag("width") {
		w, err := p.FlagInt("width")
		if err != nil {
			return CmdHelp, args, err
		}
		args.Width = w
	}
	if args.Theme != "" && !validTheme(args.Theme) {
		return CmdHelp, args, &ValidationError{
			Field:   "theme",
			Value:   args.Theme,
			Reason:  "must be light, dark or auto",
			Example: "folio --theme dark",
		}
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") || p.BoolFlag("v") {
		return CmdVersion, args, nil
	}

	switch cmd := strings.ToLower(p.Positional(0)); cmd {
	case "", "edit":
		return CmdEdit, args, nil

	case "config":
		return parseConfigArgs(args, p.PositionalFrom(1))

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		err := &ValidationError{Field: "command", Value: cmd, Reason: "unknown command"}
		if s := SuggestCommand(cmd); s != "" {
			err.Example = "folio " + s
		}
		return CmdHelp, args, err
	}
}

func parseConfigArgs(args Args, rest []string) (Command, Args, error) {
	args.Subcommand = "show"
	if len(rest) > 0 {
		args.Subcommand = strings.ToLower(rest[0])
	}

	switch args.Subcommand {
	case "show", "path", "init", "keys":
	case "get":
		if len(rest) < 2 {
			return CmdConfig, args, ErrMissingArgument("key", "folio config get ui.theme")
		}
		args.ConfigKey = rest[1]
	case "set":
		if len(rest) < 3 {
			return CmdConfig, args, ErrMissingArgument("value", "folio config set ui.theme dark")
		}
		args.ConfigKey = rest[1]
		args.ConfigVal = strings.Join(rest[2:], " ")
	default:
		err := &ValidationError{Field: "config subcommand", Value: args.Subcommand, Reason: "unknown subcommand"}
		if s := suggestFrom(args.Subcommand, configSubcommands); s != "" {
			err.Example = "folio config " + s
		}
		return CmdConfig, args, err
	}
	return CmdConfig, args, nil
}

func validTheme(t string) bool {
	switch t {
	case "light", "dark", "auto":
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// CONFIG LOADING
// =============================================================================

// LoadConfig loads the configuration named by --config, or the default
// files, and applies the editor flags on top.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := args.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies the editor flags into cfg and validates the result.
func (a Args) Apply(cfg *config.Config) error {
	if a.Theme != "" {
		cfg.UI.Theme = a.Theme
	}
	if a.Width != 0 {
		cfg.Editor.PageWidth = a.Width
	}
	if a.Title != "" {
		cfg.Editor.InitialTitle = a.Title
	}
	if a.Debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}

// ConfigFile returns the config file the CLI reads and writes.
func (a Args) ConfigFile() (string, error) {
	if a.ConfigPath != "" {
		return a.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}
