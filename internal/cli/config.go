// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The "folio config" command.
//
// Subcommands:
//
//	show (default)      Display the effective configuration
//	path                Print the config file location
//	init [--force]      Write a default config file
//	keys                List every configuration key
//	get <key>           Print one setting
//	set <key> <value>   Change one setting and save the file
//
// Examples:
//
//	folio config set ui.theme dark
//	folio config set editor.page_width 96
//	folio config set export.output_dir ~/Documents
//	folio config get ui.toolbar_width --json
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/folio/internal/config"
)

// HandleConfig runs a config subcommand, writing to w.
func HandleConfig(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args, w)
	case "path":
		return configPath(args, w)
	case "init":
		return configInit(args, w)
	case "keys":
		return configKeys(args, w)
	case "get":
		return configGet(args, w)
	case "set":
		return configSet(args, w)
	}
	return &ValidationError{Field: "config subcommand", Value: args.Subcommand, Reason: "unknown subcommand"}
}

func configShow(args Args, w io.Writer) error {
	path, err := args.ConfigFile()
	if err != nil {
		return err
	}
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	exists := fileExists(path)

	if args.JSON {
		return NewJSONResponse("config show", ConfigData{Path: path, Exists: exists, Config: cfg}).Print(w)
	}

	fmt.Fprintln(w, RenderConditional(TitleStyle, "folio configuration"))
	note := ""
	if !exists {
		note = " (not created; showing defaults)"
	}
	fmt.Fprintln(w, RenderLabel("File")+RenderConditional(DimStyle, path+note))
	fmt.Fprintln(w, RenderSeparator())
	fmt.Fprint(w, cfg.String())
	return nil
}

func configPath(args Args, w io.Writer) error {
	path, err := args.ConfigFile()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, path)
	return nil
}

func configInit(args Args, w io.Writer) error {
	path, err := args.ConfigFile()
	if err != nil {
		return err
	}
	if fileExists(path) && !args.Force {
		return &CommandError{
			Command: "config",
			Action:  "init",
			Reason:  path + " already exists (use --force to overwrite)",
		}
	}
	if err := save(config.Default(), path); err != nil {
		return &CommandError{Command: "config", Action: "init", Reason: "could not write config", Err: err}
	}
	fmt.Fprintf(w, "%s wrote %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
	return nil
}

func configKeys(args Args, w io.Writer) error {
	keys := config.Default().GetAllKeys()
	if args.JSON {
		return NewJSONResponse("config keys", keys).Print(w)
	}
	fmt.Fprintln(w, strings.Join(keys, "\n"))
	return nil
}

func configGet(args Args, w io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	v, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return &NotFoundError{Resource: "config key", ID: args.ConfigKey}
	}
	if args.JSON {
		return NewJSONResponse("config get", ConfigValueData{Key: args.ConfigKey, Value: v}).Print(w)
	}
	fmt.Fprintln(w, v)
	return nil
}

// configSet edits the file itself, so environment overrides and flags are
// not written back.
func configSet(args Args, w io.Writer) error {
	path, err := args.ConfigFile()
	if err != nil {
		return err
	}
	cfg, err := loadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		if _, getErr := cfg.Get(args.ConfigKey); getErr != nil {
			return &NotFoundError{Resource: "config key", ID: args.ConfigKey}
		}
		return &ValidationError{Field: args.ConfigKey, Value: args.ConfigVal, Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := save(cfg, path); err != nil {
		return &CommandError{Command: "config", Action: "set", Reason: "could not write config", Err: err}
	}

	if args.JSON {
		v, _ := cfg.Get(args.ConfigKey)
		return NewJSONResponse("config set", ConfigValueData{Key: args.ConfigKey, Value: v}).Print(w)
	}
	fmt.Fprintf(w, "%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"), args.ConfigKey, args.ConfigVal)
	return nil
}

// loadFile reads path without environment overrides, or returns the
// defaults when it does not exist yet.
func loadFile(path string) (*config.Config, error) {
	if !fileExists(path) {
		return config.Default(), nil
	}
	if isJSON(path) {
		return config.LoadJSON(path)
	}
	return config.LoadTOML(path)
}

func save(cfg *config.Config, path string) error {
	if isJSON(path) {
		return cfg.SaveJSON(path)
	}
	return cfg.SaveTOML(path)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
