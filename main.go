// folio - a print-layout rich text editor for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio/internal/cli"
	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/ui/editor"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		if cmd == cli.CmdHelp {
			fmt.Fprintln(os.Stderr, "Run 'folio help' for usage.")
		}
		os.Exit(cli.GetExitCode(err))
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
	case cli.CmdVersion:
		err = cli.PrintVersion(os.Stdout, args.JSON)
	case cli.CmdConfig:
		err = cli.HandleConfig(args, os.Stdout)
	default:
		err = runEditor(args)
	}

	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

// runEditor starts the editor and blocks until it exits.
func runEditor(args cli.Args) error {
	if err := cli.RequiresTTY("start the editor"); err != nil {
		return err
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	closeLog, err := setupLogging(cfg.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	m := editor.New(editor.Options{
		Config:  cfg,
		Title:   args.Title,
		Watcher: startWatcher(args),
	})
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running folio: %w", err)
	}
	return nil
}

// setupLogging sends the standard logger to ~/.folio/folio.log in debug
// mode. Otherwise logs are dropped so they cannot draw over the editor.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}
	path, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "folio")
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.Printf("folio %s starting", Version)
	return func() { f.Close() }, nil
}

// startWatcher watches the config file for changes. Failing to watch only
// disables live reload.
func startWatcher(args cli.Args) *config.Watcher {
	path, err := args.ConfigFile()
	if err != nil {
		log.Printf("config: no watch: %v", err)
		return nil
	}
	if args.ConfigPath == "" {
		if err := config.EnsureConfigDir(); err != nil {
			log.Printf("config: no watch: %v", err)
			return nil
		}
	}
	w, err := config.NewWatcher(path, config.DefaultDebounce)
	if err != nil {
		log.Printf("config: no watch: %v", err)
		return nil
	}
	if err := w.Watch(); err != nil {
		log.Printf("config: no watch: %v", err)
		w.Close()
		return nil
	}
	return w
}
