// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the folio command line and runs the commands that do
// not need the editor.
//
// # Key Types
//
//   - Command: the command to run (edit, config, version, help)
//   - Args: flags and operands, applied to a config.Config by Apply
//   - ArgParser: flag and positional splitting shared by all commands
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//	switch cmd {
//	case cli.CmdConfig:
//	    err = cli.HandleConfig(args, os.Stdout)
//	}
//
// The config and version commands accept --json for scripting.
package cli
