// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Source is the read side of a document that exporters need.
type Source interface {
	Text() string
	Markdown() string
}

// Snapshot is a frozen copy of a document's text projections. Exports that
// run off the UI goroutine work from a snapshot.
type Snapshot struct {
	PlainText    string
	MarkdownText string
}

// Freeze captures the current text of doc.
func Freeze(doc Source) Snapshot {
	return Snapshot{PlainText: doc.Text(), MarkdownText: doc.Markdown()}
}

// Text returns the frozen plain text.
func (s Snapshot) Text() string { return s.PlainText }

// Markdown returns the frozen Markdown.
func (s Snapshot) Markdown() string { return s.MarkdownText }

// Exporter defines the interface for document exporters.
type Exporter interface {
	// Export converts a document to the target format and returns the content.
	Export(doc Source) ([]byte, error)

	// FileName returns the default output file name (e.g., "document.txt").
	FileName() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// FileName overrides the exporter's default file name.
	FileName string

	// Title of the document, used by the print view.
	Title string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// OpenCommand replaces the platform opener when set.
	OpenCommand string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		Title:     config.DefaultTitle,
	}
}

// OptionsFromConfig builds options from the [export] and [print] sections.
func OptionsFromConfig(cfg *config.Config, title string) *Options {
	opts := DefaultOptions()
	if cfg.Export.OutputDir != "" {
		opts.OutputDir = cfg.Export.OutputDir
	}
	opts.FileName = cfg.Export.Filename
	opts.OpenAfterExport = cfg.Export.OpenAfterExport
	opts.OpenCommand = cfg.Print.OpenCommand
	if strings.TrimSpace(title) != "" {
		opts.Title = title
	}
	return opts
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a document to a file using the specified exporter.
// Returns the output file path or an error. An existing file is replaced.
func ExportToFile(doc Source, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if doc == nil {
		return "", fmt.Errorf("export failed: no document")
	}

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	name := opts.FileName
	if name == "" {
		name = exporter.FileName()
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	outputPath, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(opts.OpenCommand, outputPath); err != nil {
			// Non-fatal - file was still created successfully
			log.Printf("export: could not open %s: %v", outputPath, err)
		}
	}

	return outputPath, nil
}

// ExportText writes the plain text projection, document.txt by default.
func ExportText(doc Source, opts *Options) (string, error) {
	return ExportToFile(doc, NewTextExporter(), opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// startCommand runs an opener without waiting for it.
var startCommand = func(cmd *exec.Cmd) error {
	return cmd.Start()
}

// openFile opens a file with command, or the default application for the OS
// when command is empty.
func openFile(command, path string) error {
	var cmd *exec.Cmd

	if fields := strings.Fields(command); len(fields) > 0 {
		args := append(fields[1:], path)
		cmd = exec.Command(fields[0], args...)
		return startCommand(cmd)
	}

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return startCommand(cmd)
}
