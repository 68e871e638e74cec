// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/folio/internal/config"
	"github.com/jeranaias/folio/internal/document"
)

type stubSource struct {
	text     string
	markdown string
}

func (s stubSource) Text() string     { return s.text }
func (s stubSource) Markdown() string { return s.markdown }

// captureOpen replaces the opener for the duration of a test.
func captureOpen(t *testing.T, err error) *[][]string {
	t.Helper()
	var calls [][]string
	orig := startCommand
	startCommand = func(cmd *exec.Cmd) error {
		calls = append(calls, cmd.Args)
		return err
	}
	t.Cleanup(func() { startCommand = orig })
	return &calls
}

// =============================================================================
// TEXT EXPORT
// =============================================================================

func TestExportText_WritesDocumentTxt(t *testing.T) {
	dir := t.TempDir()
	doc := document.New(document.Options{})
	doc.InsertText("Hello")
	doc.InsertNewline()
	doc.InsertText("World")

	path, err := ExportText(doc, &Options{OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "document.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\nWorld", string(data))
}

func TestExportToFile_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{OutputDir: dir}

	_, err := ExportToFile(stubSource{text: "first version"}, NewTextExporter(), opts)
	require.NoError(t, err)
	path, err := ExportToFile(stubSource{text: "second"}, NewTextExporter(), opts)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestExportToFile_FileNameOverrideAndOpen(t *testing.T) {
	calls := captureOpen(t, nil)
	dir := t.TempDir()

	path, err := ExportToFile(stubSource{text: "x"}, NewTextExporter(), &Options{
		OutputDir:       dir,
		FileName:        "notes.txt",
		OpenAfterExport: true,
		OpenCommand:     "viewer --wait",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), path)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"viewer", "--wait", path}, (*calls)[0])
}

func TestExportToFile_OpenFailureIsNotFatal(t *testing.T) {
	captureOpen(t, errors.New("no display"))

	path, err := ExportToFile(stubSource{text: "x"}, NewTextExporter(), &Options{
		OutputDir:       t.TempDir(),
		OpenAfterExport: true,
		OpenCommand:     "viewer",
	})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExportToFile_NilDocument(t *testing.T) {
	_, err := ExportToFile(nil, NewTextExporter(), &Options{OutputDir: t.TempDir()})
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Export.OutputDir = "/srv/out"
	cfg.Export.OpenAfterExport = true
	cfg.Print.OpenCommand = "firefox"

	opts := OptionsFromConfig(cfg, "  ")
	assert.Equal(t, "/srv/out", opts.OutputDir)
	assert.Equal(t, "document.txt", opts.FileName)
	assert.True(t, opts.OpenAfterExport)
	assert.Equal(t, "firefox", opts.OpenCommand)
	assert.Equal(t, config.DefaultTitle, opts.Title)

	assert.Equal(t, "Plans", OptionsFromConfig(cfg, "Plans").Title)
	assert.Equal(t, ".", OptionsFromConfig(config.Default(), "").OutputDir)
}

// =============================================================================
// PRINT
// =============================================================================

func TestPrintExporter_RendersA4Page(t *testing.T) {
	src := stubSource{markdown: "# Report\n\n<u>under</u> and ~~gone~~\n\n| a | b |\n| --- | --- |\n| 1 | 2 |"}

	out, err := NewPrintExporter("Q3 & Plans").Export(src)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<title>Q3 &amp; Plans</title>")
	assert.Contains(t, html, "size: A4;")
	assert.Contains(t, html, "<h1>Report</h1>")
	assert.Contains(t, html, "<u>under</u>")
	assert.Contains(t, html, "<del>gone</del>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "window.print()")
}

func TestPrintExporter_DefaultTitle(t *testing.T) {
	e := NewPrintExporter("")
	assert.Equal(t, "untitled-document.html", e.FileName())
	assert.Equal(t, "text/html", e.MimeType())
}

func TestPrint_WritesTempFileAndOpens(t *testing.T) {
	calls := captureOpen(t, nil)
	doc := document.New(document.Options{})
	doc.InsertText("Body text")

	path, err := Print(doc, &Options{Title: "Memo", OpenCommand: "browser"})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>Body text</p>")
	assert.Contains(t, filepath.Base(path), "folio-memo-")

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"browser", path}, (*calls)[0])
}

func TestPrint_OpenFailure(t *testing.T) {
	captureOpen(t, errors.New("no browser"))

	path, err := Print(stubSource{markdown: "text"}, &Options{OpenCommand: "browser"})
	require.Error(t, err)
	t.Cleanup(func() { os.Remove(path) })
	assert.FileExists(t, path)
}

func TestFreeze_DetachesFromDocument(t *testing.T) {
	doc := document.New(document.Options{})
	doc.InsertText("before")

	snap := Freeze(doc)
	doc.InsertText(" after")

	assert.Equal(t, "before", snap.Text())
	assert.Equal(t, "before", snap.Markdown())
}
