package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/generator"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// Writer lands one generated file map on disk. It refuses to touch a
// directory it cannot recognize as a previous generation, so a mistyped
// output path never wipes hand-written code.
type Writer struct {
	diag *utils.DiagnosticSystem
}

// NewWriter creates a writer reporting through diag
func NewWriter(diag *utils.DiagnosticSystem) *Writer {
	return &Writer{diag: diag}
}

// WriteTree replaces the contents of dir with files. dir may be missing
// (it is created), empty, or a recognized previous generation (it is torn
// down first). Anything else aborts before a single byte is written.
func (w *Writer) WriteTree(dir string, files map[string]string) error {
	state, err := inspectOutputDir(dir)
	if err != nil {
		return err
	}

	switch state {
	case outputMissing:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(errors.FileSystemErrorCode, err,
				"output directory %s could not be created", dir)
		}
	case outputGenerated:
		w.diag.Verbose("Tearing down previous generation in %s", dir)
		if err := tearDown(dir); err != nil {
			return err
		}
	case outputEmpty:
		// nothing to clear
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(errors.FileSystemErrorCode, err,
				"directory for %s could not be created", target)
		}
		if err := os.WriteFile(target, []byte(files[name]), 0o644); err != nil {
			return errors.Wrapf(errors.FileSystemErrorCode, err,
				"generated file %s could not be written", target)
		}
		w.diag.Debug("Wrote %s", target)
	}

	w.diag.Verbose("Wrote %d files to %s", len(names), dir)
	return nil
}

type outputState int

const (
	outputMissing outputState = iota
	outputEmpty
	outputGenerated
)

// inspectOutputDir classifies dir as missing, empty, or a recognized
// previous generation. An unrecognized non-empty directory is an error.
func inspectOutputDir(dir string) (outputState, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return outputMissing, nil
	}
	if err != nil {
		return 0, errors.Wrapf(errors.FileSystemErrorCode, err,
			"output directory %s could not be inspected", dir)
	}
	if !info.IsDir() {
		return 0, errors.Newf(errors.FileSystemErrorCode,
			"output path %s exists and is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(errors.FileSystemErrorCode, err,
			"output directory %s could not be listed", dir)
	}
	if len(entries) == 0 {
		return outputEmpty, nil
	}
	if isGeneratedTree(dir) {
		return outputGenerated, nil
	}
	return 0, errors.Newf(errors.FileSystemErrorCode,
		"output directory %s is not empty and was not produced by a previous run", dir).
		WithSuggestions(
			"point the output at an empty or previously generated directory",
			"move the existing files away if the path is correct",
		)
}

// isGeneratedTree reports whether dir holds a previous generation: an
// aggregation entry file opening with the generated header.
func isGeneratedTree(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, generator.EntryFileName))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "Generated by sdkwire")
}

// tearDown removes every entry of a recognized generation directory while
// keeping the directory itself.
func tearDown(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(errors.FileSystemErrorCode, err,
			"output directory %s could not be listed", dir)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return errors.Wrapf(errors.FileSystemErrorCode, err,
				"previous generation entry %s could not be removed", entry.Name())
		}
	}
	return nil
}
