// Package shaderdir moves shader entries between a package archive and loose
// .vso/.pso object files in a directory. All operations take an explicit base
// path; the working directory is never consulted or changed.
package shaderdir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tes4tools/sdpack/internal/sdp"
)

// DefaultExtensions is the loose-file allow-list: vertex and pixel shader
// object files.
var DefaultExtensions = []string{".vso", ".pso"}

// ProgressCallback is called to report per-entry progress.
type ProgressCallback func(current int, total int, description string)

// Scan reads every loose shader file directly inside dir into a new archive.
// Matching against exts is case-insensitive; subdirectories are not entered.
// Entries are appended in lexical filename order so repeated packs of the
// same directory produce identical archives.
func Scan(dir string, exts []string) (*sdp.Archive, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	a := sdp.NewArchive()
	for _, d := range listing {
		if d.IsDir() || !matchesExtension(d.Name(), exts) {
			continue
		}

		e, err := ReadLooseFile(filepath.Join(dir, d.Name()), d.Name())
		if err != nil {
			return nil, err
		}
		a.Append(e)
		slog.Debug("Collected loose shader", "name", e.Name, "size", len(e.Data))
	}

	return a, nil
}

// ReadLooseFile reads one shader object file as an entry. The entry name is
// the file's base name unless a non-empty override is given.
func ReadLooseFile(path, name string) (*sdp.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading loose shader %s: %w", path, err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return &sdp.Entry{Name: name, Data: data}, nil
}

// Unpack writes every entry of the archive to dir as a loose file, creating
// the directory if absent. Entries sharing a name overwrite each other in
// archive order: the last writer wins. Entry names that would resolve outside
// dir are rejected.
func Unpack(a *sdp.Archive, dir string, progress ProgressCallback) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	total := a.Len()
	for i, e := range a.Entries() {
		path, err := looseFilePath(dir, e.Name)
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, e.Data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		if progress != nil {
			progress(i+1, total, e.Name)
		}
		slog.Debug("Unpacked shader", "name", e.Name, "output", path)
	}

	return nil
}

// looseFilePath joins an entry name onto the output directory, refusing names
// that climb out of it. Package files from the wild are untrusted input.
func looseFilePath(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("entry has an empty name")
	}

	path := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry name %q escapes the output directory", name)
	}
	return path, nil
}

func matchesExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(exts, ext)
}
