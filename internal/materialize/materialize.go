// Package materialize writes rendered files to a target directory.
package materialize

import (
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/output"
	"github.com/svcgen/cli/internal/templates"
)

const dirMode os.FileMode = 0o755

const partialHint = "files written before the failure were left in place; remove the directory and retry"

// Materializer writes a rendered tree under Root on Fs.
type Materializer struct {
	fs    afero.Fs
	root  string
	force bool
}

// Result describes what Write put on disk.
type Result struct {
	Root  string
	Files []string
	Dirs  []string
}

// New creates a materializer rooted at root. A nil fs uses the OS filesystem.
func New(fs afero.Fs, root string, force bool) *Materializer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Materializer{fs: fs, root: root, force: force}
}

// Root returns the target directory.
func (m *Materializer) Root() string {
	return m.root
}

// CheckTarget validates the target directory. A missing directory is fine;
// it is created by Write.
func (m *Materializer) CheckTarget() error {
	info, err := m.fs.Stat(m.root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return oerrors.NewIOError("checking target directory", m.root, "", err)
	}

	if !info.IsDir() {
		return oerrors.NewIOError("target exists and is not a directory", m.root,
			"choose another name or parent directory with --dir", nil)
	}

	empty, err := afero.IsEmpty(m.fs, m.root)
	if err != nil {
		return oerrors.NewIOError("reading target directory", m.root, "", err)
	}

	if !empty && !m.force {
		return oerrors.NewIOError("target directory is not empty", m.root,
			"use --force to write into a non-empty directory", nil)
	}

	if !empty {
		output.Warn("writing into non-empty directory", "path", m.root)
	}

	return nil
}

// Write creates parent directories, writes each file and applies its mode.
// Files are written in the given order.
func (m *Materializer) Write(files []templates.RenderedFile) (*Result, error) {
	if err := m.fs.MkdirAll(m.root, dirMode); err != nil {
		return nil, oerrors.NewIOError("creating target directory", m.root, "", err)
	}

	res := &Result{Root: m.root}
	seenDirs := make(map[string]bool)

	for _, f := range files {
		dir := path.Dir(f.Path)
		if dir != "." && !seenDirs[dir] {
			target := filepath.Join(m.root, filepath.FromSlash(dir))
			if err := m.fs.MkdirAll(target, dirMode); err != nil {
				return res, oerrors.NewIOError("creating directory", target, partialHint, err)
			}
			for d := dir; d != "." && !seenDirs[d]; d = path.Dir(d) {
				seenDirs[d] = true
				res.Dirs = append(res.Dirs, d)
			}
		}

		target := filepath.Join(m.root, filepath.FromSlash(f.Path))
		mode := f.Mode
		if mode == 0 {
			mode = templates.DefaultMode
		}

		if err := afero.WriteFile(m.fs, target, f.Content, mode); err != nil {
			return res, oerrors.NewIOError("writing file", target, partialHint, err)
		}
		// WriteFile leaves the mode of an existing file unchanged.
		if err := m.fs.Chmod(target, mode); err != nil {
			return res, oerrors.NewIOError("setting file mode", target, partialHint, err)
		}

		output.Debug("created file", "path", f.Path, "mode", mode)
		res.Files = append(res.Files, f.Path)
	}

	sort.Strings(res.Dirs)
	return res, nil
}
