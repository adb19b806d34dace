package git

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// fillSystemInfo populates the OS-specific fields of an IndexEntry
// (ctime, device, inode, uid, gid) from a os.FileInfo's Sys() value.
// It is nil on platforms it isn't registered for, and a no-op when
// the filesystem backing the working tree isn't the OS filesystem
// (ex. an afero.MemMapFs used in tests); in both cases ctime keeps the
// mtime it's given by addFile and the other fields stay zero.
var fillSystemInfo func(e *ginternals.IndexEntry, sys interface{})

// readIndex loads the staging index, returning an empty one if the
// index file doesn't exist yet
func (r *Repository) readIndex() (*ginternals.Index, error) {
	p := ginternals.IndexFilePath(r.cfg)
	data, err := afero.ReadFile(r.cfg.FS, p)
	if err != nil {
		if os.IsNotExist(err) {
			return ginternals.NewIndex(), nil
		}
		return nil, xerrors.Errorf("could not read index: %w", err)
	}
	idx, err := ginternals.ReadIndex(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse index: %w", err)
	}
	return idx, nil
}

// writeIndex persists the staging index to disk
func (r *Repository) writeIndex(idx *ginternals.Index) error {
	p := ginternals.IndexFilePath(r.cfg)
	if err := afero.WriteFile(r.cfg.FS, p, ginternals.WriteIndex(idx), 0o644); err != nil {
		return xerrors.Errorf("could not write index: %w", err)
	}
	return nil
}

// Index returns a copy of the current staging index
func (r *Repository) Index() (*ginternals.Index, error) {
	return r.readIndex()
}

// AddParams contains all the optional data used by Add
type AddParams struct {
	// All stages every file under the working tree, ignoring the
	// provided paths
	All bool
}

// Add stages the given paths (relative to the working tree root):
// for every regular file it hashes the content into a blob, stats the
// file, and inserts/replaces the corresponding index entry. Directories
// are walked recursively, skipping any path segment starting with "."
func (r *Repository) Add(paths []string, p AddParams) error {
	if r.wt == nil {
		return xerrors.New("cannot stage files in a bare repository")
	}

	idx, err := r.readIndex()
	if err != nil {
		return err
	}

	targets := paths
	if p.All {
		targets = []string{"."}
	}

	for _, path := range targets {
		if err := r.addPath(idx, path); err != nil {
			return xerrors.Errorf("could not stage %s: %w", path, err)
		}
	}

	return r.writeIndex(idx)
}

// addPath stages a single path, recursing into directories
func (r *Repository) addPath(idx *ginternals.Index, path string) error {
	info, err := r.wt.Stat(path)
	if err != nil {
		return xerrors.Errorf("could not stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return r.addFile(idx, path, info)
	}

	return afero.Walk(r.wt, path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if p != path && strings.HasPrefix(fi.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
			if strings.HasPrefix(seg, ".") {
				return nil
			}
		}
		return r.addFile(idx, p, fi)
	})
}

// addFile hashes the file at path into a blob and upserts its entry
// into idx
func (r *Repository) addFile(idx *ginternals.Index, path string, info os.FileInfo) error {
	content, err := afero.ReadFile(r.wt, path)
	if err != nil {
		return xerrors.Errorf("could not read %s: %w", path, err)
	}

	blob, err := r.NewBlob(content)
	if err != nil {
		return xerrors.Errorf("could not write blob for %s: %w", path, err)
	}

	mode := ginternals.IndexModeFile
	if info.Mode()&0o111 != 0 {
		mode = ginternals.IndexModeExecutable
	}

	e := ginternals.IndexEntry{
		CTime: info.ModTime(),
		MTime: info.ModTime(),
		Mode:  mode,
		Size:  uint32(info.Size()), //nolint:gosec // file sizes fit in a uint32 for the repos this implementation targets
		ID:    blob.ID(),
		Path:  filepath.ToSlash(path),
	}
	if fillSystemInfo != nil {
		fillSystemInfo(&e, info.Sys())
	}

	idx.Add(e)
	return nil
}
