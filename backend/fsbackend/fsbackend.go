// Package fsbackend contains an implementation of the backend.Backend
// interface for the filesystem
package fsbackend

import (
	"path/filepath"

	"github.com/ngrigoriev/wyag-go/backend"
	"github.com/ngrigoriev/wyag-go/internal/cache"
	"github.com/ngrigoriev/wyag-go/internal/gitpath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// we make sure the struct implements the interface
var _ backend.Backend = (*Backend)(nil)

// defaultObjectCacheSize is the number of loose objects kept in memory
// to avoid re-reading and re-inflating them from disk
const defaultObjectCacheSize = 256

// Backend is a Backend implementation that uses the filesystem to store data
type Backend struct {
	fs   afero.Fs
	root string

	cache *cache.LRU
}

// New returns a new Backend rooted at dotGitPath, using the real
// filesystem
func New(dotGitPath string) *Backend {
	return NewWithFs(afero.NewOsFs(), dotGitPath)
}

// NewWithFs returns a new Backend rooted at dotGitPath, using the
// given afero filesystem. This is mostly useful for tests.
func NewWithFs(fs afero.Fs, dotGitPath string) *Backend {
	return &Backend{
		fs:    fs,
		root:  dotGitPath,
		cache: cache.NewLRU(defaultObjectCacheSize),
	}
}

// Close releases the resources held by the backend
func (b *Backend) Close() error {
	b.cache.Clear()
	return nil
}

// Init initializes a repository
func (b *Backend) Init() error {
	dirs := []string{
		gitpath.ObjectsPath,
		gitpath.RefsTagsPath,
		gitpath.RefsHeadsPath,
	}
	for _, d := range dirs {
		fullPath := filepath.Join(b.root, d)
		if err := b.fs.MkdirAll(fullPath, 0o750); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", d, err)
		}
	}

	files := []struct {
		path    string
		content []byte
	}{
		{
			path:    gitpath.DescriptionPath,
			content: []byte("Unnamed repository; edit this file 'description' to name the repository.\n"),
		},
	}
	for _, f := range files {
		fullPath := filepath.Join(b.root, f.path)
		if err := afero.WriteFile(b.fs, fullPath, f.content, 0o644); err != nil {
			return xerrors.Errorf("could not create file %s: %w", f.path, err)
		}
	}

	if err := b.setDefaultCfg(); err != nil {
		return xerrors.Errorf("could not set the default config: %w", err)
	}

	return nil
}
