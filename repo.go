// Package git implements the plumbing layer of a content-addressed
// version control system: an object database, a reference store, a
// staging index, and the pipelines (resolve, add, write-tree, commit,
// checkout) built on top of them.
package git

import (
	"bytes"

	"github.com/ngrigoriev/wyag-go/backend"
	"github.com/ngrigoriev/wyag-go/backend/fsbackend"
	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/config"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// Repository represents a git repository: the .git directory (object
// database, refs, config) plus, unless the repository is bare, the
// working tree that's checked out alongside it.
type Repository struct {
	cfg     *config.Config
	backend backend.Backend
	wt      afero.Fs
}

// InitParams contains all the optional data used to initialize a
// repository
type InitParams struct {
	// InitialBranchName is the branch HEAD will point to. Defaults to
	// ginternals.Master
	InitialBranchName string
	// GitBackend overrides the backend used to store refs and objects.
	// Defaults to a fsbackend rooted at cfg.GitDirPath
	GitBackend backend.Backend
	// WorkTreeFS overrides the filesystem used for the working tree.
	// Defaults to the OS filesystem. Unused if cfg describes a bare
	// repository
	WorkTreeFS afero.Fs
}

// InitRepository creates a new repository: the backend is initialized
// (objects/, refs/heads, refs/tags, description, config) and HEAD is
// set to a symbolic reference pointing at the initial branch
func InitRepository(cfg *config.Config, p InitParams) (*Repository, error) {
	r := &Repository{cfg: cfg, backend: p.GitBackend}
	if r.backend == nil {
		r.backend = fsbackend.New(cfg.GitDirPath)
	}
	if cfg.WorkTreePath != "" {
		wtFS := p.WorkTreeFS
		if wtFS == nil {
			wtFS = afero.NewOsFs()
		}
		r.wt = afero.NewBasePathFs(wtFS, cfg.WorkTreePath)
	}

	if err := r.backend.Init(); err != nil {
		return nil, xerrors.Errorf("could not initialize repository: %w", err)
	}

	branch := p.InitialBranchName
	if branch == "" {
		branch = ginternals.Master
	}
	head := ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName(branch))
	if err := r.backend.WriteReferenceSafe(head); err != nil {
		if xerrors.Is(err, ginternals.ErrRefExists) {
			return nil, ErrRepositoryExists
		}
		return nil, xerrors.Errorf("could not write HEAD: %w", err)
	}

	return r, nil
}

// OpenParams contains all the optional data used to open a repository
type OpenParams struct {
	// GitBackend overrides the backend used to store refs and objects.
	// Defaults to a fsbackend rooted at cfg.GitDirPath
	GitBackend backend.Backend
	// WorkTreeFS overrides the filesystem used for the working tree.
	// Defaults to the OS filesystem. Unused if cfg describes a bare
	// repository
	WorkTreeFS afero.Fs
}

// OpenRepository loads an existing repository by validating its HEAD
// reference and repository format version
func OpenRepository(cfg *config.Config, p OpenParams) (*Repository, error) {
	r := &Repository{cfg: cfg, backend: p.GitBackend}
	if r.backend == nil {
		r.backend = fsbackend.New(cfg.GitDirPath)
	}
	if cfg.WorkTreePath != "" {
		wtFS := p.WorkTreeFS
		if wtFS == nil {
			wtFS = afero.NewOsFs()
		}
		r.wt = afero.NewBasePathFs(wtFS, cfg.WorkTreePath)
	}

	// We can't easily check for the existence of the git directory
	// itself (the backend may not be filesystem-based), so instead we
	// make sure HEAD exists, since every valid repository has one. HEAD
	// isn't followed: in a fresh repository it points at a branch that
	// has no commit yet
	if _, err := r.backend.RawReference(ginternals.Head); err != nil {
		return nil, ErrRepositoryNotExist
	}

	version, err := r.configInt("core", "repositoryformatversion", 0)
	if err != nil {
		return nil, xerrors.Errorf("could not read core.repositoryformatversion: %w", err)
	}
	if version != 0 {
		return nil, ErrUnsupportedRepositoryFormat
	}

	return r, nil
}

// configInt is a small helper reading an integer key straight out of
// the repository's local config file, falling back to def if unset
func (r *Repository) configInt(section, key string, def int) (int, error) {
	f, err := r.cfg.FS.Open(r.cfg.LocalConfig)
	if err != nil {
		return def, nil
	}
	defer f.Close() //nolint:errcheck // read-only, nothing to recover from a close failure

	cfg, err := ini.Load(f)
	if err != nil {
		return def, xerrors.Errorf("could not parse %s: %w", r.cfg.LocalConfig, err)
	}
	k := cfg.Section(section).Key(key)
	if k.String() == "" {
		return def, nil
	}
	return k.Int()
}

// Close releases the resources held by the repository's backend
func (r *Repository) Close() error {
	return r.backend.Close()
}

// IsBare returns whether the repository has no working tree
func (r *Repository) IsBare() bool {
	return r.wt == nil
}

// Config returns the repository's resolved configuration
func (r *Repository) Config() *config.Config {
	return r.cfg
}

// Backend returns the underlying object/reference store
func (r *Repository) Backend() backend.Backend {
	return r.backend
}

// WorkTree returns the filesystem backing the working tree, or nil if
// the repository is bare
func (r *Repository) WorkTree() afero.Fs {
	return r.wt
}

// Object returns the object matching the given Oid
func (r *Repository) Object(oid ginternals.Oid) (*object.Object, error) {
	return r.backend.Object(oid)
}

// HasObject returns whether an object exists in the odb
func (r *Repository) HasObject(oid ginternals.Oid) (bool, error) {
	return r.backend.HasObject(oid)
}

// WriteObject persists an object to the odb and returns its Oid
func (r *Repository) WriteObject(o *object.Object) (ginternals.Oid, error) {
	return r.backend.WriteObject(o)
}

// NewBlob persists the given content as a blob and returns it
func (r *Repository) NewBlob(content []byte) (*object.Blob, error) {
	o := object.New(object.TypeBlob, content)
	if _, err := r.backend.WriteObject(o); err != nil {
		return nil, xerrors.Errorf("could not write blob: %w", err)
	}
	return object.NewBlob(o), nil
}

// Reference returns the stored reference matching the given name
func (r *Repository) Reference(name string) (*ginternals.Reference, error) {
	return r.backend.Reference(name)
}

// NewReference creates (or overwrites) a reference pointing at target
func (r *Repository) NewReference(name string, target ginternals.Oid) (*ginternals.Reference, error) {
	ref := ginternals.NewReference(name, target)
	if err := r.backend.WriteReference(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// NewSymbolicReference creates (or overwrites) a reference pointing at
// another reference
func (r *Repository) NewSymbolicReference(name, target string) (*ginternals.Reference, error) {
	ref := ginternals.NewSymbolicReference(name, target)
	if err := r.backend.WriteReference(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// WalkReferences runs f on every reference known to the repository
func (r *Repository) WalkReferences(f backend.RefWalkFunc) error {
	return r.backend.WalkReferences(f)
}

// WalkObjectIDs runs f on every loose object known to the repository
func (r *Repository) WalkObjectIDs(f backend.ObjectIDWalkFunc) error {
	return r.backend.WalkObjectIDs(f)
}

// headTarget returns the full name of the branch HEAD currently points
// to (ex. "refs/heads/master"), without requiring that branch to exist
// yet (an unborn branch, before the first commit, has no ref file on
// disk). A detached HEAD (a direct Oid reference) has no branch to
// return to, which callers (ex. CreateCommit) need to special-case.
func (r *Repository) headTarget() (branch string, detached bool, err error) {
	data, err := r.backend.RawReference(ginternals.Head)
	if err != nil {
		return "", false, xerrors.Errorf("could not read HEAD: %w", err)
	}
	data = bytes.TrimSpace(data)
	const symPrefix = "ref: "
	if !bytes.HasPrefix(data, []byte(symPrefix)) {
		return "", true, nil
	}
	return string(data[len(symPrefix):]), false, nil
}
