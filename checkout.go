package git

import (
	"os"
	"path/filepath"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Checkout materializes the tree identified by treeOid into dest on
// fs. dest must already exist, be a directory, and be empty.
func (r *Repository) Checkout(treeOid ginternals.Oid, fs afero.Fs, dest string) error {
	info, err := fs.Stat(dest)
	if err != nil {
		return xerrors.Errorf("could not stat %s: %w", dest, err)
	}
	if !info.IsDir() {
		return xerrors.Errorf("%s: %w", dest, ErrNotADirectory)
	}
	entries, err := afero.ReadDir(fs, dest)
	if err != nil {
		return xerrors.Errorf("could not list %s: %w", dest, err)
	}
	if len(entries) != 0 {
		return xerrors.Errorf("%s: %w", dest, ErrDirectoryNotEmpty)
	}

	return r.checkoutTree(treeOid, fs, dest)
}

// checkoutTree writes every leaf of the tree identified by treeOid
// into dest, recursing into subtrees.
//
// For each leaf we attempt to parse it as a tree; on success we mkdir
// and recurse, on a type mismatch (ErrObjectInvalid) we parse it as a
// blob instead and write its content raw. This mirrors how the object
// store itself tells a tree from a blob apart: by trying, not by
// trusting the entry's mode bits.
func (r *Repository) checkoutTree(treeOid ginternals.Oid, fs afero.Fs, dest string) error {
	treeObj, err := r.backend.Object(treeOid)
	if err != nil {
		return xerrors.Errorf("could not read tree %s: %w", treeOid, err)
	}
	tree, err := treeObj.AsTree()
	if err != nil {
		return xerrors.Errorf("could not parse tree %s: %w", treeOid, err)
	}

	for _, leaf := range tree.Entries() {
		leafPath := filepath.Join(dest, leaf.Path)

		leafObj, err := r.backend.Object(leaf.ID)
		if err != nil {
			return xerrors.Errorf("could not read %s: %w", leaf.Path, err)
		}

		if _, err := leafObj.AsTree(); err == nil {
			if err := fs.MkdirAll(leafPath, 0o755); err != nil {
				return xerrors.Errorf("could not create %s: %w", leafPath, err)
			}
			if err := r.checkoutTree(leaf.ID, fs, leafPath); err != nil {
				return err
			}
			continue
		} else if !xerrors.Is(err, object.ErrObjectInvalid) {
			return xerrors.Errorf("could not parse %s: %w", leaf.Path, err)
		}

		blob := leafObj.AsBlob()
		perm := os.FileMode(0o644)
		if leaf.Mode == object.ModeExecutable {
			perm = 0o755
		}
		if err := afero.WriteFile(fs, leafPath, blob.Bytes(), perm); err != nil {
			return xerrors.Errorf("could not write %s: %w", leafPath, err)
		}
	}

	return nil
}
