package git

import (
	"strings"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"golang.org/x/xerrors"
)

// WriteTree builds a single-level tree from the current index and
// writes it to the object store.
//
// This core only supports flat trees: an index entry whose path
// contains a "/" is rejected with ErrNestedTreePath rather than
// silently grouped into a subtree. Recursive tree construction (group
// entries by their top directory, write each subtree bottom-up) is a
// natural extension but out of scope here.
func (r *Repository) WriteTree() (ginternals.Oid, error) {
	idx, err := r.readIndex()
	if err != nil {
		return ginternals.NullOid, err
	}
	return r.writeTreeFromIndex(idx)
}

func (r *Repository) writeTreeFromIndex(idx *ginternals.Index) (ginternals.Oid, error) {
	entries := make([]object.TreeEntry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		if strings.Contains(e.Path, "/") {
			return ginternals.NullOid, xerrors.Errorf("%q: %w", e.Path, ErrNestedTreePath)
		}

		mode := object.ModeFile
		switch e.Mode {
		case ginternals.IndexModeExecutable:
			mode = object.ModeExecutable
		case ginternals.IndexModeSymlink:
			mode = object.ModeSymLink
		}

		entries = append(entries, object.TreeEntry{
			Path: e.Path,
			ID:   e.ID,
			Mode: mode,
		})
	}

	tree := object.NewTree(entries)
	oid, err := r.backend.WriteObject(tree.ToObject())
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write tree: %w", err)
	}
	return oid, nil
}
