package git

import (
	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"golang.org/x/xerrors"
)

// CreateCommit stages the current index into a new commit, and
// advances the branch HEAD currently points to (HEAD is resolved one
// level to find that branch; the branch name is never hardcoded).
//
// Fails with ErrNothingToCommit if the index is empty. The new commit
// becomes a child of the branch's current tip, or is parentless if the
// branch doesn't exist yet (the repository's first commit).
func (r *Repository) CreateCommit(author, committer object.Signature, message string) (ginternals.Oid, error) {
	idx, err := r.readIndex()
	if err != nil {
		return ginternals.NullOid, err
	}
	if len(idx.Entries) == 0 {
		return ginternals.NullOid, ginternals.ErrNothingToCommit
	}

	branch, detached, err := r.headTarget()
	if err != nil {
		return ginternals.NullOid, err
	}
	if detached {
		return ginternals.NullOid, xerrors.New("cannot commit: HEAD is detached")
	}

	var parents []ginternals.Oid
	parentRef, err := r.backend.Reference(branch)
	switch {
	case err == nil:
		parents = append(parents, parentRef.Target())
	case xerrors.Is(err, ginternals.ErrRefNotFound):
		// unborn branch: this will be the first commit
	default:
		return ginternals.NullOid, xerrors.Errorf("could not resolve %s: %w", branch, err)
	}

	treeID, err := r.writeTreeFromIndex(idx)
	if err != nil {
		return ginternals.NullOid, err
	}

	commit := object.NewCommit(treeID, author, &object.CommitOptions{
		Message:   message,
		Committer: committer,
		ParentsID: parents,
	})
	commitID, err := r.backend.WriteObject(commit.ToObject())
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write commit: %w", err)
	}

	if err := r.backend.WriteReference(ginternals.NewReference(branch, commitID)); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not advance %s: %w", branch, err)
	}

	return commitID, nil
}

// Commit returns the commit matching the given Oid
func (r *Repository) Commit(oid ginternals.Oid) (*object.Commit, error) {
	o, err := r.backend.Object(oid)
	if err != nil {
		return nil, xerrors.Errorf("could not read commit %s: %w", oid, err)
	}
	if o.Type() != object.TypeCommit {
		return nil, xerrors.Errorf("%s is not a commit: %w", oid, ErrObjectTypeMismatch)
	}
	return o.AsCommit()
}
