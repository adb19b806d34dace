package git

import (
	"strings"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"golang.org/x/xerrors"
)

// isHex reports whether s is made exclusively of lowercase or
// uppercase hex digits
func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Resolve maps a user-supplied name to the list of object ids it could
// refer to. Order of rules:
//  1. an empty/whitespace-only name resolves to nothing
//  2. the literal "HEAD" resolves through the HEAD symbolic reference
//  3. a full 40-char hex string is accepted as-is, lowercased
//     (existence isn't verified here; callers confirm via Object)
//  4. a 4-40 char hex prefix is matched against every object id in
//     the odb
//  5. refs/heads/<name>, refs/tags/<name>, refs/<name>, and <name>
//     are each tried as a reference name
func (r *Repository) Resolve(name string) ([]ginternals.Oid, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}

	if trimmed == ginternals.Head {
		ref, err := r.backend.Reference(ginternals.Head)
		if err != nil {
			if xerrors.Is(err, ginternals.ErrRefNotFound) {
				return nil, nil
			}
			return nil, xerrors.Errorf("could not resolve HEAD: %w", err)
		}
		return []ginternals.Oid{ref.Target()}, nil
	}

	lower := strings.ToLower(trimmed)
	if len(lower) == ginternals.OidSize*2 && isHex(lower) {
		oid, err := ginternals.NewOidFromStr(lower)
		if err == nil {
			return []ginternals.Oid{oid}, nil
		}
	}

	var candidates []ginternals.Oid
	if len(lower) >= 4 && len(lower) < ginternals.OidSize*2 && isHex(lower) {
		err := r.backend.WalkObjectIDs(func(oid ginternals.Oid) error {
			// The prefix match is done against the oid's full hex
			// string (conceptually "prefix" + "filename_tail"), never
			// against a bare directory-entry filename alone.
			if strings.HasPrefix(oid.String(), lower) {
				candidates = append(candidates, oid)
			}
			return nil
		})
		if err != nil {
			return nil, xerrors.Errorf("could not walk objects: %w", err)
		}
	}

	for _, refName := range []string{
		ginternals.LocalBranchFullName(trimmed),
		ginternals.LocalTagFullName(trimmed),
		ginternals.RefFullName(trimmed),
		trimmed,
	} {
		ref, err := r.backend.Reference(refName)
		if err != nil {
			if xerrors.Is(err, ginternals.ErrRefNotFound) || xerrors.Is(err, ginternals.ErrRefNameInvalid) {
				continue
			}
			return nil, xerrors.Errorf("could not resolve %s: %w", refName, err)
		}
		candidates = append(candidates, ref.Target())
	}

	return candidates, nil
}

// Find resolves name to a single object id, optionally requiring (and
// following) a specific kind
//   - zero candidates: ErrNameNotFound
//   - more than one candidate: ErrNameAmbiguous
//   - one candidate, no kind requested: returned as-is
//   - one candidate, kind requested: the object's type is checked; a
//     tag is dereferenced if follow is true; a commit is resolved to
//     its tree if kind is object.TypeTree; any other mismatch fails
//     with ErrObjectTypeMismatch
func (r *Repository) Find(name string, kind object.Type, follow bool) (ginternals.Oid, error) {
	candidates, err := r.Resolve(name)
	if err != nil {
		return ginternals.NullOid, err
	}
	switch len(candidates) {
	case 0:
		return ginternals.NullOid, xerrors.Errorf("%q: %w", name, ErrNameNotFound)
	default:
		if len(candidates) > 1 {
			return ginternals.NullOid, xerrors.Errorf("%q matches %d objects: %w", name, len(candidates), ErrNameAmbiguous)
		}
	}

	oid := candidates[0]
	if kind == 0 {
		return oid, nil
	}

	for {
		o, err := r.backend.Object(oid)
		if err != nil {
			return ginternals.NullOid, xerrors.Errorf("could not read %s: %w", oid, err)
		}
		if o.Type() == kind {
			return oid, nil
		}
		if o.Type() == object.TypeTag && follow {
			tag, err := o.AsTag()
			if err != nil {
				return ginternals.NullOid, xerrors.Errorf("could not parse tag %s: %w", oid, err)
			}
			oid = tag.Target()
			continue
		}
		if o.Type() == object.TypeCommit && kind == object.TypeTree {
			commit, err := o.AsCommit()
			if err != nil {
				return ginternals.NullOid, xerrors.Errorf("could not parse commit %s: %w", oid, err)
			}
			return commit.TreeID(), nil
		}
		return ginternals.NullOid, xerrors.Errorf("%q resolved to a %s, expected a %s: %w", name, o.Type(), kind, ErrObjectTypeMismatch)
	}
}
