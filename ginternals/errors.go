package ginternals

import "errors"

// Error kinds shared by the object store, the reference store, and
// the index codec. Higher level packages wrap these with xerrors.Errorf
// to add context while keeping errors.Is/As working against these
// sentinels.
var (
	// ErrObjectNotFound is returned when a git object can't be found
	// in the object store
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidOid is returned when trying to build an Oid from
	// data that isn't a well formed 20 bytes sha1 sum
	ErrInvalidOid = errors.New("invalid object id")

	// ErrObjectAmbiguous is returned when a short object id matches
	// more than one object
	ErrObjectAmbiguous = errors.New("ambiguous object id")

	// ErrNoSuchReference is returned when a name fails to resolve to
	// any reference, object, or short id
	ErrNoSuchReference = errors.New("no such reference")

	// ErrInvalidIndexSignature is returned when the index file doesn't
	// start with the expected "DIRC" signature
	ErrInvalidIndexSignature = errors.New("invalid index signature")

	// ErrUnknownIndexVersion is returned when the index file declares
	// a version this implementation doesn't know how to read
	ErrUnknownIndexVersion = errors.New("unknown index version")

	// ErrInvalidIndexChecksum is returned when the trailing checksum
	// of an index file doesn't match its content
	ErrInvalidIndexChecksum = errors.New("invalid index checksum")

	// ErrNothingToCommit is returned when trying to create a commit
	// from an empty index
	ErrNothingToCommit = errors.New("nothing to commit")
)
