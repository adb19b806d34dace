package ginternals

import (
	"crypto/sha1" //nolint:gosec // sha1 is what git uses to name objects
	"encoding/hex"

	"golang.org/x/xerrors"
)

// OidSize is the amount of bytes used to store an Oid
const OidSize = 20

// NullOid represents an Oid that has no value. It may be returned
// by methods that are expected to return an Oid, but that failed
// to produce a meaningful one (ex. a Reference that doesn't point
// to anything yet)
var NullOid = Oid{}

// Oid represents the SHA-1 checksum that uniquely identifies a git
// object. It is the content-addressed name used to store and
// retrieve blobs, trees, commits, and tags
type Oid [OidSize]byte

// String returns the 40 characters hex representation of the Oid
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// Bytes returns the 20 raw bytes of the Oid
func (o Oid) Bytes() []byte {
	return o[:]
}

// IsZero returns whether the Oid has never been set
func (o Oid) IsZero() bool {
	return o == NullOid
}

// NewOidFromContent returns the Oid corresponding to the sha1 sum
// of the given content. The content is expected to already contain
// the object's header ("{type} {size}\x00")
func NewOidFromContent(data []byte) Oid {
	return Oid(sha1.Sum(data)) //nolint:gosec // see above
}

// NewOidFromHex returns an Oid from its 20 raw bytes representation
func NewOidFromHex(data []byte) (Oid, error) {
	var o Oid
	if len(data) != OidSize {
		return o, xerrors.Errorf("expected %d bytes, got %d: %w", OidSize, len(data), ErrInvalidOid)
	}
	copy(o[:], data)
	return o, nil
}

// NewOidFromChars returns an Oid from its 40 characters hex
// representation, provided as a byte slice
func NewOidFromChars(data []byte) (Oid, error) {
	return NewOidFromStr(string(data))
}

// NewOidFromStr returns an Oid from its 40 characters hex representation
func NewOidFromStr(s string) (Oid, error) {
	var o Oid
	if len(s) != OidSize*2 {
		return o, xerrors.Errorf("expected a string of %d chars, got %d: %w", OidSize*2, len(s), ErrInvalidOid)
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return o, xerrors.Errorf("invalid hex string %q: %w", s, ErrInvalidOid)
	}
	copy(o[:], decoded)
	return o, nil
}
