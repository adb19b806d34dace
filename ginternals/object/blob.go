package object

import "github.com/ngrigoriev/wyag-go/ginternals"

// Blob represents a blob object: the raw, uninterpreted content of a file
type Blob struct {
	rawObject *Object
}

// NewBlob returns a new Blob object from a git Object
func NewBlob(o *Object) *Blob {
	return &Blob{
		rawObject: o,
	}
}

// NewBlobFromContent returns a new, not-yet-persisted, Blob wrapping
// the given file content
func NewBlobFromContent(content []byte) *Blob {
	return &Blob{
		rawObject: New(TypeBlob, content),
	}
}

// IsPersisted returns whether the blob has a non-zero ID. The ID is
// computed when the underlying object is built, so this is true even
// for a blob that hasn't been written to the odb.
func (b *Blob) IsPersisted() bool {
	return !b.rawObject.ID().IsZero()
}

// ID returns the blob's ID
func (b *Blob) ID() ginternals.Oid {
	return b.rawObject.ID()
}

// Bytes returns the blob's contents
func (b *Blob) Bytes() []byte {
	return b.rawObject.content
}

// BytesCopy returns a copy of blob's contents
func (b *Blob) BytesCopy() []byte {
	out := make([]byte, len(b.rawObject.content))
	copy(out, b.rawObject.content)
	return out
}

// Size returns the size of the blob
func (b *Blob) Size() int {
	return len(b.rawObject.content)
}

// ToObject returns the Blob's underlying Object
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
