// Package backend contains interfaces and implementations to store and
// retrieve data from the odb
package backend

import (
	"errors"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
)

// Backend represents an object that can store and retrieve data
// from and to the odb
type Backend interface {
	// Close frees the resources held by the backend
	Close() error

	// Init initializes a repository
	Init() error

	// Reference returns a stored reference from its name
	Reference(name string) (*ginternals.Reference, error)
	// RawReference returns the trimmed, unresolved content of a
	// reference file (ex. "ref: refs/heads/master" or a 40 char sha).
	// Unlike Reference, it doesn't follow symbolic references, which
	// lets callers inspect a reference (ex. HEAD) that points at a
	// branch that doesn't exist yet
	RawReference(name string) ([]byte, error)
	// WriteReference writes the given reference in the db. If the
	// reference already exists it will be overwritten
	WriteReference(ref *ginternals.Reference) error
	// WriteReferenceSafe writes the given reference in the db.
	// ErrRefExists is returned if the reference already exists
	WriteReferenceSafe(ref *ginternals.Reference) error
	// WalkReferences runs the provided method on all the references
	// found under refs/
	WalkReferences(f RefWalkFunc) error

	// Object returns the object that has the given oid
	Object(ginternals.Oid) (*object.Object, error)
	// HasObject returns whether an object exists in the odb
	HasObject(ginternals.Oid) (bool, error)
	// WriteObject adds an object to the odb
	WriteObject(*object.Object) (ginternals.Oid, error)
	// WalkObjectIDs runs the provided method on all the loose object ids
	WalkObjectIDs(f ObjectIDWalkFunc) error
}

// RefWalkFunc represents a function that will be applied on all references
// found by WalkReferences()
type RefWalkFunc = func(ref *ginternals.Reference) error

// ObjectIDWalkFunc represents a function that will be applied on all
// object ids found by WalkObjectIDs()
type ObjectIDWalkFunc = func(oid ginternals.Oid) error

// WalkStop is a fake error used to tell a Walk method to stop
var WalkStop = errors.New("stop walking") //nolint // the linter expects all errors to start with Err, but since here we're faking an error we don't want that
