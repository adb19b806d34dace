package object

import (
	"fmt"

	"github.com/ngrigoriev/wyag-go/ginternals"
)

// tag header keys, in the order they're emitted
const (
	kvlmKeyObject = "object"
	kvlmKeyType   = "type"
	kvlmKeyTag    = "tag"
	kvlmKeyTagger = "tagger"
)

// TagParams represents all the data needed to create a Tag
// Params starting by Opt are optionals
type TagParams struct {
	Target    *Object
	Name      string
	Tagger    Signature
	Message   string
	OptGPGSig string
}

// Tag represents an annotated tag object
type Tag struct {
	rawObject *Object

	tagger  Signature
	tag     string
	message string

	gpgSig string

	target ginternals.Oid
	typ    Type
}

// NewTag creates a new Tag object
func NewTag(p *TagParams) *Tag {
	t := &Tag{
		target:  p.Target.ID(),
		typ:     p.Target.Type(),
		tag:     p.Name,
		tagger:  p.Tagger,
		message: p.Message,
		gpgSig:  p.OptGPGSig,
	}
	t.rawObject = t.ToObject()
	return t
}

// NewTagFromObject creates a new Tag from a raw git object
//
// A tag has following format:
//
// object {sha}
// type {target_object_type}
// tag {tag_name}
// tagger {author_name} <{author_email}> {author_date_seconds} {author_date_timezone}
// gpgsig -----BEGIN PGP SIGNATURE-----
// {gpg key over multiple lines}
//  -----END PGP SIGNATURE-----
// {a blank line}
// {tag message}
//
// Note:
// - The gpgsig is optional
func NewTagFromObject(o *Object) (*Tag, error) {
	if o.typ != TypeTag {
		return nil, fmt.Errorf("type %s is not a tag: %w", o.typ, ErrObjectInvalid)
	}

	kv, err := parseKVLM(o.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not parse tag: %w", err)
	}

	tag := &Tag{
		rawObject: o,
		message:   string(kv.Message()),
	}

	targetVal, ok := kv.Get(kvlmKeyObject)
	if !ok {
		return nil, fmt.Errorf("tag has no target: %w", ErrTagInvalid)
	}
	tag.target, err = ginternals.NewOidFromChars(targetVal)
	if err != nil {
		return nil, fmt.Errorf("could not parse target id %#v: %w", targetVal, err)
	}

	typeVal, ok := kv.Get(kvlmKeyType)
	if !ok {
		return nil, fmt.Errorf("tag has no type: %w", ErrTagInvalid)
	}
	tag.typ, err = NewTypeFromString(string(typeVal))
	if err != nil {
		return nil, fmt.Errorf("invalid object type %s: %w", string(typeVal), err)
	}

	if tagVal, ok := kv.Get(kvlmKeyTag); ok {
		tag.tag = string(tagVal)
	}

	taggerVal, ok := kv.Get(kvlmKeyTagger)
	if !ok {
		return nil, fmt.Errorf("tag has no tagger: %w", ErrTagInvalid)
	}
	tag.tagger, err = NewSignatureFromBytes(taggerVal)
	if err != nil {
		return nil, fmt.Errorf("could not parse tagger [%s]: %w", string(taggerVal), err)
	}

	if gpgVal, ok := kv.Get(kvlmKeyGPGSig); ok {
		tag.gpgSig = string(gpgVal)
	}

	return tag, nil
}

// ID returns the SHA of the tag object
func (t *Tag) ID() ginternals.Oid {
	return t.rawObject.ID()
}

// Target returns the ID of the object targeted by the tag
func (t *Tag) Target() ginternals.Oid {
	return t.target
}

// Type returns the type of the targeted object
func (t *Tag) Type() Type {
	return t.typ
}

// Name returns the tag's name
func (t *Tag) Name() string {
	return t.tag
}

// Tagger returns the Signature of the person that created the tag
func (t *Tag) Tagger() Signature {
	return t.tagger
}

// Message returns the tag's message
func (t *Tag) Message() string {
	return t.message
}

// GPGSig returns the GPG signature of the tag, if any
func (t *Tag) GPGSig() string {
	return t.gpgSig
}

// ToObject returns the underlying Object
func (t *Tag) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	kv := NewKVLM([]byte(t.message))
	kv.Add(kvlmKeyObject, []byte(t.target.String()))
	kv.Add(kvlmKeyType, []byte(t.Type().String()))
	kv.Add(kvlmKeyTag, []byte(t.Name()))
	kv.Add(kvlmKeyTagger, []byte(t.Tagger().String()))
	if t.gpgSig != "" {
		kv.Add(kvlmKeyGPGSig, []byte(t.gpgSig))
	}

	return New(TypeTag, kv.Bytes())
}
