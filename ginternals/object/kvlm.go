package object

import (
	"bytes"

	"golang.org/x/xerrors"
)

// kvlmEntry is a single key/value pair inside a KVLM. Keys may repeat
// (ex. multiple "parent" lines on a merge commit); entries preserve
// the order in which they were parsed or added.
type kvlmEntry struct {
	key   string
	value []byte
}

// KVLM ("key-value list with message") is the payload shape shared by
// commit and tag objects: an ordered, possibly-duplicated set of
// key/value headers followed by a blank line and a free-form message.
//
// https://wyag.thb.lt/#orgdd475fb (kvlm_parse/kvlm_serialize)
type KVLM struct {
	entries []kvlmEntry
	message []byte
}

// NewKVLM returns an empty KVLM with the given message
func NewKVLM(message []byte) *KVLM {
	return &KVLM{message: message}
}

// Add appends a new key/value pair, keeping any existing entries for
// the same key (ex. a second "parent" line on a merge commit)
func (kv *KVLM) Add(key string, value []byte) {
	kv.entries = append(kv.entries, kvlmEntry{key: key, value: value})
}

// Get returns the first value stored for key
func (kv *KVLM) Get(key string) ([]byte, bool) {
	for _, e := range kv.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// GetAll returns every value stored for key, in insertion order
func (kv *KVLM) GetAll(key string) [][]byte {
	var out [][]byte
	for _, e := range kv.entries {
		if e.key == key {
			out = append(out, e.value)
		}
	}
	return out
}

// Message returns the free-form message that follows the headers
func (kv *KVLM) Message() []byte {
	return kv.message
}

// parseKVLM parses a commit or tag payload into an ordered KVLM.
//
// A line beginning with a SP before the next NL introduces a key; the
// value extends to a NL that isn't followed by a SP. Continuation
// lines ("\n " prefix) are folded back into an embedded newline in the
// value. The first line that starts with a NL (an empty line) ends the
// header section; everything after it, including trailing newlines, is
// the message.
func parseKVLM(data []byte) (*KVLM, error) {
	kv := &KVLM{}
	offset := 0
	for {
		if offset >= len(data) {
			return kv, nil
		}

		relNL := bytes.IndexByte(data[offset:], '\n')
		if relNL == 0 {
			kv.message = data[offset+1:]
			return kv, nil
		}

		relSP := bytes.IndexByte(data[offset:], ' ')
		if relSP < 0 || (relNL >= 0 && relNL < relSP) {
			return nil, xerrors.Errorf("malformed kvlm record at offset %d: %w", offset, ErrKVLMInvalid)
		}
		key := string(data[offset : offset+relSP])

		// the value ends at the first NL that isn't followed by a SP
		// (a continuation line)
		end := offset + relSP
		for {
			nlRel := bytes.IndexByte(data[end+1:], '\n')
			if nlRel < 0 {
				return nil, xerrors.Errorf("unterminated value for key %q: %w", key, ErrKVLMInvalid)
			}
			end += 1 + nlRel
			if end+1 < len(data) && data[end+1] == ' ' {
				continue
			}
			break
		}

		rawValue := data[offset+relSP+1 : end]
		value := bytes.ReplaceAll(rawValue, []byte("\n "), []byte("\n"))
		kv.entries = append(kv.entries, kvlmEntry{key: key, value: value})
		offset = end + 1
	}
}

// Bytes serializes the KVLM back into a commit/tag payload. It is the
// exact inverse of parseKVLM: embedded newlines are re-wrapped with a
// leading space, keys are emitted in insertion order, and a blank line
// separates the headers from the message.
func (kv *KVLM) Bytes() []byte {
	buf := new(bytes.Buffer)
	for _, e := range kv.entries {
		buf.WriteString(e.key)
		buf.WriteByte(' ')
		buf.Write(bytes.ReplaceAll(e.value, []byte("\n"), []byte("\n ")))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(kv.message)
	return buf.Bytes()
}
