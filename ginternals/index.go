package ginternals

// Index represents a git index (staging area) file.
//
// Only index format version 2 is supported: a 12 byte header, followed
// by a sorted list of entries, followed by a 20 byte SHA-1 checksum of
// everything that precedes it.
//
// Header: 12 bytes
//         The first 4 bytes contain the magic ('D', 'I', 'R', 'C')
//         The next 4 bytes contain the version (0, 0, 0, 2)
//         The last 4 bytes contain the number of entries in the file
// Entries: Variable size, sorted in ascending order by path
//          - 4 bytes: ctime seconds
//          - 4 bytes: ctime nanosecond fractions
//          - 4 bytes: mtime seconds
//          - 4 bytes: mtime nanosecond fractions
//          - 4 bytes: dev
//          - 4 bytes: ino
//          - 4 bytes: mode (object type + unix perms)
//          - 4 bytes: uid
//          - 4 bytes: gid
//          - 4 bytes: file size
//          - 20 bytes: Oid of the blob
//          - 2 bytes: flags (stage bits + name length)
//          - path name, followed by 1 to 8 NUL bytes of padding so
//            that the entry's total length is a multiple of 8
// Footer: 20 bytes, the SHA-1 of everything above
// https://git-scm.com/docs/index-format
import (
	"bytes"
	"crypto/sha1" //nolint:gosec // git uses sha1 to checksum the index
	"encoding/binary"
	"sort"
	"time"

	"golang.org/x/xerrors"
)

// IndexVersion is the only index format version this implementation
// reads and writes
const IndexVersion = 2

// indexSignature is the magic 4 bytes every index file starts with
var indexSignature = [4]byte{'D', 'I', 'R', 'C'}

// entryHeaderLength is the size, in bytes, of a fixed-size entry header,
// from ctime seconds up to and including the 2 bytes of flags
const entryHeaderLength = 62

// IndexEntryMode represents the mode stored for a staged file. Only
// regular files, executables, and symlinks may be staged.
type IndexEntryMode uint32

// Valid index entry modes
const (
	IndexModeFile       IndexEntryMode = 0o100644
	IndexModeExecutable IndexEntryMode = 0o100755
	IndexModeSymlink    IndexEntryMode = 0o120000
)

// IndexEntry represents a single staged file
type IndexEntry struct {
	CTime time.Time
	MTime time.Time
	Dev   uint32
	Ino   uint32
	Mode  IndexEntryMode
	UID   uint32
	GID   uint32
	Size  uint32
	ID    Oid
	Stage uint16
	Path  string
}

// Index represents a git index (staging area) file
type Index struct {
	Version int
	Entries []IndexEntry
}

// NewIndex returns an empty, version 2, index
func NewIndex() *Index {
	return &Index{Version: IndexVersion}
}

// Add inserts or replaces the entry for the given path, keeping the
// entry slice sorted by path as git expects it to be on disk
func (idx *Index) Add(e IndexEntry) {
	for i := range idx.Entries {
		if idx.Entries[i].Path == e.Path {
			idx.Entries[i] = e
			return
		}
	}
	idx.Entries = append(idx.Entries, e)
	sort.Slice(idx.Entries, func(i, j int) bool {
		return idx.Entries[i].Path < idx.Entries[j].Path
	})
}

// Remove removes the entry matching the given path, if any
func (idx *Index) Remove(path string) {
	for i := range idx.Entries {
		if idx.Entries[i].Path == path {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			return
		}
	}
}

// Get returns the entry for the given path, and whether it was found
func (idx *Index) Get(path string) (IndexEntry, bool) {
	for _, e := range idx.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// ReadIndex parses the binary representation of an index file
func ReadIndex(data []byte) (*Index, error) {
	if len(data) < 12+20 {
		return nil, xerrors.Errorf("index too small (%d bytes): %w", len(data), ErrInvalidIndexSignature)
	}

	checksum := data[len(data)-20:]
	body := data[:len(data)-20]
	sum := sha1.Sum(body) //nolint:gosec // matches git's own checksum algorithm
	if !bytes.Equal(sum[:], checksum) {
		return nil, ErrInvalidIndexChecksum
	}

	var sig [4]byte
	copy(sig[:], body[0:4])
	if sig != indexSignature {
		return nil, ErrInvalidIndexSignature
	}

	version := int(binary.BigEndian.Uint32(body[4:8]))
	if version != IndexVersion {
		return nil, xerrors.Errorf("version %d: %w", version, ErrUnknownIndexVersion)
	}
	entryCount := int(binary.BigEndian.Uint32(body[8:12]))

	idx := &Index{Version: version}
	entryData := body[12:]
	offset := 0
	for i := 0; i < entryCount; i++ {
		// Note: the bound here is "<=" (not "<"): an entry that ends
		// exactly at the end of entryData is still a complete entry.
		if offset+entryHeaderLength > len(entryData) {
			return nil, xerrors.Errorf("truncated entry %d: %w", i, ErrInvalidIndexSignature)
		}

		e := IndexEntry{}
		e.CTime = time.Unix(int64(binary.BigEndian.Uint32(entryData[offset:])), int64(binary.BigEndian.Uint32(entryData[offset+4:])))
		e.MTime = time.Unix(int64(binary.BigEndian.Uint32(entryData[offset+8:])), int64(binary.BigEndian.Uint32(entryData[offset+12:])))
		e.Dev = binary.BigEndian.Uint32(entryData[offset+16:])
		e.Ino = binary.BigEndian.Uint32(entryData[offset+20:])
		e.Mode = IndexEntryMode(binary.BigEndian.Uint32(entryData[offset+24:]))
		e.UID = binary.BigEndian.Uint32(entryData[offset+28:])
		e.GID = binary.BigEndian.Uint32(entryData[offset+32:])
		e.Size = binary.BigEndian.Uint32(entryData[offset+36:])
		oid, err := NewOidFromHex(entryData[offset+40 : offset+60])
		if err != nil {
			return nil, xerrors.Errorf("entry %d: %w", i, err)
		}
		e.ID = oid
		flags := binary.BigEndian.Uint16(entryData[offset+60 : offset+62])
		e.Stage = (flags >> 12) & 0x3
		nameLen := int(flags & 0x0FFF)

		offset += entryHeaderLength
		if offset+nameLen > len(entryData) {
			return nil, xerrors.Errorf("truncated path for entry %d: %w", i, ErrInvalidIndexSignature)
		}
		e.Path = string(entryData[offset : offset+nameLen])
		offset += nameLen

		// consume the NUL padding that brings this entry's total
		// length (header+path) to a multiple of 8
		padded := ((entryHeaderLength + nameLen + 8) / 8) * 8
		consumed := nameLen
		for padded-entryHeaderLength-consumed > 0 {
			offset++
			consumed++
		}

		idx.Entries = append(idx.Entries, e)
	}

	return idx, nil
}

// WriteIndex serializes the index to its binary representation
func WriteIndex(idx *Index) []byte {
	sort.Slice(idx.Entries, func(i, j int) bool {
		return idx.Entries[i].Path < idx.Entries[j].Path
	})

	buf := new(bytes.Buffer)
	buf.Write(indexSignature[:])
	writeUint32(buf, uint32(IndexVersion))
	writeUint32(buf, uint32(len(idx.Entries)))

	for _, e := range idx.Entries {
		start := buf.Len()
		writeUint32(buf, uint32(e.CTime.Unix()))
		writeUint32(buf, uint32(e.CTime.Nanosecond()))
		writeUint32(buf, uint32(e.MTime.Unix()))
		writeUint32(buf, uint32(e.MTime.Nanosecond()))
		writeUint32(buf, e.Dev)
		writeUint32(buf, e.Ino)
		writeUint32(buf, uint32(e.Mode))
		writeUint32(buf, e.UID)
		writeUint32(buf, e.GID)
		writeUint32(buf, e.Size)
		buf.Write(e.ID.Bytes())

		nameLen := len(e.Path)
		flagsLen := nameLen
		if flagsLen > 0x0FFF {
			flagsLen = 0x0FFF
		}
		flags := (e.Stage&0x3)<<12 | uint16(flagsLen)
		writeUint16(buf, flags)

		buf.WriteString(e.Path)

		written := buf.Len() - start
		padded := ((written + 8) / 8) * 8
		for written < padded {
			buf.WriteByte(0)
			written++
		}
	}

	sum := sha1.Sum(buf.Bytes()) //nolint:gosec // matches git's own checksum algorithm
	buf.Write(sum[:])
	return buf.Bytes()
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
