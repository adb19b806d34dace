package ginternals

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // matches the checksum algorithm under test
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha1Sum(data []byte) []byte {
	sum := sha1.Sum(data) //nolint:gosec // matches the checksum algorithm under test
	return sum[:]
}

func sampleOid(b byte) Oid {
	var o Oid
	for i := range o {
		o[i] = b
	}
	return o
}

// buildRawEntry mirrors WriteIndex's own layout for a single entry, so
// tests can hand-craft index bodies without going through Index.Add.
func buildRawEntry(t *testing.T, path string, oid Oid, mode IndexEntryMode, stage uint16) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	writeUint32(buf, 0) // ctime sec
	writeUint32(buf, 0) // ctime nsec
	writeUint32(buf, 0) // mtime sec
	writeUint32(buf, 0) // mtime nsec
	writeUint32(buf, 0) // dev
	writeUint32(buf, 0) // ino
	writeUint32(buf, uint32(mode))
	writeUint32(buf, 0) // uid
	writeUint32(buf, 0) // gid
	writeUint32(buf, 0) // size
	buf.Write(oid.Bytes())
	flags := (stage&0x3)<<12 | uint16(len(path))
	writeUint16(buf, flags)
	buf.WriteString(path)

	written := buf.Len()
	padded := ((written + 8) / 8) * 8
	for written < padded {
		buf.WriteByte(0)
		written++
	}
	return buf.Bytes()
}

func buildRawIndex(t *testing.T, entries ...[]byte) []byte {
	t.Helper()

	body := new(bytes.Buffer)
	body.Write(indexSignature[:])
	writeUint32(body, uint32(IndexVersion))
	writeUint32(body, uint32(len(entries)))
	for _, e := range entries {
		body.Write(e)
	}
	sum := sha1Sum(body.Bytes())
	body.Write(sum)
	return body.Bytes()
}

func TestReadIndexRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("empty index round trips", func(t *testing.T) {
		t.Parallel()

		idx := NewIndex()
		got, err := ReadIndex(WriteIndex(idx))
		require.NoError(t, err)
		assert.Equal(t, IndexVersion, got.Version)
		assert.Empty(t, got.Entries)
	})

	t.Run("path exactly filling the alignment boundary is read back", func(t *testing.T) {
		t.Parallel()

		// entryHeaderLength (62) + len(path) must land exactly on a
		// multiple of 8, so the entry carries a full 8 NUL bytes of
		// padding and ends exactly at the end of the entry data (Open
		// Question 1: a final entry ending exactly at EOF must not be
		// dropped).
		path := string(bytes.Repeat([]byte{'a'}, 2))
		require.Zero(t, (entryHeaderLength+len(path))%8)

		oid := sampleOid(0xAB)
		raw := buildRawIndex(t, buildRawEntry(t, path, oid, IndexModeFile, 0))

		idx, err := ReadIndex(raw)
		require.NoError(t, err)
		require.Len(t, idx.Entries, 1)
		assert.Equal(t, path, idx.Entries[0].Path)
		assert.Equal(t, oid, idx.Entries[0].ID)
	})

	t.Run("multiple entries with different modes and stages", func(t *testing.T) {
		t.Parallel()

		e1 := buildRawEntry(t, "a.txt", sampleOid(0x01), IndexModeFile, 0)
		e2 := buildRawEntry(t, "b.sh", sampleOid(0x02), IndexModeExecutable, 2)
		e3 := buildRawEntry(t, "link", sampleOid(0x03), IndexModeSymlink, 0)
		raw := buildRawIndex(t, e1, e2, e3)

		idx, err := ReadIndex(raw)
		require.NoError(t, err)
		require.Len(t, idx.Entries, 3)

		assert.Equal(t, "a.txt", idx.Entries[0].Path)
		assert.Equal(t, IndexModeFile, idx.Entries[0].Mode)
		assert.Equal(t, uint16(0), idx.Entries[0].Stage)

		assert.Equal(t, "b.sh", idx.Entries[1].Path)
		assert.Equal(t, IndexModeExecutable, idx.Entries[1].Mode)
		assert.Equal(t, uint16(2), idx.Entries[1].Stage)

		assert.Equal(t, "link", idx.Entries[2].Path)
		assert.Equal(t, IndexModeSymlink, idx.Entries[2].Mode)
	})

	t.Run("entries and dates survive a write then read", func(t *testing.T) {
		t.Parallel()

		idx := NewIndex()
		idx.Add(IndexEntry{
			Path:  "file.txt",
			Mode:  IndexModeFile,
			ID:    sampleOid(0x42),
			Size:  123,
			UID:   1000,
			GID:   1000,
			CTime: time.Unix(1_700_000_000, 0),
			MTime: time.Unix(1_700_000_100, 0),
		})

		got, err := ReadIndex(WriteIndex(idx))
		require.NoError(t, err)
		require.Len(t, got.Entries, 1)
		e := got.Entries[0]
		assert.Equal(t, "file.txt", e.Path)
		assert.Equal(t, uint32(123), e.Size)
		assert.Equal(t, uint32(1000), e.UID)
		assert.Equal(t, int64(1_700_000_000), e.CTime.Unix())
		assert.Equal(t, int64(1_700_000_100), e.MTime.Unix())
	})
}

func TestReadIndexErrors(t *testing.T) {
	t.Parallel()

	t.Run("too small to hold a header and checksum", func(t *testing.T) {
		t.Parallel()

		_, err := ReadIndex([]byte("short"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndexSignature)
	})

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()

		body := new(bytes.Buffer)
		body.WriteString("XXXX")
		writeUint32(body, uint32(IndexVersion))
		writeUint32(body, 0)
		sum := sha1Sum(body.Bytes())
		body.Write(sum)

		_, err := ReadIndex(body.Bytes())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndexSignature)
	})

	t.Run("unsupported version", func(t *testing.T) {
		t.Parallel()

		body := new(bytes.Buffer)
		body.Write(indexSignature[:])
		writeUint32(body, 3)
		writeUint32(body, 0)
		sum := sha1Sum(body.Bytes())
		body.Write(sum)

		_, err := ReadIndex(body.Bytes())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownIndexVersion)
	})

	t.Run("corrupted checksum", func(t *testing.T) {
		t.Parallel()

		raw := buildRawIndex(t, buildRawEntry(t, "a", sampleOid(0x01), IndexModeFile, 0))
		raw[len(raw)-1] ^= 0xFF

		_, err := ReadIndex(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndexChecksum)
	})

	t.Run("entry header truncated", func(t *testing.T) {
		t.Parallel()

		body := new(bytes.Buffer)
		body.Write(indexSignature[:])
		writeUint32(body, uint32(IndexVersion))
		writeUint32(body, 1)
		body.Write(make([]byte, entryHeaderLength-1)) // one byte short
		sum := sha1Sum(body.Bytes())
		body.Write(sum)

		_, err := ReadIndex(body.Bytes())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndexSignature)
	})

	t.Run("path truncated", func(t *testing.T) {
		t.Parallel()

		entry := buildRawEntry(t, "aaaaaaaa", sampleOid(0x01), IndexModeFile, 0)
		// drop everything after the fixed header so the declared name
		// length (8) can't be satisfied by what's left
		truncated := entry[:entryHeaderLength+2]

		body := new(bytes.Buffer)
		body.Write(indexSignature[:])
		writeUint32(body, uint32(IndexVersion))
		writeUint32(body, 1)
		body.Write(truncated)
		sum := sha1Sum(body.Bytes())
		body.Write(sum)

		_, err := ReadIndex(body.Bytes())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndexSignature)
	})
}

func TestIndexAddRemoveGet(t *testing.T) {
	t.Parallel()

	idx := NewIndex()
	idx.Add(IndexEntry{Path: "b", ID: sampleOid(0x02)})
	idx.Add(IndexEntry{Path: "a", ID: sampleOid(0x01)})
	idx.Add(IndexEntry{Path: "b", ID: sampleOid(0x03)}) // replaces the first "b"

	require.Len(t, idx.Entries, 2)
	assert.Equal(t, "a", idx.Entries[0].Path, "entries must stay sorted by path")
	assert.Equal(t, "b", idx.Entries[1].Path)

	e, ok := idx.Get("b")
	require.True(t, ok)
	assert.Equal(t, sampleOid(0x03), e.ID)

	idx.Remove("a")
	_, ok = idx.Get("a")
	assert.False(t, ok)
	assert.Len(t, idx.Entries, 1)
}
