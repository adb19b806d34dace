package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKVLM(t *testing.T) {
	t.Parallel()

	t.Run("simple header and message", func(t *testing.T) {
		t.Parallel()

		raw := []byte("tree abc\nauthor me\n\nhello\n")
		kv, err := parseKVLM(raw)
		require.NoError(t, err)

		v, ok := kv.Get("tree")
		require.True(t, ok)
		assert.Equal(t, "abc", string(v))

		v, ok = kv.Get("author")
		require.True(t, ok)
		assert.Equal(t, "me", string(v))

		assert.Equal(t, "hello\n", string(kv.Message()))
	})

	t.Run("duplicate keys are preserved in order", func(t *testing.T) {
		t.Parallel()

		raw := []byte("tree abc\nparent one\nparent two\n\nmerge\n")
		kv, err := parseKVLM(raw)
		require.NoError(t, err)

		parents := kv.GetAll("parent")
		require.Len(t, parents, 2)
		assert.Equal(t, "one", string(parents[0]))
		assert.Equal(t, "two", string(parents[1]))
	})

	t.Run("continuation lines are folded", func(t *testing.T) {
		t.Parallel()

		raw := []byte("gpgsig one\n two\n three\n\nmsg\n")
		kv, err := parseKVLM(raw)
		require.NoError(t, err)

		v, ok := kv.Get("gpgsig")
		require.True(t, ok)
		assert.Equal(t, "one\ntwo\nthree", string(v))
	})

	t.Run("malformed record fails", func(t *testing.T) {
		t.Parallel()

		_, err := parseKVLM([]byte("not-a-valid-header-no-newline"))
		require.Error(t, err)
	})
}

func TestKVLMRoundTrip(t *testing.T) {
	t.Parallel()

	kv := NewKVLM([]byte("my message\n"))
	kv.Add("tree", []byte("abc"))
	kv.Add("parent", []byte("one"))
	kv.Add("parent", []byte("two"))
	kv.Add("gpgsig", []byte("line1\nline2"))

	out, err := parseKVLM(kv.Bytes())
	require.NoError(t, err)

	v, _ := out.Get("tree")
	assert.Equal(t, "abc", string(v))
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, out.GetAll("parent"))
	v, _ = out.Get("gpgsig")
	assert.Equal(t, "line1\nline2", string(v))
	assert.Equal(t, "my message\n", string(out.Message()))
}
