package git

import (
	"testing"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryResolve(t *testing.T) {
	t.Parallel()

	t.Run("empty name resolves to nothing", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		out, err := r.Resolve("   ")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("HEAD resolves through the branch it points to", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		blob, err := r.NewBlob([]byte("content"))
		require.NoError(t, err)
		_, err = r.NewReference(ginternals.LocalBranchFullName(ginternals.Master), blob.ID())
		require.NoError(t, err)

		out, err := r.Resolve(ginternals.Head)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, blob.ID(), out[0])
	})

	t.Run("HEAD pointing at an unborn branch resolves to nothing", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		out, err := r.Resolve(ginternals.Head)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("a full hex sha is returned as-is", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		blob, err := r.NewBlob([]byte("full sha content"))
		require.NoError(t, err)

		out, err := r.Resolve(blob.ID().String())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, blob.ID(), out[0])
	})

	t.Run("a short prefix matches against the odb", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		blob, err := r.NewBlob([]byte("prefix match content"))
		require.NoError(t, err)

		out, err := r.Resolve(blob.ID().String()[:8])
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, blob.ID(), out[0])
	})

	t.Run("a branch name resolves via refs/heads", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		blob, err := r.NewBlob([]byte("branch content"))
		require.NoError(t, err)
		_, err = r.NewReference(ginternals.LocalBranchFullName("feature"), blob.ID())
		require.NoError(t, err)

		out, err := r.Resolve("feature")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, blob.ID(), out[0])
	})

	t.Run("an unknown name resolves to nothing", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		out, err := r.Resolve("does-not-exist")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestRepositoryFind(t *testing.T) {
	t.Parallel()

	t.Run("a single candidate is returned as-is", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		blob, err := r.NewBlob([]byte("content"))
		require.NoError(t, err)

		oid, err := r.Find(blob.ID().String(), 0, false)
		require.NoError(t, err)
		assert.Equal(t, blob.ID(), oid)
	})

	t.Run("no candidates fails with ErrNameNotFound", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		_, err := r.Find("does-not-exist", 0, false)
		assert.ErrorIs(t, err, ErrNameNotFound)
	})

	t.Run("a commit resolves to its tree when TypeTree is requested", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		require.NoError(t, afero.WriteFile(r.WorkTree(), "README.md", []byte("hello"), 0o644))
		require.NoError(t, r.Add([]string{"README.md"}, AddParams{}))

		treeID, err := r.WriteTree()
		require.NoError(t, err)

		sig := object.NewSignature("author", "author@domain.tld")
		commitID, err := r.CreateCommit(sig, sig, "initial commit")
		require.NoError(t, err)

		oid, err := r.Find(commitID.String(), object.TypeTree, false)
		require.NoError(t, err)
		assert.Equal(t, treeID, oid)
	})

	t.Run("a type mismatch fails with ErrObjectTypeMismatch", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		blob, err := r.NewBlob([]byte("content"))
		require.NoError(t, err)

		_, err = r.Find(blob.ID().String(), object.TypeCommit, false)
		assert.ErrorIs(t, err, ErrObjectTypeMismatch)
	})
}
