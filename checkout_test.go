package git

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCheckout(t *testing.T) {
	t.Parallel()

	t.Run("materializes a tree into an empty destination", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		require.NoError(t, afero.WriteFile(r.WorkTree(), "a.txt", []byte("a content"), 0o644))
		require.NoError(t, afero.WriteFile(r.WorkTree(), "b.txt", []byte("b content"), 0o644))
		require.NoError(t, r.Add([]string{"a.txt", "b.txt"}, AddParams{}))

		treeID, err := r.WriteTree()
		require.NoError(t, err)

		dest := "/checkout"
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll(dest, 0o755))

		require.NoError(t, r.Checkout(treeID, fs, dest))

		content, err := afero.ReadFile(fs, "/checkout/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "a content", string(content))

		content, err = afero.ReadFile(fs, "/checkout/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "b content", string(content))
	})

	t.Run("fails if the destination isn't a directory", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		treeID, err := r.WriteTree()
		require.NoError(t, err)

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/checkout", []byte("not a dir"), 0o644))

		err = r.Checkout(treeID, fs, "/checkout")
		assert.ErrorIs(t, err, ErrNotADirectory)
	})

	t.Run("fails if the destination isn't empty", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() { require.NoError(t, r.Close()) })

		treeID, err := r.WriteTree()
		require.NoError(t, err)

		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/checkout", 0o755))
		require.NoError(t, afero.WriteFile(fs, "/checkout/existing.txt", []byte("x"), 0o644))

		err = r.Checkout(treeID, fs, "/checkout")
		assert.ErrorIs(t, err, ErrDirectoryNotEmpty)
	})
}
