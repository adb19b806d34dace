package backend_test

import (
	"path/filepath"
	"testing"

	"github.com/ngrigoriev/wyag-go/backend"
	"github.com/ngrigoriev/wyag-go/backend/fsbackend"
	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/ngrigoriev/wyag-go/internal/gitpath"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend returns a backend.Backend (backed by fsbackend) on an
// in-memory filesystem, ready to use.
func newTestBackend(t *testing.T) backend.Backend {
	t.Helper()

	fs := afero.NewMemMapFs()
	root := filepath.Join("repo", gitpath.DotGitPath)
	b := fsbackend.NewWithFs(fs, root)
	require.NoError(t, b.Init())
	return b
}

func TestWalkObjectIDsStop(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	defer func() { require.NoError(t, b.Close()) }()

	for _, content := range []string{"one", "two", "three"} {
		_, err := b.WriteObject(object.New(object.TypeBlob, []byte(content)))
		require.NoError(t, err)
	}

	var count int
	err := b.WalkObjectIDs(func(ginternals.Oid) error {
		count++
		return backend.WalkStop
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWalkReferencesStop(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	defer func() { require.NoError(t, b.Close()) }()

	oid := ginternals.NewOidFromContent([]byte("blob 3\x00foo"))
	require.NoError(t, b.WriteReference(ginternals.NewReference("refs/heads/master", oid)))
	require.NoError(t, b.WriteReference(ginternals.NewReference("refs/heads/other", oid)))

	var count int
	err := b.WalkReferences(func(*ginternals.Reference) error {
		count++
		return backend.WalkStop
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
