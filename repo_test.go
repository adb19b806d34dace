package git

import (
	"path/filepath"
	"testing"

	"github.com/ngrigoriev/wyag-go/backend/fsbackend"
	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo returns an initialized repository backed entirely by an
// in-memory filesystem, along with the filesystem itself (useful for
// tests that need to poke at the working tree directly)
func newTestRepo(t *testing.T) (*Repository, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	wtPath := "/repo"
	gitDirPath := filepath.Join(wtPath, ".git")

	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		FS:               fs,
		WorkingDirectory: wtPath,
		GitDirPath:       gitDirPath,
		SkipGitDirLookUp: true,
	})
	require.NoError(t, err)

	r, err := InitRepository(cfg, InitParams{
		GitBackend: fsbackend.NewWithFs(fs, gitDirPath),
		WorkTreeFS: fs,
	})
	require.NoError(t, err)
	return r, fs
}

func TestInitRepository(t *testing.T) {
	t.Parallel()

	t.Run("sets up HEAD pointing at the default branch", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRepo(t)
		t.Cleanup(func() {
			require.NoError(t, r.Close())
		})

		branch, detached, err := r.headTarget()
		require.NoError(t, err)
		assert.False(t, detached)
		assert.Equal(t, ginternals.LocalBranchFullName(ginternals.Master), branch)
		assert.False(t, r.IsBare())
	})

	t.Run("honors a custom initial branch name", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		gitDirPath := "/repo/.git"
		cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
			FS:               fs,
			WorkingDirectory: "/repo",
			GitDirPath:       gitDirPath,
			SkipGitDirLookUp: true,
		})
		require.NoError(t, err)

		r, err := InitRepository(cfg, InitParams{
			InitialBranchName: "main",
			GitBackend:        fsbackend.NewWithFs(fs, gitDirPath),
			WorkTreeFS:        fs,
		})
		require.NoError(t, err)

		branch, detached, err := r.headTarget()
		require.NoError(t, err)
		assert.False(t, detached)
		assert.Equal(t, ginternals.LocalBranchFullName("main"), branch)
	})

	t.Run("fails if the repository already exists", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		gitDirPath := "/repo/.git"
		cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
			FS:               fs,
			WorkingDirectory: "/repo",
			GitDirPath:       gitDirPath,
			SkipGitDirLookUp: true,
		})
		require.NoError(t, err)

		_, err = InitRepository(cfg, InitParams{
			GitBackend: fsbackend.NewWithFs(fs, gitDirPath),
			WorkTreeFS: fs,
		})
		require.NoError(t, err)

		_, err = InitRepository(cfg, InitParams{
			GitBackend: fsbackend.NewWithFs(fs, gitDirPath),
			WorkTreeFS: fs,
		})
		require.ErrorIs(t, err, ErrRepositoryExists)
	})
}

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	t.Run("opens a freshly initialized repository", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		gitDirPath := "/repo/.git"
		cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
			FS:               fs,
			WorkingDirectory: "/repo",
			GitDirPath:       gitDirPath,
			SkipGitDirLookUp: true,
		})
		require.NoError(t, err)

		_, err = InitRepository(cfg, InitParams{
			GitBackend: fsbackend.NewWithFs(fs, gitDirPath),
			WorkTreeFS: fs,
		})
		require.NoError(t, err)

		r, err := OpenRepository(cfg, OpenParams{
			GitBackend: fsbackend.NewWithFs(fs, gitDirPath),
			WorkTreeFS: fs,
		})
		require.NoError(t, err)
		assert.False(t, r.IsBare())
	})

	t.Run("fails if there's no HEAD", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		gitDirPath := "/repo/.git"
		cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
			FS:               fs,
			WorkingDirectory: "/repo",
			GitDirPath:       gitDirPath,
			SkipGitDirLookUp: true,
		})
		require.NoError(t, err)

		_, err = OpenRepository(cfg, OpenParams{
			GitBackend: fsbackend.NewWithFs(fs, gitDirPath),
			WorkTreeFS: fs,
		})
		require.ErrorIs(t, err, ErrRepositoryNotExist)
	})
}

func TestRepositoryNewBlob(t *testing.T) {
	t.Parallel()

	r, _ := newTestRepo(t)
	t.Cleanup(func() {
		require.NoError(t, r.Close())
	})

	blob, err := r.NewBlob([]byte("hello world"))
	require.NoError(t, err)
	assert.NotEqual(t, ginternals.NullOid, blob.ID())

	has, err := r.HasObject(blob.ID())
	require.NoError(t, err)
	assert.True(t, has)
}
