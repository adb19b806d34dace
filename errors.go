package git

import "errors"

// Error kinds returned by the Repository and its supporting pipelines.
// Lower level packages (ginternals, ginternals/object, backend) define
// their own sentinels; these wrap higher level, repository-scoped
// failures that don't have an obvious home anywhere else.
var (
	// ErrRepositoryNotExist is returned when trying to open a
	// directory that isn't a git repository
	ErrRepositoryNotExist = errors.New("not a git repository (or any of the parent directories)")

	// ErrRepositoryExists is returned when trying to initialize a
	// repository that already exists
	ErrRepositoryExists = errors.New("repository already exists")

	// ErrUnsupportedRepositoryFormat is returned when the repository's
	// core.repositoryformatversion isn't one this implementation
	// knows how to read
	ErrUnsupportedRepositoryFormat = errors.New("unsupported repository format version")

	// ErrObjectTypeMismatch is returned when an object is found, but
	// isn't of the type the caller expected
	ErrObjectTypeMismatch = errors.New("unexpected object type")

	// ErrNotADirectory is returned when a path entry expected to be a
	// directory (ex. a path segment of a tree-path) isn't one
	ErrNotADirectory = errors.New("not a directory")

	// ErrDirectoryNotEmpty is returned when checking out into a
	// non-empty working tree
	ErrDirectoryNotEmpty = errors.New("directory not empty")

	// ErrNameAmbiguous is returned when a revision name resolves to
	// more than one candidate
	ErrNameAmbiguous = errors.New("name is ambiguous")

	// ErrNameNotFound is returned when a revision name doesn't resolve
	// to anything
	ErrNameNotFound = errors.New("name could not be resolved")

	// ErrNestedTreePath is returned when trying to write a tree entry
	// whose path contains a "/". This implementation only supports
	// single-level trees: nested trees must be written one level at a
	// time and referenced by their Oid.
	ErrNestedTreePath = errors.New("tree entry paths cannot contain a slash")
)
