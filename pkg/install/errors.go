package install

import "github.com/pkg/errors"

// Sentinel error kinds. Scan and Install classify filesystem/format problems
// against these with errors.Is rather than defining a closed set of
// concrete error types.
var (
	// ErrIndexNotFound indicates the target directory itself does not exist.
	// Install treats this as a first-time install with no changes to
	// preserve. A missing manifest inside an existing target is distinct —
	// see Scan's doc comment — and is not reported as this error.
	ErrIndexNotFound = errors.New("index not found")

	// ErrNotADirectory indicates the target exists but is not a directory.
	ErrNotADirectory = errors.New("target exists and is not a directory")

	// ErrReadIndex indicates the manifest file is present but could not be
	// read (permissions, I/O).
	ErrReadIndex = errors.New("unable to read index")

	// ErrInvalidIndex indicates the manifest file is present but malformed.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrUnsupportedEntryType indicates a zip entry or on-disk file is
	// neither a regular file, directory, nor symlink (e.g. a device file or
	// FIFO).
	ErrUnsupportedEntryType = errors.New("unsupported file type")
)
