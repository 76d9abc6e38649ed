package install

// StatusKind is a closed tagged union of the ways a live filesystem path
// can diverge from what the index recorded.
type StatusKind uint8

const (
	// ContentModified: an indexed regular file's content hash no longer
	// matches.
	ContentModified StatusKind = iota + 1
	// Created: a path exists on disk with no corresponding index entry.
	Created
	// TypeChanged: an indexed path now has a different type on disk (e.g. a
	// file became a directory).
	TypeChanged
	// LinkTargetChanged: an indexed symlink's target "changed" — see the
	// doc comment on scanSymlink for the preserved inverted-logic behavior.
	LinkTargetChanged
	// Deleted: an indexed path is absent on disk, and no ancestor of it is
	// also absent (ancestor-absence is suppressed to avoid one Deleted per
	// child of a deleted directory).
	Deleted
	// UntrackablePath: a path component could not be represented as text.
	UntrackablePath
)

// String renders a StatusKind for diagnostics and test failure messages.
func (k StatusKind) String() string {
	switch k {
	case ContentModified:
		return "ContentModified"
	case Created:
		return "Created"
	case TypeChanged:
		return "TypeChanged"
	case LinkTargetChanged:
		return "LinkTargetChanged"
	case Deleted:
		return "Deleted"
	case UntrackablePath:
		return "UntrackablePath"
	default:
		return "Unknown"
	}
}

// Change pairs an absolute filesystem path with the Status the Scanner
// assigned it.
type Change struct {
	Path   string
	Status StatusKind
}
