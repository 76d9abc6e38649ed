// Package index implements the on-disk content manifest that records
// everything a package shipped: a versioned map from relative paths to
// files, symlinks, and directories, keyed by an ordered sequence of
// textual path components.
package index

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrUntrackablePath indicates that a native path could not be converted to
// a Path because one of its components is not valid UTF-8 text.
var ErrUntrackablePath = errors.New("path component is not representable as text")

// Path is a relative path inside a package root, represented as an ordered
// sequence of non-empty textual components. It never contains "." or ".."
// components and never addresses the root itself (the root is implicit).
// Two Paths are equal iff their component sequences are element-wise equal.
type Path struct {
	components []string
}

// NewPath constructs a Path directly from a slice of components, primarily
// for use by the index codec when decoding a stored entry. Callers
// reconstructing a path from the filesystem should use PathFromNative.
func NewPath(components []string) Path {
	clone := make([]string, len(components))
	copy(clone, components)
	return Path{components: clone}
}

// PathFromNative converts a native, slash-or-backslash-separated relative
// path into a Path, splitting on the OS path separator. It fails with
// ErrUntrackablePath if any component is not valid UTF-8 text, and with a
// plain error if rel addresses the root or any component is empty, "." or
// ".." (which can't happen for a well-formed relative path) — callers are
// expected to have already produced rel via filepath.Rel against the package
// root.
func PathFromNative(rel string) (Path, error) {
	if rel == "" || rel == "." {
		return Path{}, errors.New("path addresses the root itself")
	}
	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return Path{}, errors.Errorf("invalid path component %q", part)
		}
		if !isValidText(part) {
			return Path{}, ErrUntrackablePath
		}
		components = append(components, part)
	}
	return Path{components: components}, nil
}

// isValidText reports whether s is valid, non-empty UTF-8 text.
func isValidText(s string) bool {
	return s != "" && utf8.ValidString(s)
}

// Components returns the ordered sequence of path components. The returned
// slice must not be mutated.
func (p Path) Components() []string {
	return p.components
}

// String renders the Path using the OS-native separator, suitable for
// joining onto a root directory with filepath.Join.
func (p Path) String() string {
	return filepath.Join(p.components...)
}

// Equal reports whether two Paths have identical component sequences.
func (p Path) Equal(other Path) bool {
	if len(p.components) != len(other.components) {
		return false
	}
	for i, c := range p.components {
		if c != other.components[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p's component sequence begins with prefix's.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.components) > len(p.components) {
		return false
	}
	for i, c := range prefix.components {
		if p.components[i] != c {
			return false
		}
	}
	return true
}

// Key returns a string suitable for use as a map key, distinct for any two
// non-Equal Paths (it joins components with a separator that cannot appear
// within a single component because components are validated text split on
// the OS separator).
func (p Path) Key() string {
	return strings.Join(p.components, "/")
}
