package index

import "github.com/pkg/errors"

// Version identifies the on-disk envelope format. Readers must reject any
// version they don't recognize rather than guessing at its layout.
type Version uint8

// VersionV1 is the only envelope version currently defined.
const VersionV1 Version = 1

// ErrUnsupportedVersion is returned when decoding an envelope whose version
// tag isn't recognized by this implementation.
var ErrUnsupportedVersion = errors.New("unsupported index version")

// Name is the fixed manifest filename written at a package root.
const Name = ".manderrow_content_index"

// Index is a versioned envelope around a mapping from Path to Entry. It
// records everything a package shipped so that a later Scan can diff live
// filesystem state against it. Exactly one Entry exists per Path; the
// manifest file itself is never present in the mapping.
type Index struct {
	version Version
	entries map[string]indexedEntry
}

// indexedEntry pairs a Path with its Entry so that iteration can recover the
// original component sequence from the map's string key.
type indexedEntry struct {
	path  Path
	entry Entry
}

// New creates an empty, V1 Index ready to be populated by the Index Builder.
func New() *Index {
	return &Index{
		version: VersionV1,
		entries: make(map[string]indexedEntry),
	}
}

// Version reports the envelope version of the index.
func (idx *Index) Version() Version {
	return idx.version
}

// Set records the entry for path, overwriting any prior entry at that path.
func (idx *Index) Set(path Path, entry Entry) {
	idx.entries[path.Key()] = indexedEntry{path: path, entry: entry}
}

// Get returns the entry recorded for path, if any.
func (idx *Index) Get(path Path) (Entry, bool) {
	e, ok := idx.entries[path.Key()]
	return e.entry, ok
}

// Delete removes any entry recorded for path.
func (idx *Index) Delete(path Path) {
	delete(idx.entries, path.Key())
}

// Len reports the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Range calls visit for every (path, entry) pair in the index. Iteration
// order is unspecified. If visit returns false, iteration stops early.
func (idx *Index) Range(visit func(Path, Entry) bool) {
	for _, e := range idx.entries {
		if !visit(e.path, e.entry) {
			return
		}
	}
}
