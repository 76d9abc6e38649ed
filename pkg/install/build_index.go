package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/content"
	"github.com/Jack-the-Pro101/manderrow/pkg/filesystem"
	"github.com/Jack-the-Pro101/manderrow/pkg/index"
)

// BuildIndex walks the extracted tree at root (skipping the root itself)
// and produces an Index describing every file, directory, and symlink it
// contains. It uses symlink-aware stat (os.Lstat, via the walker) so
// symlinks are recorded as such rather than followed.
func BuildIndex(root string) (*index.Index, error) {
	idx := index.New()

	walkErr := filesystem.Walk(root, func(path string, info os.FileInfo, err error) error {
		if path == root {
			return err
		}
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return errors.Wrap(relErr, "unable to compute relative path")
		}
		if rel == index.Name {
			return nil
		}

		relPath, pathErr := index.PathFromNative(rel)
		if pathErr != nil {
			return errors.Wrapf(pathErr, "unsupported path %q", path)
		}

		entry, buildErr := buildEntry(path, info, root)
		if buildErr != nil {
			return buildErr
		}
		idx.Set(relPath, entry)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, "unable to walk extracted tree")
	}

	return idx, nil
}

func buildEntry(path string, info os.FileInfo, root string) (index.Entry, error) {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return index.Entry{}, errors.Wrapf(err, "unable to read symlink %q", path)
		}
		stored := target
		if filepath.IsAbs(target) {
			if rel, relErr := filepath.Rel(root, target); relErr == nil && !isOutsideRoot(rel) {
				stored = rel
			}
		}
		return index.SymlinkEntry(stored), nil
	case info.IsDir():
		return index.DirectoryEntry(), nil
	case info.Mode().IsRegular():
		digest, err := content.HashFile(path)
		if err != nil {
			return index.Entry{}, errors.Wrapf(err, "unable to hash %q", path)
		}
		return index.FileEntry(digest), nil
	default:
		return index.Entry{}, errors.Wrapf(ErrUnsupportedEntryType, "entry %q", path)
	}
}

// isOutsideRoot reports whether a filepath.Rel result escapes the root
// directory (i.e. it climbs above it via "..").
func isOutsideRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// WriteIndex serializes idx and writes it to root/.manderrow_content_index.
// Because root is always still an uncommitted staging directory at the
// point this is called, a direct (non-atomic) write is sufficient — the
// whole directory disappears if the enclosing install is aborted.
func WriteIndex(root string, idx *index.Index) error {
	file, err := os.Create(filepath.Join(root, index.Name))
	if err != nil {
		return errors.Wrap(err, "unable to create index file")
	}
	defer file.Close()

	if err := index.Encode(file, idx); err != nil {
		return errors.Wrap(err, "unable to encode index")
	}
	return nil
}
