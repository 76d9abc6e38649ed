package install

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/must"
)

// Merge replays every preserved change from the old installation rooted at
// fromRoot into the freshly staged tree at intoRoot. Deleted changes remove
// the corresponding path from the staged tree; every other status overlays
// the live file or subtree onto the staged one via mergePaths.
func Merge(fromRoot string, changes []Change, intoRoot string) error {
	for _, change := range changes {
		rel, err := filepath.Rel(fromRoot, change.Path)
		if err != nil {
			return errors.Wrapf(err, "unable to compute relative path for %q", change.Path)
		}
		dst := filepath.Join(intoRoot, rel)

		if change.Status == Deleted {
			if err := os.RemoveAll(dst); err != nil {
				return errors.Wrapf(err, "unable to remove %q", dst)
			}
			continue
		}

		if err := mergePaths(change.Path, dst); err != nil {
			return errors.Wrapf(err, "unable to merge %q into %q", change.Path, dst)
		}
	}
	return nil
}

// mergePaths walks src depth-first and overlays it onto dst, reconciling
// type mismatches according to the following table (src is directory?,
// dst existence/type):
//
//	dir,  dir        -> continue walking (directories overlay)
//	dir,  file-like   -> remove dst; create directory at dst
//	dir,  absent      -> create directory at dst
//	file, dir         -> recursively remove dst; copy file
//	file, file-like   -> copy, overwriting
//	file, absent      -> copy
//
// A symlink at src is bucketed under "file," not given a case of its own:
// os.Lstat reports IsDir() false for it, so it falls to mergeFile, whose
// copyFile follows the link (via plain os.Open, not Lstat) and writes the
// link target's bytes into a new regular file at dst. A changed symlink is
// therefore preserved as the file it pointed to, not as a live link, and a
// dangling symlink fails the merge the same way a missing source file
// would — this matches copying a directory tree with a tool that dereferences
// symlinks by default, rather than recreating them.
//
// Copies are used rather than a recursive rename because a rename would be
// faster but non-atomic: a crash mid-move would corrupt the still-staged
// directory, whereas a copy leaves the old install intact and only the
// final commit (see staged.go) is destructive.
func mergePaths(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "unable to stat %q", src)
	}

	dstInfo, dstErr := os.Lstat(dst)
	dstExists := dstErr == nil
	if dstErr != nil && !os.IsNotExist(dstErr) {
		return errors.Wrapf(dstErr, "unable to stat %q", dst)
	}

	if srcInfo.IsDir() {
		return mergeDirectory(src, dst, dstExists, dstInfo)
	}

	return mergeFile(src, dst, dstExists, dstInfo)
}

func mergeDirectory(src, dst string, dstExists bool, dstInfo os.FileInfo) error {
	if dstExists && !dstInfo.IsDir() {
		if err := os.RemoveAll(dst); err != nil {
			return errors.Wrapf(err, "unable to remove %q", dst)
		}
		dstExists = false
	}
	if !dstExists {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return errors.Wrapf(err, "unable to create directory %q", dst)
		}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "unable to read directory %q", src)
	}
	for _, entry := range entries {
		if err := mergePaths(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func mergeFile(src, dst string, dstExists bool, dstInfo os.FileInfo) error {
	if dstExists && dstInfo.IsDir() {
		if err := os.RemoveAll(dst); err != nil {
			return errors.Wrapf(err, "unable to remove directory %q", dst)
		}
	}
	return copyFile(src, dst)
}

// copyFile copies src into dst, dereferencing src if it is a symlink (via
// os.Open, not a symlink-aware read) since the caller never distinguishes a
// symlink from a regular file.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, "unable to create parent directory for %q", dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "unable to open %q", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "unable to stat %q", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "unable to create %q", dst)
	}
	defer must.Close(out, nil)

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "unable to copy to %q", dst)
	}
	return nil
}
