package install

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Jack-the-Pro101/manderrow/pkg/must"
)

// maxConcurrentExtractions bounds how many zip entries are extracted at
// once; extraction is I/O-bound per entry but CPU-bound for decompression,
// so an unbounded fan-out would just thrash the disk.
const maxConcurrentExtractions = 8

// Extract extracts every entry in reader into destDir, which must already
// exist and be empty. Directory entries are created as needed (including
// implicitly, for files nested inside directories the zip never lists
// explicitly). Unsupported entry types (anything that isn't a regular
// file, directory, or symlink per the zip external-attributes convention)
// fail the whole extraction.
func Extract(reader *zip.Reader, destDir string) error {
	group := new(errgroup.Group)
	group.SetLimit(maxConcurrentExtractions)

	for _, zipFile := range reader.File {
		zipFile := zipFile
		group.Go(func() error {
			return extractEntry(zipFile, destDir)
		})
	}

	return group.Wait()
}

func extractEntry(zipFile *zip.File, destDir string) error {
	name := filepath.FromSlash(zipFile.Name)
	destPath := filepath.Join(destDir, name)

	if rel, err := filepath.Rel(destDir, destPath); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return errors.Errorf("zip entry %q escapes destination directory", zipFile.Name)
	}

	mode := zipFile.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return extractSymlink(zipFile, destPath)
	case zipFile.FileInfo().IsDir():
		return os.MkdirAll(destPath, 0755)
	case mode.IsRegular():
		return extractFile(zipFile, destPath)
	default:
		return errors.Wrapf(ErrUnsupportedEntryType, "entry %q", zipFile.Name)
	}
}

func extractFile(zipFile *zip.File, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrapf(err, "unable to create parent directory for %q", destPath)
	}

	reader, err := zipFile.Open()
	if err != nil {
		return errors.Wrapf(err, "unable to open zip entry %q", zipFile.Name)
	}
	defer reader.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, zipFile.Mode().Perm()|0600)
	if err != nil {
		return errors.Wrapf(err, "unable to create %q", destPath)
	}
	defer must.Close(out, nil)

	if _, err := io.Copy(out, reader); err != nil {
		return errors.Wrapf(err, "unable to write %q", destPath)
	}

	return nil
}

func extractSymlink(zipFile *zip.File, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrapf(err, "unable to create parent directory for %q", destPath)
	}

	reader, err := zipFile.Open()
	if err != nil {
		return errors.Wrapf(err, "unable to open symlink entry %q", zipFile.Name)
	}
	defer reader.Close()

	targetBytes, err := io.ReadAll(reader)
	if err != nil {
		return errors.Wrapf(err, "unable to read symlink target for %q", zipFile.Name)
	}

	return os.Symlink(string(targetBytes), destPath)
}
