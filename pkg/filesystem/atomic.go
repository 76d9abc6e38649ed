package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
)

// Rename performs a same-volume atomic rename, surfacing cross-device
// attempts as a distinguishable error via IsCrossDeviceError. It is the
// building block for both WriteFileAtomic and the installer's final commit
// step (pkg/install), neither of which is ever asked to rename across
// volumes (staging directories are always created as siblings of their
// eventual target).
func Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// WriteFileAtomic writes a file to disk in an atomic fashion by using an
// intermediate temporary file that is swapped into place using Rename.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode, logger *logging.Logger) error {
	// Create a temporary file in the destination directory so the final
	// rename is guaranteed to be same-volume.
	temporary, err := os.CreateTemp(filepath.Dir(path), TemporaryNamePrefix+"atomic-write")
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}
	temporaryName := temporary.Name()

	if _, err = temporary.Write(data); err != nil {
		temporary.Close()
		removeBestEffort(temporaryName, logger)
		return errors.Wrap(err, "unable to write data to temporary file")
	}
	if err = temporary.Close(); err != nil {
		removeBestEffort(temporaryName, logger)
		return errors.Wrap(err, "unable to close temporary file")
	}
	if err = os.Chmod(temporaryName, permissions); err != nil {
		removeBestEffort(temporaryName, logger)
		return errors.Wrap(err, "unable to change file permissions")
	}
	if err = Rename(temporaryName, path); err != nil {
		removeBestEffort(temporaryName, logger)
		return errors.Wrap(err, "unable to rename file into place")
	}

	return nil
}

// removeBestEffort removes a path and logs (rather than surfacing) any
// failure, since the caller is already unwinding from a different error.
func removeBestEffort(path string, logger *logging.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn(errors.Wrapf(err, "unable to remove %q", path))
	}
}
