package install

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/filesystem"
	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
)

// StagedPackage owns a fully-populated staging directory that is a sibling
// of its eventual target, built and merged but not yet committed. Go has no
// destructors, so callers MUST arrange for either Finish or Discard to run —
// typically via `defer staged.Discard()` immediately after a successful
// newStagedPackage, which becomes a no-op once Finish has committed.
type StagedPackage struct {
	target  string
	tempDir string
	logger  *logging.Logger

	mu        sync.Mutex
	completed bool
}

// newStagedPackage creates an empty staging directory as a sibling of
// target, guaranteeing the eventual commit rename is same-volume.
func newStagedPackage(target string, logger *logging.Logger) (*StagedPackage, error) {
	parent := filepath.Dir(target)
	tempDir, err := os.MkdirTemp(parent, filesystem.TemporaryNamePrefix+"install-")
	if err != nil {
		return nil, errors.Wrap(err, "unable to create staging directory")
	}
	return &StagedPackage{target: target, tempDir: tempDir, logger: logger}, nil
}

// Root returns the staging directory's path, for use while populating it.
func (s *StagedPackage) Root() string {
	return s.tempDir
}

// Finish commits the staged tree as the new target: the existing target (if
// any) is removed, and the staging directory is renamed into its place.
// Once Finish returns successfully, subsequent Discard calls are no-ops.
func (s *StagedPackage) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return errors.New("package already finished or discarded")
	}

	if err := os.RemoveAll(s.target); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to remove existing target %q", s.target)
	}
	if err := filesystem.Rename(s.tempDir, s.target); err != nil {
		return errors.Wrap(err, "unable to commit staged package")
	}

	s.completed = true
	return nil
}

// Discard removes the staging directory without touching target. It is
// safe to call after a successful Finish (it becomes a no-op) and safe to
// call multiple times.
func (s *StagedPackage) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return
	}
	s.completed = true

	if err := os.RemoveAll(s.tempDir); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(errors.Wrapf(err, "unable to remove staging directory %q", s.tempDir))
	}
}
