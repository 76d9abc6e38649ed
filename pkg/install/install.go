// Package install implements the full package installation pipeline:
// scanning an existing installation for user changes, fetching and
// extracting an archive into a staged directory, building its content
// index, merging preserved changes back in, and atomically committing the
// result over the target directory.
package install

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/cache"
	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
	"github.com/Jack-the-Pro101/manderrow/pkg/must"
	"github.com/Jack-the-Pro101/manderrow/pkg/settings"
)

// lockSuffix is appended to the target path to name its advisory install
// lock, so concurrent installs/updates of the same target serialize rather
// than racing to stage and commit over one another.
const lockSuffix = ".manderrow-install.lock"

// lockRetryInterval is how often TryLockContext re-attempts the advisory
// lock while waiting for a concurrent install of the same target to finish.
const lockRetryInterval = 100 * time.Millisecond

// Install fetches the archive identified by url (optionally verified
// against hexDigest, which also enables archive caching) and installs it
// at target, preserving any local modifications to the existing
// installation that Scan can detect. On success it returns the committed
// StagedPackage. A failure before the final commit leaves the target
// directory untouched; if the commit's rename fails after the old target
// has been removed, the target is left absent.
//
// If hexDigest is empty, the archive is fetched once into memory and never
// cached — this is the "unpinned" install path used when no known-good
// digest is available up front.
func Install(ctx context.Context, url, hexDigest, target string, cfg *settings.Settings, logger *logging.Logger) (*StagedPackage, error) {
	if filepath.Dir(target) == target {
		return nil, errors.New("target must have a parent directory")
	}

	// Each invocation gets its own identifier so its log lines can be
	// correlated across a run that fetches, extracts, and merges.
	logger = logger.Sublogger(uuid.NewString())

	lock := flock.New(target + lockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, errors.Wrap(err, "unable to acquire install lock")
	}
	if !locked {
		return nil, errors.New("another install is already in progress for this target")
	}
	defer must.Unlock(lock, logger)

	changes, err := Scan(target)
	if err != nil {
		if !errors.Is(err, ErrIndexNotFound) {
			return nil, err
		}
		changes = nil
	}

	staged, err := newStagedPackage(target, logger)
	if err != nil {
		return nil, err
	}
	defer staged.Discard()

	reader, closeArchive, err := openArchive(ctx, url, hexDigest, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeArchive()

	if err := Extract(reader, staged.Root()); err != nil {
		return nil, errors.Wrap(err, "unable to extract archive")
	}

	idx, err := BuildIndex(staged.Root())
	if err != nil {
		return nil, err
	}
	if err := WriteIndex(staged.Root(), idx); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := Merge(target, changes, staged.Root()); err != nil {
			return nil, err
		}
	}

	if err := staged.Finish(); err != nil {
		return nil, err
	}

	return staged, nil
}

// openArchive resolves the archive's bytes according to whether a digest
// was supplied: with a digest, the archive cache is consulted (and
// populated on miss); without one, the archive is fetched directly into
// memory and never persisted to the cache. The returned closer releases
// any backing file descriptor and must be called once the reader is no
// longer needed.
func openArchive(ctx context.Context, url, hexDigest string, cfg *settings.Settings, logger *logging.Logger) (*zip.Reader, func(), error) {
	maxSize, err := cfg.MaxArchiveSizeBytes()
	if err != nil {
		return nil, nil, err
	}

	if hexDigest == "" {
		data, err := cache.FetchToMemory(ctx, url, maxSize)
		if err != nil {
			return nil, nil, err
		}
		reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to read archive")
		}
		return reader, func() {}, nil
	}

	cacheRoot, err := cfg.CacheRootOrDefault(true)
	if err != nil {
		return nil, nil, err
	}
	archiveCache := cache.New(cacheRoot, logger)

	path, err := archiveCache.Ensure(ctx, url, hexDigest, maxSize)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to open cached archive")
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, errors.Wrap(err, "unable to stat cached archive")
	}
	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, nil, errors.Wrap(err, "unable to read cached archive")
	}
	return reader, func() {
		if err := file.Close(); err != nil {
			logger.Warn(errors.Wrap(err, "unable to close cached archive"))
		}
	}, nil
}

