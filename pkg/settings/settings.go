// Package settings loads and saves the manderrow installer's TOML-based
// global configuration file (see pkg/encoding for the underlying
// marshal/unmarshal-and-atomically-save plumbing).
package settings

import (
	"os"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/encoding"
	"github.com/Jack-the-Pro101/manderrow/pkg/filesystem"
	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
)

// DefaultMaxArchiveSize is used when no MaxArchiveSize is configured.
const DefaultMaxArchiveSize = 1 << 30 // 1 GiB

// Settings is the installer's global, TOML-serialized configuration.
type Settings struct {
	// CacheRoot overrides the default archive cache directory
	// (<data dir>/cache) when non-empty.
	CacheRoot string `toml:"cache_root"`
	// MaxArchiveSize is a human-readable size string (e.g. "512MiB")
	// enforced as a hard cap on both cached and in-memory one-shot archive
	// downloads. Empty means DefaultMaxArchiveSize applies.
	MaxArchiveSize string `toml:"max_archive_size"`
	// ProductID overrides the default process-wide product identifier
	// (see pkg/manderrow.ProductID) when non-empty.
	ProductID string `toml:"product_id"`
	// LogLevel selects RootLogger's verbosity (see pkg/logging.ParseLevel)
	// when non-empty; MANDERROW_LOG_LEVEL takes precedence if both are set.
	LogLevel string `toml:"log_level"`
}

// ApplyLogLevel parses LogLevel and applies it via logging.SetLevel, unless
// MANDERROW_LOG_LEVEL holds a recognized level, which is then kept. An
// empty or unrecognized LogLevel leaves the logger's current threshold
// untouched rather than forcing LevelDisabled (an unrecognized one is also
// reported as an error).
func (s *Settings) ApplyLogLevel() error {
	if s.LogLevel == "" {
		return nil
	}
	level, ok := logging.ParseLevel(s.LogLevel)
	if !ok {
		return errors.Errorf("invalid log_level %q", s.LogLevel)
	}
	if _, envSet := logging.ParseLevel(os.Getenv("MANDERROW_LOG_LEVEL")); envSet {
		return nil
	}
	logging.SetLevel(level)
	return nil
}

// Load reads settings from the manderrow global configuration file. A
// missing file is not an error: it yields a zero-value Settings.
func Load() (*Settings, error) {
	result := &Settings{}
	if err := encoding.LoadAndUnmarshalTOML(filesystem.ManderrowConfigurationPath, result); err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrap(err, "unable to load settings")
	}
	return result, nil
}

// Save writes settings to the manderrow global configuration file,
// atomically.
func (s *Settings) Save(logger *logging.Logger) error {
	return encoding.MarshalAndSaveTOML(filesystem.ManderrowConfigurationPath, logger, s)
}

// MaxArchiveSizeBytes parses MaxArchiveSize via docker/go-units with binary
// multipliers (so "512MiB" and "512MB" are both 512*1024*1024 bytes),
// returning DefaultMaxArchiveSize if it is unset.
func (s *Settings) MaxArchiveSizeBytes() (int64, error) {
	if s.MaxArchiveSize == "" {
		return DefaultMaxArchiveSize, nil
	}
	size, err := units.RAMInBytes(s.MaxArchiveSize)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid max_archive_size %q", s.MaxArchiveSize)
	}
	return size, nil
}

// CacheRootOrDefault resolves the archive cache directory, creating it (and
// its parent manderrow data directory) if requested.
func (s *Settings) CacheRootOrDefault(create bool) (string, error) {
	if s.CacheRoot != "" {
		root, err := filesystem.Normalize(s.CacheRoot)
		if err != nil {
			return "", errors.Wrap(err, "unable to normalize configured cache root")
		}
		if create {
			if err := os.MkdirAll(root, 0700); err != nil {
				return "", errors.Wrap(err, "unable to create configured cache root")
			}
		}
		return root, nil
	}
	return filesystem.Manderrow(create, filesystem.ManderrowCacheDirectoryName)
}
