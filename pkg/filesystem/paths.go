package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// manderrowConfigurationName is the name of the global configuration file
	// inside the user's home directory.
	manderrowConfigurationName = ".manderrow.toml"

	// ManderrowDataDirectoryName is the name of the manderrow data directory
	// inside the user's home directory.
	ManderrowDataDirectoryName = ".manderrow"

	// ManderrowCacheDirectoryName is the name of the archive cache
	// subdirectory within the data directory (see pkg/cache).
	ManderrowCacheDirectoryName = "cache"

	// ManderrowStagingDirectoryName is the name of the subdirectory used for
	// any staging state that can't live as a sibling of the install target
	// (currently unused by pkg/install, which stages directly next to its
	// target, but kept for parity with the data directory layout other
	// manderrow components expect).
	ManderrowStagingDirectoryName = "staging"

	// TemporaryNamePrefix is the file name prefix used for all temporary
	// files and directories created by manderrow. Using a recognizable
	// prefix keeps ephemeral staging artifacts identifiable if an install is
	// interrupted before cleanup.
	TemporaryNamePrefix = ".manderrow-temporary-"
)

// HomeDirectory is the cached path to the current user's home directory.
var HomeDirectory string

// ManderrowDataDirectoryPath is the path to the manderrow data directory. It
// can be overridden in init functions or entry points, but this should be
// done before any calls to Manderrow.
var ManderrowDataDirectoryPath string

// ManderrowConfigurationPath is the path to the global manderrow
// configuration file.
var ManderrowConfigurationPath string

func init() {
	// Grab the current user's home directory.
	if h, err := os.UserHomeDir(); err != nil {
		panic(errors.Wrap(err, "unable to query user's home directory"))
	} else if h == "" {
		panic(errors.New("home directory path empty"))
	} else {
		HomeDirectory = h
	}

	// Compute the path to the manderrow data directory.
	ManderrowDataDirectoryPath = filepath.Join(HomeDirectory, ManderrowDataDirectoryName)

	// Compute the path to the configuration file.
	ManderrowConfigurationPath = filepath.Join(HomeDirectory, manderrowConfigurationName)
}

// Manderrow computes (and optionally creates) subdirectories inside the
// manderrow data directory.
func Manderrow(create bool, pathComponents ...string) (string, error) {
	// Compute the target path.
	result := filepath.Join(ManderrowDataDirectoryPath, filepath.Join(pathComponents...))

	// If requested, attempt to create the directory and mark the data
	// directory root as hidden.
	if create {
		if err := os.MkdirAll(result, 0700); err != nil {
			return "", errors.Wrap(err, "unable to create subpath")
		} else if err := MarkHidden(ManderrowDataDirectoryPath); err != nil {
			return "", errors.Wrap(err, "unable to hide manderrow data directory")
		}
	}

	// Success.
	return result, nil
}
