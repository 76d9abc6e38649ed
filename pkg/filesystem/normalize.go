package filesystem

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// expandHomeDirectory resolves a leading "~", "~/rest", or "~user/rest"
// component to an absolute home directory, supporting an explicit username
// the same way a POSIX shell does. Paths with no leading tilde pass through
// unchanged.
func expandHomeDirectory(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	username, rest, hasRest := cutPathSeparator(path[1:])

	home, err := homeDirectoryFor(username)
	if err != nil {
		return "", err
	}
	if !hasRest {
		return home, nil
	}
	return filepath.Join(home, rest), nil
}

// cutPathSeparator splits s at its first platform path separator, mirroring
// strings.Cut but using os.IsPathSeparator so it also recognizes Windows'
// backslash.
func cutPathSeparator(s string) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if os.IsPathSeparator(s[i]) {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// homeDirectoryFor resolves the home directory for username, or the
// current user's if username is empty.
func homeDirectoryFor(username string) (string, error) {
	if username == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "unable to determine home directory")
		}
		return home, nil
	}

	account, err := user.Lookup(username)
	if err != nil {
		return "", errors.Wrapf(err, "unable to look up user %q", username)
	}
	return account.HomeDir, nil
}

// Normalize expands a leading home-directory tilde and resolves the result
// to a cleaned absolute path, the form every consumer of a configured
// filesystem path in this package expects.
func Normalize(path string) (string, error) {
	expanded, err := expandHomeDirectory(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to expand home directory")
	}

	absolute, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrap(err, "unable to compute absolute path")
	}
	return absolute, nil
}
