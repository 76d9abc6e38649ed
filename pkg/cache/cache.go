// Package cache implements the content-addressed archive cache: downloaded
// zip archives are stored under <cache root>/<hex digest>.zip and
// re-verified on every lookup rather than trusted once written, so that a
// corrupted or partially-written cache entry self-heals on the next call.
package cache

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/Jack-the-Pro101/manderrow/pkg/content"
	"github.com/Jack-the-Pro101/manderrow/pkg/filesystem"
	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
	"github.com/Jack-the-Pro101/manderrow/pkg/manderrow"
	"github.com/Jack-the-Pro101/manderrow/pkg/must"
)

// Cache is a content-addressed store of downloaded archives rooted at a
// single directory.
type Cache struct {
	root   string
	logger *logging.Logger
}

// New creates a Cache rooted at root. The directory is not required to
// exist yet; Ensure creates it (and any parents) on first write.
func New(root string, logger *logging.Logger) *Cache {
	return &Cache{root: root, logger: logger}
}

// pathForDigest computes the cache path for a lowercase hex digest.
func (c *Cache) pathForDigest(hexDigest string) string {
	return filepath.Join(c.root, hexDigest+".zip")
}

// Ensure returns a local path to an archive whose content matches hexDigest,
// fetching url and populating the cache if necessary. If the cached file
// already exists and its Blake3 digest matches hexDigest, no network
// request is made. A mismatched or corrupted cache entry on the fetch path
// is simply overwritten; it is NOT re-verified after writing — a
// concurrent writer's corruption, or a download aborted mid-stream, is
// instead caught on the *next* call, when the stale digest fails to match.
func (c *Cache) Ensure(ctx context.Context, url, hexDigest string, maxSize int64) (string, error) {
	path := c.pathForDigest(hexDigest)

	if digest, err := content.HashFile(path); err == nil && content.HexString(digest) == hexDigest {
		return path, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrap(err, "unable to verify cached archive")
	}

	if err := os.MkdirAll(c.root, 0700); err != nil {
		return "", errors.Wrap(err, "unable to create cache directory")
	}

	if err := fetchToFile(ctx, url, path, maxSize, c.logger); err != nil {
		return "", err
	}

	return path, nil
}

// FetchToMemory fetches url into memory without touching the cache, used
// by the no-digest one-shot install path. The response body is capped at
// maxSize; a larger response is a fatal error rather than being silently
// truncated.
func FetchToMemory(ctx context.Context, url string, maxSize int64) ([]byte, error) {
	response, err := doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	limited := io.LimitReader(response.Body, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}
	if int64(len(data)) > maxSize {
		return nil, errors.Errorf("archive exceeds configured maximum size (%s)", humanize.Bytes(uint64(maxSize)))
	}

	return data, nil
}

// fetchToFile streams url's body directly to a temporary file in the same
// directory as path, then renames it into place, so a crash mid-download
// never leaves a half-written file at the final cache path.
func fetchToFile(ctx context.Context, url, path string, maxSize int64, logger *logging.Logger) error {
	response, err := doGet(ctx, url)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	temporary, err := os.CreateTemp(filepath.Dir(path), filesystem.TemporaryNamePrefix+"fetch")
	if err != nil {
		return errors.Wrap(err, "unable to create temporary download file")
	}
	temporaryName := temporary.Name()

	limited := io.LimitReader(response.Body, maxSize+1)
	written, err := io.Copy(temporary, limited)
	if err != nil {
		temporary.Close()
		must.OSRemove(temporaryName, logger)
		return errors.Wrap(err, "unable to write response body")
	}
	if written > maxSize {
		temporary.Close()
		must.OSRemove(temporaryName, logger)
		return errors.Errorf("archive exceeds configured maximum size (%s)", humanize.Bytes(uint64(maxSize)))
	}
	if err := temporary.Close(); err != nil {
		must.OSRemove(temporaryName, logger)
		return errors.Wrap(err, "unable to close temporary download file")
	}

	if err := filesystem.Rename(temporaryName, path); err != nil {
		must.OSRemove(temporaryName, logger)
		return errors.Wrap(err, "unable to move downloaded archive into cache")
	}

	return nil
}

// doGet performs an HTTP GET, following redirects (the default transport
// behavior), and treats any non-2xx response as fatal.
func doGet(ctx context.Context, url string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to construct request")
	}
	request.Header.Set("User-Agent", manderrow.UserAgent())

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "unable to perform request")
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		response.Body.Close()
		return nil, errors.Errorf("unexpected HTTP status: %s", response.Status)
	}

	return response, nil
}
