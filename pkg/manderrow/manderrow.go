// Package manderrow holds process-wide state: the version identifier and the
// caller-supplied product identifier that pkg/cache reports in its HTTP
// User-Agent. All of it is expected to be set once at startup,
// before any install or scan is performed, and left unmodified afterward.
package manderrow

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of the installer
	// core.
	VersionMajor = 0
	// VersionMinor represents the current minor version of the installer
	// core.
	VersionMinor = 1
	// VersionPatch represents the current patch version of the installer
	// core.
	VersionPatch = 0
)

// Version is the human-readable version string.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// DefaultProductID is used when no product identifier has been configured
// explicitly.
const DefaultProductID = "manderrow"

// productID is the process-wide identifier mixed into the user agent for
// archive fetches; the cache and configuration paths do not depend on it. It is set
// once via SetProductID, normally during command-line startup, and read
// thereafter by pkg/cache.
var productID = DefaultProductID

// SetProductID overrides the process-wide product identifier. It must be
// called, if at all, before any pkg/cache or pkg/install operation begins;
// it is not safe to call concurrently with those operations.
func SetProductID(id string) {
	if id != "" {
		productID = id
	}
}

// ProductID returns the current process-wide product identifier.
func ProductID() string {
	return productID
}

// UserAgent returns the string pkg/cache sends as the HTTP User-Agent header
// on every archive fetch, identifying both the installer core and the
// product embedding it.
func UserAgent() string {
	return fmt.Sprintf("%s-installer/%s (%s)", DefaultProductID, Version, ProductID())
}
