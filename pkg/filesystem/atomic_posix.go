//go:build !windows

package filesystem

import (
	"os"
	"syscall"
)

// IsCrossDeviceError checks whether or not an error returned by os.Rename is
// due to an attempted rename across devices.
func IsCrossDeviceError(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	return ok && linkErr.Err == syscall.EXDEV
}
