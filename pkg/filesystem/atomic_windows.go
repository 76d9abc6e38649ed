//go:build windows

package filesystem

import (
	"os"

	"golang.org/x/sys/windows"
)

// IsCrossDeviceError checks whether or not an error returned by os.Rename is
// due to an attempted rename across devices/volumes.
func IsCrossDeviceError(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	return ok && linkErr.Err == windows.ERROR_NOT_SAME_DEVICE
}
