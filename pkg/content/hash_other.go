//go:build !darwin && !linux

package content

import "os"

// hashFileMapped never attempts memory-mapping on platforms without a
// golang.org/x/sys/unix implementation (notably Windows); HashFile always
// falls back to the streaming reader there.
func hashFileMapped(file *os.File) ([DigestSize]byte, bool, error) {
	return [DigestSize]byte{}, false, nil
}
