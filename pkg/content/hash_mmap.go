//go:build darwin || linux

package content

import (
	"os"

	"golang.org/x/sys/unix"
	"lukechampine.com/blake3"
)

// hashFileMapped attempts to hash file by memory-mapping its content. The
// second return value is false if mapping isn't applicable (e.g. the file
// is empty, which unix.Mmap rejects) or failed for a transient reason,
// signaling the caller to fall back to a streaming read rather than
// treating mapping failure as fatal.
func hashFileMapped(file *os.File) ([DigestSize]byte, bool, error) {
	info, err := file.Stat()
	if err != nil {
		return [DigestSize]byte{}, false, nil
	}
	size := info.Size()
	if size == 0 {
		// unix.Mmap rejects zero-length mappings; the streaming fallback
		// handles empty files fine (and cheaply).
		return [DigestSize]byte{}, false, nil
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return [DigestSize]byte{}, false, nil
	}
	defer unix.Munmap(data)

	hasher := blake3.New(DigestSize, nil)
	hasher.Write(data)
	var digest [DigestSize]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, true, nil
}
