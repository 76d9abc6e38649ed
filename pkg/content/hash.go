// Package content computes Blake3 content digests for installed files,
// preferring a memory-mapped read where the platform supports it and
// falling back to a streaming read elsewhere.
package content

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"lukechampine.com/blake3"
)

// DigestSize is the width, in bytes, of a content digest.
const DigestSize = 32

// streamBufferSize is the buffer size used for the streaming-read fallback.
const streamBufferSize = 256 * 1024

// HashFile computes the Blake3 digest of the file at path. On darwin and
// linux the file is memory-mapped and fed to the hasher directly; on other
// platforms (and if mapping fails, e.g. on an unusual filesystem) a
// streaming read with a fixed-size buffer is used instead.
func HashFile(path string) ([DigestSize]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [DigestSize]byte{}, errors.Wrap(err, "unable to open file")
	}
	defer file.Close()

	if digest, ok, err := hashFileMapped(file); err != nil {
		return [DigestSize]byte{}, err
	} else if ok {
		return digest, nil
	}

	return hashStream(file)
}

// hashStream hashes r by reading it in fixed-size chunks, used as the
// fallback when memory-mapping isn't available or didn't succeed.
func hashStream(r io.Reader) ([DigestSize]byte, error) {
	hasher := blake3.New(DigestSize, nil)
	buffer := make([]byte, streamBufferSize)
	if _, err := io.CopyBuffer(hasher, r, buffer); err != nil {
		return [DigestSize]byte{}, errors.Wrap(err, "unable to read file content")
	}
	var digest [DigestSize]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Hash computes the Blake3 digest of data already held in memory. It yields
// the same digest HashFile would for a file holding the same bytes.
func Hash(data []byte) [DigestSize]byte {
	hasher := blake3.New(DigestSize, nil)
	hasher.Write(data)
	var digest [DigestSize]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HexString renders a digest as a lowercase hex string.
func HexString(digest [DigestSize]byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, DigestSize*2)
	for i, b := range digest {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0x0F]
	}
	return string(out)
}
