package index

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// magic identifies an index manifest, read as the first four bytes of the
// file. It guards against attempting to parse an unrelated file as an index.
//
// Grounded on the header/version-tag pattern in go-git's idxfile encoder
// (encodeHeader): a fixed magic followed by a version, so a reader can
// validate the format without attempting a full parse first.
var magic = [4]byte{'M', 'R', 'I', 'X'}

// Encode writes idx to w in its versioned binary envelope. The layout is:
//
//	magic[4] version[1] count[varint]
//	for each entry, in map iteration order:
//	  componentCount[varint]
//	  for each component: length[varint] bytes[length]
//	  kind[1]
//	  if kind == file:    hash[32]
//	  if kind == symlink: targetLength[varint] targetBytes[targetLength]
//	  if kind == directory: (no payload)
//
// Every variable-length field is length-prefixed and the rest are
// fixed-width, so a reader can skip entries it doesn't need without fully
// decoding them, and an unrecognized version is rejected
// before any entry is parsed.
func Encode(w io.Writer, idx *Index) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(magic[:]); err != nil {
		return errors.Wrap(err, "unable to write magic")
	}
	if err := bw.WriteByte(byte(idx.version)); err != nil {
		return errors.Wrap(err, "unable to write version")
	}
	if err := writeUvarint(bw, uint64(idx.Len())); err != nil {
		return errors.Wrap(err, "unable to write entry count")
	}

	var encodeErr error
	idx.Range(func(path Path, entry Entry) bool {
		if err := encodeEntry(bw, path, entry); err != nil {
			encodeErr = err
			return false
		}
		return true
	})
	if encodeErr != nil {
		return errors.Wrap(encodeErr, "unable to encode entry")
	}

	return bw.Flush()
}

func encodeEntry(w *bufio.Writer, path Path, entry Entry) error {
	components := path.Components()
	if err := writeUvarint(w, uint64(len(components))); err != nil {
		return err
	}
	for _, component := range components {
		if err := writeString(w, component); err != nil {
			return err
		}
	}
	if err := w.WriteByte(byte(entry.Kind)); err != nil {
		return err
	}
	switch entry.Kind {
	case EntryKindFile:
		if _, err := w.Write(entry.Hash[:]); err != nil {
			return err
		}
	case EntryKindSymlink:
		if err := writeString(w, entry.SymlinkTarget); err != nil {
			return err
		}
	case EntryKindDirectory:
		// No payload.
	default:
		return errors.Errorf("unknown entry kind %d", entry.Kind)
	}
	return nil
}

func writeUvarint(w io.ByteWriter, v uint64) error {
	var buffer [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buffer[:], v)
	for _, b := range buffer[:n] {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w *bufio.Writer, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

// Decode reads a versioned index envelope from r. It returns
// ErrUnsupportedVersion if the envelope's version tag isn't VersionV1, and
// a wrapped error (suitable for classifying as InvalidIndex) for any other
// structural problem.
func Decode(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	var gotMagic [4]byte
	if _, err := io.ReadFull(br, gotMagic[:]); err != nil {
		return nil, errors.Wrap(err, "unable to read magic")
	}
	if gotMagic != magic {
		return nil, errors.New("not a manderrow index file")
	}

	versionByte, err := br.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read version")
	}
	version := Version(versionByte)
	if version != VersionV1 {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}

	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read entry count")
	}

	idx := &Index{version: version, entries: make(map[string]indexedEntry, count)}
	for i := uint64(0); i < count; i++ {
		path, entry, err := decodeEntry(br)
		if err != nil {
			return nil, errors.Wrap(err, "unable to decode entry")
		}
		idx.Set(path, entry)
	}

	return idx, nil
}

func decodeEntry(r *bufio.Reader) (Path, Entry, error) {
	componentCount, err := binary.ReadUvarint(r)
	if err != nil {
		return Path{}, Entry{}, errors.Wrap(err, "unable to read component count")
	}
	components := make([]string, componentCount)
	for i := range components {
		s, err := readString(r)
		if err != nil {
			return Path{}, Entry{}, errors.Wrap(err, "unable to read component")
		}
		if s == "" {
			return Path{}, Entry{}, errors.New("empty path component")
		}
		components[i] = s
	}

	kindByte, err := r.ReadByte()
	if err != nil {
		return Path{}, Entry{}, errors.Wrap(err, "unable to read entry kind")
	}
	kind := EntryKind(kindByte)

	var entry Entry
	switch kind {
	case EntryKindFile:
		entry.Kind = EntryKindFile
		if _, err := io.ReadFull(r, entry.Hash[:]); err != nil {
			return Path{}, Entry{}, errors.Wrap(err, "unable to read hash")
		}
	case EntryKindSymlink:
		target, err := readString(r)
		if err != nil {
			return Path{}, Entry{}, errors.Wrap(err, "unable to read symlink target")
		}
		entry = SymlinkEntry(target)
	case EntryKindDirectory:
		entry = DirectoryEntry()
	default:
		return Path{}, Entry{}, errors.Errorf("unknown entry kind %d", kind)
	}

	return NewPath(components), entry, nil
}

func readString(r *bufio.Reader) (string, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	buffer := make([]byte, length)
	if _, err := io.ReadFull(r, buffer); err != nil {
		return "", err
	}
	return string(buffer), nil
}
