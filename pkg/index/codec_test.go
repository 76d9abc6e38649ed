package index

import (
	"bytes"
	"testing"
)

func mustPath(t *testing.T, native string) Path {
	t.Helper()
	p, err := PathFromNative(native)
	if err != nil {
		t.Fatalf("unable to construct path %q: %v", native, err)
	}
	return p
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	idx := New()
	idx.Set(mustPath(t, "a.txt"), FileEntry([DigestSize]byte{1, 2, 3}))
	idx.Set(mustPath(t, "sub"), DirectoryEntry())
	idx.Set(mustPath(t, "sub/b.txt"), FileEntry([DigestSize]byte{4, 5, 6}))
	idx.Set(mustPath(t, "link"), SymlinkEntry("sub/b.txt"))

	var buffer bytes.Buffer
	if err := Encode(&buffer, idx); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(&buffer)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded.Len() != idx.Len() {
		t.Fatalf("entry count mismatch: got %d, want %d", decoded.Len(), idx.Len())
	}

	for _, path := range []string{"a.txt", "sub", "sub/b.txt", "link"} {
		p := mustPath(t, path)
		want, ok := idx.Get(p)
		if !ok {
			t.Fatalf("missing expected entry for %q in source index", path)
		}
		got, ok := decoded.Get(p)
		if !ok {
			t.Fatalf("missing entry for %q after round trip", path)
		}
		if got.Kind != want.Kind {
			t.Errorf("%q: kind mismatch: got %v, want %v", path, got.Kind, want.Kind)
		}
		if got.Kind == EntryKindFile && got.Hash != want.Hash {
			t.Errorf("%q: hash mismatch", path)
		}
		if got.Kind == EntryKindSymlink && got.SymlinkTarget != want.SymlinkTarget {
			t.Errorf("%q: symlink target mismatch: got %q, want %q", path, got.SymlinkTarget, want.SymlinkTarget)
		}
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an index file at all")))
	if err == nil {
		t.Fatal("expected error decoding non-index data")
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	idx := New()
	idx.Set(mustPath(t, "a.txt"), FileEntry([DigestSize]byte{}))
	var buffer bytes.Buffer
	if err := Encode(&buffer, idx); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data := buffer.Bytes()
	data[4] = 0xFF // corrupt the version byte.

	_, err := Decode(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error decoding unknown version")
	}
}

func TestEmptyIndexRoundTrip(t *testing.T) {
	idx := New()
	var buffer bytes.Buffer
	if err := Encode(&buffer, idx); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(&buffer)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Len() != 0 {
		t.Fatalf("expected empty index, got %d entries", decoded.Len())
	}
}
