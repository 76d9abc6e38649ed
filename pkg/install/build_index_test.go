package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jack-the-Pro101/manderrow/pkg/content"
	"github.com/Jack-the-Pro101/manderrow/pkg/index"
)

func TestBuildIndexCoversFilesDirsAndSymlinks(t *testing.T) {
	root := t.TempDir()
	writeIndexedFile(t, root, "a.txt", []byte("hello"))
	writeIndexedFile(t, root, "dir/b.txt", []byte("world"))
	if err := os.Symlink("a.txt", filepath.Join(root, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	aPath, _ := index.PathFromNative("a.txt")
	entry, ok := idx.Get(aPath)
	if !ok || entry.Kind != index.EntryKindFile {
		t.Fatalf("expected a.txt file entry, got %+v (ok=%v)", entry, ok)
	}
	wantDigest, err := content.HashFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if entry.Hash != wantDigest {
		t.Fatal("a.txt digest mismatch")
	}

	dirPath, _ := index.PathFromNative("dir")
	if entry, ok := idx.Get(dirPath); !ok || entry.Kind != index.EntryKindDirectory {
		t.Fatalf("expected dir directory entry, got %+v (ok=%v)", entry, ok)
	}

	linkPath, _ := index.PathFromNative("link")
	entry, ok = idx.Get(linkPath)
	if !ok || entry.Kind != index.EntryKindSymlink {
		t.Fatalf("expected link symlink entry, got %+v (ok=%v)", entry, ok)
	}
	if entry.SymlinkTarget != "a.txt" {
		t.Fatalf("expected symlink target a.txt, got %q", entry.SymlinkTarget)
	}
}

func TestBuildIndexExcludesManifestItself(t *testing.T) {
	root := t.TempDir()
	writeIndexedFile(t, root, "a.txt", []byte("hello"))

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if err := WriteIndex(root, idx); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	rebuilt, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex (after write): %v", err)
	}

	manifestPath, _ := index.PathFromNative(index.Name)
	if _, ok := rebuilt.Get(manifestPath); ok {
		t.Fatal("manifest file should not be indexed")
	}
	if rebuilt.Len() != idx.Len() {
		t.Fatalf("expected same entry count, got %d vs %d", rebuilt.Len(), idx.Len())
	}
}

func TestIsOutsideRoot(t *testing.T) {
	cases := map[string]bool{
		"..":            true,
		"../escape":     true,
		"sibling":       false,
		".":             false,
		"nested/child":  false,
	}
	for rel, want := range cases {
		if got := isOutsideRoot(filepath.FromSlash(rel)); got != want {
			t.Errorf("isOutsideRoot(%q) = %v, want %v", rel, got, want)
		}
	}
}
