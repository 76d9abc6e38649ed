package install

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergePathsDirOverDir(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeIndexedFile(t, src, "nested/file.txt", []byte("from-src"))
	writeIndexedFile(t, dst, "nested/other.txt", []byte("already-there"))

	if err := mergePaths(src, dst); err != nil {
		t.Fatalf("mergePaths: %v", err)
	}

	if data, err := os.ReadFile(filepath.Join(dst, "nested/file.txt")); err != nil || string(data) != "from-src" {
		t.Fatalf("expected nested/file.txt copied, got %q err=%v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dst, "nested/other.txt")); err != nil {
		t.Fatalf("expected nested/other.txt to survive overlay, got err=%v", err)
	}
}

func TestMergePathsDirReplacesFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeIndexedFile(t, src, "thing/child.txt", []byte("x"))
	writeIndexedFile(t, dst, "thing", []byte("was-a-file"))

	if err := mergePaths(filepath.Join(src, "thing"), filepath.Join(dst, "thing")); err != nil {
		t.Fatalf("mergePaths: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "thing"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected thing to become a directory, info=%+v err=%v", info, err)
	}
}

func TestMergePathsFileReplacesDir(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeIndexedFile(t, src, "thing", []byte("now-a-file"))
	writeIndexedFile(t, dst, "thing/child.txt", []byte("x"))

	if err := mergePaths(filepath.Join(src, "thing"), filepath.Join(dst, "thing")); err != nil {
		t.Fatalf("mergePaths: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "thing"))
	if err != nil || string(data) != "now-a-file" {
		t.Fatalf("expected thing to become file with contents, got %q err=%v", data, err)
	}
}

func TestMergeHandlesDeletedStatus(t *testing.T) {
	from := t.TempDir()
	into := t.TempDir()
	writeIndexedFile(t, into, "gone.txt", []byte("x"))

	changes := []Change{{Path: filepath.Join(from, "gone.txt"), Status: Deleted}}
	if err := Merge(from, changes, into); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if _, err := os.Stat(filepath.Join(into, "gone.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected gone.txt removed, err=%v", err)
	}
}

func TestMergeDeletedMissingPathIsNotAnError(t *testing.T) {
	from := t.TempDir()
	into := t.TempDir()

	changes := []Change{{Path: filepath.Join(from, "never-existed.txt"), Status: Deleted}}
	if err := Merge(from, changes, into); err != nil {
		t.Fatalf("Merge should tolerate an already-absent deletion target: %v", err)
	}
}

func TestMergePathsSymlinkIsDereferencedIntoRegularFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "target.txt"), []byte("linked-content"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Symlink(filepath.Join(src, "target.txt"), filepath.Join(src, "link")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	if err := mergePaths(filepath.Join(src, "link"), filepath.Join(dst, "link")); err != nil {
		t.Fatalf("mergePaths: %v", err)
	}

	info, err := os.Lstat(filepath.Join(dst, "link"))
	if err != nil {
		t.Fatalf("Lstat: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Fatalf("expected a regular file at dst, got a symlink")
	}
	data, err := os.ReadFile(filepath.Join(dst, "link"))
	if err != nil || string(data) != "linked-content" {
		t.Fatalf("expected dereferenced content %q, got %q err=%v", "linked-content", data, err)
	}
}

func TestMergePathsDanglingSymlinkFails(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.Symlink(filepath.Join(src, "does-not-exist"), filepath.Join(src, "link")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	if err := mergePaths(filepath.Join(src, "link"), filepath.Join(dst, "link")); err == nil {
		t.Fatal("expected mergePaths to fail on a dangling symlink")
	}
}
