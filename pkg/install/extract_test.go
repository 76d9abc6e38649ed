package install

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func buildZip(t *testing.T, entries map[string]string) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := writer.Create(name)
		if err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Write %q: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return reader
}

func TestExtractCreatesNestedFiles(t *testing.T) {
	reader := buildZip(t, map[string]string{
		"a.txt":        "hello",
		"nested/b.txt": "world",
	})

	dest := t.TempDir()
	if err := Extract(reader, dest); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for path, want := range map[string]string{
		filepath.Join(dest, "a.txt"):        "hello",
		filepath.Join(dest, "nested/b.txt"): "world",
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile %q: %v", path, err)
		}
		if string(data) != want {
			t.Fatalf("%q: got %q, want %q", path, data, want)
		}
	}
}

func TestExtractRejectsPathEscape(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	w, err := writer.Create("../escape.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	dest := t.TempDir()
	if err := Extract(reader, dest); err == nil {
		t.Fatal("expected error extracting a path-escaping entry")
	}
}
