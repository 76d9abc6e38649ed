package encoding

import (
	"os"
	"path/filepath"
	"testing"
)

// cacheConfigFixture mirrors the shape of pkg/settings.Settings closely
// enough to exercise nested-table TOML decoding without importing that
// package here (which would create an import cycle: pkg/settings already
// depends on pkg/encoding).
type cacheConfigFixture struct {
	Cache struct {
		Root    string `toml:"root"`
		MaxSize string `toml:"max_size"`
	} `toml:"cache"`
}

const cacheConfigFixtureTOML = `
[cache]
root= "~/.manderrow/archives"
max_size="5GB"
`

func TestLoadAndUnmarshalTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manderrow.toml")
	if err := os.WriteFile(path, []byte(cacheConfigFixtureTOML), 0644); err != nil {
		t.Fatal("unable to write fixture file:", err)
	}

	value := &cacheConfigFixture{}
	if err := LoadAndUnmarshalTOML(path, value); err != nil {
		t.Fatal("LoadAndUnmarshalTOML failed:", err)
	}

	if value.Cache.Root != "~/.manderrow/archives" {
		t.Error("cache root mismatch:", value.Cache.Root)
	}
	if value.Cache.MaxSize != "5GB" {
		t.Error("cache max size mismatch:", value.Cache.MaxSize)
	}
}

// TestMarshalAndSaveTOMLRoundTrip verifies that a value saved with
// MarshalAndSaveTOML can be read back unchanged via LoadAndUnmarshalTOML,
// the load/save pair pkg/settings relies on for its configuration file.
func TestMarshalAndSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manderrow.toml")

	original := &cacheConfigFixture{}
	original.Cache.Root = "/var/cache/manderrow"
	original.Cache.MaxSize = "10GB"

	if err := MarshalAndSaveTOML(path, nil, original); err != nil {
		t.Fatal("MarshalAndSaveTOML failed:", err)
	}

	loaded := &cacheConfigFixture{}
	if err := LoadAndUnmarshalTOML(path, loaded); err != nil {
		t.Fatal("LoadAndUnmarshalTOML failed:", err)
	}

	if *loaded != *original {
		t.Errorf("round-tripped value mismatch: got %+v, want %+v", loaded, original)
	}
}
