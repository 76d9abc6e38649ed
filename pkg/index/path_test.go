package index

import "testing"

func TestPathFromNative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "a.txt"},
		{name: "nested", input: "sub/b.txt"},
		{name: "empty", input: "", wantErr: true},
		{name: "root", input: ".", wantErr: true},
		{name: "dot component", input: "a/./b", wantErr: true},
		{name: "dotdot component", input: "a/../b", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := PathFromNative(test.input)
			if test.wantErr && err == nil {
				t.Fatalf("expected error for input %q", test.input)
			} else if !test.wantErr && err != nil {
				t.Fatalf("unexpected error for input %q: %v", test.input, err)
			}
		})
	}
}

func TestPathEqual(t *testing.T) {
	a, err := PathFromNative("sub/b.txt")
	if err != nil {
		t.Fatal(err)
	}
	b, err := PathFromNative("sub/b.txt")
	if err != nil {
		t.Fatal(err)
	}
	c, err := PathFromNative("sub/c.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("expected equal paths to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different paths to compare unequal")
	}
}

func TestPathHasPrefix(t *testing.T) {
	full, err := PathFromNative("a/b/c.txt")
	if err != nil {
		t.Fatal(err)
	}
	prefix, err := PathFromNative("a/b")
	if err != nil {
		t.Fatal(err)
	}
	notPrefix, err := PathFromNative("a/x")
	if err != nil {
		t.Fatal(err)
	}
	if !full.HasPrefix(prefix) {
		t.Error("expected full to have prefix")
	}
	if full.HasPrefix(notPrefix) {
		t.Error("expected full to not have unrelated prefix")
	}
	if full.HasPrefix(full) != true {
		t.Error("expected a path to have itself as a prefix")
	}
}
