package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_RoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "packages", "core"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	fsys := NewOSFileSystem(root)

	if err := fsys.WriteFile("packages/core/package.json", []byte(`{"name":"@myapp/core"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := fsys.ReadFile("packages/core/package.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"name":"@myapp/core"}` {
		t.Errorf("ReadFile = %q", data)
	}

	info, err := fsys.Stat("packages/core/package.json")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != int64(len(data)) {
		t.Errorf("Size = %d, want %d", info.Size(), len(data))
	}
	if fsys.Root() != root {
		t.Errorf("Root() = %q, want %q", fsys.Root(), root)
	}
}

func TestOSFileSystem_MissingFile(t *testing.T) {
	fsys := NewOSFileSystem(t.TempDir())

	if _, err := fsys.Stat("missing.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat missing = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystem(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("README.md", "# @myapp")

	if _, err := m.Stat("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat missing = %v, want fs.ErrNotExist", err)
	}

	if err := m.WriteFile("./README.md", []byte("# @acme"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got, _ := m.Content("README.md"); got != "# @acme" {
		t.Errorf("Content = %q", got)
	}
	if w := m.Writes(); len(w) != 1 || w[0] != "README.md" {
		t.Errorf("Writes = %v", w)
	}

	boom := errors.New("permission denied")
	m.FailRead("README.md", boom)
	if _, err := m.ReadFile("README.md"); !errors.Is(err, boom) {
		t.Errorf("ReadFile = %v, want %v", err, boom)
	}
	m.FailWrite("other.md", boom)
	if err := m.WriteFile("other.md", nil, 0o644); !errors.Is(err, boom) {
		t.Errorf("WriteFile = %v, want %v", err, boom)
	}
}
