package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystem on disk, rooted at a directory.
type OSFileSystem struct {
	root string
}

// NewOSFileSystem creates a FileSystem rooted at root.
func NewOSFileSystem(root string) *OSFileSystem {
	return &OSFileSystem{root: root}
}

// Root returns the directory all paths are resolved against.
func (f *OSFileSystem) Root() string {
	return f.root
}

func (f *OSFileSystem) abs(path string) string {
	return filepath.Join(f.root, filepath.FromSlash(path))
}

// Stat returns file information for path.
func (f *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(f.abs(path))
}

// ReadFile reads path.
func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(f.abs(path))
}

// WriteFile truncates and rewrites path.
func (f *OSFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(f.abs(path), data, perm)
}

var _ FileSystem = (*OSFileSystem)(nil)
