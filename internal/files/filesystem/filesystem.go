package filesystem

import "io/fs"

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// FileSystem reads and overwrites files relative to a project root.
type FileSystem interface {
	// Stat returns file information. Missing files yield an error matching fs.ErrNotExist.
	Stat(path string) (FileInfo, error)

	// ReadFile reads the whole file.
	ReadFile(path string) ([]byte, error)

	// WriteFile overwrites the whole file in place, keeping perm for new files.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}
