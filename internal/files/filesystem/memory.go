package filesystem

import (
	"io/fs"
	"path"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// MemoryFileSystem is an in-memory FileSystem for tests.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu        sync.RWMutex
	files     map[string]*memoryFile
	readErrs  map[string]error
	writeErrs map[string]error
	writes    []string
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files:     make(map[string]*memoryFile),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// AddFile creates or replaces a file with mode 0644.
func (m *MemoryFileSystem) AddFile(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(name)] = &memoryFile{
		content: []byte(content),
		mode:    0o644,
		modTime: time.Now(),
	}
}

// FailRead makes every ReadFile of name return err.
func (m *MemoryFileSystem) FailRead(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[path.Clean(name)] = err
}

// FailWrite makes every WriteFile of name return err.
func (m *MemoryFileSystem) FailWrite(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErrs[path.Clean(name)] = err
}

// Content returns the current content of name and whether it exists.
func (m *MemoryFileSystem) Content(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path.Clean(name)]
	if !ok {
		return "", false
	}
	return string(f.content), true
}

// Writes returns the paths written so far, in order.
func (m *MemoryFileSystem) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.writes...)
}

// Stat returns file information for name.
func (m *MemoryFileSystem) Stat(name string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{
		name:    path.Base(name),
		size:    int64(len(f.content)),
		mode:    f.mode,
		modTime: f.modTime,
	}, nil
}

// ReadFile returns a copy of name's content.
func (m *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	clean := path.Clean(name)
	if err := m.readErrs[clean]; err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	f, ok := m.files[clean]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.content...), nil
}

// WriteFile replaces name's content.
func (m *MemoryFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := path.Clean(name)
	if err := m.writeErrs[clean]; err != nil {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	f, ok := m.files[clean]
	if !ok {
		f = &memoryFile{mode: perm}
		m.files[clean] = f
	}
	f.content = append([]byte(nil), data...)
	f.modTime = time.Now()
	m.writes = append(m.writes, clean)
	return nil
}

var _ FileSystem = (*MemoryFileSystem)(nil)
