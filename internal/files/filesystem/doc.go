// Package filesystem abstracts the handful of file operations the rename
// engine performs on a project tree.
//
// Implementations:
//   - OSFileSystem: rooted at a project directory on disk
//   - MemoryFileSystem: in-memory tree for tests, with injectable failures
//
// All paths are slash-separated and relative to the root.
package filesystem
