// Package filesystem provides a small file access abstraction so that
// packages touching the data directory can be tested with mocks.
package filesystem

import "os"

// FileSystem abstracts the file operations used by the updater.
type FileSystem interface {
	Open(name string) (*os.File, error)
	Create(name string) (*os.File, error)
}

// DefaultFileSystem is the os-backed implementation.
type DefaultFileSystem struct{}

func (DefaultFileSystem) Open(name string) (*os.File, error) {
	return os.Open(name)
}

func (DefaultFileSystem) Create(name string) (*os.File, error) {
	return os.Create(name)
}
