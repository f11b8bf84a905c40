// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"io/fs"
	"os"
)

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file info for the named file.
	Stat(path string) (fs.FileInfo, error)

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists returns true if the path exists.
	Exists(path string) bool

	// ReadDir reads the named directory, returning all its directory entries.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// ExecuteWithStdin runs a command with the given stdin and returns output.
	ExecuteWithStdin(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

	// ExecuteInteractive runs a command with stdin/stdout/stderr connected to the terminal.
	ExecuteInteractive(ctx context.Context, name string, args ...string) error

	// LookPath searches for an executable in PATH.
	LookPath(name string) (string, error)
}

// Default instances using real OS operations.
var (
	defaultFS       FileSystem      = &osFileSystem{}
	defaultExecutor CommandExecutor = &osExecutor{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultExecutor = &osExecutor{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *osFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *osFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
