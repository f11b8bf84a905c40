package system

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem implements FileSystem backed by an in-memory map.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMockFileSystem creates an empty in-memory file system.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile seeds a file into the mock file system.
func (m *MockFileSystem) AddFile(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = data
	for d := path.Dir(p); d != "." && d != "/"; d = path.Dir(d) {
		m.dirs[d] = true
	}
}

// RemoveFile deletes a file from the mock file system.
func (m *MockFileSystem) RemoveFile(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, p)
}

func (m *MockFileSystem) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[p]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(p string, data []byte, perm fs.FileMode) error {
	m.AddFile(p, data)
	return nil
}

func (m *MockFileSystem) Stat(p string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[p]; ok {
		return mockFileInfo{name: path.Base(p), size: int64(len(data))}, nil
	}
	if m.dirs[p] {
		return mockFileInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MockFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for d := p; d != "." && d != "/"; d = path.Dir(d) {
		m.dirs[d] = true
	}
	return nil
}

func (m *MockFileSystem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[p]; ok {
		return true
	}
	return m.dirs[p]
}

func (m *MockFileSystem) ReadDir(p string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]fs.DirEntry)
	prefix := strings.TrimSuffix(p, "/") + "/"
	for f := range m.files {
		if !strings.HasPrefix(f, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f, prefix)
		name, _, isDir := strings.Cut(rest, "/")
		seen[name] = mockDirEntry{name: name, dir: isDir}
	}
	if len(seen) == 0 && !m.dirs[strings.TrimSuffix(p, "/")] {
		return nil, fs.ErrNotExist
	}
	entries := make([]fs.DirEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return 0644 }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.dir }
func (i mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	name string
	dir  bool
}

func (e mockDirEntry) Name() string               { return e.name }
func (e mockDirEntry) IsDir() bool                { return e.dir }
func (e mockDirEntry) Type() fs.FileMode          { return 0 }
func (e mockDirEntry) Info() (fs.FileInfo, error) { return mockFileInfo{name: e.name, dir: e.dir}, nil }

// MockCall records a command execution on the MockExecutor.
type MockCall struct {
	Name  string
	Args  []string
	Stdin string
}

// MockExecutor implements CommandExecutor with scripted results.
type MockExecutor struct {
	mu sync.Mutex

	// Results maps a command name to its output. Keys may also be
	// "name arg0" for finer-grained matching; the longest match wins.
	Results map[string][]byte

	// Errors maps a command key (same scheme as Results) to an error.
	Errors map[string]error

	// MissingBinaries lists names LookPath should fail for.
	MissingBinaries map[string]bool

	// Calls records every execution.
	Calls []MockCall
}

// NewMockExecutor creates a MockExecutor with empty scripts.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Results:         make(map[string][]byte),
		Errors:          make(map[string]error),
		MissingBinaries: make(map[string]bool),
	}
}

func (m *MockExecutor) lookup(name string, args []string) ([]byte, error) {
	key := name
	if len(args) > 0 {
		withSub := name + " " + args[0]
		if _, ok := m.Results[withSub]; ok {
			key = withSub
		} else if _, ok := m.Errors[withSub]; ok {
			key = withSub
		}
	}
	if err, ok := m.Errors[key]; ok {
		return m.Results[key], err
	}
	if out, ok := m.Results[key]; ok {
		return out, nil
	}
	return nil, nil
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Name: name, Args: args})
	return m.lookup(name, args)
}

func (m *MockExecutor) ExecuteWithStdin(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Name: name, Args: args, Stdin: stdin})
	return m.lookup(name, args)
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Name: name, Args: args})
	_, err := m.lookup(name, args)
	return err
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MissingBinaries[name] {
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// CallsFor returns recorded calls matching the command name.
func (m *MockExecutor) CallsFor(name string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []MockCall
	for _, c := range m.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}
