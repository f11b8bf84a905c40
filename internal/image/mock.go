package image

import (
	"context"
	"sync"
)

// MockRuntime is a mock implementation of Runtime for testing
type MockRuntime struct {
	mu sync.Mutex

	// Images tracks references that "exist" locally
	Images map[string]bool

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []string
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Images: make(map[string]bool),
		Errors: make(map[string]error),
	}
}

func (m *MockRuntime) record(method string, args ...string) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// CallsFor returns all recorded calls for a specific method
func (m *MockRuntime) CallsFor(method string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// Build records the build and marks the tag as existing
func (m *MockRuntime) Build(ctx context.Context, opts BuildOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Build", opts.Tag, opts.ContextDir, opts.Platform)
	if err := m.Errors["Build"]; err != nil {
		return err
	}
	if opts.Tag != "" {
		m.Images[opts.Tag] = true
	}
	return nil
}

// Tag records the tag and marks the destination as existing
func (m *MockRuntime) Tag(ctx context.Context, src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Tag", src, dst)
	if err := m.Errors["Tag"]; err != nil {
		return err
	}
	m.Images[dst] = true
	return nil
}

// Push records the push
func (m *MockRuntime) Push(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Push", ref)
	return m.Errors["Push"]
}

// Login records the login. The secret is deliberately not recorded.
func (m *MockRuntime) Login(ctx context.Context, registry, user, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Login", registry, user)
	return m.Errors["Login"]
}

// Exists reports whether the reference was built or tagged
func (m *MockRuntime) Exists(ctx context.Context, ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Exists", ref)
	if err := m.Errors["Exists"]; err != nil {
		return false, err
	}
	return m.Images[ref], nil
}

// Ensure MockRuntime implements Runtime
var _ Runtime = (*MockRuntime)(nil)
