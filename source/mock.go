package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// MockSource implements Source in memory for testing
type MockSource struct {
	files map[string][]byte
	mu    sync.RWMutex
}

// NewMock creates a new in-memory source for testing
func NewMock() *MockSource {
	return &MockSource{
		files: make(map[string][]byte),
	}
}

// Put stores data under name, replacing any previous content.
func (m *MockSource) Put(name string, data []byte) {
	m.mu.Lock()
	m.files[name] = append([]byte(nil), data...)
	m.mu.Unlock()
}

func (m *MockSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, exists := m.files[name]; exists {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (m *MockSource) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make([]string, 0, len(m.files))
	for name := range m.files {
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (m *MockSource) Exists(ctx context.Context, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[name]
	return exists
}

func (m *MockSource) Close() error {
	// Clear all files
	m.mu.Lock()
	m.files = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}
