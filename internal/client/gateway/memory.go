package gateway

import (
	"context"
	"sync"
)

type record struct {
	value  string
	shared bool
}

// Memory is an in-process Gateway used by tests and demo mode. Several
// client instances can share one Memory to exercise multi-client behavior
// without a server.
type Memory struct {
	mu      sync.Mutex
	records map[string]record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]record)}
}

func (m *Memory) Get(ctx context.Context, key string, shared bool) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[key]
	if !ok {
		return "", false, nil
	}
	return r.value, true, nil
}

func (m *Memory) Set(ctx context.Context, key, value string, shared bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = record{value: value, shared: shared}
	return nil
}

// Shared reports the shared flag last written for key. Test helper.
func (m *Memory) Shared(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[key].shared
}
