package slot

import (
	"context"
	"sync"
)

// Memory is an in-process slot. Its content is lost on exit.
type Memory struct {
	name string

	mu    sync.RWMutex
	value []byte
	set   bool
}

func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Get(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.value...), nil
}

func (m *Memory) Put(ctx context.Context, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = append([]byte(nil), value...)
	m.set = true
	return nil
}
