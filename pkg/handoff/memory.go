package handoff

import (
	"context"
	"sync"

	"github.com/matzehuels/roadtower/pkg/observability"
)

// Memory is an in-process slot backed by a buffered channel of one.
type Memory struct {
	name string
	mu   sync.Mutex
	ch   chan []byte
}

// NewMemory creates an empty in-process slot.
func NewMemory(name string) *Memory {
	if name == "" {
		name = DefaultSlot
	}
	return &Memory{name: name, ch: make(chan []byte, 1)}
}

// Name returns the slot name.
func (m *Memory) Name() string { return m.name }

// Put stores a copy of data, dropping any value not yet taken.
func (m *Memory) Put(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.ch:
	default:
	}
	m.ch <- append([]byte(nil), data...)
	observability.Handoff().OnPut(ctx, BackendMemory, m.name, len(data))
	return nil
}

// Take returns the stored value and empties the slot.
func (m *Memory) Take(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case data := <-m.ch:
		observability.Handoff().OnTake(ctx, BackendMemory, m.name, true)
		return data, nil
	default:
		observability.Handoff().OnTake(ctx, BackendMemory, m.name, false)
		return nil, ErrEmpty
	}
}

// Clear empties the slot.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.ch:
	default:
	}
	return nil
}

// Close does nothing for a memory slot.
func (m *Memory) Close() error { return nil }

// Ensure Memory implements Slot.
var _ Slot = (*Memory)(nil)
