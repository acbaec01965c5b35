package sheet

import (
	"context"
	"errors"
	"sync"
)

var ErrTableNotFound = errors.New("worksheet not found")

// Backend is the raw tabular store. WriteTable replaces the whole
// worksheet; there is no partial update primitive.
type Backend interface {
	ReadTable(ctx context.Context, name string) (*Table, error)
	WriteTable(ctx context.Context, name string, t *Table) error
}

// MemoryBackend keeps worksheets in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: map[string]*Table{}}
}

func (m *MemoryBackend) ReadTable(ctx context.Context, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[name]
	if !ok {
		return nil, ErrTableNotFound
	}
	return t.Clone(), nil
}

func (m *MemoryBackend) WriteTable(ctx context.Context, name string, t *Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = t.Clone()
	return nil
}
