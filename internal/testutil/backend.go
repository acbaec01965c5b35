// Package testutil provides worksheet backends for tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bitbuzz/internal/sheet"
)

var ErrInjected = errors.New("injected backend failure")

// RecordingBackend is an in-memory backend that counts writes per table
// and can be told to fail.
type RecordingBackend struct {
	*sheet.MemoryBackend

	mu        sync.Mutex
	writes    map[string]int
	FailRead  bool
	FailWrite bool
}

func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{MemoryBackend: sheet.NewMemoryBackend(), writes: map[string]int{}}
}

func (b *RecordingBackend) ReadTable(ctx context.Context, name string) (*sheet.Table, error) {
	b.mu.Lock()
	fail := b.FailRead
	b.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return b.MemoryBackend.ReadTable(ctx, name)
}

func (b *RecordingBackend) WriteTable(ctx context.Context, name string, t *sheet.Table) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWrite {
		return ErrInjected
	}
	b.writes[name]++
	return b.MemoryBackend.WriteTable(ctx, name, t)
}

// Writes returns the number of successful writes to name.
func (b *RecordingBackend) Writes(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes[name]
}

// Seed stores t without counting it as a write.
func (b *RecordingBackend) Seed(t *testing.T, name string, tbl *sheet.Table) {
	t.Helper()
	if err := b.MemoryBackend.WriteTable(context.Background(), name, tbl); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

// Table reads name back, failing the test when it is missing.
func (b *RecordingBackend) Table(t *testing.T, name string) *sheet.Table {
	t.Helper()
	tbl, err := b.MemoryBackend.ReadTable(context.Background(), name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	tbl.Normalize()
	return tbl
}

// NewStore wraps a fresh RecordingBackend in a Store.
func NewStore() (*sheet.Store, *RecordingBackend) {
	b := NewRecordingBackend()
	return sheet.NewStore(b, nil), b
}
