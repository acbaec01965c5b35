package sheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bitbuzz/internal/metrics"
)

var (
	// ErrWriteFailed wraps every backend write error returned by Store.Write.
	ErrWriteFailed = errors.New("worksheet write failed")
	// ErrReadFailed wraps backend read errors returned by Store.ReadForUpdate.
	ErrReadFailed = errors.New("worksheet read failed")
)

// Store is the application's view of the backend. Reads are live and
// fail soft; writes normalize the snapshot and report failure to the
// caller without any automatic retry.
type Store struct {
	backend Backend
	metrics metrics.Provider
}

func NewStore(backend Backend, m metrics.Provider) *Store {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Store{backend: backend, metrics: m}
}

// Read fetches the named worksheet. Any failure yields an empty snapshot
// so callers can continue in a degraded mode.
func (s *Store) Read(ctx context.Context, name string) *Table {
	t, err := s.ReadForUpdate(ctx, name)
	if err != nil {
		return &Table{}
	}
	return t
}

// ReadForUpdate fetches the named worksheet ahead of a rewrite. A missing
// worksheet is an empty table; any other failure is returned so the
// caller does not write a partial view back over the stored rows.
func (s *Store) ReadForUpdate(ctx context.Context, name string) (*Table, error) {
	start := time.Now()
	t, err := s.backend.ReadTable(ctx, name)
	s.metrics.ObserveStoreDuration("read", time.Since(start))
	if err != nil {
		s.metrics.IncStoreOps(name, "read", false)
		if errors.Is(err, ErrTableNotFound) {
			slog.Debug("sheet.read_missing", "table", name)
			return &Table{}, nil
		}
		slog.Warn("sheet.read_failed", "table", name, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, name, err)
	}
	s.metrics.IncStoreOps(name, "read", true)
	if t == nil {
		return &Table{}, nil
	}
	t.Normalize()
	return t, nil
}

// Write replaces the named worksheet with t.
func (s *Store) Write(ctx context.Context, name string, t *Table) error {
	clean := t.Clone()
	if clean == nil {
		clean = &Table{}
	}
	clean.Normalize()

	start := time.Now()
	err := s.backend.WriteTable(ctx, name, clean)
	s.metrics.ObserveStoreDuration("write", time.Since(start))
	if err != nil {
		s.metrics.IncStoreOps(name, "write", false)
		slog.Error("sheet.write_failed", "table", name, "rows", clean.Len(), "err", err)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, name, err)
	}
	s.metrics.IncStoreOps(name, "write", true)
	slog.Debug("sheet.write_ok", "table", name, "rows", clean.Len())
	return nil
}
