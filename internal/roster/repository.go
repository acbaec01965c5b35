package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"bitbuzz/internal/sheet"
)

// Repository reads the config worksheet on every call and rewrites it in
// full on every change. Concurrent writers race; the last write wins.
type Repository struct {
	store *sheet.Store
}

func NewRepository(store *sheet.Store) *Repository { return &Repository{store: store} }

// Load returns the current roster, or the fallback roster when the
// worksheet is missing, empty or malformed. The fallback is not persisted.
func (r *Repository) Load(ctx context.Context) Roster {
	return fromTable(r.store.Read(ctx, Sheet))
}

// loadForUpdate is Load for Add and Remove: a failed read is returned
// instead of falling back, so the stored roster is never overwritten
// from the fallback by accident.
func (r *Repository) loadForUpdate(ctx context.Context) (Roster, error) {
	t, err := r.store.ReadForUpdate(ctx, Sheet)
	if err != nil {
		return Roster{}, err
	}
	return fromTable(t), nil
}

func fromTable(t *sheet.Table) Roster {
	ros, ok := decode(t)
	if !ok {
		slog.Warn("roster.fallback", "table", Sheet)
		return Fallback()
	}
	return ros
}

func (r *Repository) Save(ctx context.Context, ros Roster) error {
	clean := Roster{Staff: Dedupe(ros.Staff), Channels: Dedupe(ros.Channels)}
	return r.store.Write(ctx, Sheet, encode(clean))
}

func (r *Repository) Add(ctx context.Context, k Kind, name string) (Roster, error) {
	name = strings.TrimSpace(name)
	ros, err := r.loadForUpdate(ctx)
	if err != nil {
		return ros, err
	}
	if name == "" {
		return ros, ErrEmptyName
	}
	if ros.Contains(k, name) {
		return ros, fmt.Errorf("%w: %s %q", ErrDuplicate, k, name)
	}

	next := ros.Clone()
	next.set(k, append(next.List(k), name))
	if err := r.Save(ctx, next); err != nil {
		return ros, err
	}
	slog.Info("roster.add", "kind", k, "name", name)
	return next, nil
}

func (r *Repository) Remove(ctx context.Context, k Kind, name string) (Roster, error) {
	ros, err := r.loadForUpdate(ctx)
	if err != nil {
		return ros, err
	}
	idx := slices.Index(ros.List(k), name)
	if name == "" || idx < 0 {
		return ros, fmt.Errorf("%w: %s %q", ErrNotFound, k, name)
	}

	next := ros.Clone()
	next.set(k, slices.Delete(next.List(k), idx, idx+1))
	if err := r.Save(ctx, next); err != nil {
		return ros, err
	}
	slog.Info("roster.remove", "kind", k, "name", name)
	return next, nil
}

// Reset overwrites the worksheet with the default roster. It repairs a
// config worksheet that was damaged by hand.
func (r *Repository) Reset(ctx context.Context) (Roster, error) {
	ros := Defaults()
	if err := r.Save(ctx, ros); err != nil {
		return Roster{}, err
	}
	slog.Info("roster.reset")
	return ros, nil
}
