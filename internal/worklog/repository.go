package worklog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bitbuzz/internal/sheet"

	"github.com/google/uuid"
)

// Repository reads the whole logs worksheet and writes it back whole.
// There is no locking: an append racing another writer between its read
// and its write loses one of the two changes.
type Repository struct {
	store *sheet.Store
	now   func() time.Time
	newID func() string
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

func NewRepository(store *sheet.Store, opts ...Option) *Repository {
	r := &Repository{store: store, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Load returns the log. A worksheet lacking the Views or ID column is
// patched (views "0", fresh IDs) and written back once.
func (r *Repository) Load(ctx context.Context) []Entry {
	entries, patched := r.snapshot(r.store.Read(ctx, Sheet))
	if patched {
		if err := r.store.Write(ctx, Sheet, encode(entries)); err != nil {
			slog.Warn("worklog.backfill_failed", "err", err)
		} else {
			slog.Info("worklog.backfill", "rows", len(entries))
		}
	}
	return entries
}

// EnsureHeader writes a header-only logs worksheet when none exists. It
// reports whether it wrote one.
func (r *Repository) EnsureHeader(ctx context.Context) (bool, error) {
	t, err := r.store.ReadForUpdate(ctx, Sheet)
	if err != nil {
		return false, err
	}
	if !t.Empty() {
		return false, nil
	}
	if err := r.store.Write(ctx, Sheet, sheet.NewTable(Columns...)); err != nil {
		return false, err
	}
	slog.Info("worklog.header_created")
	return true, nil
}

// current reads the log for a rewrite. A read failure aborts the caller
// before anything is written.
func (r *Repository) current(ctx context.Context) ([]Entry, error) {
	t, err := r.store.ReadForUpdate(ctx, Sheet)
	if err != nil {
		return nil, err
	}
	entries, _ := r.snapshot(t)
	return entries, nil
}

// snapshot decodes the log, backfilling in memory only.
func (r *Repository) snapshot(t *sheet.Table) ([]Entry, bool) {
	if t.Len() == 0 {
		return []Entry{}, false
	}

	patched := false
	if !t.Has(ColViews) {
		t.AddColumn(ColViews, "0")
		patched = true
	}
	if !t.Has(ColID) {
		t.AddColumn(ColID, "")
		patched = true
	}
	entries := decode(t)
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = r.newID()
			patched = true
		}
	}
	return entries, patched
}

func (r *Repository) Append(ctx context.Context, d Draft) (Entry, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Entry{}, ErrTitleRequired
	}
	now := r.now()
	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidDate, d.Date)
	}

	e := Entry{
		ID:        r.newID(),
		Date:      date,
		Staff:     d.Staff,
		Channel:   d.Channel,
		Title:     title,
		Link:      strings.TrimSpace(d.Link),
		Views:     "0",
		Timestamp: now.Format(sheet.TimestampLayout),
	}

	entries, err := r.current(ctx)
	if err != nil {
		return Entry{}, err
	}
	if err := r.store.Write(ctx, Sheet, encode(append(entries, e))); err != nil {
		return Entry{}, err
	}
	slog.Info("worklog.append", "id", e.ID, "staff", e.Staff, "date", e.Date)
	return e, nil
}

// BulkReplace makes entries the whole log. Additions, edits and deletions
// are all expressed by the final table.
func (r *Repository) BulkReplace(ctx context.Context, entries []Entry) error {
	rows := r.prepare(entries)
	if err := r.store.Write(ctx, Sheet, encode(rows)); err != nil {
		return err
	}
	slog.Info("worklog.replace", "rows", len(rows))
	return nil
}

// FilteredMerge keeps the stored rows for which keep is true and appends
// replacement in place of the rest.
func (r *Repository) FilteredMerge(ctx context.Context, keep func(Entry) bool, replacement []Entry) error {
	entries, err := r.current(ctx)
	if err != nil {
		return err
	}
	merged := make([]Entry, 0, len(entries)+len(replacement))
	for _, e := range entries {
		if keep(e) {
			merged = append(merged, e)
		}
	}
	merged = append(merged, r.prepare(replacement)...)

	if err := r.store.Write(ctx, Sheet, encode(merged)); err != nil {
		return err
	}
	slog.Info("worklog.merge", "kept", len(merged)-len(replacement), "replaced", len(replacement))
	return nil
}

// MergeEdited saves an editor session that showed the rows matching f.
// Only one filter dimension may be active.
func (r *Repository) MergeEdited(ctx context.Context, f Filter, edited []Entry) error {
	if err := f.Validate(); err != nil {
		return err
	}
	switch {
	case f.Staff != "":
		return r.FilteredMerge(ctx, func(e Entry) bool { return e.Staff != f.Staff }, edited)
	case f.Channel != "":
		return r.FilteredMerge(ctx, func(e Entry) bool { return e.Channel != f.Channel }, edited)
	default:
		return r.BulkReplace(ctx, edited)
	}
}

// prepare assigns IDs to new rows and "0" to blank view counts.
func (r *Repository) prepare(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = r.newID()
		}
		if strings.TrimSpace(e.Views) == "" {
			e.Views = "0"
		}
		out[i] = e
	}
	return out
}
