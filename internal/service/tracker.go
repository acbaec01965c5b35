package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbuzz/internal/metrics"
	"bitbuzz/internal/report"
	"bitbuzz/internal/roster"
	"bitbuzz/internal/sheet"
	"bitbuzz/internal/worklog"
)

var (
	ErrUnknownStaff   = errors.New("staff is not in the roster")
	ErrUnknownChannel = errors.New("channel is not in the roster")
)

// TrackerService runs each use case as one pass of read, compute and at
// most one write. Nothing is cached between calls.
type TrackerService struct {
	roster  *roster.Repository
	log     *worklog.Repository
	metrics metrics.Provider
	now     func() time.Time
}

func NewTrackerService(store *sheet.Store, m metrics.Provider, opts ...worklog.Option) *TrackerService {
	if m == nil {
		m = metrics.Noop{}
	}
	return &TrackerService{
		roster:  roster.NewRepository(store),
		log:     worklog.NewRepository(store, opts...),
		metrics: m,
		now:     time.Now,
	}
}

func (s *TrackerService) Roster(ctx context.Context) roster.Roster {
	return s.roster.Load(ctx)
}

func (s *TrackerService) AddRosterName(ctx context.Context, kind, name string) (roster.Roster, error) {
	k, err := roster.ParseKind(kind)
	if err != nil {
		return roster.Roster{}, err
	}
	return s.roster.Add(ctx, k, name)
}

func (s *TrackerService) RemoveRosterName(ctx context.Context, kind, name string) (roster.Roster, error) {
	k, err := roster.ParseKind(kind)
	if err != nil {
		return roster.Roster{}, err
	}
	return s.roster.Remove(ctx, k, name)
}

func (s *TrackerService) ResetRoster(ctx context.Context) (roster.Roster, error) {
	return s.roster.Reset(ctx)
}

// Submit appends a new entry. Staff and channel must be in the roster at
// submission time.
func (s *TrackerService) Submit(ctx context.Context, d worklog.Draft) (worklog.Entry, error) {
	if strings.TrimSpace(d.Title) == "" {
		return worklog.Entry{}, worklog.ErrTitleRequired
	}
	ros := s.roster.Load(ctx)
	if !ros.Contains(roster.Staff, d.Staff) {
		return worklog.Entry{}, fmt.Errorf("%w: %q", ErrUnknownStaff, d.Staff)
	}
	if !ros.Contains(roster.Channel, d.Channel) {
		return worklog.Entry{}, fmt.Errorf("%w: %q", ErrUnknownChannel, d.Channel)
	}
	return s.log.Append(ctx, d)
}

// Entries returns the editor view: rows matching f, newest date first.
func (s *TrackerService) Entries(ctx context.Context, f worklog.Filter) []worklog.Entry {
	all := s.log.Load(ctx)
	s.metrics.SetLogEntries(len(all))
	view := f.Apply(all)
	worklog.SortByDateDesc(view)
	return view
}

// SaveEntries stores the edited rows of an editor session filtered by f.
func (s *TrackerService) SaveEntries(ctx context.Context, f worklog.Filter, edited []worklog.Entry) error {
	return s.log.MergeEdited(ctx, f, edited)
}

// Dashboard reports on the given month; a zero year or month means the
// current one.
func (s *TrackerService) Dashboard(ctx context.Context, year int, month time.Month) report.Dashboard {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	all := s.log.Load(ctx)
	s.metrics.SetLogEntries(len(all))
	return report.BuildDashboard(all, year, month)
}
