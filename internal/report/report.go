// Package report derives dashboard figures from a log snapshot. Nothing
// here is persisted.
package report

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"bitbuzz/internal/worklog"

	"github.com/araddon/dateparse"
)

type Metrics struct {
	Count         int   `json:"count"`
	DistinctStaff int   `json:"distinct_staff"`
	TotalViews    int64 `json:"total_views"`
}

type StaffCount struct {
	Staff string `json:"staff"`
	Count int    `json:"count"`
}

type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type Dashboard struct {
	Year     int           `json:"year"`
	Month    int           `json:"month"`
	Metrics  Metrics       `json:"metrics"`
	TopStaff []StaffCount  `json:"top_staff"`
	Trend    []PeriodCount `json:"trend"`
}

// ParseDate reads a worksheet date leniently. Values that do not parse
// are reported as false and left out of every figure.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(worklog.DateLayout, s); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseViews coerces a view count to a number. Anything unparseable,
// negative or beyond int64 counts as 0.
func ParseViews(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// InMonth returns the entries dated in the given calendar month.
func InMonth(entries []worklog.Entry, year int, month time.Month) []worklog.Entry {
	var out []worklog.Entry
	for _, e := range entries {
		d, ok := ParseDate(e.Date)
		if ok && d.Year() == year && d.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

func MonthlyMetrics(entries []worklog.Entry, year int, month time.Month) Metrics {
	subset := InMonth(entries, year, month)
	staff := map[string]struct{}{}
	var m Metrics
	for _, e := range subset {
		m.Count++
		if e.Staff != "" {
			staff[e.Staff] = struct{}{}
		}
		// saturates instead of wrapping
		if v := ParseViews(e.Views); v > math.MaxInt64-m.TotalViews {
			m.TotalViews = math.MaxInt64
		} else {
			m.TotalViews += v
		}
	}
	m.DistinctStaff = len(staff)
	return m
}

// TopStaff counts entries per staff member, most entries first. Ties are
// ordered by name.
func TopStaff(entries []worklog.Entry) []StaffCount {
	counts := map[string]int{}
	for _, e := range entries {
		if e.Staff != "" {
			counts[e.Staff]++
		}
	}
	out := make([]StaffCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, StaffCount{Staff: s, Count: n})
	}
	slices.SortFunc(out, func(a, b StaffCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Staff, b.Staff)
	})
	return out
}

// MonthlyTrend counts entries per YYYY-MM across the whole log, oldest
// period first.
func MonthlyTrend(entries []worklog.Entry) []PeriodCount {
	counts := map[string]int{}
	for _, e := range entries {
		if d, ok := ParseDate(e.Date); ok {
			counts[d.Format("2006-01")]++
		}
	}
	out := make([]PeriodCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, PeriodCount{Period: p, Count: n})
	}
	slices.SortFunc(out, func(a, b PeriodCount) int { return cmp.Compare(a.Period, b.Period) })
	return out
}

func BuildDashboard(entries []worklog.Entry, year int, month time.Month) Dashboard {
	return Dashboard{
		Year:     year,
		Month:    int(month),
		Metrics:  MonthlyMetrics(entries, year, month),
		TopStaff: TopStaff(InMonth(entries, year, month)),
		Trend:    MonthlyTrend(entries),
	}
}
