package report

import (
	"math"
	"testing"
	"time"

	"bitbuzz/internal/worklog"

	"github.com/stretchr/testify/assert"
)

func exampleLog() []worklog.Entry {
	return []worklog.Entry{
		{Date: "2024-03-05", Staff: "A", Channel: "X", Title: "t1", Views: "5", Timestamp: "2024-03-05 10:00:00"},
		{Date: "2024-04-01", Staff: "B", Channel: "Y", Title: "t2", Views: "bad", Timestamp: "2024-04-01 10:00:00"},
	}
}

func TestMonthlyMetrics_Example(t *testing.T) {
	log := exampleLog()

	assert.Equal(t, Metrics{Count: 1, DistinctStaff: 1, TotalViews: 5}, MonthlyMetrics(log, 2024, time.March))

	april := MonthlyMetrics(log, 2024, time.April)
	assert.Equal(t, 1, april.Count)
	assert.Equal(t, int64(0), april.TotalViews)

	assert.Equal(t, Metrics{}, MonthlyMetrics(log, 2023, time.March))
}

func TestMonthlyMetrics_ViewsStayNonNegative(t *testing.T) {
	log := []worklog.Entry{
		{Date: "2024-03-01", Staff: "A", Views: "-5"},
		{Date: "2024-03-02", Staff: "A", Views: "1e30"},
		{Date: "2024-03-03", Staff: "A", Views: "7"},
	}
	assert.Equal(t, int64(7), MonthlyMetrics(log, 2024, time.March).TotalViews)

	huge := []worklog.Entry{
		{Date: "2024-03-01", Staff: "A", Views: "9223372036854775807"},
		{Date: "2024-03-02", Staff: "B", Views: "10"},
	}
	assert.Equal(t, int64(math.MaxInt64), MonthlyMetrics(huge, 2024, time.March).TotalViews)
}

func TestMonthlyMetrics_SkipsUnparseableDates(t *testing.T) {
	log := append(exampleLog(),
		worklog.Entry{Date: "someday", Staff: "C", Views: "100"},
		worklog.Entry{Date: "", Staff: "D", Views: "100"},
		worklog.Entry{Date: "2024-03-20", Staff: "A", Views: "1,200"},
	)

	m := MonthlyMetrics(log, 2024, time.March)
	assert.Equal(t, 2, m.Count)
	assert.Equal(t, 1, m.DistinctStaff)
	assert.Equal(t, int64(1205), m.TotalViews)
}

func TestParseViews(t *testing.T) {
	tests := map[string]int64{
		"5": 5, " 42 ": 42, "5.0": 5, "1e3": 1000, "2,500": 2500,
		"bad": 0, "": 0, "NaN": 0, "inf": 0, "-inf": 0,
		"-5": 0, "-2.5": 0, "1e30": 0, "99999999999999999999": 0,
		"9223372036854775807": math.MaxInt64,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseViews(in), "ParseViews(%q)", in)
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2024-03-05 10:11:12")
	assert.True(t, ok)
	assert.Equal(t, time.March, d.Month())

	_, ok = ParseDate("bad")
	assert.False(t, ok)
	_, ok = ParseDate("  ")
	assert.False(t, ok)
}

func TestTopStaff(t *testing.T) {
	log := []worklog.Entry{
		{Staff: "B"}, {Staff: "A"}, {Staff: "C"}, {Staff: "A"}, {Staff: "B"}, {Staff: "A"}, {Staff: ""},
	}
	assert.Equal(t, []StaffCount{{"A", 3}, {"B", 2}, {"C", 1}}, TopStaff(log))
	assert.Empty(t, TopStaff(nil))
}

func TestMonthlyTrend(t *testing.T) {
	log := []worklog.Entry{
		{Date: "2024-04-01"}, {Date: "2023-12-31"}, {Date: "2024-03-05"},
		{Date: "2024-04-20"}, {Date: "not a date"},
	}
	assert.Equal(t, []PeriodCount{{"2023-12", 1}, {"2024-03", 1}, {"2024-04", 2}}, MonthlyTrend(log))
}

func TestBuildDashboard(t *testing.T) {
	log := append(exampleLog(), worklog.Entry{Date: "2024-03-09", Staff: "C", Views: "7"})

	d := BuildDashboard(log, 2024, time.March)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, 3, d.Month)
	assert.Equal(t, Metrics{Count: 2, DistinctStaff: 2, TotalViews: 12}, d.Metrics)
	assert.Equal(t, []StaffCount{{"A", 1}, {"C", 1}}, d.TopStaff)
	assert.Equal(t, []PeriodCount{{"2024-03", 2}, {"2024-04", 1}}, d.Trend)
}
