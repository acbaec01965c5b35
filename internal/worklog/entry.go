// Package worklog keeps the work-entry log in the logs worksheet.
package worklog

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"bitbuzz/internal/sheet"
)

const (
	Sheet = "logs"

	ColDate      = "Date"
	ColStaff     = "Staff"
	ColChannel   = "Channel"
	ColTitle     = "Title"
	ColLink      = "Link"
	ColViews     = "Views"
	ColTimestamp = "Timestamp"
	ColID        = "ID"

	DateLayout = "2006-01-02"
)

// Columns is the worksheet layout written by this package.
var Columns = []string{ColDate, ColStaff, ColChannel, ColTitle, ColLink, ColViews, ColTimestamp, ColID}

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrInvalidDate    = errors.New("date must be formatted as YYYY-MM-DD")
	ErrCombinedFilter = errors.New("cannot save while filtering by staff and channel together; widen one filter to all")
)

// Entry is one row of the log. Fields stay text-encoded as in the
// worksheet; Views may hold anything a person typed into the editor.
type Entry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Staff     string `json:"staff"`
	Channel   string `json:"channel"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Views     string `json:"views"`
	Timestamp string `json:"timestamp"`
}

// Draft is a submitted entry before the server assigns views, time and ID.
type Draft struct {
	Date    string `json:"date"`
	Staff   string `json:"staff"`
	Channel string `json:"channel"`
	Title   string `json:"title"`
	Link    string `json:"link"`
}

func (e Entry) cells() []string {
	return []string{e.Date, e.Staff, e.Channel, e.Title, e.Link, e.Views, e.Timestamp, e.ID}
}

func encode(entries []Entry) *sheet.Table {
	t := sheet.NewTable(Columns...)
	t.Rows = make([][]string, len(entries))
	for i, e := range entries {
		t.Rows[i] = e.cells()
	}
	return t
}

func decode(t *sheet.Table) []Entry {
	entries := make([]Entry, t.Len())
	for i := range entries {
		entries[i] = Entry{
			ID:        t.Value(i, ColID),
			Date:      t.Value(i, ColDate),
			Staff:     t.Value(i, ColStaff),
			Channel:   t.Value(i, ColChannel),
			Title:     t.Value(i, ColTitle),
			Link:      t.Value(i, ColLink),
			Views:     t.Value(i, ColViews),
			Timestamp: t.Value(i, ColTimestamp),
		}
	}
	return entries
}

// Filter narrows the editor view to one staff member or one channel.
// Empty fields mean "all".
type Filter struct {
	Staff   string `form:"staff" json:"staff"`
	Channel string `form:"channel" json:"channel"`
}

func (f Filter) Validate() error {
	if f.Staff != "" && f.Channel != "" {
		return ErrCombinedFilter
	}
	return nil
}

func (f Filter) Match(e Entry) bool {
	return (f.Staff == "" || e.Staff == f.Staff) && (f.Channel == "" || e.Channel == f.Channel)
}

func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortByDateDesc orders entries newest date first. Dates are compared as
// text, which orders YYYY-MM-DD correctly; ties keep log order.
func SortByDateDesc(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(strings.TrimSpace(b.Date), strings.TrimSpace(a.Date))
	})
}
