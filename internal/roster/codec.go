package roster

import "bitbuzz/internal/sheet"

const (
	Sheet         = "config"
	StaffColumn   = "employees"
	ChannelColumn = "channels"
)

// encode zips both lists into one worksheet, padding the shorter column
// with empty filler cells.
func encode(r Roster) *sheet.Table {
	n := max(len(r.Staff), len(r.Channels))
	t := sheet.NewTable(StaffColumn, ChannelColumn)
	t.Rows = make([][]string, n)
	for i := 0; i < n; i++ {
		t.Rows[i] = []string{at(r.Staff, i), at(r.Channels, i)}
	}
	return t
}

// decode reports false when the worksheet has no rows or lacks the
// staff column.
func decode(t *sheet.Table) (Roster, bool) {
	if t.Len() == 0 || !t.Has(StaffColumn) {
		return Roster{}, false
	}
	var staff, channels []string
	for i := range t.Rows {
		staff = append(staff, t.Value(i, StaffColumn))
		channels = append(channels, t.Value(i, ChannelColumn))
	}
	return Roster{Staff: Dedupe(staff), Channels: Dedupe(channels)}, true
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
