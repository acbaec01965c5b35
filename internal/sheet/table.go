// Package sheet reads and writes named worksheets of an external tabular
// store. Every cell is text; a Table is a full snapshot of one worksheet.
package sheet

import "slices"

type Table struct {
	Columns []string
	Rows    [][]string
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Empty reports whether the snapshot has no header. A worksheet with a
// header and no rows is not empty.
func (t *Table) Empty() bool { return t == nil || len(t.Columns) == 0 }

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Index(col string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Columns, col)
}

func (t *Table) Has(col string) bool { return t.Index(col) >= 0 }

// Value returns the cell at row i in column col, or "" when either is
// missing or the row is short.
func (t *Table) Value(i int, col string) string {
	idx := t.Index(col)
	if idx < 0 || i < 0 || i >= len(t.Rows) || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// AppendRow adds a row, coercing values to text.
func (t *Table) AppendRow(values ...any) {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	t.Rows = append(t.Rows, row)
}

// AddColumn appends a column filled with fill. It is a no-op when the
// column already exists.
func (t *Table) AddColumn(name, fill string) {
	if t.Has(name) {
		return
	}
	t.Normalize()
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], fill)
	}
}

// Normalize pads short rows with "" and truncates long ones so every row
// has exactly one cell per column.
func (t *Table) Normalize() {
	width := len(t.Columns)
	for i, row := range t.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		case len(row) > width:
			t.Rows[i] = row[:width:width]
		}
	}
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{Columns: slices.Clone(t.Columns), Rows: make([][]string, len(t.Rows))}
	for i, row := range t.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return c
}
