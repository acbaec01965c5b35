package model

// SheetRow stores one worksheet row in SQL. Row 0 holds the header and
// Cells is a JSON array of strings.
type SheetRow struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Sheet string `gorm:"size:128;index:idx_sheet_row,priority:1" json:"sheet"`
	RowNo int    `gorm:"index:idx_sheet_row,priority:2" json:"row_no"`
	Cells string `gorm:"type:text" json:"cells"`
}

func (SheetRow) TableName() string { return "sheet_rows" }
