package sheet

import (
	"context"
	"fmt"

	"bitbuzz/internal/model"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"
)

// GormBackend keeps worksheets in a SQL database.
type GormBackend struct{ db *gorm.DB }

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&model.SheetRow{}); err != nil {
		return nil, fmt.Errorf("migrate sheet_rows: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) ReadTable(ctx context.Context, name string) (*Table, error) {
	var rows []model.SheetRow
	err := b.db.WithContext(ctx).
		Where("sheet = ?", name).
		Order("row_no").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query sheet %s: %w", name, err)
	}
	if len(rows) == 0 || rows[0].RowNo != 0 {
		return nil, ErrTableNotFound
	}

	t := &Table{}
	if err := json.Unmarshal([]byte(rows[0].Cells), &t.Columns); err != nil {
		return nil, fmt.Errorf("decode header of %s: %w", name, err)
	}
	for _, r := range rows[1:] {
		var cells []string
		if err := json.Unmarshal([]byte(r.Cells), &cells); err != nil {
			return nil, fmt.Errorf("decode row %d of %s: %w", r.RowNo, name, err)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// WriteTable swaps the worksheet inside one transaction, so a failed
// write leaves the previous rows in place.
func (b *GormBackend) WriteTable(ctx context.Context, name string, t *Table) error {
	rows := make([]model.SheetRow, 0, t.Len()+1)
	for i, cells := range append([][]string{t.Columns}, t.Rows...) {
		if cells == nil {
			cells = []string{}
		}
		data, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encode row %d of %s: %w", i, name, err)
		}
		rows = append(rows, model.SheetRow{Sheet: name, RowNo: i, Cells: string(data)})
	}

	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet = ?", name).Delete(&model.SheetRow{}).Error; err != nil {
			return fmt.Errorf("clear sheet %s: %w", name, err)
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("insert sheet %s: %w", name, err)
		}
		return nil
	})
}
