package sheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WorkbookBackend keeps worksheets in a single .xlsx file.
type WorkbookBackend struct {
	path string
	mu   sync.Mutex
}

func NewWorkbookBackend(path string) *WorkbookBackend {
	return &WorkbookBackend{path: path}
}

func (b *WorkbookBackend) ReadTable(ctx context.Context, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, ErrTableNotFound
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: rows[0], Rows: rows[1:]}, nil
}

// WriteTable rebuilds the worksheet under a scratch name, swaps it in,
// saves the workbook to a temp file next to the original and renames it
// over the original. A failure at any step leaves the file untouched.
func (b *WorkbookBackend) WriteTable(ctx context.Context, name string, t *Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	f, fresh, err := b.open()
	if err != nil {
		return err
	}
	defer f.Close()

	scratch := "~" + name
	if len(scratch) > 31 {
		scratch = scratch[:31]
	}
	if _, err := f.NewSheet(scratch); err != nil {
		return fmt.Errorf("create sheet %s: %w", scratch, err)
	}
	for i, cells := range append([][]string{t.Columns}, t.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := cells
		if err := f.SetSheetRow(scratch, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i, name, err)
		}
	}

	if idx, _ := f.GetSheetIndex(name); idx >= 0 {
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("drop sheet %s: %w", name, err)
		}
	}
	if err := f.SetSheetName(scratch, name); err != nil {
		return fmt.Errorf("rename sheet %s: %w", scratch, err)
	}
	if fresh && name != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	return b.save(f)
}

func (b *WorkbookBackend) open() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(b.path)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}
	return excelize.NewFile(), true, nil
}

func (b *WorkbookBackend) save(f *excelize.File) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create workbook dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".bitbuzz-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp workbook: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}
