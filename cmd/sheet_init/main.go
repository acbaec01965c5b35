package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"bitbuzz/internal/config"
	"bitbuzz/internal/logger"
	"bitbuzz/internal/roster"
	"bitbuzz/internal/sheet"
	"bitbuzz/internal/worklog"
)

func main() {
	configFile := flag.String("config", "", "config file path")
	resetConfig := flag.Bool("reset-config", false, "overwrite the config worksheet with the default roster")
	importPath := flag.String("import", "", "copy the config and logs worksheets from this .xlsx workbook")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	backend, err := cfg.OpenBackend()
	if err != nil {
		logger.Error("store.open_failed", "driver", cfg.Store.Driver, "err", err)
		os.Exit(1)
	}

	if err := run(context.Background(), backend, *importPath, *resetConfig); err != nil {
		logger.Error("sheet_init.failed", "err", err)
		os.Exit(1)
	}
	logger.Info("=== all done ===")
}

func run(ctx context.Context, dst sheet.Backend, importPath string, resetConfig bool) error {
	// Step 1: bring in worksheets from an existing workbook
	if importPath != "" {
		n, err := copySheets(ctx, sheet.NewWorkbookBackend(importPath), dst, roster.Sheet, worklog.Sheet)
		if err != nil {
			return fmt.Errorf("import %s: %w", importPath, err)
		}
		logger.Info("sheet_init.imported", "path", importPath, "sheets", n)
	}

	store := sheet.NewStore(dst, nil)

	// Step 2: roster
	if resetConfig {
		if _, err := roster.NewRepository(store).Reset(ctx); err != nil {
			return fmt.Errorf("reset config: %w", err)
		}
	}

	// Step 3: logs header, then backfill views and IDs on imported rows
	logs := worklog.NewRepository(store)
	if _, err := logs.EnsureHeader(ctx); err != nil {
		return fmt.Errorf("create logs header: %w", err)
	}
	logger.Info("sheet_init.logs", "entries", len(logs.Load(ctx)))
	return nil
}

// copySheets copies the named worksheets that exist in src into dst and
// returns how many it copied.
func copySheets(ctx context.Context, src, dst sheet.Backend, names ...string) (int, error) {
	n := 0
	for _, name := range names {
		t, err := src.ReadTable(ctx, name)
		if errors.Is(err, sheet.ErrTableNotFound) {
			logger.Warn("sheet_init.sheet_missing", "sheet", name)
			continue
		}
		if err != nil {
			return n, fmt.Errorf("read %s: %w", name, err)
		}
		if err := dst.WriteTable(ctx, name, t); err != nil {
			return n, fmt.Errorf("write %s: %w", name, err)
		}
		n++
	}
	return n, nil
}
