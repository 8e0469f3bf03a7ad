package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Workbook persists rows in a local .xlsx file. Every append reads,
// modifies and rewrites the whole file, so a single mutex serializes
// concurrent requests; otherwise simultaneous appenders would lose
// updates.
type Workbook struct {
	mu      sync.Mutex
	path    string
	headers map[string][]string
}

func NewWorkbook(path string, headers map[string][]string) *Workbook {
	return &Workbook{path: path, headers: headers}
}

func (w *Workbook) Append(ctx context.Context, sheet string, row []any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	f, created, err := w.open()
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if err := w.ensureSheet(f, sheet); err != nil {
		return err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("append row to %q: %w", sheet, err)
	}

	if created {
		if err := f.SaveAs(w.path); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// open returns the workbook at w.path, creating a fresh in-memory file
// when it does not exist yet.
func (w *Workbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); err != nil {
		if !os.IsNotExist(err) {
			return nil, false, err
		}
		if dir := filepath.Dir(w.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, false, err
			}
		}
		return excelize.NewFile(), true, nil
	}
	f, err := excelize.OpenFile(w.path)
	return f, false, err
}

// ensureSheet creates the sheet with its header row if that tab is
// missing, so the header is written exactly once over the sink's life.
func (w *Workbook) ensureSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx >= 0 {
		return nil
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	header := w.headers[sheet]
	hrow := make([]any, len(header))
	for i, h := range header {
		hrow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hrow); err != nil {
		return fmt.Errorf("write header for %q: %w", sheet, err)
	}

	// Drop the empty default sheet excelize puts in fresh workbooks.
	if sheet != defaultSheet {
		if i, _ := f.GetSheetIndex(defaultSheet); i >= 0 {
			if rows, _ := f.GetRows(defaultSheet); len(rows) == 0 {
				_ = f.DeleteSheet(defaultSheet)
			}
		}
	}
	return nil
}
