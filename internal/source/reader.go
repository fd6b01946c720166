// Package source reads catalogue seed rows from spreadsheet workbooks.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names present in every workbook.
const (
	SheetCategories = "Categories"
	SheetColors     = "Colors"
	SheetProducts   = "Products"
)

// Record is one data row keyed by the sheet's header cells, together with
// the workbook and 1-based sheet row it was read from.
type Record struct {
	Source string
	Row    int
	Values map[string]string
}

// Get returns the trimmed value of column, or "".
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// Origin names the record's position for error messages. Records built
// outside a workbook fall back to their index in the decoded batch.
func (r Record) Origin(index int) string {
	switch {
	case r.Source != "" && r.Row > 0:
		return fmt.Sprintf("%s row %d", r.Source, r.Row)
	case r.Row > 0:
		return fmt.Sprintf("row %d", r.Row)
	default:
		return fmt.Sprintf("record %d", index+1)
	}
}

// Reader loads sheets from an ordered list of workbooks.
type Reader struct {
	paths  []string
	logger *slog.Logger
}

// NewReader creates a reader over paths. Order matters: later workbooks win
// when records are deduplicated.
func NewReader(paths []string, logger *slog.Logger) *Reader {
	return &Reader{paths: paths, logger: logger}
}

// ReadSheet concatenates the rows of sheet across all workbooks that exist.
// A missing workbook is skipped; a workbook that cannot be opened or lacks the
// sheet is an error.
func (r *Reader) ReadSheet(ctx context.Context, sheet string) ([]Record, error) {
	var out []Record
	for _, path := range r.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				r.logger.DebugContext(ctx, "source file missing, skipped", slog.String("path", path))
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		records, err := readWorkbook(path, sheet)
		if err != nil {
			return nil, err
		}
		r.logger.DebugContext(ctx, "source sheet read",
			slog.String("path", path),
			slog.String("sheet", sheet),
			slog.Int("rows", len(records)),
		)
		out = append(out, records...)
	}
	return out, nil
}

// ErrNoSources is returned by Check when none of the workbooks exist.
var ErrNoSources = errors.New("no source workbook found")

// Check reports ErrNoSources when every configured workbook is missing.
// Seeding still works without them, but the catalog stages write nothing.
func (r *Reader) Check(_ context.Context) error {
	for _, path := range r.paths {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSources, strings.Join(r.paths, ", "))
}

func readWorkbook(path, sheet string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("workbook %s: sheet %q not found", path, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		// rows[0] is sheet row 1, so rows[1:][n] is sheet row n+2.
		rec := Record{Source: path, Row: n + 2, Values: make(map[string]string, len(header))}
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec.Values[col] = row[i]
			} else {
				rec.Values[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Dedupe keeps one item per key. The last occurrence wins, placed at the
// position where the key was first seen.
func Dedupe[T any](items []T, key func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if i, ok := index[k]; ok {
			out[i] = it
			continue
		}
		index[k] = len(out)
		out = append(out, it)
	}
	return out
}
