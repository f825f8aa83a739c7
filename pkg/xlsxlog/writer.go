// Package xlsxlog persists device observations to a daily, append-only
// .xlsx log file with the fixed schema Time, IP, MAC, Hostname, Vendor.
package xlsxlog

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
	"github.com/xuri/excelize/v2"

	"github.com/bmavalos/netlog-agent/pkg/types"
)

// DefaultRetryInterval is the wait between save attempts while the log
// file is held open by another process.
const DefaultRetryInterval = 5 * time.Second

// Padding added to the longest cell when sizing a column.
const columnPadding = 2

// FileName returns the log file name for the given day,
// e.g. "network-log-2024-05-01.xlsx".
func FileName(t time.Time) string {
	return fmt.Sprintf("network-log-%s.xlsx", t.Format("2006-01-02"))
}

// Writer appends enriched device rows to an xlsx log file.
type Writer struct {
	// RetryInterval is the wait between attempts while the file is
	// locked by another process. The retry itself is unbounded: the
	// expected cause is a human with the file open in a viewer, and
	// the condition clears when they close it.
	RetryInterval time.Duration

	// saveFile persists the workbook to disk. Replaceable in tests to
	// simulate a file held open by another process.
	saveFile func(f *excelize.File, path string) error
}

// NewWriter creates a Writer with the given busy-retry interval.
func NewWriter(retryInterval time.Duration) *Writer {
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}
	return &Writer{
		RetryInterval: retryInterval,
		saveFile: func(f *excelize.File, path string) error {
			return f.SaveAs(path)
		},
	}
}

// Append writes one row per entry to the workbook at path, creating it
// with the header row when missing. After appending it refits every
// column to its widest cell and extends the auto-filter over the full
// populated rectangle. A file locked by another process is retried
// until the lock clears or ctx is cancelled; any other I/O error is
// returned to the caller.
func (w *Writer) Append(ctx context.Context, path string, entries []types.LogEntry) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("refusing to log malformed entry: %w", err)
		}
	}

	f, sheet, err := w.openOrCreate(ctx, path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read log file %s: %w", path, err)
	}

	next := len(rows) + 1
	for _, entry := range entries {
		row := make([]interface{}, 0, len(types.Header))
		for _, cell := range entry.Row() {
			row = append(row, cell)
		}
		cell := fmt.Sprintf("A%d", next)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to append row to %s: %w", path, err)
		}
		next++
	}
	lastRow := next - 1

	if err := w.fitColumns(f, sheet); err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:E%d", lastRow), nil); err != nil {
		return fmt.Errorf("failed to set auto-filter on %s: %w", path, err)
	}

	return w.save(ctx, f, path)
}

// openOrCreate opens an existing workbook or creates a new one with the
// header as row 1. An open blocked by a file lock is retried like a save.
func (w *Writer) openOrCreate(ctx context.Context, path string) (*excelize.File, string, error) {
	if !fileutil.FileExists(path) {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		header := make([]interface{}, 0, len(types.Header))
		for _, cell := range types.Header {
			header = append(header, cell)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, "", fmt.Errorf("failed to write header row: %w", err)
		}
		return f, sheet, nil
	}

	for {
		f, err := excelize.OpenFile(path)
		if err == nil {
			return f, f.GetSheetName(0), nil
		}
		if !isFileBusy(err) {
			return nil, "", fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		gologger.Warning().Msgf("Permission denied: %s is open elsewhere, retrying in %s...", path, w.RetryInterval)
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(w.RetryInterval):
		}
	}
}

// fitColumns resizes every column to its widest cell plus padding.
func (w *Writer) fitColumns(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows for column sizing: %w", err)
	}

	widths := make([]int, len(types.Header))
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			// Width is in characters, not bytes, so multi-byte vendor
			// names are measured in runes.
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width+columnPadding)); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}
	return nil
}

// save persists the workbook, waiting out file locks indefinitely. The
// pending rows live in memory, so nothing is lost or duplicated across
// attempts.
func (w *Writer) save(ctx context.Context, f *excelize.File, path string) error {
	persist := w.saveFile
	if persist == nil {
		persist = func(f *excelize.File, path string) error { return f.SaveAs(path) }
	}
	for {
		err := persist(f, path)
		if err == nil {
			return nil
		}
		if !isFileBusy(err) {
			return fmt.Errorf("failed to save log file %s: %w", path, err)
		}
		gologger.Warning().Msgf("Permission denied: %s is open elsewhere, retrying in %s...", path, w.RetryInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.RetryInterval):
		}
	}
}
