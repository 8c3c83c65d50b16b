package export

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

const defaultTab = "Sheet1"

// SheetWriter is the subset of the Sheets client used for exports
type SheetWriter interface {
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}

// SheetTarget identifies the destination tab
type SheetTarget struct {
	SpreadsheetID string
	Tab           string
}

// WriteSheet replaces the contents of the target tab with the header and rows
func (e *Exporter) WriteSheet(ctx context.Context, w SheetWriter, target SheetTarget, filter repository.PostingFilter) (int, error) {
	if w == nil {
		return 0, fmt.Errorf("export: sheets client not configured")
	}
	if target.SpreadsheetID == "" {
		return 0, fmt.Errorf("export: spreadsheet id is required")
	}
	tab := target.Tab
	if tab == "" {
		tab = defaultTab
	}

	rows, err := e.Rows(ctx, filter)
	if err != nil {
		return 0, err
	}

	if err := w.ClearValues(ctx, target.SpreadsheetID, tab+"!A:Z"); err != nil {
		return 0, fmt.Errorf("export: clear %s: %w", tab, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, cells(Header))
	for _, r := range rows {
		values = append(values, cells(r))
	}

	if err := w.UpdateValues(ctx, target.SpreadsheetID, tab+"!A1", values); err != nil {
		return 0, fmt.Errorf("export: write %s: %w", tab, err)
	}
	return len(rows), nil
}

func cells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
