package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmarket-tracker/internal/export"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

// SheetExporter writes posting rows to a spreadsheet tab
type SheetExporter interface {
	WriteSheet(ctx context.Context, w export.SheetWriter, target export.SheetTarget, filter repository.PostingFilter) (int, error)
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab to overwrite (default Sheet1)"`
	Search        string `json:"search,omitempty" jsonschema:"Only export postings whose title or description contains this text"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum rows to export"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab,omitempty"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
}

type sheetsExportTool struct {
	exporter SheetExporter
	writer   export.SheetWriter
}

// WithSheetsExport registers the sheets_export tool. A nil writer skips registration.
func WithSheetsExport(exporter SheetExporter, writer export.SheetWriter) Option {
	return func(reg *registry) {
		if exporter == nil || writer == nil {
			return
		}
		handler := sheetsExportTool{exporter: exporter, writer: writer}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export stored postings with skills and suggestions to Google Sheets",
		}, handler.handle)
		reg.add("sheets_export")
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.SpreadsheetID) == "" {
		return errorResult("sheets_export", "spreadsheet_id is required"), nil, nil
	}

	target := export.SheetTarget{SpreadsheetID: params.SpreadsheetID, Tab: params.Tab}
	filter := repository.PostingFilter{Text: strings.TrimSpace(params.Search), Limit: params.Limit}

	n, err := t.exporter.WriteSheet(ctx, t.writer, target, filter)
	if err != nil {
		return errorResult("sheets_export", "%v", err), nil, nil
	}

	result := SheetsExportResult{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		WrittenRows:   n,
		CompletedAt:   time.Now().UTC(),
	}
	msg := fmt.Sprintf("[sheets_export] wrote %d row(s) to spreadsheet_id=%q tab=%q", n, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}
