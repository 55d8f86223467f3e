package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/occupation-insights/internal/mcp/tools"
	sheetsclient "github.com/honeycarbs/occupation-insights/pkg/sheets"
)

var sheetHeader = []any{"Term", "Count", "Context"}

type valuesWriter interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]any) error
	Update(ctx context.Context, spreadsheetID, rng string, rows [][]any) error
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

type sheetsClientAdapter struct {
	client valuesWriter
	now    func() time.Time
}

func newSheetsClientAdapter(client valuesWriter) *sheetsClientAdapter {
	return &sheetsClientAdapter{client: client, now: time.Now}
}

// Export appends term rows, or replaces the tab with a header and the rows when ClearTab is set
func (a *sheetsClientAdapter) Export(ctx context.Context, params tools.SheetsExportParams) (tools.SheetsExportResult, error) {
	tab := params.Tab
	if tab == "" {
		tab = sheetsclient.DefaultTab
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           tab,
	}

	if len(params.Rows) == 0 && !params.ClearTab {
		result.CompletedAt = a.now().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	values := convertRowsToValues(params.Rows)

	if params.ClearTab {
		if err := a.client.Clear(ctx, params.SpreadsheetID, sheetsclient.A1(tab, "A1:Z")); err != nil {
			return result, fmt.Errorf("sheets: failed to clear tab: %w", err)
		}
		values = append([][]any{sheetHeader}, values...)
		if err := a.client.Update(ctx, params.SpreadsheetID, sheetsclient.A1(tab, "A1"), values); err != nil {
			return result, fmt.Errorf("sheets: failed to write rows: %w", err)
		}
	} else {
		if err := a.client.Append(ctx, params.SpreadsheetID, sheetsclient.A1(tab, "A1"), values); err != nil {
			return result, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	}

	result.WrittenRows = len(params.Rows)
	result.CompletedAt = a.now().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)

	return result, nil
}

func convertRowsToValues(rows []tools.SheetRow) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = []any{row.Term, row.Count, row.Context}
	}
	return values
}

var _ tools.SheetsClient = (*sheetsClientAdapter)(nil)
