package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/occupation-insights/internal/domain/aggregation"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

const exportInsightsName = "export_insights"

// SheetRow is one exported term
type SheetRow struct {
	Term    string
	Count   int
	Context string
}

// SheetsExportParams describes one write to a spreadsheet tab
type SheetsExportParams struct {
	SpreadsheetID string
	Tab           string
	ClearTab      bool
	Rows          []SheetRow
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many term rows were written"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

// SheetsClient writes rows to Google Sheets
type SheetsClient interface {
	Export(ctx context.Context, params SheetsExportParams) (SheetsExportResult, error)
}

// ExportInsightsParams defines the arguments for the export_insights tool
type ExportInsightsParams struct {
	SOCCode       string `json:"soc_code" jsonschema:"Occupation code to export"`
	Category      string `json:"category,omitempty" jsonschema:"Category to export, defaults to responsibilities"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, defaults to Sheet1"`
	ClearTab      bool   `json:"clear_tab,omitempty" jsonschema:"Replace the tab contents instead of appending"`
}

type exportInsightsTool struct {
	loader aggregation.Loader
	client SheetsClient
	logger *logging.Logger
}

// WithExportInsights registers the export_insights tool
func WithExportInsights(loader aggregation.Loader, client SheetsClient) Option {
	return func(reg *registry) {
		if client == nil {
			reg.logger.Info("export_insights disabled: sheets client not configured")
			return
		}
		handler := exportInsightsTool{loader: loader, client: client, logger: reg.logger.Named(exportInsightsName)}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        exportInsightsName,
			Description: "Export an occupation's term frequencies for one category to Google Sheets",
		}, handler.handle)
		reg.add(exportInsightsName)
	}
}

func (t exportInsightsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params ExportInsightsParams) (*sdkmcp.CallToolResult, any, error) {
	if params.SpreadsheetID == "" {
		return errorResult("[export_insights] spreadsheet_id is required"), nil, nil
	}
	if params.SOCCode == "" {
		return errorResult("[export_insights] soc_code is required"), nil, nil
	}

	view, err := loadView(ctx, t.loader, params.SOCCode, params.Category)
	if view == nil {
		return errorResult("[export_insights] " + err.Error()), nil, nil
	}
	if view.Err() != nil {
		return errorResult("[export_insights] " + view.Render().Error), nil, nil
	}

	page := view.Render()
	rows := make([]SheetRow, 0, len(page.Terms))
	for _, term := range page.Terms {
		row := SheetRow{Term: term.Term, Count: term.Count}
		if len(term.Context.Sentences) > 0 {
			row.Context = term.Context.Sentences[0]
		}
		rows = append(rows, row)
	}

	result, err := t.client.Export(ctx, SheetsExportParams{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		ClearTab:      params.ClearTab,
		Rows:          rows,
	})
	if err != nil {
		t.logger.Error("export failed", "err", err, "spreadsheet_id", params.SpreadsheetID)
		return nil, nil, fmt.Errorf("export_insights: %w", err)
	}

	t.logger.Info("export completed", "soc_code", view.Occupation(), "category", view.Category().String(), "rows", result.WrittenRows)
	msg := fmt.Sprintf("[export_insights] Wrote %d %s term(s) for SOC %s to %s", result.WrittenRows, view.Category().Label(), view.Occupation(), result.SpreadsheetID)
	return textResult(msg), result, nil
}
