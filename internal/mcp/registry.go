package mcp

import (
	"github.com/honeycarbs/occupation-insights/internal/mcp/tools"
)

// toolOptions lists the tools backed by res
func toolOptions(res *Resources) []tools.Option {
	return []tools.Option{
		tools.WithResolveJob(res.Analyzer, res.Handoff, res.AnalyzeTimeout),
		tools.WithSOCInsights(res.Dataset),
		tools.WithBackendHealth(res.Analyzer),
		tools.WithExportInsights(res.Dataset, res.Sheets),
	}
}
