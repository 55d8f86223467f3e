package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/domain/aggregation"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

const socInsightsName = "soc_insights"

// SOCInsightsParams defines the arguments for the soc_insights tool
type SOCInsightsParams struct {
	SOCCode  string `json:"soc_code,omitempty" jsonschema:"Occupation code, defaults to the first analysed occupation"`
	Category string `json:"category,omitempty" jsonschema:"responsibilities, skills, qualifications or unique_aspects"`
}

type socInsightsTool struct {
	loader aggregation.Loader
	logger *logging.Logger
}

// WithSOCInsights registers the soc_insights tool
func WithSOCInsights(loader aggregation.Loader) Option {
	return func(reg *registry) {
		handler := socInsightsTool{loader: loader, logger: reg.logger.Named(socInsightsName)}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        socInsightsName,
			Description: "Show precomputed term frequencies for an analysed occupation and category",
		}, handler.handle)
		reg.add(socInsightsName)
	}
}

func (t socInsightsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SOCInsightsParams) (*sdkmcp.CallToolResult, any, error) {
	view, err := loadView(ctx, t.loader, params.SOCCode, params.Category)
	if view == nil {
		return errorResult("[soc_insights] " + err.Error()), nil, nil
	}

	page := view.Render()
	if page.Error != "" {
		t.logger.Warn("dataset unavailable", "err", err)
		return errorResult("[soc_insights] " + page.Error), page, nil
	}

	t.logger.Debug("soc_insights rendered", "soc_code", view.Occupation(), "category", view.Category().String(), "terms", len(page.Terms))
	return textResult(formatPage(page)), page, nil
}

// loadView loads the dataset and applies the requested selection. A nil
// view means the selection was invalid; a load failure still returns the
// view so its error page can be rendered.
func loadView(ctx context.Context, loader aggregation.Loader, socCode, category string) (*aggregation.View, error) {
	view := aggregation.NewView(nil)
	if err := view.Load(ctx, loader); err != nil {
		return view, err
	}

	if socCode != "" {
		if err := view.SelectOccupation(socCode); err != nil {
			return nil, err
		}
	}
	if category != "" {
		c, err := domain.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		if err := view.SelectCategory(c); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func formatPage(page aggregation.Page) string {
	var b strings.Builder
	b.WriteString("[soc_insights] Occupations:")
	for _, c := range page.Cards {
		marker := " "
		if c.Selected {
			marker = "*"
		}
		fmt.Fprintf(&b, "\n%s %s (SOC %s): %d jobs, %d analyzed", marker, c.Name, c.SOCCode, c.TotalJobsFound, c.TotalDescriptionsAnalyzed)
	}
	if page.Detail == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "\n\n%s: %d items, %d mentions, %d avg per item",
		page.Category.Label(), page.Stats.TotalItems, page.Stats.TotalMentions, page.Stats.AveragePerItem)
	for _, term := range page.Terms {
		fmt.Fprintf(&b, "\n- %s (%d jobs)", term.Term, term.Count)
		for _, s := range term.Context.Sentences {
			fmt.Fprintf(&b, "\n    %q", s)
		}
		if term.Context.Remaining > 0 {
			fmt.Fprintf(&b, "\n    +%d more", term.Context.Remaining)
		}
	}
	return b.String()
}
