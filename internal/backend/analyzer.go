package backend

import (
	"context"
	"fmt"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/pkg/gateway"
)

// gatewayClient describes the subset of the gateway client used by the adapter.
type gatewayClient interface {
	AnalyzeJob(ctx context.Context, request gateway.AnalyzeRequest) gateway.AnalyzeResponse
	CheckHealth(ctx context.Context) (gateway.Health, error)
}

// Analyzer maps backend responses onto domain outcomes
type Analyzer struct {
	client gatewayClient
}

// NewAnalyzer builds an Analyzer around a gateway client
func NewAnalyzer(client gatewayClient) (*Analyzer, error) {
	if client == nil {
		return nil, fmt.Errorf("backend: gateway client is required")
	}
	return &Analyzer{client: client}, nil
}

// Analyze submits q and classifies the answer
func (a *Analyzer) Analyze(ctx context.Context, q domain.SearchQuery) domain.Outcome {
	resp := a.client.AnalyzeJob(ctx, gateway.AnalyzeRequest{
		Query:    q.Query,
		Location: q.Location,
	})
	return ToOutcome(resp)
}

// Health returns the backend status string
func (a *Analyzer) Health(ctx context.Context) (string, error) {
	h, err := a.client.CheckHealth(ctx)
	if err != nil {
		return "", err
	}
	return h.Status, nil
}

// ToOutcome classifies a raw response. Success with data wins, then a
// non-empty suggestion list, then an error; anything else is a no-match.
func ToOutcome(resp gateway.AnalyzeResponse) domain.Outcome {
	switch {
	case resp.Success && resp.Data != nil:
		return domain.Resolved(mapReport(*resp.Data))
	case len(resp.Suggestions) > 0:
		return domain.Suggestions(mapSuggestions(resp.Suggestions))
	case resp.Error != nil:
		return domain.Failure(resp.Error.Code, resp.Error.Message)
	default:
		return domain.NoMatch()
	}
}

func mapReport(r gateway.Report) domain.JobInsightsReport {
	return domain.JobInsightsReport{
		SOCCode:               r.SOCCode,
		JobTitle:              r.JobTitle,
		Location:              r.Location,
		TotalPostingsAnalyzed: r.TotalPostingsAnalyzed,
		Responsibilities:      mapTerms(r.Responsibilities),
		Skills:                mapTerms(r.Skills),
		Qualifications:        mapTerms(r.Qualifications),
		UniqueAspects:         mapTerms(r.UniqueAspects),
	}
}

func mapTerms(in []gateway.Term) []domain.AnalyzedTerm {
	if in == nil {
		return nil
	}
	out := make([]domain.AnalyzedTerm, 0, len(in))
	for _, t := range in {
		out = append(out, domain.AnalyzedTerm{
			Term:             t.Term,
			Count:            t.Count,
			ContextSentences: t.ContextSentences,
		})
	}
	return out
}

func mapSuggestions(in []gateway.Suggestion) []domain.JobSuggestion {
	out := make([]domain.JobSuggestion, 0, len(in))
	for _, s := range in {
		out = append(out, domain.JobSuggestion{
			Title:           s.Title,
			SOCCode:         s.SOCCode,
			SimilarityScore: s.SimilarityScore,
		})
	}
	return out
}
