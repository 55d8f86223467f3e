package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/pkg/gateway"
)

type fakeGateway struct {
	requests []gateway.AnalyzeRequest
	resp     gateway.AnalyzeResponse
	health   gateway.Health
	err      error
}

func (f *fakeGateway) AnalyzeJob(_ context.Context, req gateway.AnalyzeRequest) gateway.AnalyzeResponse {
	f.requests = append(f.requests, req)
	return f.resp
}

func (f *fakeGateway) CheckHealth(context.Context) (gateway.Health, error) {
	return f.health, f.err
}

func TestToOutcome(t *testing.T) {
	report := &gateway.Report{
		SOCCode:          "47-2111.00",
		Responsibilities: []gateway.Term{{Term: "Install wiring", Count: 8, ContextSentences: []string{"Installs wiring."}}},
	}
	suggestions := []gateway.Suggestion{{Title: "Software Developer", SOCCode: "15-1252.00", SimilarityScore: 0.82}}

	cases := []struct {
		name string
		resp gateway.AnalyzeResponse
		want domain.OutcomeKind
	}{
		{"resolved", gateway.AnalyzeResponse{Success: true, Data: report}, domain.OutcomeResolved},
		{"success without data", gateway.AnalyzeResponse{Success: true}, domain.OutcomeNoMatch},
		{"suggestions", gateway.AnalyzeResponse{Suggestions: suggestions}, domain.OutcomeSuggestions},
		{"empty suggestions", gateway.AnalyzeResponse{Suggestions: []gateway.Suggestion{}}, domain.OutcomeNoMatch},
		{"error", gateway.AnalyzeResponse{Error: &gateway.ErrorPayload{Code: "NOT_SUPPORTED", Message: "Unsupported title"}}, domain.OutcomeError},
		{"data without success", gateway.AnalyzeResponse{Data: report}, domain.OutcomeNoMatch},
		{"nothing", gateway.AnalyzeResponse{}, domain.OutcomeNoMatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToOutcome(tc.resp).Kind)
		})
	}
}

func TestToOutcomeMapsPayloads(t *testing.T) {
	out := ToOutcome(gateway.AnalyzeResponse{Success: true, Data: &gateway.Report{
		SOCCode:               "29-1141.00",
		JobTitle:              "Registered Nurse",
		TotalPostingsAnalyzed: 50,
		Responsibilities: []gateway.Term{
			{Term: "Patient care", Count: 40},
			{Term: "Charting", Count: 10},
		},
	}})

	require.NotNil(t, out.Report)
	assert.Equal(t, "Registered Nurse", out.Report.JobTitle)
	assert.Equal(t, 50, out.Report.TotalPostingsAnalyzed)
	assert.Equal(t, []domain.AnalyzedTerm{{Term: "Patient care", Count: 40}, {Term: "Charting", Count: 10}}, out.Report.Responsibilities)

	errOut := ToOutcome(gateway.AnalyzeResponse{Error: &gateway.ErrorPayload{Code: "X", Message: "verbatim message"}})
	assert.Equal(t, "verbatim message", errOut.Err.Message)
}

func TestAnalyzerForwardsQuery(t *testing.T) {
	fg := &fakeGateway{resp: gateway.AnalyzeResponse{Suggestions: []gateway.Suggestion{{Title: "A", SOCCode: "1", SimilarityScore: 0.5}}}}
	a, err := NewAnalyzer(fg)
	require.NoError(t, err)

	out := a.Analyze(context.Background(), domain.SearchQuery{Query: "Sfotware Dev", Location: "United States"})

	require.Len(t, fg.requests, 1)
	assert.Equal(t, gateway.AnalyzeRequest{Query: "Sfotware Dev", Location: "United States"}, fg.requests[0])
	assert.Equal(t, domain.OutcomeSuggestions, out.Kind)
}

func TestAnalyzerHealth(t *testing.T) {
	a, err := NewAnalyzer(&fakeGateway{health: gateway.Health{Status: "ok"}})
	require.NoError(t, err)
	status, err := a.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)

	down := errors.New("down")
	a, _ = NewAnalyzer(&fakeGateway{err: down})
	_, err = a.Health(context.Background())
	assert.ErrorIs(t, err, down)

	_, err = NewAnalyzer(nil)
	assert.Error(t, err)
}
