package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/handoff"
)

type analyzerFunc func(ctx context.Context, q domain.SearchQuery) domain.Outcome

func (f analyzerFunc) Analyze(ctx context.Context, q domain.SearchQuery) domain.Outcome {
	return f(ctx, q)
}

type recordingAnalyzer struct {
	mu      sync.Mutex
	queries []domain.SearchQuery
	outcome domain.Outcome
}

func (a *recordingAnalyzer) Analyze(_ context.Context, q domain.SearchQuery) domain.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, q)
	return a.outcome
}

type recordingNavigator struct {
	calls []Navigation
	err   error
}

func (n *recordingNavigator) Navigate(_ context.Context, nav Navigation) error {
	n.calls = append(n.calls, nav)
	return n.err
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, domain.JobInsightsReport) error {
	return errors.New("slot unavailable")
}

func (failingStore) Load(context.Context, string) (domain.JobInsightsReport, error) {
	return domain.JobInsightsReport{}, handoff.ErrNotFound
}

func electricianReport() domain.JobInsightsReport {
	return domain.JobInsightsReport{
		SOCCode:               "47-2111.00",
		JobTitle:              "Electrician",
		Location:              "United States",
		TotalPostingsAnalyzed: 42,
		Responsibilities: []domain.AnalyzedTerm{
			{Term: "Install wiring", Count: 30, ContextSentences: []string{"Install and maintain wiring."}},
		},
	}
}

func newResolver(t *testing.T, a Analyzer, store handoff.Store, nav Navigator, opts ...Option) *Resolver {
	t.Helper()
	r, err := New(a, store, nav, append([]Option{WithSession("test-session")}, opts...)...)
	require.NoError(t, err)
	return r
}

func TestSubmitRejectsBlankQuery(t *testing.T) {
	a := &recordingAnalyzer{}
	r := newResolver(t, a, handoff.NewMemoryStore(0), &recordingNavigator{})

	snap, err := r.Submit(context.Background(), "   ", "Seattle")

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Equal(t, Idle, snap.State)
	assert.Empty(t, a.queries)
}

func TestSubmitDefaultsLocation(t *testing.T) {
	a := &recordingAnalyzer{outcome: domain.NoMatch()}
	r := newResolver(t, a, handoff.NewMemoryStore(0), &recordingNavigator{})

	_, err := r.Submit(context.Background(), "  Electrician ", "")
	require.NoError(t, err)

	require.Len(t, a.queries, 1)
	assert.Equal(t, domain.SearchQuery{Query: "Electrician", Location: "United States"}, a.queries[0])
	assert.Equal(t, "United States", r.Location())
}

func TestSubmitResolvedHandsOffAndNavigates(t *testing.T) {
	report := electricianReport()
	store := handoff.NewMemoryStore(time.Minute)
	nav := &recordingNavigator{}
	r := newResolver(t, &recordingAnalyzer{outcome: domain.Resolved(report)}, store, nav)

	snap, err := r.Submit(context.Background(), "Electrician", "")
	require.NoError(t, err)

	assert.Equal(t, Resolved, snap.State)
	assert.Empty(t, snap.Suggestions)

	stored, err := store.Load(context.Background(), "test-session")
	require.NoError(t, err)
	assert.Equal(t, report, stored)

	require.Len(t, nav.calls, 1)
	assert.Equal(t, "/results/47-2111.00", nav.calls[0].Path)
	assert.Equal(t, "47-2111.00", nav.calls[0].SOCCode)
	assert.Equal(t, "test-session", nav.calls[0].Session)
	require.NotNil(t, snap.Navigation)
	assert.Equal(t, nav.calls[0], *snap.Navigation)
}

func TestResultsPathEscapesCode(t *testing.T) {
	assert.Equal(t, "/results/15-1252.00", ResultsPath("15-1252.00"))
	assert.Equal(t, "/results/a%2Fb%20c", ResultsPath("a/b c"))
}

func TestSubmitSuggestions(t *testing.T) {
	list := []domain.JobSuggestion{
		{Title: "Software Developer", SOCCode: "15-1252.00", SimilarityScore: 0.82},
		{Title: "Software QA Analyst", SOCCode: "15-1253.00", SimilarityScore: 0.61},
	}
	nav := &recordingNavigator{}
	r := newResolver(t, &recordingAnalyzer{outcome: domain.Suggestions(list)}, handoff.NewMemoryStore(0), nav)

	snap, err := r.Submit(context.Background(), "Sfotware Dev", "")
	require.NoError(t, err)

	assert.Equal(t, Suggesting, snap.State)
	assert.Equal(t, list, snap.Suggestions)
	assert.Empty(t, nav.calls)

	r.ClearSuggestions()
	assert.Empty(t, r.Snapshot().Suggestions)
	assert.Equal(t, Suggesting, r.Snapshot().State)
}

func TestSubmitErrorIsVerbatim(t *testing.T) {
	r := newResolver(t, &recordingAnalyzer{outcome: domain.Failure("NETWORK_ERROR", "HTTP error! status: 502")},
		handoff.NewMemoryStore(0), &recordingNavigator{})

	snap, err := r.Submit(context.Background(), "Nurse", "")
	require.NoError(t, err)

	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "HTTP error! status: 502", snap.ErrorMessage)
}

func TestSubmitNoMatch(t *testing.T) {
	r := newResolver(t, &recordingAnalyzer{outcome: domain.Outcome{}}, handoff.NewMemoryStore(0), &recordingNavigator{})

	snap, err := r.Submit(context.Background(), "Wizard", "")
	require.NoError(t, err)

	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, NoResultsMessage, snap.ErrorMessage)
}

func TestSubmitHandoffFailureDoesNotNavigate(t *testing.T) {
	nav := &recordingNavigator{}
	r := newResolver(t, &recordingAnalyzer{outcome: domain.Resolved(electricianReport())}, failingStore{}, nav)

	snap, err := r.Submit(context.Background(), "Electrician", "")
	require.NoError(t, err)

	assert.Equal(t, Failed, snap.State)
	assert.Contains(t, snap.ErrorMessage, "slot unavailable")
	assert.Empty(t, nav.calls)
}

func TestSubmitNavigationError(t *testing.T) {
	nav := &recordingNavigator{err: errors.New("closed tab")}
	r := newResolver(t, &recordingAnalyzer{outcome: domain.Resolved(electricianReport())}, handoff.NewMemoryStore(0), nav)

	snap, err := r.Submit(context.Background(), "Electrician", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed tab")
	assert.Equal(t, Resolved, snap.State)
}

func TestOverlappingSubmissionsDiscardStaleResponse(t *testing.T) {
	started := make(chan struct{})
	a := analyzerFunc(func(ctx context.Context, q domain.SearchQuery) domain.Outcome {
		if q.Query == "slow" {
			close(started)
			<-ctx.Done()
			// a late answer that must not win
			return domain.Resolved(domain.JobInsightsReport{SOCCode: "00-0000.00"})
		}
		return domain.Suggestions([]domain.JobSuggestion{{Title: "Fast", SOCCode: "11-1111.00", SimilarityScore: 0.9}})
	})
	store := handoff.NewMemoryStore(0)
	nav := &recordingNavigator{}
	r := newResolver(t, a, store, nav)

	type result struct {
		snap Snapshot
		err  error
	}
	slow := make(chan result, 1)
	go func() {
		snap, err := r.Submit(context.Background(), "slow", "")
		slow <- result{snap, err}
	}()
	<-started

	snap, err := r.Submit(context.Background(), "fast", "")
	require.NoError(t, err)
	assert.Equal(t, Suggesting, snap.State)

	stale := <-slow
	assert.ErrorIs(t, stale.err, ErrSuperseded)

	final := r.Snapshot()
	assert.Equal(t, Suggesting, final.State)
	assert.Equal(t, "fast", final.Query.Query)
	assert.Empty(t, nav.calls)
	_, err = store.Load(context.Background(), "test-session")
	assert.ErrorIs(t, err, handoff.ErrNotFound)
}

func TestSupersededBeforeNavigationDoesNotNavigate(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	a := analyzerFunc(func(ctx context.Context, q domain.SearchQuery) domain.Outcome {
		if q.Query == "Plumber" {
			close(started)
			<-release
			return domain.NoMatch()
		}
		return domain.Resolved(electricianReport())
	})
	nav := &recordingNavigator{}
	r := newResolver(t, a, handoff.NewMemoryStore(0), nav)

	newer := make(chan error, 1)
	r.beforeNavigate = func() {
		go func() {
			_, err := r.Submit(context.Background(), "Plumber", "")
			newer <- err
		}()
		<-started
	}

	snap, err := r.Submit(context.Background(), "Electrician", "")
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, Submitting, snap.State)
	assert.Empty(t, nav.calls)

	close(release)
	require.NoError(t, <-newer)
	assert.Equal(t, Failed, r.Snapshot().State)
	assert.Empty(t, nav.calls)
}

func TestSubmitTimesOut(t *testing.T) {
	a := analyzerFunc(func(ctx context.Context, q domain.SearchQuery) domain.Outcome {
		<-ctx.Done()
		return domain.Failure("NETWORK_ERROR", ctx.Err().Error())
	})
	r := newResolver(t, a, handoff.NewMemoryStore(0), &recordingNavigator{}, WithTimeout(20*time.Millisecond))

	snap, err := r.Submit(context.Background(), "Electrician", "")
	require.NoError(t, err)
	assert.Equal(t, Failed, snap.State)
	assert.Contains(t, snap.ErrorMessage, "deadline exceeded")
}

func TestNewValidatesDependencies(t *testing.T) {
	_, err := New(nil, handoff.NewMemoryStore(0), &recordingNavigator{})
	assert.Error(t, err)
	_, err = New(&recordingAnalyzer{}, nil, &recordingNavigator{})
	assert.Error(t, err)
	_, err = New(&recordingAnalyzer{}, handoff.NewMemoryStore(0), nil)
	assert.Error(t, err)

	r, err := New(&recordingAnalyzer{}, handoff.NewMemoryStore(0), &recordingNavigator{})
	require.NoError(t, err)
	assert.NotEmpty(t, r.Session())
	assert.Equal(t, "idle", r.Snapshot().State.String())
}
