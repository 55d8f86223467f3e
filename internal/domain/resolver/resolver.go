package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/handoff"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

// NoResultsMessage is shown when the backend answers without data, suggestions or error
const NoResultsMessage = "No results found for your search. Please try a different job title."

const defaultTimeout = 30 * time.Second

// ErrSuperseded is returned to a submission whose answer arrived after a newer submission started
var ErrSuperseded = errors.New("resolver: submission superseded")

// State is the resolver's position in the search workflow
type State int

const (
	Idle State = iota
	Submitting
	Resolved
	Suggesting
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Resolved:
		return "resolved"
	case Suggesting:
		return "suggesting"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Analyzer runs one analysis request
type Analyzer interface {
	Analyze(ctx context.Context, q domain.SearchQuery) domain.Outcome
}

// Snapshot is a copy of the resolver state for presentation
type Snapshot struct {
	State        State
	Query        domain.SearchQuery
	Suggestions  []domain.JobSuggestion
	ErrorMessage string
	Navigation   *Navigation
}

// Option configures a Resolver
type Option func(*Resolver)

// WithTimeout bounds every analysis request
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithSession sets the handoff session; a random one is generated otherwise
func WithSession(session string) Option {
	return func(r *Resolver) {
		if session != "" {
			r.session = session
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver turns free-text queries into a resolved report, a suggestion
// list or an error. It is safe for concurrent use; only the most recent
// submission may change state.
type Resolver struct {
	analyzer  Analyzer
	store     handoff.Store
	navigator Navigator
	session   string
	timeout   time.Duration
	logger    *logging.Logger

	// navMu serializes the generation re-check and the Navigate call
	navMu          sync.Mutex
	beforeNavigate func()

	mu          sync.Mutex
	generation  uint64
	cancel      context.CancelFunc
	state       State
	query       domain.SearchQuery
	suggestions []domain.JobSuggestion
	errMsg      string
	navigation  *Navigation
}

// New builds a Resolver
func New(analyzer Analyzer, store handoff.Store, navigator Navigator, opts ...Option) (*Resolver, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("resolver: analyzer is required")
	}
	if store == nil {
		return nil, fmt.Errorf("resolver: handoff store is required")
	}
	if navigator == nil {
		return nil, fmt.Errorf("resolver: navigator is required")
	}

	r := &Resolver{
		analyzer:  analyzer,
		store:     store,
		navigator: navigator,
		session:   uuid.NewString(),
		timeout:   defaultTimeout,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("resolver").With("session", r.session)

	return r, nil
}

// Session returns the handoff session this resolver writes to
func (r *Resolver) Session() string {
	return r.session
}

// Submit validates and runs a search. A blank query returns
// domain.ErrEmptyQuery without touching state or calling the backend.
// Starting a submission cancels the one still in flight, which then
// returns ErrSuperseded.
func (r *Resolver) Submit(ctx context.Context, query, location string) (Snapshot, error) {
	q, err := domain.NewSearchQuery(query, location)
	if err != nil {
		return r.Snapshot(), err
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.generation++
	gen := r.generation
	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	r.cancel = cancel
	r.state = Submitting
	r.query = q
	r.errMsg = ""
	r.navigation = nil
	r.mu.Unlock()
	defer cancel()

	log := r.logger.With("submission", uuid.NewString(), "query", q.Query, "location", q.Location)
	log.Debug("submitting analysis request")

	outcome := r.analyzer.Analyze(reqCtx, q)

	r.mu.Lock()
	if gen != r.generation {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		log.Debug("discarding stale analysis response", "outcome", outcome.Kind.String())
		return snap, ErrSuperseded
	}
	r.cancel = nil

	var nav *Navigation
	switch outcome.Kind {
	case domain.OutcomeResolved:
		report := *outcome.Report
		if err := r.store.Save(ctx, r.session, report); err != nil {
			log.Error("failed to hand off report", "err", err)
			r.fail(fmt.Sprintf("Unable to open results: %v", err))
			break
		}
		nav = &Navigation{
			Path:    ResultsPath(report.SOCCode),
			SOCCode: report.SOCCode,
			Session: r.session,
		}
		r.state = Resolved
		r.suggestions = nil
		r.navigation = nav
		log.Info("query resolved", "soc_code", report.SOCCode)
	case domain.OutcomeSuggestions:
		r.state = Suggesting
		r.suggestions = outcome.Suggestions
		log.Info("query ambiguous", "suggestions", len(outcome.Suggestions))
	case domain.OutcomeError:
		r.fail(outcome.Err.Message)
		log.Warn("analysis failed", "code", outcome.Err.Code, "message", outcome.Err.Message)
	case domain.OutcomeNoMatch:
		r.fail(NoResultsMessage)
		log.Info("no results for query")
	default:
		r.fail(NoResultsMessage)
		log.Warn("unknown outcome kind", "kind", int(outcome.Kind))
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	if nav != nil {
		return r.navigate(ctx, gen, *nav, snap, log)
	}

	return snap, nil
}

// navigate moves to the results page unless a newer submission started
// after this one resolved.
func (r *Resolver) navigate(ctx context.Context, gen uint64, nav Navigation, snap Snapshot, log *logging.Logger) (Snapshot, error) {
	if r.beforeNavigate != nil {
		r.beforeNavigate()
	}

	r.navMu.Lock()
	defer r.navMu.Unlock()

	r.mu.Lock()
	if gen != r.generation {
		latest := r.snapshotLocked()
		r.mu.Unlock()
		log.Debug("skipping navigation for superseded submission", "path", nav.Path)
		return latest, ErrSuperseded
	}
	r.mu.Unlock()

	if err := r.navigator.Navigate(ctx, nav); err != nil {
		log.Error("navigation failed", "path", nav.Path, "err", err)
		return snap, fmt.Errorf("resolver: navigate to %s: %w", nav.Path, err)
	}
	return snap, nil
}

// ClearSuggestions drops the suggestion list, leaving the state untouched
func (r *Resolver) ClearSuggestions() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = nil
}

// Location returns the location of the latest submission
func (r *Resolver) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query.Location
}

// Snapshot returns a copy of the current state
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resolver) fail(msg string) {
	r.state = Failed
	r.errMsg = msg
	r.suggestions = nil
}

func (r *Resolver) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:        r.state,
		Query:        r.query,
		ErrorMessage: r.errMsg,
	}
	if len(r.suggestions) > 0 {
		snap.Suggestions = append([]domain.JobSuggestion(nil), r.suggestions...)
	}
	if r.navigation != nil {
		nav := *r.navigation
		snap.Navigation = &nav
	}
	return snap
}
