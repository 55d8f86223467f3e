package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/domain/resolver"
	"github.com/honeycarbs/occupation-insights/internal/domain/suggestion"
	"github.com/honeycarbs/occupation-insights/internal/handoff"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

const resolveJobName = "resolve_job"

// ResolveJobParams defines the arguments for the resolve_job tool
type ResolveJobParams struct {
	Query     string `json:"query" jsonschema:"Free-text job title, e.g. Electrician"`
	Location  string `json:"location,omitempty" jsonschema:"Location filter, defaults to United States"`
	SessionID string `json:"session_id,omitempty" jsonschema:"Handoff session that receives the report; generated when empty"`
}

// ResolveJobResult is the structured response of resolve_job
type ResolveJobResult struct {
	State       string   `json:"state" jsonschema:"resolved, suggesting or failed"`
	Session     string   `json:"session" jsonschema:"Session holding the handed-off report"`
	SOCCode     string   `json:"soc_code,omitempty" jsonschema:"Resolved occupation code"`
	ResultsPath string   `json:"results_path,omitempty" jsonschema:"Results route for the resolved occupation"`
	Suggestions []string `json:"suggestions,omitempty" jsonschema:"Candidate occupations with match percentage"`
	Error       string   `json:"error,omitempty" jsonschema:"Message shown to the user on failure"`
}

type resolveJobTool struct {
	analyzer resolver.Analyzer
	store    handoff.Store
	timeout  time.Duration
	logger   *logging.Logger
}

// WithResolveJob registers the resolve_job tool
func WithResolveJob(analyzer resolver.Analyzer, store handoff.Store, timeout time.Duration) Option {
	return func(reg *registry) {
		handler := resolveJobTool{
			analyzer: analyzer,
			store:    store,
			timeout:  timeout,
			logger:   reg.logger.Named(resolveJobName),
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        resolveJobName,
			Description: "Resolve a free-text job title to an occupation report, or list close matches to choose from",
		}, handler.handle)
		reg.add(resolveJobName)
	}
}

func (t resolveJobTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params ResolveJobParams) (*sdkmcp.CallToolResult, any, error) {
	r, err := resolver.New(t.analyzer, t.store,
		resolver.NavigatorFunc(func(context.Context, resolver.Navigation) error { return nil }),
		resolver.WithSession(params.SessionID),
		resolver.WithTimeout(t.timeout),
		resolver.WithLogger(t.logger),
	)
	if err != nil {
		return nil, nil, err
	}

	snap, err := r.Submit(ctx, params.Query, params.Location)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return errorResult("[resolve_job] query must not be empty"), nil, nil
		}
		return nil, nil, fmt.Errorf("resolve_job: %w", err)
	}

	result := ResolveJobResult{
		State:   snap.State.String(),
		Session: r.Session(),
		Error:   snap.ErrorMessage,
	}
	if snap.Navigation != nil {
		result.SOCCode = snap.Navigation.SOCCode
		result.ResultsPath = snap.Navigation.Path
	}
	for _, item := range suggestion.Items(snap.Suggestions) {
		result.Suggestions = append(result.Suggestions, item.String())
	}

	t.logger.Info("resolve_job completed", "state", result.State, "session", result.Session, "soc_code", result.SOCCode)

	if snap.State == resolver.Failed {
		return errorResult("[resolve_job] " + result.Error), result, nil
	}
	return textResult(formatResolve(result)), result, nil
}

func formatResolve(result ResolveJobResult) string {
	var b strings.Builder
	switch {
	case result.ResultsPath != "":
		fmt.Fprintf(&b, "[resolve_job] Resolved to SOC %s. Report stored for session %s at %s", result.SOCCode, result.Session, result.ResultsPath)
	case len(result.Suggestions) > 0:
		b.WriteString("[resolve_job] Did you mean one of these?")
		for i, s := range result.Suggestions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, s)
		}
	default:
		fmt.Fprintf(&b, "[resolve_job] state=%s", result.State)
	}
	return b.String()
}
