// Package handoff carries a resolved report from the search workflow to the
// results view. Each session owns one slot; the resolver is its only writer
// and the results view its only reader.
package handoff

import (
	"context"
	"errors"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

// SlotKey names the per-session slot holding the latest resolved report
const SlotKey = "jobAnalysisResults"

var ErrNotFound = errors.New("handoff: no report for session")

// Store persists the latest resolved report per session
type Store interface {
	// Save overwrites the session's slot
	Save(ctx context.Context, session string, report domain.JobInsightsReport) error

	// Load returns the session's report or ErrNotFound
	Load(ctx context.Context, session string) (domain.JobInsightsReport, error)
}

// Key returns the storage key of a session's slot
func Key(session string) string {
	return SlotKey + ":" + session
}
