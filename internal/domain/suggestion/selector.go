package suggestion

import (
	"context"
	"fmt"
	"math"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/domain/resolver"
)

// Item is one rendered suggestion line
type Item struct {
	Title        string
	SOCCode      string
	MatchPercent int
}

func (i Item) String() string {
	return fmt.Sprintf("%s — SOC %s — %d%% match", i.Title, i.SOCCode, i.MatchPercent)
}

// Items renders suggestions in backend order
func Items(list []domain.JobSuggestion) []Item {
	items := make([]Item, 0, len(list))
	for _, s := range list {
		items = append(items, Item{
			Title:        s.Title,
			SOCCode:      s.SOCCode,
			MatchPercent: MatchPercent(s.SimilarityScore),
		})
	}
	return items
}

// MatchPercent converts a similarity score in [0,1] to a whole percentage
func MatchPercent(score float64) int {
	return int(math.Round(score * 100))
}

// Submitter is the subset of the resolver the selector drives
type Submitter interface {
	Submit(ctx context.Context, query, location string) (resolver.Snapshot, error)
	Snapshot() resolver.Snapshot
	ClearSuggestions()
	Location() string
}

// Selector resubmits a chosen suggestion through the resolver
type Selector struct {
	resolver Submitter
}

func NewSelector(r Submitter) *Selector {
	return &Selector{resolver: r}
}

// Items returns the resolver's current suggestions
func (s *Selector) Items() []Item {
	return Items(s.resolver.Snapshot().Suggestions)
}

// Pick clears the visible list, then submits the chosen title with the
// location of the previous search.
func (s *Selector) Pick(ctx context.Context, index int) (resolver.Snapshot, error) {
	list := s.resolver.Snapshot().Suggestions
	if index < 0 || index >= len(list) {
		return s.resolver.Snapshot(), fmt.Errorf("suggestion: index %d out of range [0,%d)", index, len(list))
	}
	chosen := list[index]

	s.resolver.ClearSuggestions()
	return s.resolver.Submit(ctx, chosen.Title, s.resolver.Location())
}
