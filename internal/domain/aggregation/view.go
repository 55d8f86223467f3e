// Package aggregation presents the precomputed per-occupation term analysis:
// occupation cards, the selected category's ranked terms and their stats.
package aggregation

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

const sampleTitlesShown = 5

// Messages shown instead of the view when the dataset cannot be loaded
const (
	NotFoundMessage   = "SOC analysis results not found. Please run the analysis first."
	LoadFailedMessage = "Failed to load SOC analysis results"
)

var ErrUnknownOccupation = errors.New("aggregation: unknown occupation")

var displayNames = map[string]string{
	"47-2111.00": "Electricians",
	"29-1141.00": "Registered Nurses",
	"11-3031.00": "Financial Managers",
	"15-1252.00": "Software Developers",
}

// DisplayName returns the occupation name for code, or the code itself
func DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}

// Loader fetches the whole dataset
type Loader interface {
	Load(ctx context.Context) (*domain.AllSOCResults, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context) (*domain.AllSOCResults, error)

func (f LoaderFunc) Load(ctx context.Context) (*domain.AllSOCResults, error) {
	return f(ctx)
}

// View holds the dataset and the local selection. Selection changes never
// touch the network. A View is not safe for concurrent use.
type View struct {
	dataset    *domain.AllSOCResults
	occupation string
	category   domain.Category
	loaded     bool
	err        error
}

// NewView selects the first occupation of ds and the responsibilities category
func NewView(ds *domain.AllSOCResults) *View {
	v := &View{category: domain.Responsibilities}
	if ds != nil {
		v.setDataset(ds)
	}
	return v
}

func (v *View) setDataset(ds *domain.AllSOCResults) {
	v.dataset = ds
	v.occupation = ds.First()
	v.loaded = true
	v.err = nil
}

// Load fetches the dataset once. A failure leaves the view in a blocking
// error state reported by Err.
func (v *View) Load(ctx context.Context, l Loader) error {
	if v.loaded {
		return nil
	}
	ds, err := l.Load(ctx)
	if err != nil {
		v.err = err
		return fmt.Errorf("aggregation: load dataset: %w", err)
	}
	if ds == nil {
		ds = domain.NewAllSOCResults()
	}
	v.setDataset(ds)
	return nil
}

// Err is the load error, if any
func (v *View) Err() error {
	return v.err
}

func (v *View) Occupation() string {
	return v.occupation
}

func (v *View) Category() domain.Category {
	return v.category
}

// SelectOccupation switches the detail panel to code
func (v *View) SelectOccupation(code string) error {
	if _, ok := v.dataset.Get(code); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOccupation, code)
	}
	v.occupation = code
	return nil
}

// SelectCategory switches the displayed term list
func (v *View) SelectCategory(c domain.Category) error {
	if !c.Valid() {
		return fmt.Errorf("aggregation: invalid category %d", int(c))
	}
	v.category = c
	return nil
}

// Terms returns the selected occupation's terms for the selected category
func (v *View) Terms() []domain.AnalyzedTerm {
	result, ok := v.dataset.Get(v.occupation)
	if !ok {
		return nil
	}
	return result.AnalysisResults.Terms(v.category)
}

func (v *View) Stats() Stats {
	return ComputeStats(v.Terms())
}

// Card summarises one occupation
type Card struct {
	SOCCode                   string `json:"soc_code"`
	Name                      string `json:"name"`
	TotalJobsFound            int    `json:"total_jobs_found"`
	TotalDescriptionsAnalyzed int    `json:"total_descriptions_analyzed"`
	Selected                  bool   `json:"selected"`
}

// Detail is the header of the selected occupation
type Detail struct {
	SOCCode                   string   `json:"soc_code"`
	Name                      string   `json:"name"`
	TotalJobsFound            int      `json:"total_jobs_found"`
	TotalDescriptionsAnalyzed int      `json:"total_descriptions_analyzed"`
	SampleJobTitles           []string `json:"sample_job_titles"`
}

// TermView is one displayed term
type TermView struct {
	Term    string  `json:"term"`
	Count   int     `json:"count"`
	Context Preview `json:"context"`
}

// Page is everything needed to draw the view
type Page struct {
	Cards    []Card          `json:"cards"`
	Detail   *Detail         `json:"detail,omitempty"`
	Category domain.Category `json:"category"`
	Terms    []TermView      `json:"terms"`
	Stats    Stats           `json:"stats"`
	Error    string          `json:"error,omitempty"`
}

// Render builds the page. In the error state only Error is populated.
func (v *View) Render() Page {
	page := Page{Category: v.category}
	if v.err != nil {
		page.Error = LoadFailedMessage
		if errors.Is(v.err, domain.ErrResultsNotFound) {
			page.Error = NotFoundMessage
		}
		return page
	}

	for _, code := range v.dataset.Codes() {
		result, _ := v.dataset.Get(code)
		page.Cards = append(page.Cards, Card{
			SOCCode:                   code,
			Name:                      DisplayName(code),
			TotalJobsFound:            result.TotalJobsFound,
			TotalDescriptionsAnalyzed: result.TotalDescriptionsAnalyzed,
			Selected:                  code == v.occupation,
		})
	}

	result, ok := v.dataset.Get(v.occupation)
	if !ok {
		return page
	}

	titles := result.SampleJobTitles
	if len(titles) > sampleTitlesShown {
		titles = titles[:sampleTitlesShown]
	}
	page.Detail = &Detail{
		SOCCode:                   v.occupation,
		Name:                      DisplayName(v.occupation),
		TotalJobsFound:            result.TotalJobsFound,
		TotalDescriptionsAnalyzed: result.TotalDescriptionsAnalyzed,
		SampleJobTitles:           append([]string(nil), titles...),
	}

	terms := result.AnalysisResults.Terms(v.category)
	page.Terms = make([]TermView, 0, len(terms))
	for _, t := range terms {
		page.Terms = append(page.Terms, TermView{
			Term:    t.Term,
			Count:   t.Count,
			Context: PreviewContext(t.ContextSentences),
		})
	}
	page.Stats = ComputeStats(terms)

	return page
}
