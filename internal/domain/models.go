package domain

import (
	"errors"
	"strings"
)

// DefaultLocation is used when a search is submitted without a location
const DefaultLocation = "United States"

// ErrEmptyQuery is returned for a query that is blank after trimming
var ErrEmptyQuery = errors.New("query is required")

// SearchQuery is a single validated submission
type SearchQuery struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

// NewSearchQuery trims the input, rejects blank queries and defaults the location
func NewSearchQuery(query, location string) (SearchQuery, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return SearchQuery{}, ErrEmptyQuery
	}

	loc := strings.TrimSpace(location)
	if loc == "" {
		loc = DefaultLocation
	}

	return SearchQuery{Query: q, Location: loc}, nil
}

// JobSuggestion is an alternate occupation match offered by the backend
type JobSuggestion struct {
	Title           string  `json:"title"`
	SOCCode         string  `json:"soc_code"`
	SimilarityScore float64 `json:"similarity_score"`
}

// AnalyzedTerm is a normalized phrase with the number of postings mentioning it
type AnalyzedTerm struct {
	Term             string   `json:"term"`
	Count            int      `json:"count"`
	ContextSentences []string `json:"context_sentences"`
}

// JobInsightsReport is the full analysis of one resolved occupation
type JobInsightsReport struct {
	SOCCode               string         `json:"soc_code"`
	JobTitle              string         `json:"job_title"`
	Location              string         `json:"location"`
	TotalPostingsAnalyzed int            `json:"total_postings_analyzed"`
	Responsibilities      []AnalyzedTerm `json:"responsibilities"`
	Skills                []AnalyzedTerm `json:"skills"`
	Qualifications        []AnalyzedTerm `json:"qualifications"`
	UniqueAspects         []AnalyzedTerm `json:"unique_aspects"`
}

// Categories groups the report's four term lists
func (r JobInsightsReport) Categories() CategoryTerms {
	return CategoryTerms{
		Responsibilities: r.Responsibilities,
		Skills:           r.Skills,
		Qualifications:   r.Qualifications,
		UniqueAspects:    r.UniqueAspects,
	}
}

// SOCAnalysisResult is the precomputed analysis of a single occupation code
type SOCAnalysisResult struct {
	SOCCode                   string        `json:"soc_code"`
	TotalJobsFound            int           `json:"total_jobs_found"`
	TotalDescriptionsAnalyzed int           `json:"total_descriptions_analyzed"`
	AnalysisResults           CategoryTerms `json:"analysis_results"`
	SampleJobTitles           []string      `json:"sample_job_titles"`
}
