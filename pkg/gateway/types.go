package gateway

import (
	"fmt"
	"net/http"
)

// CodeNetworkError is the error code reported for every transport failure
const CodeNetworkError = "NETWORK_ERROR"

// Config defines analysis backend client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the job analysis backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Health is the body of the health endpoint
type Health struct {
	Status string `json:"status"`
}

// AnalyzeRequest is the exact body posted to the analyze endpoint
type AnalyzeRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

// AnalyzeResponse mirrors the backend payload. Only one of Data,
// Suggestions and Error is expected to be populated.
type AnalyzeResponse struct {
	Success     bool          `json:"success"`
	Data        *Report       `json:"data,omitempty"`
	Suggestions []Suggestion  `json:"suggestions,omitempty"`
	Error       *ErrorPayload `json:"error,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Suggestion struct {
	Title           string  `json:"title"`
	SOCCode         string  `json:"soc_code"`
	SimilarityScore float64 `json:"similarity_score"`
}

type Term struct {
	Term             string   `json:"term"`
	Count            int      `json:"count"`
	ContextSentences []string `json:"context_sentences"`
}

// Report is a resolved occupation analysis
type Report struct {
	SOCCode               string `json:"soc_code"`
	JobTitle              string `json:"job_title"`
	Location              string `json:"location"`
	TotalPostingsAnalyzed int    `json:"total_postings_analyzed"`
	Responsibilities      []Term `json:"responsibilities"`
	Skills                []Term `json:"skills"`
	Qualifications        []Term `json:"qualifications"`
	UniqueAspects         []Term `json:"unique_aspects"`
}

// NetworkError reports an unreachable backend or a non-2xx answer
type NetworkError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s: HTTP error status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
