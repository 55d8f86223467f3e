package domain

// OutcomeKind discriminates the result of an analysis request
type OutcomeKind int

const (
	// OutcomeNoMatch is a well-formed response carrying neither data, suggestions nor an error
	OutcomeNoMatch OutcomeKind = iota
	OutcomeResolved
	OutcomeSuggestions
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResolved:
		return "resolved"
	case OutcomeSuggestions:
		return "suggestions"
	case OutcomeError:
		return "error"
	default:
		return "no_match"
	}
}

// AnalysisError is the error branch of an analysis response
type AnalysisError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Outcome is the result of one analysis request. Exactly one branch,
// selected by Kind, carries data.
type Outcome struct {
	Kind        OutcomeKind
	Report      *JobInsightsReport
	Suggestions []JobSuggestion
	Err         *AnalysisError
}

func Resolved(report JobInsightsReport) Outcome {
	return Outcome{Kind: OutcomeResolved, Report: &report}
}

// Suggestions builds a disambiguation outcome; an empty list is a no-match
func Suggestions(list []JobSuggestion) Outcome {
	if len(list) == 0 {
		return NoMatch()
	}
	return Outcome{Kind: OutcomeSuggestions, Suggestions: list}
}

func Failure(code, message string) Outcome {
	return Outcome{Kind: OutcomeError, Err: &AnalysisError{Code: code, Message: message}}
}

func NoMatch() Outcome {
	return Outcome{Kind: OutcomeNoMatch}
}
