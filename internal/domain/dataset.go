package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidDataset = errors.New("dataset must be a JSON object keyed by SOC code")
	// ErrResultsNotFound means the precomputed analysis has not been produced yet
	ErrResultsNotFound = errors.New("SOC analysis results not found")
)

// AllSOCResults maps occupation codes to their analysis, remembering the
// order in which codes appeared in the source document.
type AllSOCResults struct {
	codes  []string
	byCode map[string]SOCAnalysisResult
}

// NewAllSOCResults builds an empty mapping
func NewAllSOCResults() *AllSOCResults {
	return &AllSOCResults{byCode: make(map[string]SOCAnalysisResult)}
}

// ParseAllSOCResults decodes a dataset document, keeping key order
func ParseAllSOCResults(data []byte) (*AllSOCResults, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDataset)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrInvalidDataset
	}

	out := NewAllSOCResults()
	var decodeErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		var result SOCAnalysisResult
		if err := json.Unmarshal([]byte(value.Raw), &result); err != nil {
			decodeErr = fmt.Errorf("decode %q: %w", key.String(), err)
			return false
		}
		out.Put(key.String(), result)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return out, nil
}

// Put inserts or replaces a code; replacing keeps the original position
func (a *AllSOCResults) Put(code string, result SOCAnalysisResult) {
	if a.byCode == nil {
		a.byCode = make(map[string]SOCAnalysisResult)
	}
	if _, ok := a.byCode[code]; !ok {
		a.codes = append(a.codes, code)
	}
	a.byCode[code] = result
}

// Get returns the analysis for code
func (a *AllSOCResults) Get(code string) (SOCAnalysisResult, bool) {
	if a == nil {
		return SOCAnalysisResult{}, false
	}
	r, ok := a.byCode[code]
	return r, ok
}

// Codes returns the codes in insertion order
func (a *AllSOCResults) Codes() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.codes))
	copy(out, a.codes)
	return out
}

// First returns the first code, or "" for an empty mapping
func (a *AllSOCResults) First() string {
	if a == nil || len(a.codes) == 0 {
		return ""
	}
	return a.codes[0]
}

func (a *AllSOCResults) Len() int {
	if a == nil {
		return 0
	}
	return len(a.codes)
}

// MarshalJSON writes the object with keys in insertion order
func (a *AllSOCResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if a != nil {
		for i, code := range a.codes {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(code)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(a.byCode[code])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes with ParseAllSOCResults semantics
func (a *AllSOCResults) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAllSOCResults(data)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
