package aggregation

import (
	"html"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

const (
	// ContextLimit is the rune budget of one displayed context sentence
	ContextLimit = 150
	// MaxContextShown is how many context sentences a term shows
	MaxContextShown = 2

	ellipsis = "..."
)

// Stats summarises one term list
type Stats struct {
	TotalItems     int `json:"total_items"`
	TotalMentions  int `json:"total_mentions"`
	AveragePerItem int `json:"average_per_item"`
}

// ComputeStats derives counts for a term list; an empty list yields zeros
func ComputeStats(terms []domain.AnalyzedTerm) Stats {
	s := Stats{TotalItems: len(terms)}
	for _, t := range terms {
		s.TotalMentions += t.Count
	}
	if s.TotalItems > 0 {
		s.AveragePerItem = int(math.Round(float64(s.TotalMentions) / float64(s.TotalItems)))
	}
	return s
}

// Preview is the displayed part of a term's context sentences
type Preview struct {
	Sentences []string `json:"sentences"`
	Remaining int      `json:"remaining"`
}

var (
	sanitizer = bluemonday.StrictPolicy()

	// markup matches HTML elements and comments; bare comparisons such as
	// a<b or vector<int> do not match.
	markup = regexp.MustCompile(`(?i)<!--|</?(?:a|abbr|b|br|code|div|em|h[1-6]|hr|i|img|li|ol|p|pre|script|span|strong|style|table|td|th|tr|u|ul)(?:\s[^<>]*)?/?>`)
)

// PreviewContext sanitizes and truncates the first MaxContextShown sentences
func PreviewContext(sentences []string) Preview {
	shown := sentences
	if len(shown) > MaxContextShown {
		shown = shown[:MaxContextShown]
	}

	p := Preview{
		Sentences: make([]string, 0, len(shown)),
		Remaining: len(sentences) - len(shown),
	}
	for _, s := range shown {
		p.Sentences = append(p.Sentences, truncate(Sanitize(s), ContextLimit))
	}
	return p
}

// Sanitize strips markup from backend text, leaving plain characters.
// Text without HTML elements is kept as written.
func Sanitize(s string) string {
	if markup.MatchString(s) {
		s = sanitizer.Sanitize(s)
	}
	return strings.TrimSpace(html.UnescapeString(s))
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + ellipsis
}
