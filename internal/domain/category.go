package domain

import "fmt"

// Category identifies one of the four term lists of an analysis
type Category int

const (
	Responsibilities Category = iota
	Skills
	Qualifications
	UniqueAspects
)

var categoryIDs = [...]string{
	Responsibilities: "responsibilities",
	Skills:           "skills",
	Qualifications:   "qualifications",
	UniqueAspects:    "unique_aspects",
}

var categoryLabels = [...]string{
	Responsibilities: "Responsibilities",
	Skills:           "Skills",
	Qualifications:   "Qualifications",
	UniqueAspects:    "Unique Aspects",
}

// Categories lists every category in display order
func Categories() []Category {
	return []Category{Responsibilities, Skills, Qualifications, UniqueAspects}
}

// ParseCategory maps a wire identifier such as "unique_aspects" to a Category
func ParseCategory(id string) (Category, error) {
	for i, v := range categoryIDs {
		if v == id {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", id)
}

// Valid reports whether c is one of the four known categories
func (c Category) Valid() bool {
	return c >= Responsibilities && c <= UniqueAspects
}

// String returns the wire identifier
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryIDs[c]
}

// Label returns the display label
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return categoryLabels[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategoryTerms holds the ranked term list of each category
type CategoryTerms struct {
	Responsibilities []AnalyzedTerm `json:"responsibilities"`
	Skills           []AnalyzedTerm `json:"skills"`
	Qualifications   []AnalyzedTerm `json:"qualifications"`
	UniqueAspects    []AnalyzedTerm `json:"unique_aspects"`
}

// Terms returns the list for c; an invalid category has no terms
func (t CategoryTerms) Terms(c Category) []AnalyzedTerm {
	switch c {
	case Responsibilities:
		return t.Responsibilities
	case Skills:
		return t.Skills
	case Qualifications:
		return t.Qualifications
	case UniqueAspects:
		return t.UniqueAspects
	default:
		return nil
	}
}
