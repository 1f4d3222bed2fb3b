// Package model defines the core domain models used throughout the application.
package model

// CandidateUnknown is the sentinel candidate for documents that could not be
// matched to any configured schedule.
const CandidateUnknown = "Unknown"

// WeightedTerm is a single keyword with its scoring weight.
type WeightedTerm struct {
	Term   string  `json:"term" yaml:"term"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// CategoryDefinition describes one schedule bucket documents can be sorted
// into. Keywords carry the primary signals; SmallTerms are weaker secondary
// signals scored the same way.
type CategoryDefinition struct {
	ID         string         `json:"id" yaml:"id"`
	Label      string         `json:"label" yaml:"label"`
	Keywords   []WeightedTerm `json:"keywords" yaml:"keywords"`
	SmallTerms []WeightedTerm `json:"small_terms" yaml:"small_terms"`
}

// FilenameRule maps a case-insensitive filename pattern to a category.
// Rules are evaluated in declaration order; the first match wins.
type FilenameRule struct {
	Pattern  string `json:"pattern" yaml:"pattern"`
	Category string `json:"category" yaml:"category"`
}

// ScheduleConfig is the editable rule set: schedule definitions plus
// filename rules, in the order the user declared them. Declaration order is
// load-bearing for both rule precedence and score tie-breaking.
type ScheduleConfig struct {
	Categories    []CategoryDefinition `json:"categories" yaml:"categories"`
	FilenameRules []FilenameRule       `json:"filename_rules" yaml:"filename_rules"`
}

// CategoryIDs returns the configured category identifiers in declaration order.
func (c ScheduleConfig) CategoryIDs() []string {
	ids := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		ids[i] = cat.ID
	}
	return ids
}

// HasCategory reports whether the given identifier names a configured category.
func (c ScheduleConfig) HasCategory(id string) bool {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}
