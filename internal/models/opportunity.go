package models

import (
	"time"

	"github.com/google/uuid"
)

// RawRecord is an opportunity listing exactly as a scraper produced it.
// Every field is untrusted free text; the pipeline owns nothing here.
type RawRecord struct {
	Title            string `json:"title"`
	OrganizationName string `json:"organization_name"`
	LocationText     string `json:"location_text"`
	DeadlineText     string `json:"deadline_text"`
	PublishedText    string `json:"published_text"`
	BudgetText       string `json:"budget_text"`
	Description      string `json:"description"`
	SourceWebsite    string `json:"source_website"`
	SourceURL        string `json:"source_url"`
}

// ReferenceMatch is one candidate reference number found in a record's text.
type ReferenceMatch struct {
	PatternID  string  `json:"pattern_id"`
	OrgClass   string  `json:"org_class"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Position   int     `json:"position"`
	Context    string  `json:"context,omitempty"`
}

// Opportunity is the canonical form of a RawRecord. Unparsable dates and
// amounts are nil, never zero values: a nil budget means "budget unknown".
type Opportunity struct {
	Title            string `json:"title"`
	OrganizationName string `json:"organization_name"`
	LocationText     string `json:"location_text"`
	Description      string `json:"description"`
	SourceWebsite    string `json:"source_website"`
	SourceURL        string `json:"source_url"`

	Deadline  *time.Time `json:"deadline"`
	Published *time.Time `json:"published"`

	// Budget is normalized to the reference currency. Invariant when both
	// are set: BudgetMin <= BudgetMax.
	BudgetMin *float64 `json:"budget_min"`
	BudgetMax *float64 `json:"budget_max"`
	Currency  string   `json:"currency,omitempty"`

	PrimaryReference    *ReferenceMatch  `json:"primary_reference"`
	AlternateReferences []ReferenceMatch `json:"alternate_references,omitempty"`

	// Raw strings are retained for auditability.
	DeadlineText  string `json:"deadline_text,omitempty"`
	PublishedText string `json:"published_text,omitempty"`
	BudgetText    string `json:"budget_text,omitempty"`
}

// FilterOutcome is one filter stage's verdict on one record.
type FilterOutcome struct {
	Filter string  `json:"filter"`
	Passed bool    `json:"passed"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// Priority is the discrete classification derived from the relevance score.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// ScoredOpportunity is the pipeline's durable output artifact. It is created
// once per run per input record and never mutated after the orchestrator
// emits it.
type ScoredOpportunity struct {
	ID uuid.UUID `json:"id"`
	Opportunity

	RelevanceScore  float64         `json:"relevance_score"`
	Priority        Priority        `json:"priority"`
	DuplicateOf     *uuid.UUID      `json:"duplicate_of"`
	FilterOutcomes  []FilterOutcome `json:"filter_outcomes"`
	MatchedKeywords []string        `json:"matched_keywords,omitempty"`
}

// Outcome returns the FilterOutcome recorded by the named filter, if any.
func (s *ScoredOpportunity) Outcome(filter string) (FilterOutcome, bool) {
	for _, fo := range s.FilterOutcomes {
		if fo.Filter == filter {
			return fo, true
		}
	}
	return FilterOutcome{}, false
}
