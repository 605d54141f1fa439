package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/david/tenderflow/internal/models"
)

// Report is the structured output handed to programmatic consumers. It
// carries the full scored batch, filter outcomes included, so downstream
// tooling can audit every verdict.
type Report struct {
	GeneratedAt   time.Time                  `json:"generated_at"`
	Total         int                        `json:"total"`
	Duplicates    int                        `json:"duplicates"`
	Opportunities []models.ScoredOpportunity `json:"opportunities"`
}

func NewReport(batch []models.ScoredOpportunity, now time.Time) Report {
	duplicates := 0
	for _, s := range batch {
		if s.DuplicateOf != nil {
			duplicates++
		}
	}
	return Report{
		GeneratedAt:   now.UTC(),
		Total:         len(batch),
		Duplicates:    duplicates,
		Opportunities: batch,
	}
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
