package filter

import (
	"strings"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

// Stage names recorded in FilterOutcome.Filter.
const (
	NameKeyword    = "keyword"
	NameGeographic = "geographic"
	NameBudget     = "budget"
	NameDeadline   = "deadline"
)

// Keyword scores a record's text against weighted primary and secondary
// keyword lists. Each distinct keyword counts once no matter how often it
// repeats, so a press release that says "video" forty times does not
// outrank a genuine multimedia tender.
type Keyword struct {
	cfg *config.KeywordConfig
}

func NewKeyword(cfg *config.Config) *Keyword {
	return &Keyword{cfg: &cfg.Keywords}
}

// Score evaluates title + description and returns the outcome along with
// the distinct keywords that matched, primary first.
func (f *Keyword) Score(opp models.Opportunity) (models.FilterOutcome, []string) {
	text := strings.ToLower(opp.Title + " " + opp.Description)

	for _, excl := range f.cfg.Exclusions {
		if excl != "" && strings.Contains(text, strings.ToLower(excl)) {
			return models.FilterOutcome{
				Filter: NameKeyword,
				Passed: false,
				Score:  0,
				Reason: "excluded_keyword",
			}, nil
		}
	}

	var matched []string
	primaries := 0
	for _, kw := range f.cfg.Primary {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			primaries++
			matched = append(matched, kw)
		}
	}
	secondaries := 0
	for _, kw := range f.cfg.Secondary {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			secondaries++
			matched = append(matched, kw)
		}
	}

	score := float64(primaries)*f.cfg.PrimaryWeight + float64(secondaries)*f.cfg.SecondaryWeight
	if score > 1 {
		score = 1
	}

	outcome := models.FilterOutcome{
		Filter: NameKeyword,
		Passed: primaries+secondaries >= f.cfg.MinimumMatches,
		Score:  score,
	}
	if !outcome.Passed {
		outcome.Reason = "below_minimum_matches"
	}
	return outcome, matched
}
