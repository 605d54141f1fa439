package score

import (
	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/filter"
	"github.com/david/tenderflow/internal/models"
)

// Engine combines per-filter scores into one weighted relevance score and a
// discrete priority tier. Weights come from configuration and sum to 1.0;
// the reference bonus is additive on top, capped so the total stays in
// [0, 1].
type Engine struct {
	cfg *config.ScoringConfig
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: &cfg.Scoring}
}

// Score computes the weighted relevance score from the filter outcomes plus
// a confidence-scaled bonus when a primary reference was found.
func (e *Engine) Score(outcomes []models.FilterOutcome, primary *models.ReferenceMatch) (float64, models.Priority) {
	w := e.cfg.Weights
	score := outcomeScore(outcomes, filter.NameKeyword)*w.Keyword +
		outcomeScore(outcomes, filter.NameBudget)*w.Budget +
		outcomeScore(outcomes, filter.NameDeadline)*w.Deadline +
		outcomeScore(outcomes, filter.NameGeographic)*w.Geographic

	if primary != nil {
		score += e.cfg.ReferenceBonusScale * primary.Confidence
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score, e.priority(score)
}

// priority walks the threshold table top-down; the loader guarantees the
// thresholds are strictly decreasing.
func (e *Engine) priority(score float64) models.Priority {
	tiers := []struct {
		threshold float64
		priority  models.Priority
	}{
		{e.cfg.Thresholds.Critical, models.PriorityCritical},
		{e.cfg.Thresholds.High, models.PriorityHigh},
		{e.cfg.Thresholds.Medium, models.PriorityMedium},
	}
	for _, tier := range tiers {
		if score >= tier.threshold {
			return tier.priority
		}
	}
	return models.PriorityLow
}

// outcomeScore looks up a stage's score by filter name. A missing outcome
// contributes zero, which only happens for records that degraded before
// that stage ran.
func outcomeScore(outcomes []models.FilterOutcome, name string) float64 {
	for _, o := range outcomes {
		if o.Filter == name {
			return o.Score
		}
	}
	return 0
}
