package filter

import (
	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

const budgetUnknownScore = 0.5

// Budget checks whether a record's budget range overlaps the configured
// acceptable range. Unknown budgets are not penalized: many worthwhile
// tenders never publish a figure.
type Budget struct {
	cfg *config.BudgetConfig
}

func NewBudget(cfg *config.Config) *Budget {
	return &Budget{cfg: &cfg.Budget}
}

func (f *Budget) Evaluate(opp models.Opportunity) models.FilterOutcome {
	if opp.BudgetMax == nil {
		return models.FilterOutcome{
			Filter: NameBudget,
			Passed: true,
			Score:  budgetUnknownScore,
			Reason: "unknown_budget",
		}
	}

	recMin := 0.0
	if opp.BudgetMin != nil {
		recMin = *opp.BudgetMin
	}
	recMax := *opp.BudgetMax

	overlaps := recMin <= f.cfg.Max && recMax >= f.cfg.Min

	outcome := models.FilterOutcome{
		Filter: NameBudget,
		Passed: overlaps,
		Score:  f.midpointScore((recMin + recMax) / 2),
	}
	if !overlaps {
		if recMax < f.cfg.Min {
			outcome.Reason = "below_range"
		} else {
			outcome.Reason = "above_range"
		}
	}
	return outcome
}

// midpointScore is 1.0 inside the configured range and decays linearly with
// the midpoint's distance outside it, one full range-width away reaching 0.
func (f *Budget) midpointScore(mid float64) float64 {
	if mid >= f.cfg.Min && mid <= f.cfg.Max {
		return 1.0
	}
	span := f.cfg.Max - f.cfg.Min
	if span <= 0 {
		return 0
	}
	var dist float64
	if mid < f.cfg.Min {
		dist = f.cfg.Min - mid
	} else {
		dist = mid - f.cfg.Max
	}
	score := 1.0 - dist/span
	if score < 0 {
		score = 0
	}
	return score
}
