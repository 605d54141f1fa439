package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/filter"
	"github.com/david/tenderflow/internal/models"
)

func outcomes(keyword, budget, deadline, geographic float64) []models.FilterOutcome {
	return []models.FilterOutcome{
		{Filter: filter.NameKeyword, Passed: true, Score: keyword},
		{Filter: filter.NameBudget, Passed: true, Score: budget},
		{Filter: filter.NameDeadline, Passed: true, Score: deadline},
		{Filter: filter.NameGeographic, Passed: true, Score: geographic},
	}
}

func TestScoreWeightedCombination(t *testing.T) {
	e := NewEngine(config.Default())

	// Default weights: keyword .40, budget .20, deadline .20, geographic .20.
	got, _ := e.Score(outcomes(1.0, 1.0, 0.8, 0.5), nil)
	assert.InDelta(t, 0.4+0.2+0.16+0.1, got, 0.001)
}

func TestScoreReferenceBonus(t *testing.T) {
	e := NewEngine(config.Default())

	base, _ := e.Score(outcomes(0.4, 0.5, 0.6, 0.5), nil)
	ref := &models.ReferenceMatch{Value: "RFP/2024/123", Confidence: 0.95}
	boosted, _ := e.Score(outcomes(0.4, 0.5, 0.6, 0.5), ref)

	assert.InDelta(t, base+0.1*0.95, boosted, 0.001)
}

func TestScoreStaysInUnitInterval(t *testing.T) {
	e := NewEngine(config.Default())

	ref := &models.ReferenceMatch{Confidence: 1.0}
	got, priority := e.Score(outcomes(1.0, 1.0, 1.0, 1.0), ref)
	assert.Equal(t, 1.0, got, "bonus must be capped, not overflow")
	assert.Equal(t, models.PriorityCritical, priority)

	got, priority = e.Score(nil, nil)
	assert.Equal(t, 0.0, got)
	assert.Equal(t, models.PriorityLow, priority)
}

func TestPriorityThresholdTable(t *testing.T) {
	e := NewEngine(config.Default())

	tests := []struct {
		score float64
		want  models.Priority
	}{
		{0.95, models.PriorityCritical},
		{0.80, models.PriorityCritical}, // boundary is inclusive
		{0.79, models.PriorityHigh},
		{0.60, models.PriorityHigh},
		{0.59, models.PriorityMedium},
		{0.40, models.PriorityMedium},
		{0.39, models.PriorityLow},
		{0.0, models.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.priority(tt.score), "score %.2f", tt.score)
	}
}

func TestScoreMonotonicInKeywordScore(t *testing.T) {
	e := NewEngine(config.Default())

	prev := -1.0
	for _, kw := range []float64{0.0, 0.2, 0.4, 0.8, 1.0} {
		got, _ := e.Score(outcomes(kw, 0.5, 0.5, 0.5), nil)
		assert.GreaterOrEqual(t, got, prev, "keyword score %.1f", kw)
		prev = got
	}
}
