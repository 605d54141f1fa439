package filter

import (
	"testing"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

func TestKeywordScoring(t *testing.T) {
	f := NewKeyword(config.Default())

	tests := []struct {
		name       string
		title      string
		desc       string
		wantPassed bool
		wantScore  float64
	}{
		{
			name:       "single primary",
			title:      "Video production services",
			wantPassed: true,
			wantScore:  0.4,
		},
		{
			name:       "primary plus secondary",
			title:      "Podcast series",
			desc:       "Looking for creative agencies",
			wantPassed: true,
			wantScore:  0.2 + 0.2, // podcast + creative
		},
		{
			name:       "no match",
			title:      "Road rehabilitation works",
			wantPassed: false,
			wantScore:  0,
		},
		{
			name:       "score capped at one",
			title:      "video multimedia film animation photography design",
			desc:       "graphic visual media communication",
			wantPassed: true,
			wantScore:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, _ := f.Score(models.Opportunity{Title: tt.title, Description: tt.desc})
			if outcome.Passed != tt.wantPassed {
				t.Errorf("passed = %v, want %v", outcome.Passed, tt.wantPassed)
			}
			if diff := outcome.Score - tt.wantScore; diff > 0.001 || diff < -0.001 {
				t.Errorf("score = %.2f, want %.2f", outcome.Score, tt.wantScore)
			}
		})
	}
}

func TestKeywordCountsDistinctKeywordsOnce(t *testing.T) {
	f := NewKeyword(config.Default())

	outcome, matched := f.Score(models.Opportunity{
		Title:       "Video video video",
		Description: "video video video video",
	})
	if diff := outcome.Score - 0.4; diff > 0.001 || diff < -0.001 {
		t.Errorf("score = %.2f, repeated keyword must count once", outcome.Score)
	}
	if len(matched) != 1 || matched[0] != "video" {
		t.Errorf("matched = %v, want [video]", matched)
	}
}

func TestKeywordExclusionFails(t *testing.T) {
	f := NewKeyword(config.Default())

	outcome, matched := f.Score(models.Opportunity{
		Title: "Video documentation of construction works",
	})
	if outcome.Passed {
		t.Error("excluded keyword must fail the filter")
	}
	if outcome.Reason != "excluded_keyword" {
		t.Errorf("reason = %q, want excluded_keyword", outcome.Reason)
	}
	if matched != nil {
		t.Errorf("matched = %v, want nil on exclusion", matched)
	}
}
