package filter

import (
	"testing"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

func geoConfig() *config.Config {
	cfg := config.Default()
	cfg.Geographic.ExcludedCountries = []string{"india", "pakistan"}
	cfg.Geographic.PreferredCountries = []string{"kenya", "philippines"}
	cfg.Geographic.PreferredRegions = []string{"east africa"}
	cfg.Geographic.ExcludedRegions = []string{"south asia"}
	return cfg
}

func TestGeographicExclusion(t *testing.T) {
	f := NewGeographic(geoConfig())

	tests := []struct {
		name       string
		location   string
		org        string
		wantReason string
	}{
		{"direct country name", "New Delhi, India", "", "excluded_country"},
		{"alias only", "Mumbai office", "", "excluded_country"},
		{"demonym in org", "", "Pakistani Ministry of Information", "excluded_country"},
		{"excluded region", "South Asia regional hub", "", "excluded_region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := f.Evaluate(models.Opportunity{LocationText: tt.location, OrganizationName: tt.org})
			if outcome.Passed {
				t.Fatal("expected exclusion to fail the filter")
			}
			if outcome.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", outcome.Reason, tt.wantReason)
			}
			if outcome.Score != 0 {
				t.Errorf("score = %.2f, want 0", outcome.Score)
			}
		})
	}
}

func TestGeographicExclusionBeatsPreference(t *testing.T) {
	f := NewGeographic(geoConfig())

	outcome := f.Evaluate(models.Opportunity{
		LocationText: "India and East Africa multi-country programme",
	})
	if outcome.Passed {
		t.Error("a record matching both lists must be excluded")
	}
	if outcome.Reason != "excluded_country" {
		t.Errorf("reason = %q, want excluded_country", outcome.Reason)
	}
}

func TestGeographicPreference(t *testing.T) {
	f := NewGeographic(geoConfig())

	outcome := f.Evaluate(models.Opportunity{LocationText: "Nairobi, Kenya"})
	if !outcome.Passed || outcome.Score != geoPreferredScore {
		t.Errorf("got passed=%v score=%.2f, want pass at %.2f", outcome.Passed, outcome.Score, geoPreferredScore)
	}
}

func TestGeographicGlobalScope(t *testing.T) {
	f := NewGeographic(geoConfig())

	outcome := f.Evaluate(models.Opportunity{LocationText: "Remote / home-based"})
	if !outcome.Passed || outcome.Reason != "global_scope" {
		t.Errorf("got passed=%v reason=%q, want global_scope pass", outcome.Passed, outcome.Reason)
	}
}

func TestGeographicNoLocationIsNeutral(t *testing.T) {
	f := NewGeographic(geoConfig())

	outcome := f.Evaluate(models.Opportunity{Title: "Annual report design"})
	if !outcome.Passed {
		t.Error("absence of location must not fail the filter")
	}
	if outcome.Score != geoNeutralScore {
		t.Errorf("score = %.2f, want neutral %.2f", outcome.Score, geoNeutralScore)
	}
	if outcome.Reason != "no_location" {
		t.Errorf("reason = %q, want no_location", outcome.Reason)
	}
}

func TestGeographicRecognizedButUnlisted(t *testing.T) {
	f := NewGeographic(geoConfig())

	outcome := f.Evaluate(models.Opportunity{LocationText: "Kathmandu, Nepal"})
	if !outcome.Passed {
		t.Error("unlisted country must still pass")
	}
	if outcome.Score != geoNeutralScore || outcome.Reason != "neutral_location" {
		t.Errorf("got score=%.2f reason=%q, want neutral_location at %.2f",
			outcome.Score, outcome.Reason, geoNeutralScore)
	}
}
