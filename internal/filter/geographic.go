package filter

import (
	"sort"
	"strings"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

// Neutral and preference scores for the geographic stage. Records with no
// recognizable location are legitimate (global calls, HQ consultancies), so
// they pass at the neutral score instead of failing.
const (
	geoPreferredScore = 1.0
	geoGlobalScore    = 0.8
	geoNeutralScore   = 0.5
)

var globalScopeTerms = []string{
	"global", "worldwide", "remote", "multiple locations", "home-based", "home based",
}

// Geographic evaluates a record's location against excluded and preferred
// country/region lists. Exclusion always wins: a record matching both an
// excluded country and a preferred region is excluded.
type Geographic struct {
	cfg *config.GeoConfig

	countries []string // canonical alias keys, sorted for determinism
}

func NewGeographic(cfg *config.Config) *Geographic {
	countries := make([]string, 0, len(cfg.Geographic.Aliases))
	for name := range cfg.Geographic.Aliases {
		countries = append(countries, name)
	}
	sort.Strings(countries)
	return &Geographic{cfg: &cfg.Geographic, countries: countries}
}

func (f *Geographic) Evaluate(opp models.Opportunity) models.FilterOutcome {
	haystack := strings.ToLower(opp.LocationText + " " + opp.OrganizationName + " " + opp.Title)

	recognized := f.recognizeCountries(haystack)

	// Exclusion precedence: canonical country match against the excluded
	// list, or a raw excluded country/region name appearing in the text.
	for _, country := range recognized {
		if containsFold(f.cfg.ExcludedCountries, country) {
			return geoFail("excluded_country")
		}
	}
	for _, name := range f.cfg.ExcludedCountries {
		if name != "" && strings.Contains(haystack, strings.ToLower(name)) {
			return geoFail("excluded_country")
		}
	}
	for _, region := range f.cfg.ExcludedRegions {
		if region != "" && strings.Contains(haystack, strings.ToLower(region)) {
			return geoFail("excluded_region")
		}
	}

	for _, country := range recognized {
		if containsFold(f.cfg.PreferredCountries, country) {
			return geoPass(geoPreferredScore, "preferred_country")
		}
	}
	for _, name := range f.cfg.PreferredCountries {
		if name != "" && strings.Contains(haystack, strings.ToLower(name)) {
			return geoPass(geoPreferredScore, "preferred_country")
		}
	}
	for _, region := range f.cfg.PreferredRegions {
		if region != "" && strings.Contains(haystack, strings.ToLower(region)) {
			return geoPass(geoPreferredScore, "preferred_region")
		}
	}

	for _, term := range globalScopeTerms {
		if strings.Contains(haystack, term) {
			return geoPass(geoGlobalScore, "global_scope")
		}
	}

	if len(recognized) > 0 {
		return geoPass(geoNeutralScore, "neutral_location")
	}
	return geoPass(geoNeutralScore, "no_location")
}

// recognizeCountries maps alias hits in the text back to canonical country
// names, in sorted order.
func (f *Geographic) recognizeCountries(haystack string) []string {
	var out []string
	for _, country := range f.countries {
		for _, alias := range f.cfg.Aliases[country] {
			if alias != "" && strings.Contains(haystack, strings.ToLower(alias)) {
				out = append(out, country)
				break
			}
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func geoFail(reason string) models.FilterOutcome {
	return models.FilterOutcome{Filter: NameGeographic, Passed: false, Score: 0, Reason: reason}
}

func geoPass(score float64, reason string) models.FilterOutcome {
	return models.FilterOutcome{Filter: NameGeographic, Passed: true, Score: score, Reason: reason}
}
