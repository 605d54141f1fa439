package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

// Confidence calibration knobs. Base confidences live in the pattern table;
// these adjust per match based on surrounding evidence.
const (
	orgMatchBoost     = 0.10
	anchorWordBoost   = 0.03
	anchorBoostCap    = 0.15
	anchorWindow      = 30
	shortValueMalus   = 0.20
	longValueMalus    = 0.10
	nonReferenceMalus = 0.30
	contextRadius     = 50
)

// anchorWords near a match suggest the token really is a procurement
// reference and not an incidental code.
var anchorWords = []string{
	"reference", "ref", "notice", "tender", "solicitation",
	"rfp", "rfq", "itb", "eoi", "procurement", "no.", "number",
}

var (
	dateLikeRegex  = regexp.MustCompile(`^\d{1,4}[-/]\d{1,2}[-/]\d{1,4}$`)
	timeLikeRegex  = regexp.MustCompile(`^\d{1,2}:\d{2}`)
	phoneLikeRegex = regexp.MustCompile(`^\+?\d{9,15}$`)
)

// Extractor finds procurement reference numbers in opportunity text using
// organization-aware pattern groups.
type Extractor struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract scans the opportunity's title, description and source URL for
// reference numbers. Results are deduplicated by normalized value, span
// overlaps resolved in favour of higher confidence, and sorted confidence
// descending (position ascending on ties) so index 0 is the primary
// candidate.
func (e *Extractor) Extract(opp models.Opportunity) []models.ReferenceMatch {
	text := opp.Title + " " + opp.Description + " " + opp.SourceURL
	if strings.TrimSpace(text) == "" {
		return nil
	}
	orgClass := e.ClassifyOrganization(opp)

	var matches []models.ReferenceMatch
	for _, group := range patternGroups {
		for _, p := range group.patterns {
			for _, loc := range p.re.FindAllStringIndex(text, -1) {
				value := text[loc[0]:loc[1]]
				conf := calibrate(p.confidence, group.class, orgClass, value, text, loc[0], loc[1])
				matches = append(matches, models.ReferenceMatch{
					PatternID:  p.id,
					OrgClass:   group.class,
					Value:      value,
					Confidence: conf,
					Position:   loc[0],
					Context:    contextWindow(text, loc[0], loc[1]),
				})
			}
		}
	}
	if len(matches) == 0 {
		return nil
	}

	matches = dedupeByValue(matches)
	matches = dropOverlaps(matches)

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Position < matches[j].Position
	})
	return matches
}

// ClassifyOrganization maps the record's source website and organization
// name onto one of the configured organization classes via case-insensitive
// substring aliases. Unmatched records classify as generic.
func (e *Extractor) ClassifyOrganization(opp models.Opportunity) string {
	haystack := strings.ToLower(opp.SourceWebsite + " " + opp.OrganizationName)
	if strings.TrimSpace(haystack) == "" {
		return ClassGeneric
	}
	// Deterministic class order, not map iteration order.
	for _, class := range []string{
		ClassUNAgencies, ClassWorldBank, ClassDevelopmentBanks,
		ClassHealthFunds, ClassNGOs,
	} {
		for _, alias := range e.cfg.Organizations[class] {
			if alias != "" && strings.Contains(haystack, strings.ToLower(alias)) {
				return class
			}
		}
	}
	return ClassGeneric
}

// calibrate applies evidence-based adjustments to a pattern's base
// confidence and clamps the result to [0, 1].
func calibrate(base float64, patternClass, orgClass, value, text string, start, end int) float64 {
	conf := base

	if patternClass != ClassGeneric && patternClass == orgClass {
		conf += orgMatchBoost
	}

	conf += anchorBoost(text, start, end)

	switch n := len(value); {
	case n < 4:
		conf -= shortValueMalus
	case n > 20:
		conf -= longValueMalus
	}

	if looksLikeNonReference(value) {
		conf -= nonReferenceMalus
	}

	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// anchorBoost counts anchor words within a window before and after the
// match, each worth a small boost up to a cap.
func anchorBoost(text string, start, end int) float64 {
	lo := start - anchorWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + anchorWindow
	if hi > len(text) {
		hi = len(text)
	}
	window := strings.ToLower(text[lo:start] + " " + text[end:hi])

	boost := 0.0
	for _, w := range anchorWords {
		if strings.Contains(window, w) {
			boost += anchorWordBoost
		}
	}
	if boost > anchorBoostCap {
		boost = anchorBoostCap
	}
	return boost
}

// looksLikeNonReference flags values that are probably a date, a time, or a
// phone number that the generic patterns picked up by accident.
func looksLikeNonReference(value string) bool {
	if dateLikeRegex.MatchString(value) {
		// prefix/digits/digits values keep letters, pure digit groups look
		// like dates
		if !strings.ContainsAny(value, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			return true
		}
	}
	if timeLikeRegex.MatchString(value) {
		return true
	}
	compact := strings.NewReplacer("-", "", "/", "", " ", "").Replace(value)
	return phoneLikeRegex.MatchString(compact)
}

// dedupeByValue keeps the highest-confidence match per normalized value.
func dedupeByValue(matches []models.ReferenceMatch) []models.ReferenceMatch {
	best := make(map[string]int, len(matches))
	var out []models.ReferenceMatch
	for _, m := range matches {
		key := normalizeValue(m.Value)
		if idx, ok := best[key]; ok {
			if m.Confidence > out[idx].Confidence {
				out[idx] = m
			}
			continue
		}
		best[key] = len(out)
		out = append(out, m)
	}
	return out
}

// dropOverlaps discards matches whose text span overlaps an already-accepted
// higher-confidence match, so "RFP/2024/001" does not also surface its
// "2024/001" tail.
func dropOverlaps(matches []models.ReferenceMatch) []models.ReferenceMatch {
	ordered := make([]models.ReferenceMatch, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Confidence != ordered[j].Confidence {
			return ordered[i].Confidence > ordered[j].Confidence
		}
		return len(ordered[i].Value) > len(ordered[j].Value)
	})

	type span struct{ start, end int }
	var accepted []span
	var out []models.ReferenceMatch
	for _, m := range ordered {
		s := span{m.Position, m.Position + len(m.Value)}
		overlap := false
		for _, a := range accepted {
			if s.start < a.end && a.start < s.end {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		accepted = append(accepted, s)
		out = append(out, m)
	}
	return out
}

func normalizeValue(v string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", "/", "", " ", "").Replace(v))
}

// contextWindow returns the surrounding text of a match for reporting.
func contextWindow(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}
