package report

import (
	"sort"

	"github.com/david/tenderflow/internal/models"
)

const topKeywordLimit = 10

// KeywordCount pairs a matched keyword with how many distinct records
// matched it.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Summary aggregates a scored batch for the end-of-run log line and report
// header. Duplicates are listed in the batch but excluded from the
// count-based statistics, so re-announced tenders do not inflate the
// numbers.
type Summary struct {
	Total       int                     `json:"total"`
	Duplicates  int                     `json:"duplicates"`
	ByPriority  map[models.Priority]int `json:"by_priority"`
	BySource    map[string]int          `json:"by_source"`
	TopKeywords []KeywordCount          `json:"top_keywords"`
}

func Summarize(batch []models.ScoredOpportunity) Summary {
	s := Summary{
		Total:      len(batch),
		ByPriority: map[models.Priority]int{},
		BySource:   map[string]int{},
	}

	keywordCounts := map[string]int{}
	for _, rec := range batch {
		if rec.DuplicateOf != nil {
			s.Duplicates++
			continue
		}
		s.ByPriority[rec.Priority]++
		if rec.SourceWebsite != "" {
			s.BySource[rec.SourceWebsite]++
		}
		for _, kw := range rec.MatchedKeywords {
			keywordCounts[kw]++
		}
	}

	s.TopKeywords = topKeywords(keywordCounts, topKeywordLimit)
	return s
}

// topKeywords orders by count descending, alphabetical on ties, truncated
// to the limit.
func topKeywords(counts map[string]int, limit int) []KeywordCount {
	out := make([]KeywordCount, 0, len(counts))
	for kw, n := range counts {
		out = append(out, KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
