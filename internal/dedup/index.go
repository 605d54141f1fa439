package dedup

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/david/tenderflow/internal/config"
)

// Index detects near-duplicate opportunities across a batch. The same
// tender is frequently re-announced with minor title variations on mirrored
// listings, so matching is similarity-based rather than exact.
//
// This is the only mutable shared state in the pipeline; all access is
// guarded by the mutex. Duplicate detection depends on insertion order: the
// earliest-seen record stays canonical.
type Index struct {
	mu        sync.Mutex
	threshold float64
	entries   []entry
}

type entry struct {
	id        uuid.UUID
	signature string
	tokens    []string
}

func NewIndex(cfg *config.Config) *Index {
	return &Index{threshold: cfg.Dedup.SimilarityThreshold}
}

// Check compares the record's signature against every indexed record. On a
// match at or above the threshold it returns the canonical record's id and
// leaves the index untouched; otherwise it indexes the record and returns
// nil. Duplicates are not indexed, so chains of near-duplicates all point
// at the first-seen record.
func (x *Index) Check(id uuid.UUID, title, organization string) *uuid.UUID {
	sig := signature(title, organization)
	toks := tokenize(sig)

	x.mu.Lock()
	defer x.mu.Unlock()

	for _, e := range x.entries {
		if similarity(sig, toks, e.signature, e.tokens) >= x.threshold {
			canonical := e.id
			return &canonical
		}
	}
	x.entries = append(x.entries, entry{id: id, signature: sig, tokens: toks})
	return nil
}

// Reset clears the index. The orchestrator calls this at the start of every
// run so results never depend on a previous batch.
func (x *Index) Reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = nil
}

// Len reports how many canonical records are indexed.
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.entries)
}

// signature is the lower-cased, whitespace-collapsed "title|organization"
// pair records are compared on.
func signature(title, organization string) string {
	t := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	o := strings.Join(strings.Fields(strings.ToLower(organization)), " ")
	return t + "|" + o
}

func tokenize(sig string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tok := range strings.FieldsFunc(sig, func(r rune) bool {
		return r == ' ' || r == '|'
	}) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// similarity is the maximum of normalized edit-distance similarity and
// token-set Jaccard overlap. Edit distance catches one-character title
// variations; token overlap catches reordered or truncated titles.
func similarity(aSig string, aToks []string, bSig string, bToks []string) float64 {
	lev := levenshteinSimilarity(aSig, bSig)
	jac := jaccard(aToks, bToks)
	if jac > lev {
		return jac
	}
	return lev
}

func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein is the classic two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, tok := range a {
		set[tok] = struct{}{}
	}
	inter := 0
	for _, tok := range b {
		if _, ok := set[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
