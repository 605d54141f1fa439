package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/dedup"
	"github.com/david/tenderflow/internal/extract"
	"github.com/david/tenderflow/internal/filter"
	"github.com/david/tenderflow/internal/models"
	"github.com/david/tenderflow/internal/score"
)

// Pipeline sequences each record through normalize, extract, filter and
// score, then runs duplicate detection as a sequential pass over the whole
// batch. Records are processed concurrently up to the configured limit; the
// stages are pure, so the only synchronization point is the dedup index.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger

	extractor  *extract.Extractor
	keyword    *filter.Keyword
	geographic *filter.Geographic
	budget     *filter.Budget
	deadline   *filter.Deadline
	index      *dedup.Index
	engine     *score.Engine

	// now is injectable so tests get a fixed clock. One timestamp is taken
	// per run and shared by every record: deadline buckets must not depend
	// on worker scheduling.
	now func() time.Time
}

func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		log:        log,
		extractor:  extract.New(cfg),
		keyword:    filter.NewKeyword(cfg),
		geographic: filter.NewGeographic(cfg),
		budget:     filter.NewBudget(cfg),
		deadline:   filter.NewDeadline(cfg),
		index:      dedup.NewIndex(cfg),
		engine:     score.NewEngine(cfg),
		now:        time.Now,
	}
}

// Run processes a batch and returns one ScoredOpportunity per input record,
// sorted by relevance score descending with ties broken by earliest
// published date. Records that fail a stage degrade in place instead of
// dropping out; losing a real opportunity silently is worse than surfacing
// a low-confidence one.
func (p *Pipeline) Run(ctx context.Context, batch []models.RawRecord) []models.ScoredOpportunity {
	start := time.Now()
	p.index.Reset()

	out := make([]models.ScoredOpportunity, len(batch))
	now := p.now()

	workers := p.cfg.Concurrency
	if workers > len(batch) {
		workers = len(batch)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = p.processRecord(batch[i], now)
			}
		}()
	}

dispatch:
	for i := range batch {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	// Records skipped by cancellation still come back, degraded.
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i] = p.degrade(batch[i])
		}
	}

	// Duplicate detection depends on insertion order, so it runs strictly
	// sequentially in input order after the parallel stages.
	duplicates := 0
	for i := range out {
		if dup := p.index.Check(out[i].ID, out[i].Title, out[i].OrganizationName); dup != nil {
			out[i].DuplicateOf = dup
			duplicates++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		pi, pj := out[i].Published, out[j].Published
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.Before(*pj)
		}
	})

	p.log.Info("batch processed",
		zap.Int("records", len(batch)),
		zap.Int("duplicates", duplicates),
		zap.Duration("elapsed", time.Since(start)))
	return out
}

// processRecord walks one record through every per-record stage. A panic in
// any stage degrades the record rather than killing the batch.
func (p *Pipeline) processRecord(raw models.RawRecord, now time.Time) (result models.ScoredOpportunity) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("record degraded after stage failure",
				zap.String("title", raw.Title),
				zap.Any("cause", r))
			result = p.degrade(raw)
		}
	}()

	opp := Normalize(raw, p.cfg)

	refs := p.extractor.Extract(opp)
	if len(refs) > 0 {
		opp.PrimaryReference = &refs[0]
		opp.AlternateReferences = refs[1:]
	}

	kwOutcome, matched := p.keyword.Score(opp)
	outcomes := []models.FilterOutcome{
		kwOutcome,
		p.geographic.Evaluate(opp),
		p.budget.Evaluate(opp),
		p.deadline.Evaluate(opp, now),
	}

	relevance, priority := p.engine.Score(outcomes, opp.PrimaryReference)

	p.log.Debug("record scored",
		zap.String("title", opp.Title),
		zap.Float64("relevance", relevance),
		zap.String("priority", string(priority)))

	return models.ScoredOpportunity{
		ID:              uuid.New(),
		Opportunity:     opp,
		RelevanceScore:  relevance,
		Priority:        priority,
		FilterOutcomes:  outcomes,
		MatchedKeywords: matched,
	}
}

// degrade produces a best-effort output for a record no stage could handle:
// raw text carried through, nothing scored.
func (p *Pipeline) degrade(raw models.RawRecord) models.ScoredOpportunity {
	return models.ScoredOpportunity{
		ID: uuid.New(),
		Opportunity: models.Opportunity{
			Title:            raw.Title,
			OrganizationName: raw.OrganizationName,
			LocationText:     raw.LocationText,
			Description:      raw.Description,
			SourceWebsite:    raw.SourceWebsite,
			SourceURL:        raw.SourceURL,
			DeadlineText:     raw.DeadlineText,
			PublishedText:    raw.PublishedText,
			BudgetText:       raw.BudgetText,
		},
		RelevanceScore: 0,
		Priority:       models.PriorityLow,
	}
}
