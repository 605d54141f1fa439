package filter

import (
	"time"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

// Deadline buckets. Only expired records fail; an unknown deadline scores
// neutral because the listing may simply not publish one.
const (
	BucketUrgent  = "urgent"
	BucketSoon    = "soon"
	BucketNormal  = "normal"
	BucketExpired = "expired"
	BucketUnknown = "unknown"
)

var deadlineScores = map[string]float64{
	BucketUrgent:  1.0,
	BucketSoon:    0.8,
	BucketNormal:  0.6,
	BucketUnknown: 0.5,
	BucketExpired: 0.0,
}

// Deadline classifies a record's deadline into an urgency bucket relative
// to a caller-supplied clock.
type Deadline struct {
	cfg *config.DeadlineConfig
}

func NewDeadline(cfg *config.Config) *Deadline {
	return &Deadline{cfg: &cfg.Deadline}
}

func (f *Deadline) Evaluate(opp models.Opportunity, now time.Time) models.FilterOutcome {
	bucket := f.bucket(opp.Deadline, now)
	return models.FilterOutcome{
		Filter: NameDeadline,
		Passed: bucket != BucketExpired,
		Score:  deadlineScores[bucket],
		Reason: bucket,
	}
}

func (f *Deadline) bucket(deadline *time.Time, now time.Time) string {
	if deadline == nil {
		return BucketUnknown
	}
	if deadline.Before(now) {
		return BucketExpired
	}
	days := deadline.Sub(now).Hours() / 24
	switch {
	case days <= float64(f.cfg.UrgentDays):
		return BucketUrgent
	case days <= float64(f.cfg.SoonDays):
		return BucketSoon
	default:
		return BucketNormal
	}
}
