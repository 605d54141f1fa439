package config

import (
	"embed"
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML embed.FS

// KeywordConfig drives the keyword relevance filter.
type KeywordConfig struct {
	Primary         []string `yaml:"primary"`
	Secondary       []string `yaml:"secondary"`
	Exclusions      []string `yaml:"exclusions"`
	PrimaryWeight   float64  `yaml:"primary_weight"`   // Default: 0.4
	SecondaryWeight float64  `yaml:"secondary_weight"` // Default: 0.2
	MinimumMatches  int      `yaml:"minimum_matches"`  // Default: 1
}

// GeoConfig drives the geographic filter. Aliases map a canonical country
// name to the spellings, demonyms and city names that identify it in text.
type GeoConfig struct {
	ExcludedCountries  []string            `yaml:"excluded_countries"`
	PreferredCountries []string            `yaml:"preferred_countries"`
	ExcludedRegions    []string            `yaml:"excluded_regions"`
	PreferredRegions   []string            `yaml:"preferred_regions"`
	Aliases            map[string][]string `yaml:"aliases"`
}

// BudgetConfig holds the acceptable budget range in the reference currency
// plus the static exchange-rate table used for normalization.
type BudgetConfig struct {
	Min               float64            `yaml:"min"`
	Max               float64            `yaml:"max"`
	ReferenceCurrency string             `yaml:"reference_currency"`
	ExchangeRates     map[string]float64 `yaml:"exchange_rates"`
}

// DeadlineConfig holds the urgency window boundaries in days.
type DeadlineConfig struct {
	UrgentDays int `yaml:"urgent_days"` // Default: 7
	SoonDays   int `yaml:"soon_days"`   // Default: 30
}

// ScoringWeights are the per-filter weights. They must sum to 1.0; the
// reference bonus is additive on top and capped at the scoring stage.
type ScoringWeights struct {
	Keyword    float64 `yaml:"keyword"`
	Budget     float64 `yaml:"budget"`
	Deadline   float64 `yaml:"deadline"`
	Geographic float64 `yaml:"geographic"`
}

// PriorityThresholds must be strictly decreasing: critical > high > medium.
type PriorityThresholds struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
}

type ScoringConfig struct {
	Weights             ScoringWeights     `yaml:"weights"`
	ReferenceBonusScale float64            `yaml:"reference_bonus_scale"` // Default: 0.1
	Thresholds          PriorityThresholds `yaml:"thresholds"`
}

type DedupConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // Default: 0.85
}

// Config is the single immutable configuration value for a pipeline run.
// It is constructed once at start-up and passed by reference into every
// stage; stages never reach for ambient state.
type Config struct {
	Keywords   KeywordConfig `yaml:"keywords"`
	Geographic GeoConfig     `yaml:"geographic"`
	Budget     BudgetConfig  `yaml:"budget"`
	Deadline   DeadlineConfig `yaml:"deadline"`
	Scoring    ScoringConfig `yaml:"scoring"`
	Dedup      DedupConfig   `yaml:"dedup"`

	// Organizations maps a pattern-group class (un_agencies, world_bank, ...)
	// to the aliases that classify a record's source website or text.
	// Matching is case-insensitive substring; the mapping is not 1:1.
	Organizations map[string][]string `yaml:"organizations"`

	// Concurrency bounds the worker pool. Default: GOMAXPROCS-ish small value.
	Concurrency int `yaml:"concurrency"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := load("")
	if err != nil {
		// The embedded defaults are part of the build; failing to parse them
		// is a programming error, not a runtime condition.
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults, overlays the YAML file at path when it
// exists, and validates the result. A missing file is not an error: the
// defaults document every key's fallback.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := defaultsYAML.ReadFile("defaults.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}

	if path != "" {
		user, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			// Expand environment variables within the YAML content
			// (e.g. ${PIPELINE_CONCURRENCY}) before overlaying.
			expanded := os.ExpandEnv(string(user))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Keywords.PrimaryWeight == 0 {
		c.Keywords.PrimaryWeight = 0.4
	}
	if c.Keywords.SecondaryWeight == 0 {
		c.Keywords.SecondaryWeight = 0.2
	}
	if c.Keywords.MinimumMatches == 0 {
		c.Keywords.MinimumMatches = 1
	}
	if c.Budget.ReferenceCurrency == "" {
		c.Budget.ReferenceCurrency = "USD"
	}
	if len(c.Budget.ExchangeRates) == 0 {
		c.Budget.ExchangeRates = map[string]float64{"USD": 1.0}
	}
	if c.Deadline.UrgentDays == 0 {
		c.Deadline.UrgentDays = 7
	}
	if c.Deadline.SoonDays == 0 {
		c.Deadline.SoonDays = 30
	}
	if c.Scoring.ReferenceBonusScale == 0 {
		c.Scoring.ReferenceBonusScale = 0.1
	}
	if c.Dedup.SimilarityThreshold == 0 {
		c.Dedup.SimilarityThreshold = 0.85
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
}

// Validate fails fast on configuration that would silently misclassify every
// record in a batch.
func (c *Config) Validate() error {
	t := c.Scoring.Thresholds
	if !(t.Critical > t.High && t.High > t.Medium) {
		return fmt.Errorf("scoring.thresholds must be strictly decreasing: critical=%.2f high=%.2f medium=%.2f",
			t.Critical, t.High, t.Medium)
	}
	if t.Medium <= 0 || t.Critical > 1 {
		return fmt.Errorf("scoring.thresholds must lie in (0, 1]: critical=%.2f medium=%.2f", t.Critical, t.Medium)
	}

	w := c.Scoring.Weights
	sum := w.Keyword + w.Budget + w.Deadline + w.Geographic
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("scoring.weights must sum to 1.0, got %.3f", sum)
	}
	if w.Keyword < 0 || w.Budget < 0 || w.Deadline < 0 || w.Geographic < 0 {
		return fmt.Errorf("scoring.weights must be non-negative")
	}
	if c.Scoring.ReferenceBonusScale < 0 || c.Scoring.ReferenceBonusScale > 1 {
		return fmt.Errorf("scoring.reference_bonus_scale must lie in [0, 1], got %.2f", c.Scoring.ReferenceBonusScale)
	}

	for code, rate := range c.Budget.ExchangeRates {
		if rate <= 0 {
			return fmt.Errorf("budget.exchange_rates[%s] must be positive, got %.4f", code, rate)
		}
	}
	if _, ok := c.Budget.ExchangeRates[c.Budget.ReferenceCurrency]; !ok {
		return fmt.Errorf("budget.exchange_rates missing reference currency %s", c.Budget.ReferenceCurrency)
	}
	if c.Budget.Min > c.Budget.Max {
		return fmt.Errorf("budget.min (%.0f) exceeds budget.max (%.0f)", c.Budget.Min, c.Budget.Max)
	}

	if c.Deadline.UrgentDays > c.Deadline.SoonDays {
		return fmt.Errorf("deadline.urgent_days (%d) exceeds deadline.soon_days (%d)",
			c.Deadline.UrgentDays, c.Deadline.SoonDays)
	}

	if c.Dedup.SimilarityThreshold <= 0 || c.Dedup.SimilarityThreshold > 1 {
		return fmt.Errorf("dedup.similarity_threshold must lie in (0, 1], got %.2f", c.Dedup.SimilarityThreshold)
	}

	return nil
}
