package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/JaimeStill/vantage/pkg/ranking"
)

const (
	EnvRankingCrossEffortMinItems       = "VANTAGE_RANKING_CROSS_EFFORT_MIN_ITEMS"
	EnvRankingCrossEffortMaxComparisons = "VANTAGE_RANKING_CROSS_EFFORT_MAX_COMPARISONS"
	EnvRankingRecomputeSchedule         = "VANTAGE_RANKING_RECOMPUTE_SCHEDULE"
	EnvRankingRecomputeWorkers          = "VANTAGE_RANKING_RECOMPUTE_WORKERS"
	EnvRankingRecomputeTimeout          = "VANTAGE_RANKING_RECOMPUTE_TIMEOUT"
)

// RankingConfig tunes pair selection and scheduled recomputation. An empty
// RecomputeSchedule disables the scheduler.
type RankingConfig struct {
	CrossEffortMinItems       int    `toml:"cross_effort_min_items"`
	CrossEffortMaxComparisons int    `toml:"cross_effort_max_comparisons"`
	RecomputeSchedule         string `toml:"recompute_schedule"`
	RecomputeWorkers          int    `toml:"recompute_workers"`
	RecomputeTimeout          string `toml:"recompute_timeout"`
}

// RecomputeTimeoutDuration bounds a single scheduled run.
func (c *RankingConfig) RecomputeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RecomputeTimeout)
	return d
}

// Selector returns the pair selector these settings describe.
func (c *RankingConfig) Selector() ranking.Selector {
	return ranking.Selector{
		CrossEffortMinItems:       c.CrossEffortMinItems,
		CrossEffortMaxComparisons: c.CrossEffortMaxComparisons,
	}
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *RankingConfig) Finalize() error {
	if c.CrossEffortMinItems == 0 {
		c.CrossEffortMinItems = ranking.DefaultCrossEffortMinItems
	}
	if c.CrossEffortMaxComparisons == 0 {
		c.CrossEffortMaxComparisons = ranking.DefaultCrossEffortMaxComparisons
	}
	if c.RecomputeWorkers == 0 {
		c.RecomputeWorkers = 4
	}
	if c.RecomputeTimeout == "" {
		c.RecomputeTimeout = "10m"
	}

	envInt(&c.CrossEffortMinItems, EnvRankingCrossEffortMinItems)
	envInt(&c.CrossEffortMaxComparisons, EnvRankingCrossEffortMaxComparisons)
	envInt(&c.RecomputeWorkers, EnvRankingRecomputeWorkers)
	if v, ok := os.LookupEnv(EnvRankingRecomputeSchedule); ok {
		c.RecomputeSchedule = v
	}
	if v := os.Getenv(EnvRankingRecomputeTimeout); v != "" {
		c.RecomputeTimeout = v
	}

	return c.validate()
}

// Merge copies non-zero fields of overlay onto c.
func (c *RankingConfig) Merge(overlay *RankingConfig) {
	if overlay.CrossEffortMinItems != 0 {
		c.CrossEffortMinItems = overlay.CrossEffortMinItems
	}
	if overlay.CrossEffortMaxComparisons != 0 {
		c.CrossEffortMaxComparisons = overlay.CrossEffortMaxComparisons
	}
	if overlay.RecomputeSchedule != "" {
		c.RecomputeSchedule = overlay.RecomputeSchedule
	}
	if overlay.RecomputeWorkers != 0 {
		c.RecomputeWorkers = overlay.RecomputeWorkers
	}
	if overlay.RecomputeTimeout != "" {
		c.RecomputeTimeout = overlay.RecomputeTimeout
	}
}

func (c *RankingConfig) validate() error {
	if c.CrossEffortMinItems < 2 {
		return fmt.Errorf("cross_effort_min_items must be at least 2, got %d", c.CrossEffortMinItems)
	}
	if c.CrossEffortMaxComparisons < 1 {
		return fmt.Errorf("cross_effort_max_comparisons must be positive, got %d", c.CrossEffortMaxComparisons)
	}
	if c.RecomputeWorkers < 1 {
		return fmt.Errorf("recompute_workers must be positive, got %d", c.RecomputeWorkers)
	}
	if d, err := time.ParseDuration(c.RecomputeTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid recompute_timeout %q", c.RecomputeTimeout)
	}
	if c.RecomputeSchedule != "" {
		if _, err := cron.ParseStandard(c.RecomputeSchedule); err != nil {
			return fmt.Errorf("invalid recompute_schedule %q: %w", c.RecomputeSchedule, err)
		}
	}
	return nil
}

func envInt(dst *int, name string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
