package loadtest

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/fitfuzz/pkg/logger"
)

// verifyBounds counts successful results outside [0, 120] and fills the
// minutes summary.
func verifyBounds(ctx context.Context, results []Result, stats *Stats) error {
	var (
		sum   float64
		count int
	)
	stats.MinMinutes, stats.MaxMinutes = math.Inf(1), math.Inf(-1)
	for _, r := range results {
		if r.Status != outcomeOK {
			continue
		}
		if r.Minutes < minutesMin || r.Minutes > minutesMax || math.IsNaN(r.Minutes) {
			stats.BoundsViolations++
			logger.Get().Warn(ctx, "recommendation out of bounds",
				logger.String("id", r.ID), logger.Float64("age", r.Age),
				logger.Float64("bmi", r.BMI), logger.Float64("minutes", r.Minutes))
		}
		sum += r.Minutes
		count++
		stats.MinMinutes = math.Min(stats.MinMinutes, r.Minutes)
		stats.MaxMinutes = math.Max(stats.MaxMinutes, r.Minutes)
	}
	if count == 0 {
		stats.MinMinutes, stats.MaxMinutes = 0, 0
	} else {
		stats.MeanMinutes = sum / float64(count)
	}
	if stats.BoundsViolations > 0 {
		return fmt.Errorf("%d recommendations outside [%g, %g]", stats.BoundsViolations, minutesMin, minutesMax)
	}
	return nil
}

// verifyDeterminism re-submits a sample of the requests and requires the
// exact same outcome for each.
func verifyDeterminism(ctx context.Context, config *Config, results []Result, stats *Stats) error {
	n := min(config.SampleSize, len(results))
	if n <= 0 {
		return nil
	}
	logger.Get().Info(ctx, "re-submitting sample for determinism check", logger.Int("sample", n))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommendations"
	for _, first := range results[:n] {
		if first.Status == outcomeFailed {
			continue
		}
		again := submitSingleRequest(ctx, client, url, first.Request)
		stats.DeterminismChecked++
		if again.Status != first.Status || math.Float64bits(again.Minutes) != math.Float64bits(first.Minutes) {
			stats.DeterminismFailed++
			logger.Get().Warn(ctx, "non-deterministic recommendation",
				logger.String("id", first.ID),
				logger.Float64("first", first.Minutes), logger.Float64("second", again.Minutes),
				logger.String("firstStatus", first.Status), logger.String("secondStatus", again.Status))
		}
	}
	if stats.DeterminismFailed > 0 {
		return fmt.Errorf("%d of %d re-submitted requests changed outcome", stats.DeterminismFailed, stats.DeterminismChecked)
	}
	return nil
}
