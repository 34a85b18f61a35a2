package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/okian/fitfuzz/pkg/logger"
)

const directoryPermission = 0750

// Run executes a complete load test against config.BaseURL.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.SampleSize < 0 {
		config.SampleSize = defaultSampleSize
	}
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting fitfuzz load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Int("sample", config.SampleSize),
		logger.Bool("verbose", config.Verbose))

	if !config.SkipHealth {
		if err := checkServiceHealth(ctx, config); err != nil {
			return stats, fmt.Errorf("service health check failed: %w", err)
		}
	}

	requests, err := generateRequests(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("request generation failed: %w", err)
	}

	results := submitRequests(ctx, config, requests, stats)

	verifyErr := errors.Join(
		verifyBounds(ctx, results, stats),
		verifyDeterminism(ctx, config, results, stats),
	)

	if config.ActivityPeek > 0 {
		if err := peekActivity(ctx, config, stats); err != nil {
			log.Warn(ctx, "failed to read activity log", logger.Error(err))
		}
	}

	if config.OutputFile != "" {
		if err := saveResultsToFile(ctx, config.OutputFile, results); err != nil {
			log.Warn(ctx, "failed to save results to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if verifyErr != nil {
		return stats, fmt.Errorf("result verification failed: %w", verifyErr)
	}
	if stats.RequestsFailed > 0 {
		return stats, fmt.Errorf("%d requests failed", stats.RequestsFailed)
	}
	log.Info(ctx, "test completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := newHTTPClient(config.Timeout).Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// peekActivity reads the latest entries of the activity log.
func peekActivity(ctx context.Context, config *Config, stats *Stats) error {
	var body struct {
		Count int `json:"count"`
	}
	url := config.BaseURL + "/activity?limit=" + strconv.Itoa(config.ActivityPeek)
	if err := newHTTPClient(config.Timeout).getJSON(ctx, url, &body); err != nil {
		return err
	}
	stats.ActivityEntries = body.Count
	return nil
}

// saveResultsToFile writes the requests and their outcomes as a JSON array.
func saveResultsToFile(ctx context.Context, filename string, results []Result) error {
	if len(results) == 0 {
		return errors.New("no results to save")
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	logger.Get().Info(ctx, "results saved to file", logger.String("filename", filename))
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.RequestsSubmitted > 0 {
		answered := stats.Recommendations + stats.NoRecommendation
		successRate = float64(answered) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("requestsGenerated", stats.RequestsGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("recommendations", stats.Recommendations),
		logger.Int("noRecommendation", stats.NoRecommendation),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("determinismChecked", stats.DeterminismChecked),
		logger.Int("determinismFailed", stats.DeterminismFailed),
		logger.Int("boundsViolations", stats.BoundsViolations),
		logger.Int("activityEntries", stats.ActivityEntries),
		logger.Float64("minMinutes", stats.MinMinutes),
		logger.Float64("maxMinutes", stats.MaxMinutes),
		logger.Float64("meanMinutes", stats.MeanMinutes),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
