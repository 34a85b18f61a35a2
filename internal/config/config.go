// Package config defines service configuration and its loading hooks.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/domain/fuzzy"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, also writes logs to a rotating file.
	LogFile string `koanf:"log_file"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// BMINormalProfile selects the break points of the normal BMI term:
	// reference or widened.
	BMINormalProfile string `koanf:"bmi_normal_profile"`

	// Implication is clip (min) or scale (product).
	Implication string `koanf:"implication"`

	// CacheSize bounds the recommendation cache. Zero disables it.
	CacheSize int `koanf:"cache_size"`

	// QueueSize bounds the in-memory activity queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of activity workers.
	WorkerCount int `koanf:"worker_count"`

	// DBPath points at the SQLite activity database. Empty keeps the log in memory.
	DBPath string `koanf:"db_path"`

	// MemoryRetention caps the in-memory activity log.
	MemoryRetention int `koanf:"memory_retention"`

	// MaxActivityLimit caps GET /activity?limit.
	MaxActivityLimit int `koanf:"max_activity_limit"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        LogFormatText,
		Addr:             ":9080",
		BMINormalProfile: string(exercise.ProfileReference),
		Implication:      fuzzy.ImplicationClip.String(),
		CacheSize:        4096,
		QueueSize:        10_000,
		WorkerCount:      runtime.NumCPU(),
		MemoryRetention:  10_000,
		MaxActivityLimit: 100,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MemoryRetention < 1:
		return fmt.Errorf("%w: memory_retention must be positive", ErrInvalidConfig)
	case c.MaxActivityLimit < 1:
		return fmt.Errorf("%w: max_activity_limit must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := exercise.ParseProfile(c.BMINormalProfile); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := fuzzy.ParseImplication(c.Implication); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Profile returns the parsed BMI profile. Call Validate first.
func (c *Config) Profile() exercise.Profile {
	p, _ := exercise.ParseProfile(c.BMINormalProfile)
	return p
}

// ImplicationMode returns the parsed implication. Call Validate first.
func (c *Config) ImplicationMode() fuzzy.Implication {
	i, _ := fuzzy.ParseImplication(c.Implication)
	return i
}
