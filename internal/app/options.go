package service

import (
	"github.com/okian/fitfuzz/internal/adapters/repository"
	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	"github.com/okian/fitfuzz/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProfile selects the normal BMI term reading.
func WithProfile(p exercise.Profile) Option {
	return func(s *Service) {
		if p != "" {
			s.profile = p
		}
	}
}

// WithImplication selects how rule strength shapes the consequent.
func WithImplication(i fuzzy.Implication) Option {
	return func(s *Service) { s.implication = i }
}

// WithCacheSize bounds the recommendation cache. Zero disables it.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithQueueSize sets the capacity of the activity queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of activity workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDBPath persists the activity log in a SQLite database at path.
func WithDBPath(path string) Option {
	return func(s *Service) { s.dbPath = path }
}

// WithMemoryRetention caps the in-memory activity log.
func WithMemoryRetention(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.memoryRetention = n
		}
	}
}

// WithStore uses store for the activity log. The caller keeps ownership and
// closes it.
func WithStore(store repository.Store) Option {
	return func(s *Service) { s.injectedStore = store }
}
