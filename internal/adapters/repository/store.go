// Package repository persists the recommendation activity log.
package repository

import (
	"context"

	"github.com/okian/fitfuzz/internal/domain/model"
)

// Store provides append and read access to the activity log.
type Store interface {
	// Append records one activity entry.
	Append(ctx context.Context, a model.Activity) error

	// Recent returns up to n entries, newest first.
	// Returns ErrInvalidLimit when n < 1.
	Recent(ctx context.Context, n int) ([]model.Activity, error)

	// Count returns the number of entries held.
	Count(ctx context.Context) (int, error)

	// Close releases resources. Other calls fail with ErrClosed afterwards.
	Close() error
}
