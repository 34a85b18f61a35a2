package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/fitfuzz/internal/domain/model"
	"github.com/okian/fitfuzz/pkg/metrics"
)

// MemoryStore keeps the most recent entries in a fixed-size ring.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	ring     []model.Activity
	next     int // slot for the next append
	size     int
	closed   bool
}

// NewMemoryStore creates an empty ring-backed store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{capacity: defaultMemoryCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.ring = make([]model.Activity, s.capacity)
	return s
}

// Append stores a, evicting the oldest entry when full.
func (s *MemoryStore) Append(_ context.Context, a model.Activity) error {
	start := time.Now()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.ring[s.next] = a
	s.next = (s.next + 1) % s.capacity
	if s.size < s.capacity {
		s.size++
	}
	size := s.size
	s.mu.Unlock()

	metrics.RecordStoreAppendLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateStoreRecords(size)
	return nil
}

// Recent returns up to n entries, newest first.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]model.Activity, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if n > s.size {
		n = s.size
	}
	out := make([]model.Activity, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, s.ring[(s.next-i+s.capacity)%s.capacity])
	}
	return out, nil
}

// Count returns the number of retained entries.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.size, nil
}

// Close drops the retained entries.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.ring = nil
	s.size = 0
	return nil
}
