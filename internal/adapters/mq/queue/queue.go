// Package queue buffers activity entries between request handlers and the
// workers that persist them.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/fitfuzz/internal/domain/model"
	"github.com/okian/fitfuzz/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Activity is the payload flowing through the queue.
type Activity = model.Activity

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an entry without blocking. It fails with ErrFull when the
	// queue is at capacity and ErrClosed after Close.
	Enqueue(ctx context.Context, a Activity) error

	// Dequeue returns a channel that receives entries until the queue is
	// closed and drained, or ctx is done.
	Dequeue(ctx context.Context) <-chan Activity

	// Len returns the current number of queued entries.
	Len(ctx context.Context) int

	// Cap returns the queue capacity.
	Cap() int

	// Close stops accepting entries. Entries already queued stay readable.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	entries  chan Activity
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.entries = make(chan Activity, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0)
	return q
}

// Enqueue adds an entry to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, a Activity) error { //nolint:gocritic // hugeParam: passed by value into the channel
	if err := ctx.Err(); err != nil {
		q.reject("context_cancelled")
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.reject("closed")
		return ErrClosed
	}

	a.Enqueued = time.Now()
	select {
	case q.entries <- a:
		metrics.RecordQueueEnqueue()
		q.observeSize()
		return nil
	default:
		q.reject("queue_full")
		return ErrFull
	}
}

func (q *InMemoryQueue) reject(reason string) {
	metrics.RecordQueueEnqueueError()
	metrics.RecordErrorByComponent("queue", reason)
}

func (q *InMemoryQueue) observeSize() {
	size := len(q.entries)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}

// Dequeue returns a channel that receives entries as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Activity {
	out := make(chan Activity)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-q.entries:
				if !ok {
					return
				}
				metrics.RecordQueueDequeue()
				if !a.Enqueued.IsZero() {
					metrics.RecordQueueProcessingLatency(float64(time.Since(a.Enqueued).Microseconds()) / 1000)
				}
				q.observeSize()
				select {
				case out <- a:
				case <-ctx.Done():
					metrics.RecordActivityDropped()
					return
				}
			}
		}
	}()
	return out
}

// Len returns the current number of queued entries.
func (q *InMemoryQueue) Len(_ context.Context) int {
	q.observeSize()
	return len(q.entries)
}

// Cap returns the queue capacity.
func (q *InMemoryQueue) Cap() int { return q.capacity }

// Close stops accepting new entries and lets consumers drain the rest.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.entries)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
