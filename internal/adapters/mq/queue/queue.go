// Package queue provides the record queue between the sampler and the
// persister.
//
// The queue is unbounded FIFO: sampling cadence must never be throttled by
// persistence cadence. The consumer does not pop records one at a time; it
// takes everything currently queued in one atomic drain, so no record is
// lost or duplicated even while the producer is concurrently enqueueing.
package queue

import (
	"context"
	"sync"

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
	"github.com/twrightsman/wall-of-shame/pkg/metrics"
)

// Record is the payload type flowing through the queue.
// Using the model.Record type for type safety.
type Record = model.Record

// Queue provides enqueue and atomic drain-all semantics.
type Queue interface {
	// Enqueue appends a record to the queue.
	// Returns false if the queue is closed and the record was not enqueued.
	Enqueue(ctx context.Context, r Record) bool

	// DrainAll atomically removes and returns every currently queued
	// record, preserving enqueue order. It never blocks waiting for more.
	DrainAll(ctx context.Context) []Record

	// Len returns the current number of queued records.
	Len(ctx context.Context) int

	// Close shuts down the queue. After closing, no new records can be
	// enqueued; DrainAll still returns whatever remains.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue with a mutex-guarded slice.
type InMemoryQueue struct {
	mu      sync.Mutex
	records []Record
	closed  bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	metrics.UpdateQueueDepth(0)
	return q
}

// Enqueue appends a record to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Record) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	q.records = append(q.records, r)
	metrics.RecordEnqueue()
	metrics.UpdateQueueDepth(len(q.records))
	return true
}

// DrainAll atomically takes every queued record. The backing slice is
// handed to the caller and replaced, so the swap is a single critical
// section with no read-your-own-write races against concurrent producers.
func (q *InMemoryQueue) DrainAll(ctx context.Context) []Record {
	q.mu.Lock()
	batch := q.records
	q.records = nil
	// Gauge write stays inside the critical section so it cannot land
	// after a concurrent Enqueue has already published a newer depth.
	metrics.UpdateQueueDepth(0)
	q.mu.Unlock()

	if len(batch) > 0 {
		metrics.RecordDrained(len(batch))
	}
	return batch
}

// Len returns the current number of queued records.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
