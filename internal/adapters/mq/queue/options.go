// Package queue provides the record queue between the sampler and the
// persister.
package queue

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithInitialCapacity preallocates backing storage for the given number of
// records. The queue remains unbounded.
func WithInitialCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.records = make([]Record, 0, n)
		}
	}
}
