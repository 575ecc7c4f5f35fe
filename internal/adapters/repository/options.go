// Package repository persists score records in SQLite.
package repository

import "time"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithBusyTimeout sets how long a statement waits on a locked database
// before failing. Writer and reader loops share the file, so a small
// timeout smooths over overlapping cycles.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}
