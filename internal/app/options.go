// Package app wires the sampling pipeline together.
package app

import (
	"time"

	"github.com/twrightsman/wall-of-shame/internal/adapters/mq/queue"
	"github.com/twrightsman/wall-of-shame/internal/adapters/procsource"
	"github.com/twrightsman/wall-of-shame/internal/adapters/repository"
	"github.com/twrightsman/wall-of-shame/internal/domain/scoring"
	"github.com/twrightsman/wall-of-shame/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the process source. Defaults to the live system source.
func WithSource(src procsource.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithQueue sets the record queue. Defaults to a new in-memory queue.
func WithQueue(q queue.Queue) Option {
	return func(s *Service) {
		if q != nil {
			s.queue = q
		}
	}
}

// WithStore sets the durable store. Defaults to a SQLite store opened at
// the configured database path.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithFilter sets the exclusion filter applied while scoring.
func WithFilter(f scoring.Filter) Option {
	return func(s *Service) {
		s.filter = f
	}
}

// WithIntervals sets the cadence of the three loops. Non-positive values
// leave the corresponding default untouched.
func WithIntervals(poll, write, report time.Duration) Option {
	return func(s *Service) {
		if poll > 0 {
			s.pollInterval = poll
		}
		if write > 0 {
			s.writeInterval = write
		}
		if report > 0 {
			s.reportInterval = report
		}
	}
}

// WithDatabasePath sets where the SQLite database file lives.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.databasePath = path
		}
	}
}

// WithLeaderboardPath sets where the leaderboard file is written.
func WithLeaderboardPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.leaderboardPath = path
		}
	}
}

// WithTopSize caps the number of leaderboard entries.
func WithTopSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source. Used by tests for deterministic
// timestamps and run windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
