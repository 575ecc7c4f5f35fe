// Package app wires the sampling pipeline together: a sampler scoring the
// process table into the queue, a persister draining the queue into
// SQLite, and a reporter aggregating history into the leaderboard file.
//
// The three loops run concurrently and independently; data flows strictly
// sampler -> queue -> persister -> store -> reporter -> leaderboard file.
// Cancellation is cooperative: each loop observes the context only at its
// interval wait, so in-flight work always runs to completion.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/twrightsman/wall-of-shame/internal/adapters/mq/queue"
	"github.com/twrightsman/wall-of-shame/internal/adapters/procsource"
	"github.com/twrightsman/wall-of-shame/internal/adapters/repository"
	"github.com/twrightsman/wall-of-shame/internal/domain/ranking"
	"github.com/twrightsman/wall-of-shame/internal/domain/scoring"
	"github.com/twrightsman/wall-of-shame/pkg/logger"
)

// Default loop cadences, matching the daemon's configuration defaults.
const (
	defaultPollInterval   = 1 * time.Second
	defaultWriteInterval  = 60 * time.Second
	defaultReportInterval = 300 * time.Second
)

// Service owns the three loops and their shared collaborators.
type Service struct {
	mu sync.Mutex

	// Core components
	source procsource.Source
	queue  queue.Queue
	store  repository.Store

	// Configuration
	filter          scoring.Filter
	pollInterval    time.Duration
	writeInterval   time.Duration
	reportInterval  time.Duration
	databasePath    string
	leaderboardPath string
	topSize         int

	// Run identity
	runID    uuid.UUID
	runStart time.Time
	now      func() time.Time

	// State
	started bool
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		filter:          scoring.NewFilter(nil, nil),
		pollInterval:    defaultPollInterval,
		writeInterval:   defaultWriteInterval,
		reportInterval:  defaultReportInterval,
		databasePath:    "shame.db",
		leaderboardPath: "wall_of_shame.txt",
		topSize:         ranking.DefaultSize,
		runID:           uuid.New(),
		now:             time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store schema and launches the three loops. Any
// error here is fatal: no loop starts unless the store was reset cleanly.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		store, err := repository.NewSQLiteStore(ctx, s.databasePath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}
	// Each run's leaderboard is bounded by its own observation window.
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}

	if s.source == nil {
		s.source = procsource.NewSystemSource()
	}
	if s.queue == nil {
		s.queue = queue.NewInMemoryQueue()
	}

	s.runStart = s.now()

	s.wg.Add(3)
	go s.runSampler(ctx)
	go s.runPersister(ctx)
	go s.runReporter(ctx)

	s.started = true
	s.logger.Info(ctx, "shame daemon started",
		logger.String("run_id", s.runID.String()),
		logger.Duration("poll_interval", s.pollInterval),
		logger.Duration("write_interval", s.writeInterval),
		logger.Duration("report_interval", s.reportInterval),
		logger.String("database", s.databasePath),
		logger.String("leaderboard", s.leaderboardPath),
	)
	return nil
}

// Wait blocks until every loop has observed cancellation and returned.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Stop releases the queue and store. Call after Wait; in-flight cycles are
// never interrupted, only the next cycle is prevented.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(context.Background(), "closing store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "shame daemon stopped", logger.String("run_id", s.runID.String()))
}

// RunID returns the identity assigned to this daemon run.
func (s *Service) RunID() uuid.UUID {
	return s.runID
}

// wait blocks for d or until ctx is canceled. It reports whether the full
// interval elapsed; false means shutdown was requested.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
