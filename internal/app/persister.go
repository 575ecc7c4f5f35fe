package app

import (
	"context"
	"time"

	"github.com/twrightsman/wall-of-shame/pkg/logger"
	"github.com/twrightsman/wall-of-shame/pkg/metrics"
)

// runPersister drains the queue every write interval and commits the batch
// to the store in one transaction.
func (s *Service) runPersister(ctx context.Context) {
	defer s.wg.Done()
	log := s.logger.Named("persister")

	for ctx.Err() == nil {
		s.persistOnce(ctx, log)
		if !wait(ctx, s.writeInterval) {
			break
		}
	}
	log.Debug(ctx, "persister shut down")
}

// persistOnce takes everything currently queued and writes it. An empty
// drain skips the store entirely. A failed insert re-enqueues the batch:
// drained data is never silently dropped.
func (s *Service) persistOnce(ctx context.Context, log logger.Logger) {
	batch := s.queue.DrainAll(ctx)
	if len(batch) == 0 {
		return
	}

	log.Info(ctx, "writing records to database", logger.Int("count", len(batch)))

	start := time.Now()
	if err := s.store.InsertBatch(ctx, batch); err != nil {
		metrics.RecordPersistError()
		metrics.RecordErrorByComponent("persister", "insert")
		log.Error(ctx, "batch insert failed, re-enqueueing drained records",
			logger.Int("count", len(batch)),
			logger.Error(err),
		)
		// The insert is transactional, so nothing was committed; putting
		// the batch back preserves it for the next cycle.
		for _, r := range batch {
			if !s.queue.Enqueue(ctx, r) {
				log.Warn(ctx, "queue closed, record lost", logger.String("username", r.Username))
			}
		}
		return
	}

	metrics.RecordPersistLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordBatchPersisted(len(batch))
}
