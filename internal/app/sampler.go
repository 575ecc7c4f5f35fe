package app

import (
	"context"

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
	"github.com/twrightsman/wall-of-shame/internal/domain/scoring"
	"github.com/twrightsman/wall-of-shame/pkg/logger"
	"github.com/twrightsman/wall-of-shame/pkg/metrics"
)

// runSampler snapshots the process table every poll interval, aggregates
// one shame score per user and emits the cycle's records into the queue.
func (s *Service) runSampler(ctx context.Context) {
	defer s.wg.Done()
	log := s.logger.Named("sampler")

	for ctx.Err() == nil {
		s.sampleOnce(ctx, log)
		if !wait(ctx, s.pollInterval) {
			break
		}
	}
	log.Debug(ctx, "sampler shut down")
}

// sampleOnce performs a single poll cycle. A failed snapshot skips the
// cycle; the loop itself never terminates on a sampling fault.
func (s *Service) sampleOnce(ctx context.Context, log logger.Logger) {
	procs, err := s.source.Snapshot(ctx)
	if err != nil {
		metrics.RecordPollError()
		metrics.RecordErrorByComponent("sampler", "snapshot")
		log.Error(ctx, "process snapshot failed", logger.Error(err))
		return
	}

	// One shared timestamp for every record of this cycle.
	ts := s.now().Unix()
	shame := scoring.ScoreSnapshot(procs, s.filter)

	scored := 0
	for _, p := range procs {
		if !s.filter.Excludes(p) {
			scored++
		}
	}

	for username, total := range shame {
		s.queue.Enqueue(ctx, model.Record{
			Timestamp: ts,
			Username:  username,
			Shame:     total,
		})
	}

	metrics.RecordPollCycle()
	metrics.RecordProcessesScored(scored)
	metrics.UpdateUsersPerCycle(len(shame))
	log.Debug(ctx, "poll cycle complete",
		logger.Int("processes", len(procs)),
		logger.Int("scored", scored),
		logger.Int("users", len(shame)),
	)
}
