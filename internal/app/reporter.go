package app

import (
	"bytes"
	"context"
	"os"

	"github.com/twrightsman/wall-of-shame/internal/domain/ranking"
	"github.com/twrightsman/wall-of-shame/pkg/logger"
	"github.com/twrightsman/wall-of-shame/pkg/metrics"
)

// runReporter rewrites the leaderboard file every report interval from the
// full record history.
func (s *Service) runReporter(ctx context.Context) {
	defer s.wg.Done()
	log := s.logger.Named("reporter")

	for ctx.Err() == nil {
		s.reportOnce(ctx, log)
		if !wait(ctx, s.reportInterval) {
			break
		}
	}
	log.Debug(ctx, "reporter shut down")
}

// reportOnce regenerates the leaderboard. An empty store leaves the file
// untouched; a read or write fault skips this cycle's regeneration only.
func (s *Service) reportOnce(ctx context.Context, log logger.Logger) {
	records, err := s.store.All(ctx)
	if err != nil {
		metrics.RecordReportError()
		metrics.RecordErrorByComponent("reporter", "read")
		log.Error(ctx, "reading score history failed", logger.Error(err))
		return
	}
	if len(records) == 0 {
		return
	}

	log.Info(ctx, "regenerating the leaderboard")

	totals := ranking.Aggregate(records)
	entries := ranking.Top(totals, s.topSize)
	window := ranking.Window{Start: s.runStart, End: s.now()}

	var buf bytes.Buffer
	if err := ranking.Render(&buf, window, entries); err != nil {
		metrics.RecordReportError()
		log.Error(ctx, "rendering leaderboard failed", logger.Error(err))
		return
	}

	// Full replace each cycle, never an append.
	if err := os.WriteFile(s.leaderboardPath, buf.Bytes(), 0o644); err != nil {
		metrics.RecordReportError()
		metrics.RecordErrorByComponent("reporter", "write")
		log.Error(ctx, "writing leaderboard failed",
			logger.String("path", s.leaderboardPath),
			logger.Error(err),
		)
		return
	}

	metrics.RecordReportCycle()
	metrics.UpdateLeaderboardEntries(len(entries))
}
