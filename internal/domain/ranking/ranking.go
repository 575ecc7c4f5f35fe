// Package ranking derives the leaderboard from historical score records.
//
// The leaderboard is not a source of truth: it is recomputed wholly from
// the full record history on every report cycle.
package ranking

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
)

// DefaultSize is the number of entries a rendered leaderboard keeps.
const DefaultSize = 10

// Entry represents one ranked leaderboard row.
type Entry struct {
	Rank     int
	Username string
	Shame    int64
}

// Window bounds the aggregation period printed in the leaderboard header.
type Window struct {
	Start time.Time
	End   time.Time
}

// Aggregate sums shame per username across all historical records.
func Aggregate(records []model.Record) map[string]int64 {
	totals := make(map[string]int64)
	for _, r := range records {
		totals[r.Username] += r.Shame
	}
	return totals
}

// Top ranks the aggregated totals by shame descending and truncates to at
// most n entries. Ties break by username ascending so the ordering is
// deterministic across runs.
func Top(totals map[string]int64, n int) []Entry {
	entries := make([]Entry, 0, len(totals))
	for username, shame := range totals {
		entries = append(entries, Entry{Username: username, Shame: shame})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Shame != entries[j].Shame {
			return entries[i].Shame > entries[j].Shame
		}
		return entries[i].Username < entries[j].Username
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Render writes the leaderboard in its plain-text format: a header naming
// the run window followed by one line per ranked entry. Timestamps use the
// ANSIC layout ("Mon Jan _2 15:04:05 2006").
func Render(w io.Writer, window Window, entries []Entry) error {
	if _, err := fmt.Fprintf(w, "Wall of Shame\nFrom %s to %s\n\n",
		window.Start.Format(time.ANSIC), window.End.Format(time.ANSIC)); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "[#%d] %s (%d)\n", e.Rank, e.Username, e.Shame); err != nil {
			return err
		}
	}
	return nil
}
