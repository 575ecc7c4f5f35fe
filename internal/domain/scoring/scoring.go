// Package scoring implements the shame heuristic and per-cycle aggregation.
//
// The score of a single process is (20 - niceness) * last-used-core-index.
// Low scheduling priority (high niceness) combined with having recently run
// on a higher-numbered core yields a larger score. This is a heuristic, not
// a CPU-time measure: the last-used core is a proxy for how much the
// process has been scheduled.
package scoring

import (
	"strings"

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
)

// niceCeiling is the top of the niceness range; the multiplier is the
// distance below it.
const niceCeiling = 20

// Filter holds the exclusion sets applied before scoring.
type Filter struct {
	users map[string]struct{}
	names map[string]struct{}
}

// NewFilter builds a Filter from username and executable-name lists.
// Matching is exact and case-sensitive.
func NewFilter(ignoreUsers, ignoreNames []string) Filter {
	f := Filter{
		users: make(map[string]struct{}, len(ignoreUsers)),
		names: make(map[string]struct{}, len(ignoreNames)),
	}
	for _, u := range ignoreUsers {
		if u = strings.TrimSpace(u); u != "" {
			f.users[u] = struct{}{}
		}
	}
	for _, n := range ignoreNames {
		if n = strings.TrimSpace(n); n != "" {
			f.names[n] = struct{}{}
		}
	}
	return f
}

// Excludes reports whether p is exempt from shaming: ignored user, ignored
// executable name, or negative niceness. Processes running at elevated
// priority are never scored, even though they arguably deserve it more.
func (f Filter) Excludes(p model.Proc) bool {
	if p.Nice < 0 {
		return true
	}
	if _, ok := f.users[p.Username]; ok {
		return true
	}
	_, ok := f.names[p.Name]
	return ok
}

// Score computes the shame contribution of a single process. Processes with
// negative niceness contribute zero, never a negative score.
func Score(p model.Proc) int64 {
	if p.Nice < 0 {
		return 0
	}
	return int64(niceCeiling-p.Nice) * int64(p.LastCPU)
}

// ScoreSnapshot aggregates one poll cycle into per-username shame sums.
// Scores for multiple processes owned by the same user are summed, so the
// result holds at most one entry per username.
func ScoreSnapshot(procs []model.Proc, f Filter) map[string]int64 {
	shame := make(map[string]int64)
	for _, p := range procs {
		if f.Excludes(p) {
			continue
		}
		shame[p.Username] += Score(p)
	}
	return shame
}
