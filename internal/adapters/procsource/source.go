// Package procsource enumerates the operating system's process table.
//
// The rest of the daemon treats process enumeration as an opaque
// capability: "list current processes with user, name, niceness and
// last-run core". A process that vanishes mid-snapshot, or whose fields
// cannot be read, is skipped without aborting the snapshot.
package procsource

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
	"github.com/twrightsman/wall-of-shame/pkg/metrics"
)

// Source provides a point-in-time snapshot of the process table.
type Source interface {
	// Snapshot returns descriptors for the currently running processes.
	// Individual unreadable processes are omitted; an error is returned
	// only when the table itself cannot be enumerated.
	Snapshot(ctx context.Context) ([]model.Proc, error)
}

// SystemSource implements Source against the live process table using
// gopsutil, with the last-used core read from procfs (gopsutil does not
// expose that field).
type SystemSource struct {
	procRoot string
}

// NewSystemSource creates a process source with configuration options.
func NewSystemSource(opts ...Option) *SystemSource {
	s := &SystemSource{
		procRoot: defaultProcRoot,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot enumerates the process table. Per-process read failures are a
// recoverable fault: the process exited (or became unreadable) between
// enumeration and inspection, so it is skipped and the rest are scored.
func (s *SystemSource) Snapshot(ctx context.Context) ([]model.Proc, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Proc, 0, len(procs))
	for _, p := range procs {
		username, err := p.UsernameWithContext(ctx)
		if err != nil {
			metrics.RecordProcessSkipped()
			continue
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			metrics.RecordProcessSkipped()
			continue
		}
		nice, err := p.NiceWithContext(ctx)
		if err != nil {
			metrics.RecordProcessSkipped()
			continue
		}
		lastCPU, err := lastUsedCPU(s.procRoot, p.Pid)
		if err != nil {
			metrics.RecordProcessSkipped()
			continue
		}

		out = append(out, model.Proc{
			PID:      p.Pid,
			Username: username,
			Name:     name,
			Nice:     nice,
			LastCPU:  lastCPU,
		})
	}
	return out, nil
}
