// Package model contains domain models passed between layers.
package model

// Record is one per-user shame observation from a single poll cycle.
// Records are immutable once created; ownership flows from the sampler
// through the queue to the persister and finally the database.
type Record struct {
	Timestamp int64  // Unix seconds, shared by all records of one cycle
	Username  string // owning user of the scored processes
	Shame     int64  // aggregated shame for this user at this instant
}

// Proc describes one process as seen by the process source.
type Proc struct {
	PID      int32
	Username string // owning user
	Name     string // executable name
	Nice     int32  // scheduling niceness, roughly -20..19
	LastCPU  int32  // index of the core the process last ran on
}
