// Package procsource enumerates the operating system's process table.
package procsource

// Option applies a configuration option to the SystemSource.
type Option func(*SystemSource)

// WithProcRoot overrides the procfs mount point. Used by tests to point at
// a fixture tree.
func WithProcRoot(root string) Option {
	return func(s *SystemSource) {
		if root != "" {
			s.procRoot = root
		}
	}
}
