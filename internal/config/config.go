// Package config defines daemon configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// PollInterval is the time in seconds between process table snapshots.
	PollInterval int `koanf:"poll_interval"`

	// WriteInterval is the time in seconds between database dumps.
	WriteInterval int `koanf:"write_interval"`

	// ReportInterval is the time in seconds between leaderboard updates.
	ReportInterval int `koanf:"report_interval"`

	// IgnoreUsers lists usernames exempt from shaming.
	IgnoreUsers []string `koanf:"ignore_users"`

	// IgnoreNames lists executable names exempt from shaming.
	IgnoreNames []string `koanf:"ignore_names"`

	// DatabasePath is where the process history database is written.
	DatabasePath string `koanf:"database_path"`

	// LeaderboardPath is where the leaderboard file is written.
	LeaderboardPath string `koanf:"leaderboard_path"`

	// MetricsAddr optionally exposes Prometheus metrics over HTTP,
	// e.g. ":9100". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config holding the daemon defaults.
func New() *Config {
	return &Config{
		LogLevel:        "warn",
		PollInterval:    1,
		WriteInterval:   60,
		ReportInterval:  300,
		IgnoreUsers:     []string{"root"},
		IgnoreNames:     []string{"bash"},
		DatabasePath:    "shame.db",
		LeaderboardPath: "wall_of_shame.txt",
		MetricsAddr:     "",
	}
}

// Validate rejects configurations the daemon must not start with. All
// intervals must be at least one second; failing here happens before any
// loop starts or any file is created.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return wrapInvalid("poll_interval must be 1 second or greater")
	}
	if c.WriteInterval <= 0 {
		return wrapInvalid("write_interval must be 1 second or greater")
	}
	if c.ReportInterval <= 0 {
		return wrapInvalid("report_interval must be 1 second or greater")
	}
	if c.DatabasePath == "" {
		return wrapInvalid("database_path must not be empty")
	}
	if c.LeaderboardPath == "" {
		return wrapInvalid("leaderboard_path must not be empty")
	}
	return nil
}
