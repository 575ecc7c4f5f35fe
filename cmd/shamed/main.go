// Command shamed runs the wall-of-shame daemon: it samples the process
// table, records per-user shame scores and maintains a ranked leaderboard
// file.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/twrightsman/wall-of-shame/internal/app"
	"github.com/twrightsman/wall-of-shame/internal/config"
	"github.com/twrightsman/wall-of-shame/internal/domain/scoring"
	"github.com/twrightsman/wall-of-shame/pkg/logger"
	"github.com/twrightsman/wall-of-shame/pkg/metrics"
)

// Metrics server timeout constants.
const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

// cliFlags carries the command-line overrides. Flags beat the config file
// and environment, but only when explicitly set.
type cliFlags struct {
	debug          bool
	verbose        bool
	leaderboard    string
	database       string
	pollInterval   int
	writeInterval  int
	reportInterval int
	ignoreUsers    string
	ignoreNames    string
	metricsAddr    string
}

func registerFlags(fs *flag.FlagSet, f *cliFlags) {
	fs.BoolVar(&f.debug, "d", false, "output detailed debugging messages")
	fs.BoolVar(&f.verbose, "v", false, "output progress and other informative messages")
	fs.StringVar(&f.leaderboard, "l", "", "path to which the leaderboard will be written")
	fs.StringVar(&f.leaderboard, "leaderboard", "", "path to which the leaderboard will be written")
	fs.StringVar(&f.database, "b", "", "path to which the process history database will be written")
	fs.StringVar(&f.database, "database", "", "path to which the process history database will be written")
	fs.IntVar(&f.pollInterval, "p", 0, "seconds between system process status queries")
	fs.IntVar(&f.pollInterval, "poll-interval", 0, "seconds between system process status queries")
	fs.IntVar(&f.writeInterval, "write-interval", 0, "seconds between data dumps to database")
	fs.IntVar(&f.reportInterval, "report-interval", 0, "seconds between leaderboard updates")
	fs.StringVar(&f.ignoreUsers, "ignore-users", "", "comma-separated usernames to ignore while shaming")
	fs.StringVar(&f.ignoreNames, "ignore-names", "", "comma-separated process names to ignore while shaming")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "listen address for Prometheus metrics, empty disables")
}

// applyFlags copies explicitly-set flags onto cfg. fs.Visit only walks
// flags present on the command line, so untouched config values survive.
func applyFlags(cfg *config.Config, fs *flag.FlagSet, f *cliFlags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "l", "leaderboard":
			cfg.LeaderboardPath = f.leaderboard
		case "b", "database":
			cfg.DatabasePath = f.database
		case "p", "poll-interval":
			cfg.PollInterval = f.pollInterval
		case "write-interval":
			cfg.WriteInterval = f.writeInterval
		case "report-interval":
			cfg.ReportInterval = f.reportInterval
		case "ignore-users":
			cfg.IgnoreUsers = config.SplitList(f.ignoreUsers)
		case "ignore-names":
			cfg.IgnoreNames = config.SplitList(f.ignoreNames)
		case "metrics-addr":
			cfg.MetricsAddr = f.metricsAddr
		case "d":
			cfg.LogLevel = "debug"
		case "v":
			if cfg.LogLevel != "debug" {
				cfg.LogLevel = "info"
			}
		}
	})
}

func main() {
	os.Exit(run())
}

func run() int {
	var flags cliFlags
	fs := flag.NewFlagSet("shamed", flag.ExitOnError)
	registerFlags(fs, &flags)
	_ = fs.Parse(os.Args[1:])

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	applyFlags(cfg, fs, &flags)

	// Invalid intervals are fatal before any loop starts.
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}

	log := logger.Get()

	// Apply configured log level (fallback to warn on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithIntervals(
			time.Duration(cfg.PollInterval)*time.Second,
			time.Duration(cfg.WriteInterval)*time.Second,
			time.Duration(cfg.ReportInterval)*time.Second,
		),
		app.WithFilter(scoring.NewFilter(cfg.IgnoreUsers, cfg.IgnoreNames)),
		app.WithDatabasePath(cfg.DatabasePath),
		app.WithLeaderboardPath(cfg.LeaderboardPath),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start daemon: " + err.Error() + "\n")
		return 1
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	// Block until an interrupt sets the shutdown signal, then join every
	// loop with no timeout: in-flight cycles run to completion.
	<-ctx.Done()
	log.Info(ctx, "shutting down gracefully")
	svc.Wait()
	svc.Stop()

	return 0
}

// serveMetrics exposes the Prometheus registry over HTTP until ctx is
// canceled.
func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "metrics server failed", logger.Error(err))
	}
}
