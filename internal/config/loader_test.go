package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/twrightsman/wall-of-shame/internal/config"
)

func clearConfigEnvVars() {
	_ = os.Unsetenv("SHAMED_CONFIG")
	_ = os.Unsetenv("SHAMED_LOG_LEVEL")
	_ = os.Unsetenv("SHAMED_POLL_INTERVAL")
	_ = os.Unsetenv("SHAMED_WRITE_INTERVAL")
	_ = os.Unsetenv("SHAMED_REPORT_INTERVAL")
	_ = os.Unsetenv("SHAMED_IGNORE_USERS")
	_ = os.Unsetenv("SHAMED_IGNORE_NAMES")
	_ = os.Unsetenv("SHAMED_DATABASE_PATH")
	_ = os.Unsetenv("SHAMED_LEADERBOARD_PATH")
	_ = os.Unsetenv("SHAMED_METRICS_ADDR")
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.PollInterval, convey.ShouldEqual, 1)
				convey.So(cfg.WriteInterval, convey.ShouldEqual, 60)
				convey.So(cfg.ReportInterval, convey.ShouldEqual, 300)
				convey.So(cfg.IgnoreUsers, convey.ShouldResemble, []string{"root"})
				convey.So(cfg.IgnoreNames, convey.ShouldResemble, []string{"bash"})
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "shame.db")
				convey.So(cfg.LeaderboardPath, convey.ShouldEqual, "wall_of_shame.txt")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SHAMED_POLL_INTERVAL", "5")
			_ = os.Setenv("SHAMED_DATABASE_PATH", "/var/lib/shamed/shame.db")
			_ = os.Setenv("SHAMED_IGNORE_USERS", "root,daemon")
			_ = os.Setenv("SHAMED_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PollInterval, convey.ShouldEqual, 5)
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "/var/lib/shamed/shame.db")
				convey.So(cfg.IgnoreUsers, convey.ShouldResemble, []string{"root", "daemon"})
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.WriteInterval, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When list env vars carry whitespace around elements", func() {
			_ = os.Setenv("SHAMED_IGNORE_USERS", "root, daemon ,  www-data")
			_ = os.Setenv("SHAMED_IGNORE_NAMES", " bash , sshd")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then each element decodes trimmed, one username per entry", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.IgnoreUsers, convey.ShouldResemble, []string{"root", "daemon", "www-data"})
				convey.So(cfg.IgnoreNames, convey.ShouldResemble, []string{"bash", "sshd"})
			})
		})

		convey.Convey("When a list env var holds a single element", func() {
			_ = os.Setenv("SHAMED_IGNORE_USERS", "nobody")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it decodes as a one-element set", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.IgnoreUsers, convey.ShouldResemble, []string{"nobody"})
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		convey.Convey("Then it validates", func() {
			convey.So(config.New().Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the poll interval is zero", func() {
			cfg := config.New()
			cfg.PollInterval = 0

			convey.Convey("Then validation fails with the invalid-config kind", func() {
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "poll_interval")
			})
		})

		convey.Convey("When the write interval is negative", func() {
			cfg := config.New()
			cfg.WriteInterval = -3

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the report interval is zero", func() {
			cfg := config.New()
			cfg.ReportInterval = 0

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the database path is empty", func() {
			cfg := config.New()
			cfg.DatabasePath = ""

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSplitList(t *testing.T) {
	convey.Convey("Given comma-separated lists", t, func() {
		convey.Convey("Then elements are trimmed and empties dropped", func() {
			convey.So(config.SplitList("root, daemon ,  www-data"), convey.ShouldResemble, []string{"root", "daemon", "www-data"})
			convey.So(config.SplitList("root"), convey.ShouldResemble, []string{"root"})
			convey.So(config.SplitList(" , ,"), convey.ShouldResemble, []string{})
		})
	})
}
