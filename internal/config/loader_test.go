package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/scorecard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCORECARD_ADDR", ":8080")
			_ = os.Setenv("SCORECARD_SESSION_TTL_SECONDS", "600")
			_ = os.Setenv("SCORECARD_MAX_SESSIONS", "50")
			_ = os.Setenv("SCORECARD_PDF_COMPRESSION", "true")
			_ = os.Setenv("SCORECARD_DEFAULT_VARIANT", "feedback")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SessionTTLSeconds, convey.ShouldEqual, 600)
				convey.So(cfg.MaxSessions, convey.ShouldEqual, 50)
				convey.So(cfg.PDFCompression, convey.ShouldBeTrue)
				convey.So(cfg.DefaultVariant, convey.ShouldEqual, "feedback")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_level: debug
max_sessions: 200
session_sweep_seconds: 5
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SCORECARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MaxSessions, convey.ShouldEqual, 200)
				convey.So(cfg.SessionSweepSeconds, convey.ShouldEqual, 5)
				convey.So(cfg.SessionTTLSeconds, convey.ShouldEqual, 86400)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
max_sessions: 200
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SCORECARD_CONFIG", tmpFile)
			_ = os.Setenv("SCORECARD_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxSessions, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile("addr: [unclosed")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SCORECARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCORECARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SCORECARD_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SCORECARD_MAX_SESSIONS", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative TTL", func() {
			_ = os.Setenv("SCORECARD_SESSION_TTL_SECONDS", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"SCORECARD_CONFIG",
		"SCORECARD_ADDR",
		"SCORECARD_LOG_LEVEL",
		"SCORECARD_LOG_FORMAT",
		"SCORECARD_SESSION_TTL_SECONDS",
		"SCORECARD_MAX_SESSIONS",
		"SCORECARD_SESSION_SWEEP_SECONDS",
		"SCORECARD_PDF_COMPRESSION",
		"SCORECARD_DEFAULT_VARIANT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "scorecard-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
