package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/scorecard/internal/config"
	"github.com/okian/scorecard/pkg/logger"
	"github.com/okian/scorecard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("SCORECARD_ADDR", ":8080")
			t.Setenv("SCORECARD_MAX_SESSIONS", "50")
			t.Setenv("SCORECARD_PDF_COMPRESSION", "true")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxSessions, convey.ShouldEqual, 50)
				convey.So(cfg.PDFCompression, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When testing service creation", func() {
			svc := newService(config.New(), logger.Get())
			convey.So(svc, convey.ShouldNotBeNil)

			stats := svc.GetStats()
			convey.So(stats["maxSessions"], convey.ShouldEqual, 10_000)
			convey.So(stats["sessionTTLSeconds"], convey.ShouldEqual, 86400)
		})

		convey.Convey("When testing metrics initialization", func() {
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}

func TestMux(t *testing.T) {
	convey.Convey("Given the assembled mux", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.DefaultVariant = "feedback"
		svc := newService(cfg, logger.Get())
		srv := httptest.NewServer(newMux(ctx, cfg, svc, logger.Get()))
		defer srv.Close()

		client := &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		}
		get := func(path string) *http.Response {
			resp, err := client.Get(srv.URL + path)
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			return resp
		}

		convey.Convey("Then the root redirects to the configured variant", func() {
			resp := get("/")
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusFound)
			convey.So(resp.Header.Get("Location"), convey.ShouldEqual, "/forms/feedback")
		})

		convey.Convey("Then docs, assets and the API are mounted", func() {
			convey.So(get("/api-docs").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/static/style.css").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/variants").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/forms/scorecard").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").StatusCode, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the system metrics updater runs until cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})

		convey.Convey("When the service metrics updater runs until cancelled", func() {
			svc := newService(config.New(), logger.Get())
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("When metrics are updated once", func() {
			svc := newService(config.New(), logger.Get())
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given invalid configuration", t, func() {
		convey.Convey("When the address is empty", func() {
			t.Setenv("SCORECARD_ADDR", "")

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When the default variant is unknown", func() {
			t.Setenv("SCORECARD_DEFAULT_VARIANT", "survey")

			_, err := config.Load(context.Background())
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
