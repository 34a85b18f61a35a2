package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/fitfuzz/internal/config"
	"github.com/okian/fitfuzz/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	cfg.WorkerCount = 1
	cfg.QueueSize = 64
	return cfg
}

func TestInitLogging(t *testing.T) {
	convey.Convey("Given configurations for the logger", t, func() {
		convey.Convey("When the level is valid", func() {
			cfg := testConfig()
			cfg.LogLevel = "debug"
			cfg.LogFormat = config.LogFormatJSON
			convey.So(initLogging(cfg), convey.ShouldBeNil)
			convey.So(logger.Get(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the level is invalid", func() {
			cfg := testConfig()
			cfg.LogLevel = "chatty"

			convey.Convey("Then it falls back to info instead of failing", func() {
				convey.So(initLogging(cfg), convey.ShouldBeNil)
			})
		})

		convey.Convey("When a log file is configured", func() {
			cfg := testConfig()
			cfg.LogFile = t.TempDir() + "/logs/fitfuzz.log"
			convey.So(initLogging(cfg), convey.ShouldBeNil)
			logger.Get().Info(context.Background(), "hello")
			convey.So(logger.Sync(), convey.ShouldBeNil)
		})
	})
}

func TestMux(t *testing.T) {
	convey.Convey("Given the assembled server", t, func() {
		_ = logger.Init(logger.WithWriter(&bytes.Buffer{}))
		ctx := context.Background()
		cfg := testConfig()
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		mux := newMux(ctx, cfg, svc)

		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
			return w
		}

		convey.Convey("Then the form, docs and API are all reachable", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/dashboard").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/variables").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/rules").Code, convey.ShouldEqual, http.StatusOK)

			w := get("/recommendations?age=70&bmi=30")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"minutes":12.41176470588`)
		})

		convey.Convey("Then the metric updaters run against the live service", func() {
			convey.So(func() {
				updateSystemMetrics()
				updateServiceMetrics(svc)
			}, convey.ShouldNotPanic)
			convey.So(strings.Contains(get("/healthz").Body.String(), "fitfuzz_recommender_system_goroutine_count"), convey.ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a cancellable context", t, func() {
		_ = logger.Init(logger.WithWriter(&bytes.Buffer{}))
		ctx, cancel := context.WithCancel(context.Background())

		convey.Convey("When run is cancelled", func() {
			done := make(chan error, 1)
			go func() { done <- run(ctx, testConfig()) }()
			time.Sleep(50 * time.Millisecond)
			cancel()

			convey.Convey("Then it shuts down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(10 * time.Second):
					convey.So("run did not return", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When the address cannot be bound", func() {
			defer cancel()
			cfg := testConfig()
			cfg.Addr = "256.0.0.1:99999"
			convey.So(run(ctx, cfg), convey.ShouldNotBeNil)
		})
	})
}
