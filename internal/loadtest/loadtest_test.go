package loadtest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/fitfuzz/internal/adapters/http/api"
	service "github.com/okian/fitfuzz/internal/app"
	"github.com/okian/fitfuzz/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init(logger.WithWriter(io.Discard))
}

func newTestServer(ctx context.Context) (*httptest.Server, *service.Service) {
	svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(1024))
	So(svc.Start(ctx), ShouldBeNil)
	mux := http.NewServeMux()
	api.NewServer(svc, svc, 50).Register(ctx, mux)
	return httptest.NewServer(mux), svc
}

func TestGenerateInputs(t *testing.T) {
	Convey("Given many generated requests", t, func() {
		stats := &Stats{}
		reqs, err := generateRequests(context.Background(), &Config{NumRequests: 2000}, stats)
		So(err, ShouldBeNil)

		Convey("Then every input lies in the accepted ranges", func() {
			So(stats.RequestsGenerated, ShouldEqual, 2000)
			ids := make(map[string]struct{}, len(reqs))
			for _, r := range reqs {
				So(r.Age, ShouldBeBetweenOrEqual, ageMin, ageMax)
				So(r.BMI, ShouldBeBetweenOrEqual, bmiMin, bmiMax)
				ids[r.ID] = struct{}{}
			}
			So(len(ids), ShouldEqual, 2000)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := generateRequests(ctx, &Config{NumRequests: 10}, &Stats{})
		So(err, ShouldNotBeNil)
	})
}

func TestVerifyBounds(t *testing.T) {
	Convey("Given results with one out-of-range value", t, func() {
		results := []Result{
			{Status: outcomeOK, Minutes: 60},
			{Status: outcomeOK, Minutes: 12.5},
			{Status: outcomeNoRecommendation},
			{Status: outcomeOK, Minutes: 121},
		}
		stats := &Stats{}
		err := verifyBounds(context.Background(), results, stats)

		Convey("Then the violation is counted and summarised", func() {
			So(err, ShouldNotBeNil)
			So(stats.BoundsViolations, ShouldEqual, 1)
			So(stats.MinMinutes, ShouldEqual, 12.5)
			So(stats.MaxMinutes, ShouldEqual, 121)
			So(stats.MeanMinutes, ShouldAlmostEqual, (60+12.5+121)/3.0, 1e-9)
		})
	})

	Convey("Given only no-recommendation results", t, func() {
		stats := &Stats{}
		So(verifyBounds(context.Background(), []Result{{Status: outcomeNoRecommendation}}, stats), ShouldBeNil)
		So(stats.MinMinutes, ShouldEqual, 0)
		So(stats.MaxMinutes, ShouldEqual, 0)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		srv, svc := newTestServer(ctx)
		defer svc.Stop()
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "out", "results.json")
		config := &Config{
			BaseURL:      srv.URL,
			NumRequests:  200,
			SampleSize:   50,
			Workers:      4,
			Timeout:      5 * time.Second,
			OutputFile:   out,
			ActivityPeek: 10,
		}

		Convey("When the load test runs", func() {
			stats, err := Run(ctx, config)

			Convey("Then every request is answered deterministically within bounds", func() {
				So(err, ShouldBeNil)
				So(stats.RequestsSubmitted, ShouldEqual, 200)
				So(stats.Recommendations+stats.NoRecommendation, ShouldEqual, 200)
				So(stats.RequestsFailed, ShouldEqual, 0)
				So(stats.BoundsViolations, ShouldEqual, 0)
				So(stats.DeterminismFailed, ShouldEqual, 0)
				So(stats.DeterminismChecked, ShouldEqual, 50)
				So(stats.ActivityEntries, ShouldBeBetweenOrEqual, 0, 10)
			})

			Convey("And the results file lists every request", func() {
				data, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var results []Result
				So(json.Unmarshal(data, &results), ShouldBeNil)
				So(len(results), ShouldEqual, 200)
				So(results[0].ID, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given no service at the URL", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()
		_, err := Run(context.Background(), &Config{BaseURL: srv.URL, NumRequests: 1, Workers: 1, Timeout: time.Second})
		So(err, ShouldNotBeNil)
	})
}
