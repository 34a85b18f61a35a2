package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/fitfuzz/pkg/logger"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// getJSON decodes the body of a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// submitRequests posts every request with a pool of workers and returns the
// results in request order.
func submitRequests(ctx context.Context, config *Config, requests []Request, stats *Stats) []Result {
	log := logger.Get()
	log.Info(ctx, "submitting requests", logger.Int("count", len(requests)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommendations"
	results := make([]Result, len(requests))

	var submitted, ok, none, failed atomic.Int64
	var lastReport atomic.Int64

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				if ctx.Err() != nil {
					return
				}
				res := submitSingleRequest(ctx, client, url, requests[index])
				results[index] = res

				submitted.Add(1)
				switch res.Status {
				case outcomeOK:
					ok.Add(1)
				case outcomeNoRecommendation:
					none.Add(1)
				default:
					failed.Add(1)
				}

				now := time.Now().UnixNano()
				last := lastReport.Load()
				if time.Duration(now-last) >= progressInterval && lastReport.CompareAndSwap(last, now) && config.Verbose {
					log.Info(ctx, "progress",
						logger.Int("submitted", int(submitted.Load())),
						logger.Int("total", len(requests)),
						logger.Int("ok", int(ok.Load())),
						logger.Int("noRecommendation", int(none.Load())),
						logger.Int("failed", int(failed.Load())))
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range requests {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()
	wg.Wait()

	stats.RequestsSubmitted = int(submitted.Load())
	stats.Recommendations = int(ok.Load())
	stats.NoRecommendation = int(none.Load())
	stats.RequestsFailed = int(failed.Load())

	log.Info(ctx, "submission completed",
		logger.Int("ok", stats.Recommendations),
		logger.Int("noRecommendation", stats.NoRecommendation),
		logger.Int("failed", stats.RequestsFailed))
	return results
}

// submitSingleRequest posts one request and classifies the response.
func submitSingleRequest(ctx context.Context, client *HTTPClient, url string, r Request) Result {
	res := Result{Request: r, Status: outcomeFailed}
	resp, err := client.Post(ctx, url, recommendationBody{Age: r.Age, BMI: r.BMI})
	if err != nil {
		res.Err = err.Error()
		return res
	}
	defer resp.Body.Close()
	res.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	var decoded recommendationResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		res.Err = fmt.Sprintf("decode response: %v", err)
		return res
	}

	switch resp.StatusCode {
	case StatusOK:
		res.Status = outcomeOK
		res.Minutes = decoded.Minutes
	case StatusUnprocessableEntity:
		res.Status = outcomeNoRecommendation
	default:
		res.Err = decoded.Code + ": " + decoded.Message
	}
	return res
}
