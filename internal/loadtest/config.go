package loadtest

import "time"

// Config holds configuration for a load test run.
type Config struct {
	BaseURL      string        // Base URL of the service
	NumRequests  int           // Number of requests to generate
	SampleSize   int           // Requests re-submitted for the determinism check
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	OutputFile   string        // Output file for requests and results
	LogFile      string        // Log file for test output
	Verbose      bool          // Enable verbose logging
	SkipHealth   bool          // Skip the initial /healthz probe
	ActivityPeek int           // Activity entries fetched after the run; 0 disables
}

// Request is one generated (age, bmi) pair.
type Request struct {
	ID  string  `json:"id"`
	Age float64 `json:"age"`
	BMI float64 `json:"bmi"`
}

// Result is the outcome of submitting one request.
type Result struct {
	Request
	StatusCode int     `json:"status_code"`
	Status     string  `json:"status"`
	Minutes    float64 `json:"minutes"`
	Err        string  `json:"error,omitempty"`
}

// recommendationBody is the wire form of POST /recommendations.
type recommendationBody struct {
	Age float64 `json:"age"`
	BMI float64 `json:"bmi"`
}

// recommendationResponse is the subset of the response the tool reads.
type recommendationResponse struct {
	Status  string  `json:"status"`
	Minutes float64 `json:"minutes"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
}

// Stats holds test statistics.
type Stats struct {
	RequestsGenerated  int
	RequestsSubmitted  int
	Recommendations    int
	NoRecommendation   int
	RequestsFailed     int
	DeterminismChecked int
	DeterminismFailed  int
	BoundsViolations   int
	ActivityEntries    int
	MinMinutes         float64
	MaxMinutes         float64
	MeanMinutes        float64
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
