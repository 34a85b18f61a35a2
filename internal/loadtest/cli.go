package loadtest

import (
	"fmt"
	"os"
	"time"

	"github.com/okian/fitfuzz/pkg/logger"
)

// SetupLogging configures logging to both console and file. If logFile is
// empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "load_test_" + time.Now().Format("20060102_150405") + ".log"
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithLevel(level), logger.WithFile(logFile)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`fitfuzz load test
=================

Concurrent HTTP exerciser for the fitfuzz recommendation service. It submits
random in-range (age, bmi) pairs, re-submits a sample to check that answers
are deterministic, and checks every recommendation lies in [0, 120] minutes.

Usage:
  go run ./cmd/load-test [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of requests to generate and submit (default 10000)
  -sample int
        Requests re-submitted for the determinism check (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -activity int
        Activity entries read back after the run, 0 disables (default 20)
  -output string
        Output file for requests and results (default: none)
  -log string
        Log file for test output (default: load_test_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/load-test -requests 50000 -workers 16 -url http://localhost:8080
  go run ./cmd/load-test -verbose -output results.json
`)
}
