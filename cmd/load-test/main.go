package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/fitfuzz/internal/loadtest"
	"github.com/okian/fitfuzz/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRequests  = 10000
	defaultSampleSize   = 100
	defaultActivityPeek = 20
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultTestTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRequests = flag.Int("requests", defaultNumRequests, "Number of requests to generate and submit")
		sample      = flag.Int("sample", defaultSampleSize, "Requests re-submitted for the determinism check")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		activity    = flag.Int("activity", defaultActivityPeek, "Activity entries read back after the run (0 disables)")
		outputFile  = flag.String("output", "", "Output file for requests and results")
		logFile     = flag.String("log", "", "Log file for test output (default: load_test_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	if err := loadtest.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	config := &loadtest.Config{
		BaseURL:      *baseURL,
		NumRequests:  *numRequests,
		SampleSize:   *sample,
		Workers:      *workers,
		Timeout:      *timeout,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Verbose:      *verbose,
		ActivityPeek: *activity,
	}

	_, err := loadtest.Run(ctx, config)
	stop()
	cancel()
	_ = logger.Sync()
	if err != nil {
		_, _ = os.Stderr.WriteString("load test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
