package loadtest

import "time"

// HTTP status code constants.
const (
	StatusOK                  = 200
	StatusUnprocessableEntity = 422
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	progressInterval     = time.Second
	defaultSampleSize    = 100
)

// Outcome labels for a single submission.
const (
	outcomeOK               = "ok"
	outcomeNoRecommendation = "no_recommendation"
	outcomeFailed           = "failed"
)

// Input ranges accepted by the service.
const (
	ageMin = 0.0
	ageMax = 100.0
	bmiMin = 10.0
	bmiMax = 40.0

	minutesMin = 0.0
	minutesMax = 120.0
)
