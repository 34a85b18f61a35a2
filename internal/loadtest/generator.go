package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/fitfuzz/pkg/logger"
)

const (
	randomFloatDivisor = 1000000
	profileDivisor     = 6
	// Inputs are rounded to one decimal, as typed into the form.
	inputPrecision = 10
)

// Population shapes for generated inputs.
const (
	caseChild = iota
	caseYoungAdult
	caseMiddleAged
	caseSenior
	caseBoundary
	caseUniform
)

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func between(lo, hi float64) float64 {
	v := lo + getRandomFloat()*(hi-lo)
	return math.Round(v*inputPrecision) / inputPrecision
}

// generateRequests creates n requests spread over the accepted input ranges.
func generateRequests(ctx context.Context, config *Config, stats *Stats) ([]Request, error) {
	logger.Get().Info(ctx, "generating requests", logger.Int("numRequests", config.NumRequests))

	requests := make([]Request, config.NumRequests)
	for i := range requests {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during request generation: %w", err)
		}
		requests[i] = generateSingleRequest()
	}

	stats.RequestsGenerated = len(requests)
	logger.Get().Info(ctx, "generated requests successfully", logger.Int("count", len(requests)))
	return requests, nil
}

func generateSingleRequest() Request {
	age, bmi := generateInputs()
	return Request{ID: uuid.NewString(), Age: age, BMI: bmi}
}

// generateInputs draws an (age, bmi) pair from one of several population shapes.
func generateInputs() (float64, float64) {
	n, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))
	switch n.Int64() {
	case caseChild:
		return between(ageMin, 15), between(bmiMin, 22)
	case caseYoungAdult:
		return between(18, 35), between(17, 30)
	case caseMiddleAged:
		return between(35, 65), between(20, 35)
	case caseSenior:
		return between(65, ageMax), between(18, 32)
	case caseBoundary:
		ages := []float64{ageMin, 20, 30, 50, 60, 80, ageMax}
		bmis := []float64{bmiMin, 18.5, 24.9, 25, 30, bmiMax}
		return ages[pick(len(ages))], bmis[pick(len(bmis))]
	default:
		return between(ageMin, ageMax), between(bmiMin, bmiMax)
	}
}

func pick(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}
