// Package fuzzy implements a Mamdani-style fuzzy inference engine: triangular
// membership functions, linguistic variables over sampled domains, rules with
// min/max/complement antecedents, max aggregation and centroid
// defuzzification.
//
// Everything in this package is immutable after construction, so a built
// Engine can be shared by any number of goroutines without locking.
package fuzzy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// stepTolerance bounds how far (max-min)/step may drift from an integer.
const stepTolerance = 1e-9

// Domain is an evenly sampled closed interval [min, max].
type Domain struct {
	min     float64
	max     float64
	step    float64
	samples []float64
}

// NewDomain samples [min, max] every step. The interval must divide evenly.
func NewDomain(min, max, step float64) (Domain, error) {
	for _, v := range []float64{min, max, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Domain{}, fmt.Errorf("%w: non-finite bound", ErrInvalidDomain)
		}
	}
	if step <= 0 {
		return Domain{}, fmt.Errorf("%w: step %v must be positive", ErrInvalidDomain, step)
	}
	if max <= min {
		return Domain{}, fmt.Errorf("%w: max %v must exceed min %v", ErrInvalidDomain, max, min)
	}

	intervals := (max - min) / step
	rounded := math.Round(intervals)
	if rounded < 1 || math.Abs(intervals-rounded) > stepTolerance*math.Max(1, rounded) {
		return Domain{}, fmt.Errorf("%w: step %v does not divide [%v, %v]", ErrInvalidDomain, step, min, max)
	}

	samples := floats.Span(make([]float64, int(rounded)+1), min, max)
	return Domain{min: min, max: max, step: step, samples: samples}, nil
}

// Min returns the lower bound.
func (d Domain) Min() float64 { return d.min }

// Max returns the upper bound.
func (d Domain) Max() float64 { return d.max }

// Step returns the sampling step.
func (d Domain) Step() float64 { return d.step }

// Len returns the number of samples.
func (d Domain) Len() int { return len(d.samples) }

// Samples returns a copy of the sample points in increasing order.
func (d Domain) Samples() []float64 {
	out := make([]float64, len(d.samples))
	copy(out, d.samples)
	return out
}
