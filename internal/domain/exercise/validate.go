package exercise

import (
	"fmt"
	"math"
)

// Plausibility bounds for BMI derived from height and weight.
const (
	minHeightCm = 50.0
	maxHeightCm = 250.0
	minWeightKg = 10.0
	maxWeightKg = 400.0
)

// ValidateInput checks (age, bmi) against the nominal ranges.
func ValidateInput(age, bmi float64) error {
	if !finite(age) || !finite(bmi) {
		return ErrNotANumber
	}
	if age < AgeMin || age > AgeMax {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrAgeOutOfRange, age, AgeMin, AgeMax)
	}
	if bmi < BMIMin || bmi > BMIMax {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrBMIOutOfRange, bmi, BMIMin, BMIMax)
	}
	return nil
}

// BMI computes body-mass index from height in centimeters and weight in
// kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if !finite(heightCm) || !finite(weightKg) {
		return 0, ErrNotANumber
	}
	if heightCm < minHeightCm || heightCm > maxHeightCm || weightKg < minWeightKg || weightKg > maxWeightKg {
		return 0, fmt.Errorf("%w: %vcm %vkg", ErrBodyMeasures, heightCm, weightKg)
	}
	h := heightCm / 100
	return weightKg / (h * h), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
