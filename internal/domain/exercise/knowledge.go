// Package exercise holds the fixed knowledge base that maps age and body-mass
// index to recommended daily exercise minutes.
package exercise

import (
	"fmt"
	"strings"

	"github.com/okian/fitfuzz/internal/domain/fuzzy"
)

// Variable names used by the rule base.
const (
	VarAge     = "age"
	VarBMI     = "bmi"
	VarMinutes = "minutes"
)

// Nominal input ranges. The engine evaluates anything finite; collaborators
// validate against these before calling it.
const (
	AgeMin = 0.0
	AgeMax = 100.0
	BMIMin = 10.0
	BMIMax = 40.0

	MinutesMin = 0.0
	MinutesMax = 120.0

	sampleStep = 1.0
)

// Term names.
const (
	Young  = "young"
	Adult  = "adult"
	Senior = "senior"

	Low    = "low"
	Normal = "normal"
	High   = "high"

	Moderate = "moderate"
)

// Profile selects the break points of the normal BMI term. The historical
// engine definition peaks at a single point; the widened reading is the
// one the membership plots were drawn with.
type Profile string

const (
	// ProfileReference uses normal = (18.5, 24.9, 24.9).
	ProfileReference Profile = "reference"
	// ProfileWidened uses normal = (18.5, 25, 30).
	ProfileWidened Profile = "widened"
)

// ParseProfile maps a config value to a Profile.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProfileReference:
		return ProfileReference, nil
	case ProfileWidened:
		return ProfileWidened, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownProfile, s)
	}
}

func (p Profile) normalBMI() (fuzzy.Triangle, error) {
	switch p {
	case ProfileReference:
		return fuzzy.NewTriangle(18.5, 24.9, 24.9)
	case ProfileWidened:
		return fuzzy.NewTriangle(18.5, 25, 30)
	default:
		return fuzzy.Triangle{}, fmt.Errorf("%w: %s", ErrUnknownProfile, p)
	}
}

// ruleTable lists (age, bmi) -> minutes row by row.
var ruleTable = []struct {
	age, bmi, minutes string
}{
	{Young, Low, Moderate},
	{Young, Normal, High},
	{Young, High, Moderate},
	{Adult, Low, Moderate},
	{Adult, Normal, Moderate},
	{Adult, High, Low},
	{Senior, Low, Low},
	{Senior, Normal, Low},
	{Senior, High, Low},
}

// Variables builds the three linguistic variables for profile.
func Variables(profile Profile) (age, bmi, minutes *fuzzy.Variable, err error) {
	normal, err := profile.normalBMI()
	if err != nil {
		return nil, nil, nil, err
	}

	ageDomain, err := fuzzy.NewDomain(AgeMin, AgeMax, sampleStep)
	if err != nil {
		return nil, nil, nil, err
	}
	bmiDomain, err := fuzzy.NewDomain(BMIMin, BMIMax, sampleStep)
	if err != nil {
		return nil, nil, nil, err
	}
	minutesDomain, err := fuzzy.NewDomain(MinutesMin, MinutesMax, sampleStep)
	if err != nil {
		return nil, nil, nil, err
	}

	age, err = fuzzy.NewVariable(VarAge, ageDomain,
		fuzzy.Term{Name: Young, MF: fuzzy.MustTriangle(0, 0, 30)},
		fuzzy.Term{Name: Adult, MF: fuzzy.MustTriangle(20, 50, 80)},
		fuzzy.Term{Name: Senior, MF: fuzzy.MustTriangle(60, 100, 100)},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	bmi, err = fuzzy.NewVariable(VarBMI, bmiDomain,
		fuzzy.Term{Name: Low, MF: fuzzy.MustTriangle(10, 10, 18.5)},
		fuzzy.Term{Name: Normal, MF: normal},
		fuzzy.Term{Name: High, MF: fuzzy.MustTriangle(25, 40, 40)},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	minutes, err = fuzzy.NewVariable(VarMinutes, minutesDomain,
		fuzzy.Term{Name: Low, MF: fuzzy.MustTriangle(0, 0, 30)},
		fuzzy.Term{Name: Moderate, MF: fuzzy.MustTriangle(20, 60, 100)},
		fuzzy.Term{Name: High, MF: fuzzy.MustTriangle(80, 120, 120)},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return age, bmi, minutes, nil
}

// Rules returns the nine-rule base in table order.
func Rules() []fuzzy.Rule {
	rules := make([]fuzzy.Rule, 0, len(ruleTable))
	for _, r := range ruleTable {
		rules = append(rules, fuzzy.NewRule(
			fuzzy.And(fuzzy.Is(VarAge, r.age), fuzzy.Is(VarBMI, r.bmi)),
			r.minutes,
		))
	}
	return rules
}

// NewEngine builds the exercise inference engine for profile.
func NewEngine(profile Profile, opts ...fuzzy.Option) (*fuzzy.Engine, error) {
	age, bmi, minutes, err := Variables(profile)
	if err != nil {
		return nil, fmt.Errorf("build variables: %w", err)
	}
	return fuzzy.NewEngine([]*fuzzy.Variable{age, bmi}, minutes, Rules(), opts...)
}

// Inputs keys a crisp (age, bmi) pair by variable name.
func Inputs(age, bmi float64) map[string]float64 {
	return map[string]float64{VarAge: age, VarBMI: bmi}
}

// Evaluate returns the recommended minutes for (age, bmi).
func Evaluate(e *fuzzy.Engine, age, bmi float64) (float64, error) {
	return e.Evaluate(Inputs(age, bmi))
}
