package exercise

import "errors"

// Sentinel errors for input validation and profile selection.
var (
	ErrAgeOutOfRange  = errors.New("age out of range")
	ErrBMIOutOfRange  = errors.New("bmi out of range")
	ErrNotANumber     = errors.New("input is not a finite number")
	ErrUnknownProfile = errors.New("unknown bmi profile")
	ErrBodyMeasures   = errors.New("implausible body measures")
)
