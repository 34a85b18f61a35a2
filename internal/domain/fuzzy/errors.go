package fuzzy

import "errors"

// Sentinel error kinds for the inference engine. Construction errors abort
// engine creation; ErrDegenerateAggregate is the only evaluation-time outcome
// callers must branch on.
var (
	ErrInvalidShape        = errors.New("invalid membership shape")
	ErrInvalidDomain       = errors.New("invalid domain")
	ErrInvalidVariable     = errors.New("invalid linguistic variable")
	ErrDuplicateTerm       = errors.New("duplicate term")
	ErrUnknownTerm         = errors.New("unknown term")
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrInvalidRule         = errors.New("invalid rule")
	ErrMissingInput        = errors.New("missing input")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDegenerateAggregate = errors.New("aggregated output set is empty")
)
