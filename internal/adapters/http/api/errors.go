package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrNoRecommendation = errors.New("no recommendation")
	ErrNotFound         = errors.New("not found")
	ErrLimitExceeded    = errors.New("limit exceeded")
	ErrUnavailable      = errors.New("service unavailable")
	ErrRender           = errors.New("render failed")
)

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with kind, keeping both matchable through errors.Is.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return NewKind(op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap prefixes err with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func errMissing(field string) error {
	return fmt.Errorf("missing %s", field)
}
