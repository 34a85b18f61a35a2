package fuzzy

import (
	"fmt"
	"strings"
)

// Implication selects how a firing strength shapes its consequent set.
type Implication int

const (
	// ImplicationClip limits the consequent at the firing strength (min).
	ImplicationClip Implication = iota
	// ImplicationScale multiplies the consequent by the firing strength.
	ImplicationScale
)

func (i Implication) String() string {
	switch i {
	case ImplicationClip:
		return "clip"
	case ImplicationScale:
		return "scale"
	default:
		return fmt.Sprintf("implication(%d)", int(i))
	}
}

// ParseImplication accepts "clip"/"min" and "scale"/"product" (case-insensitive).
func ParseImplication(s string) (Implication, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clip", "min":
		return ImplicationClip, nil
	case "scale", "product", "prod":
		return ImplicationScale, nil
	default:
		return 0, fmt.Errorf("unknown implication: %s", s)
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithImplication sets the implication operator. Unknown values are ignored.
func WithImplication(i Implication) Option {
	return func(e *Engine) {
		if i == ImplicationClip || i == ImplicationScale {
			e.implication = i
		}
	}
}
