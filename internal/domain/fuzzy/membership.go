package fuzzy

import (
	"fmt"
	"math"
)

// MembershipFunction maps a crisp value to a degree in [0, 1].
type MembershipFunction interface {
	Degree(x float64) float64
}

// Triangle is a triangular fuzzy set with break points a <= b <= c.
// a == b yields a falling ramp, b == c a rising ramp.
type Triangle struct {
	a, b, c float64
}

// NewTriangle validates the break points and returns the shape.
func NewTriangle(a, b, c float64) (Triangle, error) {
	for _, v := range []float64{a, b, c} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Triangle{}, fmt.Errorf("%w: non-finite break point", ErrInvalidShape)
		}
	}
	if a > b || b > c {
		return Triangle{}, fmt.Errorf("%w: want a <= b <= c, got (%v, %v, %v)", ErrInvalidShape, a, b, c)
	}
	return Triangle{a: a, b: b, c: c}, nil
}

// MustTriangle is NewTriangle for package-level fixtures; it panics on error.
func MustTriangle(a, b, c float64) Triangle {
	t, err := NewTriangle(a, b, c)
	if err != nil {
		panic(err)
	}
	return t
}

// Points returns the break points.
func (t Triangle) Points() (a, b, c float64) {
	return t.a, t.b, t.c
}

// Degree evaluates the triangle at x. It is total: NaN maps to 0.
func (t Triangle) Degree(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x == t.b:
		return 1
	case x <= t.a || x >= t.c:
		return 0
	case x < t.b:
		return clamp01((x - t.a) / (t.b - t.a))
	default:
		return clamp01((t.c - x) / (t.c - t.b))
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
