package fuzzy

import (
	"fmt"
	"strings"
)

// Term names a fuzzy set of a variable.
type Term struct {
	Name string
	MF   MembershipFunction
}

// Point is one (x, membership) sample of a term curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Variable is a linguistic variable: a named domain plus its terms.
// It has no mutators; the zero value is not usable.
type Variable struct {
	name   string
	domain Domain
	order  []string
	terms  map[string]MembershipFunction
}

// NewVariable builds a variable. Term names must be unique and non-empty.
func NewVariable(name string, domain Domain, terms ...Term) (*Variable, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	if domain.Len() == 0 {
		return nil, fmt.Errorf("%w: %s has no domain", ErrInvalidVariable, name)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: %s has no terms", ErrInvalidVariable, name)
	}

	v := &Variable{
		name:   name,
		domain: domain,
		order:  make([]string, 0, len(terms)),
		terms:  make(map[string]MembershipFunction, len(terms)),
	}
	for _, t := range terms {
		if strings.TrimSpace(t.Name) == "" || t.MF == nil {
			return nil, fmt.Errorf("%w: %s has an empty term", ErrInvalidVariable, name)
		}
		if _, ok := v.terms[t.Name]; ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateTerm, name, t.Name)
		}
		v.terms[t.Name] = t.MF
		v.order = append(v.order, t.Name)
	}
	return v, nil
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Domain returns the sampled domain.
func (v *Variable) Domain() Domain { return v.domain }

// Terms returns the term names in declaration order.
func (v *Variable) Terms() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// HasTerm reports whether term is registered.
func (v *Variable) HasTerm(term string) bool {
	_, ok := v.terms[term]
	return ok
}

// MembershipFunction returns the function registered for term.
func (v *Variable) MembershipFunction(term string) (MembershipFunction, error) {
	mf, ok := v.terms[term]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownTerm, v.name, term)
	}
	return mf, nil
}

// Membership evaluates term at x.
func (v *Variable) Membership(term string, x float64) (float64, error) {
	mf, err := v.MembershipFunction(term)
	if err != nil {
		return 0, err
	}
	return mf.Degree(x), nil
}

// Curve samples term over the variable's domain.
func (v *Variable) Curve(term string) ([]Point, error) {
	mf, err := v.MembershipFunction(term)
	if err != nil {
		return nil, err
	}
	xs := v.domain.samples
	out := make([]Point, len(xs))
	for i, x := range xs {
		out[i] = Point{X: x, Y: mf.Degree(x)}
	}
	return out, nil
}
