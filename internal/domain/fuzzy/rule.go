package fuzzy

import (
	"fmt"
	"math"
	"strings"
)

// defaultRuleWeight leaves the firing strength unscaled.
const defaultRuleWeight = 1.0

// Expr is a rule antecedent. Build one with Is, And, Or and Not.
type Expr interface {
	fmt.Stringer

	validate(vars map[string]*Variable) error
	degree(vars map[string]*Variable, in map[string]float64) float64
}

type isExpr struct {
	variable string
	term     string
}

// Is matches when the input named variable belongs to term.
func Is(variable, term string) Expr {
	return isExpr{variable: variable, term: term}
}

func (e isExpr) String() string { return e.variable + " is " + e.term }

func (e isExpr) validate(vars map[string]*Variable) error {
	v, ok := vars[e.variable]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, e.variable)
	}
	if !v.HasTerm(e.term) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownTerm, e.variable, e.term)
	}
	return nil
}

func (e isExpr) degree(vars map[string]*Variable, in map[string]float64) float64 {
	return vars[e.variable].terms[e.term].Degree(in[e.variable])
}

type andExpr []Expr

// And is the fuzzy conjunction (minimum) of its operands.
func And(exprs ...Expr) Expr { return andExpr(append([]Expr(nil), exprs...)) }

func (e andExpr) String() string { return join(e, " and ") }

func (e andExpr) validate(vars map[string]*Variable) error { return validateAll(e, vars) }

func (e andExpr) degree(vars map[string]*Variable, in map[string]float64) float64 {
	d := 1.0
	for _, x := range e {
		d = math.Min(d, x.degree(vars, in))
	}
	return d
}

type orExpr []Expr

// Or is the fuzzy disjunction (maximum) of its operands.
func Or(exprs ...Expr) Expr { return orExpr(append([]Expr(nil), exprs...)) }

func (e orExpr) String() string { return join(e, " or ") }

func (e orExpr) validate(vars map[string]*Variable) error { return validateAll(e, vars) }

func (e orExpr) degree(vars map[string]*Variable, in map[string]float64) float64 {
	d := 0.0
	for _, x := range e {
		d = math.Max(d, x.degree(vars, in))
	}
	return d
}

type notExpr struct{ inner Expr }

// Not is the fuzzy complement (1 - x) of its operand.
func Not(e Expr) Expr { return notExpr{inner: e} }

func (e notExpr) String() string {
	if e.inner == nil {
		return "not <nil>"
	}
	return "not (" + e.inner.String() + ")"
}

func (e notExpr) validate(vars map[string]*Variable) error {
	if e.inner == nil {
		return fmt.Errorf("%w: not without operand", ErrInvalidRule)
	}
	return e.inner.validate(vars)
}

func (e notExpr) degree(vars map[string]*Variable, in map[string]float64) float64 {
	return 1 - e.inner.degree(vars, in)
}

func validateAll(exprs []Expr, vars map[string]*Variable) error {
	if len(exprs) == 0 {
		return fmt.Errorf("%w: empty operand list", ErrInvalidRule)
	}
	for _, x := range exprs {
		if x == nil {
			return fmt.Errorf("%w: nil operand", ErrInvalidRule)
		}
		if err := x.validate(vars); err != nil {
			return err
		}
	}
	return nil
}

func join(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, x := range exprs {
		if x == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = x.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// RuleOption configures a Rule.
type RuleOption func(*Rule)

// WithWeight scales the rule's firing strength. Valid weights lie in [0, 1].
func WithWeight(w float64) RuleOption {
	return func(r *Rule) {
		r.weight = w
	}
}

// Rule pairs an antecedent with a term of the output variable.
type Rule struct {
	antecedent Expr
	consequent string
	weight     float64
}

// NewRule creates a rule. It is validated when handed to NewEngine.
func NewRule(antecedent Expr, consequent string, opts ...RuleOption) Rule {
	r := Rule{
		antecedent: antecedent,
		consequent: consequent,
		weight:     defaultRuleWeight,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Antecedent returns the rule's condition.
func (r Rule) Antecedent() Expr { return r.antecedent }

// Consequent returns the output term the rule activates.
func (r Rule) Consequent() string { return r.consequent }

// Weight returns the implication weight.
func (r Rule) Weight() float64 { return r.weight }

func (r Rule) String() string {
	ant := "<nil>"
	if r.antecedent != nil {
		ant = r.antecedent.String()
	}
	return "if " + ant + " then " + r.consequent
}

// strength is the weighted antecedent degree at the crisp inputs.
func (r Rule) strength(vars map[string]*Variable, in map[string]float64) float64 {
	return r.weight * r.antecedent.degree(vars, in)
}

func (r Rule) validate(vars map[string]*Variable, output *Variable) error {
	if r.antecedent == nil {
		return fmt.Errorf("%w: missing antecedent", ErrInvalidRule)
	}
	if math.IsNaN(r.weight) || r.weight < 0 || r.weight > 1 {
		return fmt.Errorf("%w: weight %v outside [0, 1]", ErrInvalidRule, r.weight)
	}
	if err := r.antecedent.validate(vars); err != nil {
		return fmt.Errorf("rule %q: %w", r.String(), err)
	}
	if !output.HasTerm(r.consequent) {
		return fmt.Errorf("rule %q: %w: %s.%s", r.String(), ErrUnknownTerm, output.Name(), r.consequent)
	}
	return nil
}
