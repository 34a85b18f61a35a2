package fuzzy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Activation reports how strongly one rule fired.
type Activation struct {
	Rule       string  `json:"rule"`
	Consequent string  `json:"consequent"`
	Strength   float64 `json:"strength"`
}

// Inference is the full trace of one evaluation.
type Inference struct {
	Value       float64      `json:"value"`
	Activations []Activation `json:"activations"`
	Aggregate   []Point      `json:"aggregate"`
}

// Engine evaluates a fixed rule base. All state is fixed by NewEngine.
type Engine struct {
	inputs      map[string]*Variable
	inputOrder  []string
	output      *Variable
	rules       []Rule
	implication Implication

	// ys holds the output samples; consequents caches each output term
	// sampled over ys.
	ys          []float64
	consequents map[string][]float64
}

// NewEngine validates the variables and rules and builds an engine. The
// returned engine is never partially initialized: any error yields nil.
func NewEngine(inputs []*Variable, output *Variable, rules []Rule, opts ...Option) (*Engine, error) {
	if output == nil {
		return nil, fmt.Errorf("%w: nil output variable", ErrInvalidVariable)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no input variables", ErrInvalidVariable)
	}

	e := &Engine{
		inputs:      make(map[string]*Variable, len(inputs)),
		inputOrder:  make([]string, 0, len(inputs)),
		output:      output,
		implication: ImplicationClip,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, v := range inputs {
		if v == nil {
			return nil, fmt.Errorf("%w: nil input variable", ErrInvalidVariable)
		}
		if _, dup := e.inputs[v.Name()]; dup || v.Name() == output.Name() {
			return nil, fmt.Errorf("%w: duplicate variable %s", ErrInvalidVariable, v.Name())
		}
		e.inputs[v.Name()] = v
		e.inputOrder = append(e.inputOrder, v.Name())
	}

	e.rules = make([]Rule, len(rules))
	copy(e.rules, rules)
	for _, r := range e.rules {
		if err := r.validate(e.inputs, output); err != nil {
			return nil, err
		}
	}

	e.ys = output.Domain().Samples()
	e.consequents = make(map[string][]float64, len(output.order))
	for _, term := range output.order {
		mf := output.terms[term]
		curve := make([]float64, len(e.ys))
		for i, y := range e.ys {
			curve[i] = mf.Degree(y)
		}
		e.consequents[term] = curve
	}

	return e, nil
}

// Inputs returns the input variables in declaration order.
func (e *Engine) Inputs() []*Variable {
	out := make([]*Variable, len(e.inputOrder))
	for i, name := range e.inputOrder {
		out[i] = e.inputs[name]
	}
	return out
}

// Output returns the output variable.
func (e *Engine) Output() *Variable { return e.output }

// Rules returns a copy of the rule base.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Implication returns the configured implication operator.
func (e *Engine) Implication() Implication { return e.implication }

// Evaluate returns the centroid of the aggregated output set for the given
// crisp inputs, keyed by input variable name. It returns
// ErrDegenerateAggregate when no rule fires.
func (e *Engine) Evaluate(inputs map[string]float64) (float64, error) {
	if err := e.checkInputs(inputs); err != nil {
		return 0, err
	}
	agg := make([]float64, len(e.ys))
	for _, r := range e.rules {
		e.accumulate(agg, r, r.strength(e.inputs, inputs))
	}
	return e.centroid(agg)
}

// Infer is Evaluate plus the per-rule firing strengths and the aggregated
// set. On a degenerate aggregate the trace is returned alongside
// ErrDegenerateAggregate.
func (e *Engine) Infer(inputs map[string]float64) (Inference, error) {
	if err := e.checkInputs(inputs); err != nil {
		return Inference{}, err
	}

	agg := make([]float64, len(e.ys))
	activations := make([]Activation, len(e.rules))
	for i, r := range e.rules {
		s := r.strength(e.inputs, inputs)
		activations[i] = Activation{Rule: r.String(), Consequent: r.consequent, Strength: s}
		e.accumulate(agg, r, s)
	}

	points := make([]Point, len(e.ys))
	for i, y := range e.ys {
		points[i] = Point{X: y, Y: agg[i]}
	}

	value, err := e.centroid(agg)
	return Inference{Value: value, Activations: activations, Aggregate: points}, err
}

func (e *Engine) checkInputs(inputs map[string]float64) error {
	for _, name := range e.inputOrder {
		x, ok := inputs[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingInput, name)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidInput, name)
		}
	}
	for name := range inputs {
		if _, ok := e.inputs[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
		}
	}
	return nil
}

// accumulate folds one rule's implied set into agg with pointwise max.
func (e *Engine) accumulate(agg []float64, r Rule, strength float64) {
	if strength <= 0 {
		return
	}
	curve := e.consequents[r.consequent]
	for i, mu := range curve {
		var v float64
		if e.implication == ImplicationScale {
			v = strength * mu
		} else {
			v = math.Min(strength, mu)
		}
		if v > agg[i] {
			agg[i] = v
		}
	}
}

func (e *Engine) centroid(agg []float64) (float64, error) {
	mass := floats.Sum(agg)
	if mass <= 0 {
		return 0, ErrDegenerateAggregate
	}
	c := floats.Dot(e.ys, agg) / mass
	d := e.output.Domain()
	return math.Max(d.Min(), math.Min(d.Max(), c)), nil
}
