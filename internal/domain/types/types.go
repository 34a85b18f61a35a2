// Package types contains read shapes shared by the service and its adapters.
package types

import "github.com/okian/fitfuzz/internal/domain/fuzzy"

// Recommendation is the result of one (age, bmi) request.
type Recommendation struct {
	Status      string  `json:"status"`
	Age         float64 `json:"age"`
	BMI         float64 `json:"bmi"`
	Minutes     float64 `json:"minutes"`
	Profile     string  `json:"profile"`
	Implication string  `json:"implication"`
	Cached      bool    `json:"cached"`

	// Populated only when the caller asks for an explanation.
	Activations []fuzzy.Activation `json:"activations,omitempty"`
	Aggregate   []fuzzy.Point      `json:"aggregate,omitempty"`
}

// VariableView is a read-only snapshot of a linguistic variable.
type VariableView struct {
	Name  string     `json:"name"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Terms []TermView `json:"terms"`
}

// TermView describes one term and its sampled membership curve.
type TermView struct {
	Name   string        `json:"name"`
	Shape  string        `json:"shape"`
	Params []float64     `json:"params"`
	Curve  []fuzzy.Point `json:"curve"`
}

// NewVariableView snapshots v.
func NewVariableView(v *fuzzy.Variable) (VariableView, error) {
	d := v.Domain()
	view := VariableView{Name: v.Name(), Min: d.Min(), Max: d.Max(), Step: d.Step()}
	for _, name := range v.Terms() {
		mf, err := v.MembershipFunction(name)
		if err != nil {
			return VariableView{}, err
		}
		curve, err := v.Curve(name)
		if err != nil {
			return VariableView{}, err
		}
		tv := TermView{Name: name, Shape: "custom", Curve: curve}
		if tri, ok := mf.(fuzzy.Triangle); ok {
			a, b, c := tri.Points()
			tv.Shape = "triangle"
			tv.Params = []float64{a, b, c}
		}
		view.Terms = append(view.Terms, tv)
	}
	return view, nil
}
