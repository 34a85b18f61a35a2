package exercise_test

import (
	"errors"
	"testing"

	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	. "github.com/smartystreets/goconvey/convey"
)

func mustEngine(p exercise.Profile) *fuzzy.Engine {
	e, err := exercise.NewEngine(p)
	if err != nil {
		panic(err)
	}
	return e
}

func TestKnowledgeBase_Shape(t *testing.T) {
	Convey("Given the reference knowledge base", t, func() {
		age, bmi, minutes, err := exercise.Variables(exercise.ProfileReference)
		So(err, ShouldBeNil)

		Convey("Then the variables carry the documented domains and terms", func() {
			So(age.Terms(), ShouldResemble, []string{"young", "adult", "senior"})
			So(bmi.Terms(), ShouldResemble, []string{"low", "normal", "high"})
			So(minutes.Terms(), ShouldResemble, []string{"low", "moderate", "high"})
			So(age.Domain().Len(), ShouldEqual, 101)
			So(bmi.Domain().Len(), ShouldEqual, 31)
			So(minutes.Domain().Len(), ShouldEqual, 121)
		})

		Convey("Then the normal BMI term is the point-peak reading", func() {
			mf, err := bmi.MembershipFunction("normal")
			So(err, ShouldBeNil)
			a, b, c := mf.(fuzzy.Triangle).Points()
			So([]float64{a, b, c}, ShouldResemble, []float64{18.5, 24.9, 24.9})
		})

		Convey("Then the rule base reproduces the age x bmi table", func() {
			rules := exercise.Rules()
			So(len(rules), ShouldEqual, 9)
			got := make([]string, len(rules))
			for i, r := range rules {
				got[i] = r.String()
			}
			So(got, ShouldResemble, []string{
				"if (age is young and bmi is low) then moderate",
				"if (age is young and bmi is normal) then high",
				"if (age is young and bmi is high) then moderate",
				"if (age is adult and bmi is low) then moderate",
				"if (age is adult and bmi is normal) then moderate",
				"if (age is adult and bmi is high) then low",
				"if (age is senior and bmi is low) then low",
				"if (age is senior and bmi is normal) then low",
				"if (age is senior and bmi is high) then low",
			})
		})
	})

	Convey("Given the widened profile", t, func() {
		_, bmi, _, err := exercise.Variables(exercise.ProfileWidened)
		So(err, ShouldBeNil)
		mf, _ := bmi.MembershipFunction("normal")
		a, b, c := mf.(fuzzy.Triangle).Points()
		So([]float64{a, b, c}, ShouldResemble, []float64{18.5, 25.0, 30.0})
	})

	Convey("Given profile names", t, func() {
		p, err := exercise.ParseProfile("")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, exercise.ProfileReference)

		p, err = exercise.ParseProfile(" Widened ")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, exercise.ProfileWidened)

		_, err = exercise.ParseProfile("fixed")
		So(errors.Is(err, exercise.ErrUnknownProfile), ShouldBeTrue)

		_, err = exercise.NewEngine(exercise.Profile("fixed"))
		So(errors.Is(err, exercise.ErrUnknownProfile), ShouldBeTrue)
	})
}

func TestKnowledgeBase_Scenarios(t *testing.T) {
	Convey("Given the reference engine", t, func() {
		e := mustEngine(exercise.ProfileReference)

		Convey("When a young person with low BMI asks (10, 15)", func() {
			v, err := exercise.Evaluate(e, 10, 15)

			Convey("Then only (young, low) fires and the moderate centroid is returned", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 60.0, 1e-9)
			})
		})

		Convey("When an older person with high BMI asks (70, 30)", func() {
			v, err := exercise.Evaluate(e, 70, 30)

			Convey("Then the result sits in the low band", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 12.411764705882, 1e-9)
				So(v, ShouldBeLessThan, 30.0)
			})
		})

		Convey("When an adult sits exactly on the normal peak (50, 24.9)", func() {
			v, err := exercise.Evaluate(e, 50, 24.9)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 60.0, 1e-9)
		})

		Convey("When the regression baseline (0, 10) is evaluated", func() {
			v, err := exercise.Evaluate(e, 0, 10)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 60.0, 1e-9)
		})

		Convey("When young and adult overlap at (25, 20)", func() {
			v, err := exercise.Evaluate(e, 25, 20)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 71.905815748842, 1e-9)
		})

		Convey("When a young person with normal BMI asks (20, 22)", func() {
			v, err := exercise.Evaluate(e, 20, 22)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 103.368070953437, 1e-9)
		})

		Convey("When BMI falls in the gap between normal and high (50, 25)", func() {
			_, err := exercise.Evaluate(e, 50, 25)

			Convey("Then no rule fires", func() {
				So(errors.Is(err, fuzzy.ErrDegenerateAggregate), ShouldBeTrue)
			})
		})

		Convey("When BMI sits on the low/normal seam (50, 18.5)", func() {
			_, err := exercise.Evaluate(e, 50, 18.5)
			So(errors.Is(err, fuzzy.ErrDegenerateAggregate), ShouldBeTrue)
		})
	})

	Convey("Given the widened engine", t, func() {
		e := mustEngine(exercise.ProfileWidened)

		Convey("Then (50, 25) becomes a moderate recommendation", func() {
			v, err := exercise.Evaluate(e, 50, 25)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 60.0, 1e-9)
		})

		Convey("Then (20, 26) keeps part of the high band", func() {
			v, err := exercise.Evaluate(e, 20, 26)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 89.752864157119, 1e-9)
		})

		Convey("Then (18.5 seam) still yields nothing", func() {
			_, err := exercise.Evaluate(e, 50, 18.5)
			So(errors.Is(err, fuzzy.ErrDegenerateAggregate), ShouldBeTrue)
		})
	})

	Convey("Given the reference engine at (20, 26)", t, func() {
		v, err := exercise.Evaluate(mustEngine(exercise.ProfileReference), 20, 26)
		So(err, ShouldBeNil)
		So(v, ShouldAlmostEqual, 60.0, 1e-9)
	})
}

func TestKnowledgeBase_Properties(t *testing.T) {
	Convey("Given the reference engine", t, func() {
		e := mustEngine(exercise.ProfileReference)

		Convey("Then repeated evaluations are bit-identical", func() {
			for age := 0.0; age <= 100; age += 7 {
				for bmi := 10.0; bmi <= 40; bmi += 3.3 {
					a, errA := exercise.Evaluate(e, age, bmi)
					b, errB := exercise.Evaluate(e, age, bmi)
					So(a, ShouldEqual, b)
					So(errors.Is(errA, fuzzy.ErrDegenerateAggregate), ShouldEqual, errors.Is(errB, fuzzy.ErrDegenerateAggregate))
				}
			}
		})

		Convey("Then every non-degenerate result lies in [0, 120]", func() {
			for age := 0.0; age <= 100; age += 2.5 {
				for bmi := 10.0; bmi <= 40; bmi += 0.5 {
					v, err := exercise.Evaluate(e, age, bmi)
					if errors.Is(err, fuzzy.ErrDegenerateAggregate) {
						continue
					}
					So(err, ShouldBeNil)
					So(v, ShouldBeBetweenOrEqual, 0.0, 120.0)
				}
			}
		})

		Convey("Then a young person never exceeds the moderate band once BMI is high", func() {
			for _, age := range []float64{0, 5, 10, 15, 20} {
				for bmi := 25.5; bmi <= 40; bmi += 0.5 {
					v, err := exercise.Evaluate(e, age, bmi)
					So(err, ShouldBeNil)
					So(v, ShouldBeLessThanOrEqualTo, 60.0+1e-9)
				}
			}
		})

		Convey("Then a fresh engine agrees with a shared one", func() {
			other := mustEngine(exercise.ProfileReference)
			for _, in := range [][2]float64{{10, 15}, {70, 30}, {33, 21}, {88, 39}} {
				a, _ := exercise.Evaluate(e, in[0], in[1])
				b, _ := exercise.Evaluate(other, in[0], in[1])
				So(a, ShouldEqual, b)
			}
		})
	})
}
