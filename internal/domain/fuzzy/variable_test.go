package fuzzy_test

import (
	"errors"
	"testing"

	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	. "github.com/smartystreets/goconvey/convey"
)

func mustDomain(min, max, step float64) fuzzy.Domain {
	d, err := fuzzy.NewDomain(min, max, step)
	if err != nil {
		panic(err)
	}
	return d
}

func TestVariable(t *testing.T) {
	Convey("Given an age variable with three terms", t, func() {
		v, err := fuzzy.NewVariable("age", mustDomain(0, 100, 1),
			fuzzy.Term{Name: "young", MF: fuzzy.MustTriangle(0, 0, 30)},
			fuzzy.Term{Name: "adult", MF: fuzzy.MustTriangle(20, 50, 80)},
			fuzzy.Term{Name: "senior", MF: fuzzy.MustTriangle(60, 100, 100)},
		)
		So(err, ShouldBeNil)

		Convey("Then terms keep declaration order", func() {
			So(v.Name(), ShouldEqual, "age")
			So(v.Terms(), ShouldResemble, []string{"young", "adult", "senior"})
		})

		Convey("Then Terms returns a copy", func() {
			terms := v.Terms()
			terms[0] = "mutated"
			So(v.Terms()[0], ShouldEqual, "young")
		})

		Convey("When querying a registered term", func() {
			d, err := v.Membership("adult", 35)
			So(err, ShouldBeNil)
			So(d, ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("When querying an unknown term", func() {
			_, err := v.Membership("teen", 15)
			So(errors.Is(err, fuzzy.ErrUnknownTerm), ShouldBeTrue)

			_, err = v.Curve("teen")
			So(errors.Is(err, fuzzy.ErrUnknownTerm), ShouldBeTrue)
		})

		Convey("When sampling a curve", func() {
			curve, err := v.Curve("senior")
			So(err, ShouldBeNil)

			Convey("Then there is one point per domain sample", func() {
				So(len(curve), ShouldEqual, 101)
				So(curve[0], ShouldResemble, fuzzy.Point{X: 0, Y: 0})
				So(curve[80].Y, ShouldAlmostEqual, 0.5, 1e-12)
				So(curve[100], ShouldResemble, fuzzy.Point{X: 100, Y: 1})
			})
		})
	})

	Convey("Given malformed variable definitions", t, func() {
		d := mustDomain(0, 10, 1)
		tri := fuzzy.MustTriangle(0, 5, 10)

		Convey("Then an empty name is rejected", func() {
			_, err := fuzzy.NewVariable(" ", d, fuzzy.Term{Name: "a", MF: tri})
			So(errors.Is(err, fuzzy.ErrInvalidVariable), ShouldBeTrue)
		})

		Convey("Then a variable without terms is rejected", func() {
			_, err := fuzzy.NewVariable("x", d)
			So(errors.Is(err, fuzzy.ErrInvalidVariable), ShouldBeTrue)
		})

		Convey("Then a zero domain is rejected", func() {
			_, err := fuzzy.NewVariable("x", fuzzy.Domain{}, fuzzy.Term{Name: "a", MF: tri})
			So(errors.Is(err, fuzzy.ErrInvalidVariable), ShouldBeTrue)
		})

		Convey("Then a nil membership function is rejected", func() {
			_, err := fuzzy.NewVariable("x", d, fuzzy.Term{Name: "a"})
			So(errors.Is(err, fuzzy.ErrInvalidVariable), ShouldBeTrue)
		})

		Convey("Then duplicate term names are rejected", func() {
			_, err := fuzzy.NewVariable("x", d,
				fuzzy.Term{Name: "a", MF: tri},
				fuzzy.Term{Name: "a", MF: tri},
			)
			So(errors.Is(err, fuzzy.ErrDuplicateTerm), ShouldBeTrue)
		})
	})
}
