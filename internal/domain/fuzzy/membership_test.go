package fuzzy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTriangle_New(t *testing.T) {
	Convey("Given triangle break points", t, func() {
		Convey("When they are ordered", func() {
			tri, err := fuzzy.NewTriangle(20, 50, 80)

			Convey("Then the shape is built", func() {
				So(err, ShouldBeNil)
				a, b, c := tri.Points()
				So([]float64{a, b, c}, ShouldResemble, []float64{20, 50, 80})
			})
		})

		Convey("When a > b", func() {
			_, err := fuzzy.NewTriangle(30, 20, 40)

			Convey("Then it fails with ErrInvalidShape", func() {
				So(errors.Is(err, fuzzy.ErrInvalidShape), ShouldBeTrue)
			})
		})

		Convey("When b > c", func() {
			_, err := fuzzy.NewTriangle(0, 50, 40)
			So(errors.Is(err, fuzzy.ErrInvalidShape), ShouldBeTrue)
		})

		Convey("When a break point is not finite", func() {
			_, err := fuzzy.NewTriangle(math.NaN(), 1, 2)
			So(errors.Is(err, fuzzy.ErrInvalidShape), ShouldBeTrue)

			_, err = fuzzy.NewTriangle(0, 1, math.Inf(1))
			So(errors.Is(err, fuzzy.ErrInvalidShape), ShouldBeTrue)
		})

		Convey("When MustTriangle gets a malformed shape", func() {
			So(func() { fuzzy.MustTriangle(3, 2, 1) }, ShouldPanic)
		})
	})
}

func TestTriangle_Degree(t *testing.T) {
	Convey("Given the adult triangle (20, 50, 80)", t, func() {
		tri := fuzzy.MustTriangle(20, 50, 80)

		Convey("Then the peak is exactly 1", func() {
			So(tri.Degree(50), ShouldEqual, 1.0)
		})

		Convey("Then the edges and the outside are 0", func() {
			for _, x := range []float64{-100, 0, 19.999, 20, 80, 80.001, 1e9} {
				So(tri.Degree(x), ShouldEqual, 0.0)
			}
		})

		Convey("Then the slopes are linear", func() {
			So(tri.Degree(35), ShouldAlmostEqual, 0.5, 1e-12)
			So(tri.Degree(65), ShouldAlmostEqual, 0.5, 1e-12)
			So(tri.Degree(26), ShouldAlmostEqual, 0.2, 1e-12)
		})

		Convey("Then NaN maps to 0", func() {
			So(tri.Degree(math.NaN()), ShouldEqual, 0.0)
		})

		Convey("Then every degree stays in [0, 1]", func() {
			for x := -10.0; x <= 110; x += 0.25 {
				d := tri.Degree(x)
				So(d, ShouldBeGreaterThanOrEqualTo, 0.0)
				So(d, ShouldBeLessThanOrEqualTo, 1.0)
			}
		})
	})

	Convey("Given a falling ramp (0, 0, 30)", t, func() {
		tri := fuzzy.MustTriangle(0, 0, 30)

		Convey("Then it is 1 at the shared corner and falls to 0 at c", func() {
			So(tri.Degree(0), ShouldEqual, 1.0)
			So(tri.Degree(15), ShouldAlmostEqual, 0.5, 1e-12)
			So(tri.Degree(30), ShouldEqual, 0.0)
			So(tri.Degree(-1), ShouldEqual, 0.0)
		})
	})

	Convey("Given a rising ramp (60, 100, 100)", t, func() {
		tri := fuzzy.MustTriangle(60, 100, 100)

		Convey("Then it rises from a and is 1 at the shared corner", func() {
			So(tri.Degree(60), ShouldEqual, 0.0)
			So(tri.Degree(80), ShouldAlmostEqual, 0.5, 1e-12)
			So(tri.Degree(100), ShouldEqual, 1.0)
			So(tri.Degree(100.5), ShouldEqual, 0.0)
		})
	})

	Convey("Given the point-peak normal BMI term (18.5, 24.9, 24.9)", t, func() {
		tri := fuzzy.MustTriangle(18.5, 24.9, 24.9)

		Convey("Then it is nonzero only on the rising edge up to the peak", func() {
			So(tri.Degree(24.9), ShouldEqual, 1.0)
			So(tri.Degree(21.7), ShouldAlmostEqual, 0.5, 1e-9)
			So(tri.Degree(24.95), ShouldEqual, 0.0)
			So(tri.Degree(25), ShouldEqual, 0.0)
		})
	})

	Convey("Given a singleton (5, 5, 5)", t, func() {
		tri := fuzzy.MustTriangle(5, 5, 5)

		Convey("Then only the point itself belongs", func() {
			So(tri.Degree(5), ShouldEqual, 1.0)
			So(tri.Degree(4.999), ShouldEqual, 0.0)
			So(tri.Degree(5.001), ShouldEqual, 0.0)
		})
	})
}
