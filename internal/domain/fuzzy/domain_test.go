package fuzzy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDomain_New(t *testing.T) {
	Convey("Given the output domain [0, 120] step 1", t, func() {
		d, err := fuzzy.NewDomain(0, 120, 1)

		Convey("Then it has 121 increasing unique samples", func() {
			So(err, ShouldBeNil)
			So(d.Len(), ShouldEqual, 121)
			s := d.Samples()
			So(s[0], ShouldEqual, 0.0)
			So(s[120], ShouldEqual, 120.0)
			for i := 1; i < len(s); i++ {
				So(s[i], ShouldBeGreaterThan, s[i-1])
			}
		})

		Convey("Then Samples returns a copy", func() {
			s := d.Samples()
			s[0] = 999
			So(d.Samples()[0], ShouldEqual, 0.0)
		})

		Convey("Then bounds are reported", func() {
			So(d.Min(), ShouldEqual, 0.0)
			So(d.Max(), ShouldEqual, 120.0)
			So(d.Step(), ShouldEqual, 1.0)
		})
	})

	Convey("Given a fractional step", t, func() {
		d, err := fuzzy.NewDomain(10, 40, 0.5)
		So(err, ShouldBeNil)
		So(d.Len(), ShouldEqual, 61)
	})

	Convey("Given invalid domains", t, func() {
		cases := []struct {
			min, max, step float64
		}{
			{0, 10, 0},
			{0, 10, -1},
			{10, 10, 1},
			{10, 0, 1},
			{0, 10, 3},
			{0, 10, 20},
			{math.NaN(), 10, 1},
			{0, math.Inf(1), 1},
		}

		Convey("Then each fails with ErrInvalidDomain", func() {
			for _, c := range cases {
				_, err := fuzzy.NewDomain(c.min, c.max, c.step)
				So(errors.Is(err, fuzzy.ErrInvalidDomain), ShouldBeTrue)
			}
		})
	})
}
