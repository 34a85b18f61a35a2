package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	model "github.com/okian/fitfuzz/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewActivity(t *testing.T) {
	convey.Convey("Given a successful recommendation", t, func() {
		before := time.Now().UTC()
		a := model.NewActivity(25, 20, 71.9, model.StatusOK, "reference")

		convey.Convey("Then the entry carries the inputs and a fresh id", func() {
			_, err := uuid.Parse(a.ID)
			convey.So(err, convey.ShouldBeNil)
			convey.So(a.Age, convey.ShouldEqual, 25)
			convey.So(a.BMI, convey.ShouldEqual, 20)
			convey.So(a.Minutes, convey.ShouldEqual, 71.9)
			convey.So(a.Status, convey.ShouldEqual, model.StatusOK)
			convey.So(a.Profile, convey.ShouldEqual, "reference")
			convey.So(a.TS, convey.ShouldHappenOnOrAfter, before)
			convey.So(a.TS.Location(), convey.ShouldEqual, time.UTC)
		})

		convey.Convey("Then two entries never share an id", func() {
			b := model.NewActivity(25, 20, 71.9, model.StatusOK, "reference")
			convey.So(b.ID, convey.ShouldNotEqual, a.ID)
		})
	})

	convey.Convey("Given a degenerate evaluation", t, func() {
		a := model.NewActivity(50, 25, 42, model.StatusNoRecommendation, "reference")

		convey.Convey("Then minutes are zeroed", func() {
			convey.So(a.Minutes, convey.ShouldEqual, 0)
			convey.So(a.Status, convey.ShouldEqual, model.StatusNoRecommendation)
		})
	})
}
