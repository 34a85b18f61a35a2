package plot_test

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/plot"
	"gonum.org/v1/plot/vg"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRender(t *testing.T) {
	Convey("Given the reference variables", t, func() {
		age, bmi, minutes, err := exercise.Variables(exercise.ProfileReference)
		So(err, ShouldBeNil)

		Convey("When the bmi variable is rendered as PNG", func() {
			var buf bytes.Buffer
			err := plot.Render(&buf, bmi, "PNG", plot.WithSize(4*vg.Inch, 3*vg.Inch))

			Convey("Then a decodable image of the requested size is produced", func() {
				So(err, ShouldBeNil)
				cfg, err := png.DecodeConfig(&buf)
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldBeGreaterThan, 0)
				So(cfg.Height, ShouldBeLessThan, cfg.Width)
			})
		})

		Convey("When rendered as SVG", func() {
			var buf bytes.Buffer
			So(plot.Render(&buf, minutes, plot.FormatSVG, plot.WithTitle("daily minutes")), ShouldBeNil)

			Convey("Then the legend names every term", func() {
				out := buf.String()
				So(strings.Contains(out, "<svg"), ShouldBeTrue)
				So(strings.Contains(out, "daily minutes"), ShouldBeTrue)
				for _, term := range minutes.Terms() {
					So(strings.Contains(out, term), ShouldBeTrue)
				}
			})
		})

		Convey("When an unknown format is requested", func() {
			err := plot.Render(&bytes.Buffer{}, age, "gif")
			So(errors.Is(err, plot.ErrUnsupportedFormat), ShouldBeTrue)
		})

		Convey("When the variable is nil", func() {
			err := plot.Render(&bytes.Buffer{}, nil, "png")
			So(errors.Is(err, plot.ErrNilVariable), ShouldBeTrue)
		})

		Convey("When every variable is written to a directory", func() {
			dir := filepath.Join(t.TempDir(), "plots")
			paths, err := plot.WriteAll(dir, age, bmi, minutes)

			Convey("Then one PNG per variable exists", func() {
				So(err, ShouldBeNil)
				So(len(paths), ShouldEqual, 3)
				for _, name := range []string{"age.png", "bmi.png", "minutes.png"} {
					info, err := os.Stat(filepath.Join(dir, name))
					So(err, ShouldBeNil)
					So(info.Size(), ShouldBeGreaterThan, 0)
				}
			})
		})

		Convey("When a file extension is not a known format", func() {
			err := plot.RenderFile(filepath.Join(t.TempDir(), "age.bmp"), age)
			So(errors.Is(err, plot.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})

	Convey("Given content types", t, func() {
		ct, err := plot.ContentType("png")
		So(err, ShouldBeNil)
		So(ct, ShouldEqual, "image/png")
		ct, _ = plot.ContentType("svg")
		So(ct, ShouldEqual, "image/svg+xml")
		_, err = plot.ContentType("jpeg2000")
		So(errors.Is(err, plot.ErrUnsupportedFormat), ShouldBeTrue)
	})
}
