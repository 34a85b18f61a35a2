// Package plot renders the membership functions of a linguistic variable.
package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	"github.com/okian/fitfuzz/pkg/metrics"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

type options struct {
	width, height vg.Length
	title         string
}

// Option customizes a rendering.
type Option func(*options)

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithTitle overrides the default title, which is the variable name.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// ContentType maps a format to its MIME type.
func ContentType(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return "image/png", nil
	case FormatSVG:
		return "image/svg+xml", nil
	case FormatPDF:
		return "application/pdf", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// New builds the plot of v with one line per term.
func New(v *fuzzy.Variable, opts ...Option) (*plot.Plot, error) {
	if v == nil {
		return nil, ErrNilVariable
	}
	o := options{title: v.Name()}
	for _, opt := range opts {
		opt(&o)
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = v.Name()
	p.Y.Label.Text = "membership"
	p.X.Min, p.X.Max = v.Domain().Min(), v.Domain().Max()
	p.Y.Min, p.Y.Max = 0, 1.05
	p.Add(plotter.NewGrid())

	for i, term := range v.Terms() {
		curve, err := v.Curve(term)
		if err != nil {
			return nil, err
		}
		xys := make(plotter.XYs, len(curve))
		for j, pt := range curve {
			xys[j].X, xys[j].Y = pt.X, pt.Y
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("term %s: %w", term, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(term, line)
	}
	p.Legend.Top = true
	return p, nil
}

// Render writes the plot of v to w in format.
func Render(w io.Writer, v *fuzzy.Variable, format string, opts ...Option) error {
	format = strings.ToLower(format)
	if _, err := ContentType(format); err != nil {
		return err
	}
	p, err := New(v, opts...)
	if err != nil {
		return err
	}
	o := options{width: 6 * vg.Inch, height: 4 * vg.Inch}
	for _, opt := range opts {
		opt(&o)
	}
	wt, err := p.WriterTo(o.width, o.height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", v.Name(), err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", v.Name(), err)
	}
	metrics.RecordPlotRender(v.Name())
	return nil
}

// RenderFile writes the plot of v to path; the extension selects the format.
func RenderFile(path string, v *fuzzy.Variable, opts ...Option) (err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if _, err := ContentType(format); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Render(f, v, format, opts...)
}

// WriteAll renders every variable into dir as <name>.png and returns the
// written paths.
func WriteAll(dir string, vars ...*fuzzy.Variable) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(vars))
	for _, v := range vars {
		if v == nil {
			return paths, ErrNilVariable
		}
		path := filepath.Join(dir, v.Name()+"."+FormatPNG)
		if err := RenderFile(path, v); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
