// Package visualize renders two-dimensional binary-class data as scatter plots.
package visualize

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

const (
	// DefaultWidth and DefaultHeight size the rendered figure.
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4.5 * vg.Inch

	// DefaultMarkerRadius is the scatter glyph radius.
	DefaultMarkerRadius vg.Length = 3 // points

	// Alpha is the opacity of scatter markers.
	Alpha = 0.6
)

// ClassLabels are the legend entries for label 0 and label 1.
var ClassLabels = [2]string{"Class 0", "Class 1"}

// classColors follow the usual first two categorical plot colors.
var classColors = [2]color.NRGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: alphaByte(Alpha)},
	{R: 0xff, G: 0x7f, B: 0x0e, A: alphaByte(Alpha)},
}

func alphaByte(a float64) uint8 {
	return uint8(a*255 + 0.5)
}

type plotConfig struct {
	title  string
	xLabel string
	yLabel string
	radius vg.Length
}

// PlotOption configures NewScatterPlot.
type PlotOption func(*plotConfig)

// WithTitle sets the figure title.
func WithTitle(title string) PlotOption {
	return func(c *plotConfig) {
		c.title = title
	}
}

// WithAxisLabels sets the x and y axis labels.
func WithAxisLabels(x, y string) PlotOption {
	return func(c *plotConfig) {
		c.xLabel = x
		c.yLabel = y
	}
}

// WithMarkerRadius sets the scatter glyph radius.
func WithMarkerRadius(r vg.Length) PlotOption {
	return func(c *plotConfig) {
		c.radius = r
	}
}

// PartitionByClass splits the rows of X into two point series by label.
// Columns 0 and 1 of X become the point coordinates. Every row lands in
// exactly one series; a label other than 0 or 1 is an error.
func PartitionByClass(X mat.Matrix, y mat.Vector) (class0, class1 plotter.XYs, err error) {
	rows, cols := X.Dims()
	if cols < 2 {
		return nil, nil, errors.NewDimensionError("PartitionByClass", 2, cols, 1)
	}
	if y.Len() != rows {
		return nil, nil, errors.NewDimensionError("PartitionByClass", rows, y.Len(), 0)
	}

	class0 = make(plotter.XYs, 0, rows)
	class1 = make(plotter.XYs, 0, rows)
	for i := 0; i < rows; i++ {
		pt := plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
		switch y.AtVec(i) {
		case 0:
			class0 = append(class0, pt)
		case 1:
			class1 = append(class1, pt)
		default:
			return nil, nil, errors.NewValueError("PartitionByClass",
				fmt.Sprintf("row %d: label %v is not a binary class (0 or 1)", i, y.AtVec(i)))
		}
	}
	return class0, class1, nil
}

// NewScatterPlot builds a figure with one semi-transparent scatter series
// per class and a legend.
func NewScatterPlot(X mat.Matrix, y mat.Vector, opts ...PlotOption) (*plot.Plot, error) {
	c := &plotConfig{
		xLabel: "X1",
		yLabel: "X2",
		radius: DefaultMarkerRadius,
	}
	for _, opt := range opts {
		opt(c)
	}

	class0, class1, err := PartitionByClass(X, y)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.title
	p.X.Label.Text = c.xLabel
	p.Y.Label.Text = c.yLabel
	p.Legend.Top = true

	for i, pts := range []plotter.XYs{class0, class1} {
		s, err := classScatter(i, pts, c.radius)
		if err != nil {
			return nil, err
		}
		p.Add(s)
		p.Legend.Add(ClassLabels[i], s)
	}
	return p, nil
}

// classScatter styles the series of class i.
func classScatter(class int, pts plotter.XYs, radius vg.Length) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "visualize: scatter for %s", ClassLabels[class])
	}
	s.GlyphStyle.Color = classColors[class]
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = radius
	return s, nil
}

// Render writes p to w in the given format ("png", "svg", "pdf", ...).
func Render(p *plot.Plot, w io.Writer, width, height vg.Length, format string) error {
	return errors.SafeExecute("visualize.Render", func() error {
		wt, err := p.WriterTo(width, height, format)
		if err != nil {
			return errors.Wrapf(err, "visualize: %s writer", format)
		}
		_, err = wt.WriteTo(w)
		return errors.Wrap(err, "visualize: write image")
	})
}

// Save renders p to path; the format follows the file extension.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if FormatOf(path) == "" {
		return errors.NewValidationError("output", "file needs an image extension", path)
	}
	return errors.SafeExecute("visualize.Save", func() error {
		return errors.Wrapf(p.Save(width, height, path), "visualize: save %s", path)
	})
}

// FormatOf returns the lower-case extension of path without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
