package visualize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

func tenRows() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(10, 2, nil)
	y := mat.NewVecDense(10, []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1})
	for i := 0; i < 10; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i*i))
	}
	return X, y
}

func TestPartitionByClass(t *testing.T) {
	X, y := tenRows()

	class0, class1, err := PartitionByClass(X, y)
	require.NoError(t, err)

	assert.Len(t, class0, 5)
	assert.Len(t, class1, 5)
	assert.Equal(t, 10, len(class0)+len(class1))

	// each series holds exactly the rows of its label, no overlap
	for i := 0; i < 10; i++ {
		pt := plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
		if y.AtVec(i) == 0 {
			assert.Contains(t, class0, pt)
			assert.NotContains(t, class1, pt)
		} else {
			assert.Contains(t, class1, pt)
			assert.NotContains(t, class0, pt)
		}
	}
}

func TestPartitionByClassSingleClass(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewVecDense(3, []float64{1, 1, 1})

	class0, class1, err := PartitionByClass(X, y)
	require.NoError(t, err)
	assert.Empty(t, class0)
	assert.Len(t, class1, 3)
}

func TestPartitionByClassErrors(t *testing.T) {
	t.Run("non binary label", func(t *testing.T) {
		X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		_, _, err := PartitionByClass(X, mat.NewVecDense(2, []float64{0, 2}))
		var valErr *errors.ValueError
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, valErr.Message, "row 1")
	})

	t.Run("one column", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{1, 2})
		_, _, err := PartitionByClass(X, mat.NewVecDense(2, []float64{0, 1}))
		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 1, dimErr.Axis)
	})

	t.Run("row mismatch", func(t *testing.T) {
		X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		_, _, err := PartitionByClass(X, mat.NewVecDense(3, nil))
		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 0, dimErr.Axis)
	})
}

func TestNewScatterPlot(t *testing.T) {
	X, y := tenRows()

	p, err := NewScatterPlot(X, y, WithTitle("dataset"), WithAxisLabels("a", "b"))
	require.NoError(t, err)

	assert.Equal(t, "dataset", p.Title.Text)
	assert.Equal(t, "a", p.X.Label.Text)
	assert.Equal(t, "b", p.Y.Label.Text)
	assert.InDelta(t, 0.0, p.X.Min, 1e-12)
	assert.InDelta(t, 9.0, p.X.Max, 1e-12)
	assert.InDelta(t, 81.0, p.Y.Max, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, Render(p, &buf, DefaultWidth, DefaultHeight, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestClassColorsAlpha(t *testing.T) {
	for _, c := range classColors {
		assert.Equal(t, uint8(153), c.A)
	}
}

func TestSave(t *testing.T) {
	X, y := tenRows()
	p, err := NewScatterPlot(X, y)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "scatter.svg")
	require.NoError(t, Save(p, path, DefaultWidth, DefaultHeight))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	err = Save(p, filepath.Join(dir, "scatter"), DefaultWidth, DefaultHeight)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "png", FormatOf("out/plot.PNG"))
	assert.Equal(t, "svg", FormatOf("plot.svg"))
	assert.Equal(t, "", FormatOf("plot"))
}

func TestShow(t *testing.T) {
	var opened string
	err := Show(context.Background(), "plot.png", func(_ context.Context, path string) error {
		opened = path
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "plot.png", opened)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = Show(ctx, "plot.png", func(context.Context, string) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestViewerCommand(t *testing.T) {
	name, _ := viewerCommand("linux")
	assert.Equal(t, "xdg-open", name)
	name, args := viewerCommand("darwin")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"-W"}, args)
}

func TestClassScatterRadius(t *testing.T) {
	pts := plotter.XYs{{X: 1, Y: 2}}

	s, err := classScatter(1, pts, DefaultMarkerRadius)
	require.NoError(t, err)
	assert.Equal(t, DefaultMarkerRadius, s.GlyphStyle.Radius)
	assert.Equal(t, classColors[1], s.GlyphStyle.Color)

	c := &plotConfig{radius: DefaultMarkerRadius}
	WithMarkerRadius(vg.Points(7))(c)
	assert.Equal(t, vg.Points(7), c.radius)

	X, y := tenRows()
	p, err := NewScatterPlot(X, y, WithMarkerRadius(vg.Points(7)))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Render(p, &buf, DefaultWidth, DefaultHeight, "svg"))
	assert.NotZero(t, buf.Len())
}
