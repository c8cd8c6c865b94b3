// Package pipeline runs the load → extract → split → plot sequence once.
package pipeline

import (
	"context"
	"strconv"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/classplot/dataset"
	"github.com/YuminosukeSato/classplot/modelselection"
	"github.com/YuminosukeSato/classplot/pkg/errors"
	"github.com/YuminosukeSato/classplot/pkg/log"
	"github.com/YuminosukeSato/classplot/visualize"
)

// Config describes one run.
type Config struct {
	DatasetPath    string
	FeatureColumns []string
	LabelColumn    string

	TestSize    float64
	RandomState uint64

	// OutputPath receives the rendered figure; the extension picks the format.
	OutputPath string
	Title      string
	Width      vg.Length
	Height     vg.Length

	// MarkerRadius sizes the scatter glyphs; zero keeps the plot default.
	MarkerRadius vg.Length

	// Display opens the saved figure with Opener (SystemOpener when nil).
	Display bool
	Opener  visualize.Opener
}

// DefaultConfig reads dataset_name.csv, uses X1/X2 against y, holds out
// 20% of the rows with seed 42 and displays scatter.png.
func DefaultConfig() Config {
	return Config{
		DatasetPath:    dataset.DefaultPath,
		FeatureColumns: append([]string(nil), dataset.DefaultFeatureColumns...),
		LabelColumn:    dataset.DefaultLabelColumn,
		TestSize:       modelselection.DefaultTestSize,
		RandomState:    modelselection.DefaultRandomState,
		OutputPath:     "scatter.png",
		Width:          visualize.DefaultWidth,
		Height:         visualize.DefaultHeight,
		Display:        true,
	}
}

// Validate checks the fields that the later steps cannot check for themselves.
func (c Config) Validate() error {
	if c.DatasetPath == "" {
		return errors.NewValidationError("dataset", "path is required", c.DatasetPath)
	}
	if len(c.FeatureColumns) != 2 {
		return errors.NewValidationError("features", "exactly two feature columns are plotted", c.FeatureColumns)
	}
	if c.LabelColumn == "" {
		return errors.NewValidationError("label", "column name is required", c.LabelColumn)
	}
	if c.OutputPath == "" {
		return errors.NewValidationError("output", "path is required", c.OutputPath)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.NewValidationError("size", "width and height must be positive", [2]vg.Length{c.Width, c.Height})
	}
	if c.MarkerRadius < 0 {
		return errors.NewValidationError("marker-radius", "must not be negative", c.MarkerRadius)
	}
	return nil
}

// Result summarizes a completed run.
type Result struct {
	Rows        int
	ClassCounts map[float64]int
	Split       *modelselection.Split

	// SeriesSizes holds the point counts of the Class 0 and Class 1 series.
	SeriesSizes [2]int
	OutputPath  string
}

// Run executes the pipeline. The first failing step aborts the run; a
// missing column therefore fails before any split or plot happens.
func Run(ctx context.Context, cfg Config, logger log.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With(log.ComponentKey, "pipeline")

	start := time.Now()
	table, err := dataset.LoadCSV(cfg.DatasetPath)
	if err != nil {
		return nil, errors.Wrap(err, "load dataset")
	}
	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, cfg.DatasetPath,
		log.SamplesKey, table.Len(),
		log.ColumnsKey, table.Names(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	X, y, err := table.Extract(cfg.FeatureColumns, cfg.LabelColumn)
	if err != nil {
		return nil, errors.Wrap(err, "extract features")
	}
	counts := dataset.ClassCounts(y)
	_, nFeatures := X.Dims()
	logger.Debug("Features extracted",
		log.OperationKey, log.OperationExtract,
		log.FeaturesKey, nFeatures,
		log.ClassCountsKey, countsByName(counts),
	)

	split, err := modelselection.TrainTestSplit(X, y,
		modelselection.WithTestSize(cfg.TestSize),
		modelselection.WithRandomState(cfg.RandomState),
	)
	if err != nil {
		return nil, errors.Wrap(err, "train/test split")
	}
	logger.Info("Train/test split done",
		log.OperationKey, log.OperationSplit,
		log.TestSizeKey, cfg.TestSize,
		log.RandomSeedKey, cfg.RandomState,
		log.TrainRowsKey, split.YTrain.Len(),
		log.TestRowsKey, split.YTest.Len(),
	)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "pipeline")
	}

	plotOpts := []visualize.PlotOption{
		visualize.WithTitle(cfg.Title),
		visualize.WithAxisLabels(cfg.FeatureColumns[0], cfg.FeatureColumns[1]),
	}
	if cfg.MarkerRadius > 0 {
		plotOpts = append(plotOpts, visualize.WithMarkerRadius(cfg.MarkerRadius))
	}
	p, err := visualize.NewScatterPlot(X, y, plotOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "scatter plot")
	}
	if err := visualize.Save(p, cfg.OutputPath, cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	res := &Result{
		Rows:        table.Len(),
		ClassCounts: counts,
		Split:       split,
		SeriesSizes: [2]int{counts[0], counts[1]},
		OutputPath:  cfg.OutputPath,
	}
	logger.Info("Scatter plot saved",
		log.OperationKey, log.OperationPlot,
		log.PathKey, cfg.OutputPath,
		log.FormatKey, visualize.FormatOf(cfg.OutputPath),
		log.SeriesSizeKey, res.SeriesSizes,
	)

	if cfg.Display {
		logger.Debug("Opening viewer", log.OperationKey, log.OperationShow, log.PathKey, cfg.OutputPath)
		if err := visualize.Show(ctx, cfg.OutputPath, cfg.Opener); err != nil {
			return res, err
		}
	}
	return res, nil
}

func countsByName(counts map[float64]int) map[string]int {
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[strconv.FormatFloat(c, 'g', -1, 64)] = n
	}
	return out
}
