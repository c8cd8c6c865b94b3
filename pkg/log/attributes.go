// Package log defines standard attribute keys for classplot runs.
//
// Keys follow a hierarchical naming convention ("data.samples",
// "split.test_size") so that JSON logs can be filtered by prefix.

package log

// Operation context.
const (
	// OperationKey specifies the pipeline step being performed.
	OperationKey = "pipeline.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "dataset", "modelselection", "visualize"
	ComponentKey = "pipeline.component"

	// DurationMsKey records the execution time of a step in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Data shape.
const (
	// PathKey is the dataset or output file path.
	PathKey = "data.path"

	// SamplesKey indicates the number of rows.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"

	// ColumnsKey lists column names.
	ColumnsKey = "data.columns"

	// ClassCountsKey holds the label histogram.
	ClassCountsKey = "data.class_counts"
)

// Split configuration and results.
const (
	TestSizeKey   = "split.test_size"
	RandomSeedKey = "split.random_seed"
	TrainRowsKey  = "split.train_rows"
	TestRowsKey   = "split.test_rows"
)

// Plot output.
const (
	SeriesSizeKey = "plot.series_size"
	FormatKey     = "plot.format"
)

// Error context.
const (
	ErrorTypeKey = "error.type"
)

// Standard operation values for OperationKey.
const (
	OperationLoad    = "load"
	OperationExtract = "extract"
	OperationSplit   = "split"
	OperationPlot    = "plot"
	OperationShow    = "show"
)
