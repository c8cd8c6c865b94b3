// Package classplot loads a binary-class CSV dataset, splits it into
// training and test partitions and renders its two features as a scatter
// plot colored by class.
//
// # Quick Start
//
//	table, err := dataset.LoadCSV("dataset_name.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	X, y, err := table.Extract([]string{"X1", "X2"}, "y")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	split, err := modelselection.TrainTestSplit(X, y,
//	    modelselection.WithTestSize(0.2),
//	    modelselection.WithRandomState(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := visualize.NewScatterPlot(X, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = visualize.Save(p, "scatter.png", visualize.DefaultWidth, visualize.DefaultHeight)
//
// # Packages
//
//   - dataset: CSV loading and feature/label extraction
//   - modelselection: seeded train/test split
//   - visualize: per-class scatter plots
//   - pipeline: the load → extract → split → plot run used by cmd/classplot
//   - pkg/errors: structured errors and warnings
//   - pkg/log: structured logging
package classplot
