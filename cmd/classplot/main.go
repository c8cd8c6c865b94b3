// Command classplot loads a CSV dataset, performs a seeded train/test split
// and shows a scatter plot of the two feature columns colored by class.
//
// With no flags it reads dataset_name.csv, plots X1 against X2 by y, holds
// out 20% of the rows with seed 42 and opens the figure in the system viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/classplot/pipeline"
	"github.com/YuminosukeSato/classplot/pkg/errors"
	"github.com/YuminosukeSato/classplot/pkg/log"
	"github.com/YuminosukeSato/classplot/visualize"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := pipeline.DefaultConfig()
	var (
		logLevel string
		jsonLogs bool
		widthIn  float64
		heightIn float64
		radiusPt float64
		noShow   bool
	)

	cmd := &cobra.Command{
		Use:           "classplot [dataset.csv]",
		Short:         "Split a binary-class CSV dataset and plot it",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, ok := log.ParseLevel(logLevel)
			if !ok {
				return errors.NewValidationError("log-level", "must be debug, info, warn or error", logLevel)
			}
			logger := newLogger(cmd, level, jsonLogs)

			if len(args) == 1 {
				cfg.DatasetPath = args[0]
			}
			cfg.Width = visualize.DefaultWidth
			cfg.Height = visualize.DefaultHeight
			if widthIn > 0 {
				cfg.Width = inches(widthIn)
			}
			if heightIn > 0 {
				cfg.Height = inches(heightIn)
			}
			cfg.MarkerRadius = vg.Points(radiusPt)
			cfg.Display = !noShow

			res, err := pipeline.Run(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("classplot failed", err, log.PathKey, cfg.DatasetPath, log.ErrorTypeKey, fmt.Sprintf("%T", errors.UnwrapAll(err)))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "train=%d test=%d class0=%d class1=%d plot=%s\n",
				res.Split.YTrain.Len(), res.Split.YTest.Len(),
				res.SeriesSizes[0], res.SeriesSizes[1], res.OutputPath)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&cfg.FeatureColumns, "features", cfg.FeatureColumns, "two feature columns to plot")
	f.StringVar(&cfg.LabelColumn, "label", cfg.LabelColumn, "binary label column")
	f.Float64Var(&cfg.TestSize, "test-size", cfg.TestSize, "fraction of rows held out for testing")
	f.Uint64Var(&cfg.RandomState, "seed", cfg.RandomState, "random seed of the split")
	f.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "figure file (.png, .svg, .pdf)")
	f.StringVar(&cfg.Title, "title", cfg.Title, "figure title")
	f.Float64Var(&widthIn, "width", 0, "figure width in inches")
	f.Float64Var(&heightIn, "height", 0, "figure height in inches")
	f.Float64Var(&radiusPt, "marker-radius", 0, "scatter marker radius in points (default 3)")
	f.BoolVar(&noShow, "no-show", false, "save the figure without opening a viewer")
	f.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	f.BoolVar(&jsonLogs, "json", false, "emit JSON logs")

	return cmd
}

func newLogger(cmd *cobra.Command, level log.Level, jsonLogs bool) log.Logger {
	if jsonLogs {
		l := log.NewJSONLogger(cmd.ErrOrStderr(), level)
		l.RouteWarnings()
		return l
	}
	z := log.NewConsoleLogger(cmd.ErrOrStderr(), level)
	z.RouteWarnings()
	return z
}

func inches(v float64) vg.Length {
	return vg.Length(v) * vg.Inch
}
