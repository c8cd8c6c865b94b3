package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/classplot/pkg/errors"
	"github.com/YuminosukeSato/classplot/pkg/log"
)

const tenRows = `X1,X2,y
1.0,2.0,0
1.5,1.8,0
2.0,2.2,0
1.2,2.8,0
1.8,2.5,0
5.0,6.0,1
5.5,5.8,1
6.0,6.2,1
5.2,6.8,1
5.8,6.5,1
`

func testConfig(t *testing.T, csv string) Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset_name.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cfg := DefaultConfig()
	cfg.DatasetPath = path
	cfg.OutputPath = filepath.Join(dir, "scatter.png")
	cfg.Display = false
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "dataset_name.csv", cfg.DatasetPath)
	assert.Equal(t, []string{"X1", "X2"}, cfg.FeatureColumns)
	assert.Equal(t, "y", cfg.LabelColumn)
	assert.Equal(t, 0.2, cfg.TestSize)
	assert.Equal(t, uint64(42), cfg.RandomState)
	assert.True(t, cfg.Display)
	assert.NoError(t, cfg.Validate())
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, tenRows)
	logger, _ := log.NewTestLogger(log.LevelDebug)

	res, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, 10, res.Rows)
	assert.Equal(t, 8, res.Split.YTrain.Len())
	assert.Equal(t, 2, res.Split.YTest.Len())
	assert.Equal(t, [2]int{5, 5}, res.SeriesSizes)
	assert.Equal(t, 10, res.SeriesSizes[0]+res.SeriesSizes[1])

	info, err := os.Stat(cfg.OutputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.True(t, logger.ContainsMessage("Dataset loaded"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationSplit))
	assert.True(t, logger.ContainsField(log.TrainRowsKey, 8.0))
	assert.True(t, logger.ContainsField(log.TestRowsKey, 2.0))
	assert.True(t, logger.ContainsField(log.ComponentKey, "pipeline"))
}

func TestRunDeterministic(t *testing.T) {
	cfg := testConfig(t, tenRows)
	logger, _ := log.NewTestLogger(log.LevelError)

	a, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, a.Split.TrainIndices, b.Split.TrainIndices)
	assert.Equal(t, a.Split.TestIndices, b.Split.TestIndices)
}

func TestRunMissingColumn(t *testing.T) {
	cfg := testConfig(t, "X1,y\n1,0\n2,1\n3,0\n")
	logger, _ := log.NewTestLogger(log.LevelDebug)

	opened := false
	cfg.Display = true
	cfg.Opener = func(context.Context, string) error {
		opened = true
		return nil
	}

	res, err := Run(context.Background(), cfg, logger)
	require.Error(t, err)
	assert.Nil(t, res)

	var colErr *errors.ColumnNotFoundError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "X2", colErr.Column)

	// fails before split or plot
	assert.False(t, logger.ContainsField(log.OperationKey, log.OperationSplit))
	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, opened)
}

func TestRunMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DatasetPath = filepath.Join(t.TempDir(), "nope.csv")
	logger, _ := log.NewTestLogger(log.LevelDebug)

	_, err := Run(context.Background(), cfg, logger)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunDisplay(t *testing.T) {
	cfg := testConfig(t, tenRows)
	cfg.Display = true

	var shown string
	cfg.Opener = func(_ context.Context, path string) error {
		shown = path
		return nil
	}
	logger, _ := log.NewTestLogger(log.LevelInfo)

	_, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, cfg.OutputPath, shown)
}

func TestRunMarkerRadius(t *testing.T) {
	cfg := testConfig(t, tenRows)
	cfg.MarkerRadius = 5
	cfg.OutputPath = filepath.Join(filepath.Dir(cfg.OutputPath), "big.svg")
	logger, _ := log.NewTestLogger(log.LevelInfo)

	_, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)

	info, err := os.Stat(cfg.OutputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunCanceled(t *testing.T) {
	cfg := testConfig(t, tenRows)
	logger, _ := log.NewTestLogger(log.LevelInfo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, logger)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"no dataset", func(c *Config) { c.DatasetPath = "" }, "dataset"},
		{"three features", func(c *Config) { c.FeatureColumns = []string{"a", "b", "c"} }, "features"},
		{"no label", func(c *Config) { c.LabelColumn = "" }, "label"},
		{"no output", func(c *Config) { c.OutputPath = "" }, "output"},
		{"zero width", func(c *Config) { c.Width = 0 }, "size"},
		{"negative marker radius", func(c *Config) { c.MarkerRadius = -1 }, "marker-radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}
