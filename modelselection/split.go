// Package modelselection provides train/test partitioning of feature
// matrices and label vectors.
package modelselection

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

const (
	// DefaultTestSize is the fraction of rows held out for testing.
	DefaultTestSize = 0.2

	// DefaultRandomState seeds the row permutation.
	DefaultRandomState = 42
)

// Split holds the four partitions produced by TrainTestSplit.
// TrainIndices and TestIndices are the original row numbers, in the order
// the rows appear in XTrain/YTrain and XTest/YTest.
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain *mat.VecDense
	YTest  *mat.VecDense

	TrainIndices []int
	TestIndices  []int
}

type splitConfig struct {
	testSize    float64
	randomState uint64
	shuffle     bool
}

// SplitOption configures TrainTestSplit and SplitIndices.
type SplitOption func(*splitConfig)

// WithTestSize sets the held-out fraction. It must lie in (0, 1).
func WithTestSize(size float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = size
	}
}

// WithRandomState sets the seed of the row permutation.
func WithRandomState(seed uint64) SplitOption {
	return func(c *splitConfig) {
		c.randomState = seed
	}
}

// WithShuffle controls whether rows are permuted before partitioning.
// Without shuffling the first rows become the training set.
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) {
		c.shuffle = shuffle
	}
}

func newSplitConfig(opts []SplitOption) *splitConfig {
	c := &splitConfig{
		testSize:    DefaultTestSize,
		randomState: DefaultRandomState,
		shuffle:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SplitIndices partitions the row indices 0..n-1 into train and test sets.
//
// The test set has ceil(testSize*n) rows and the train set the remainder;
// both must be non-empty. The same options always yield the same partition.
func SplitIndices(n int, opts ...SplitOption) (train, test []int, err error) {
	c := newSplitConfig(opts)

	if math.IsNaN(c.testSize) || c.testSize <= 0 || c.testSize >= 1 {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", c.testSize)
	}
	if n <= 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "SplitIndices")
	}

	nTest := int(math.Ceil(c.testSize * float64(n)))
	nTrain := n - nTest
	if nTrain < 1 {
		return nil, nil, errors.NewValidationError("test_size",
			"resulting train set would be empty", c.testSize)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if c.shuffle {
		r := rand.New(rand.NewPCG(c.randomState, c.randomState))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		// Held-out rows come first in the permutation.
		return indices[nTest:], indices[:nTest], nil
	}

	return indices[:nTrain], indices[nTrain:], nil
}

// TrainTestSplit partitions X and y in lockstep.
//
// Row i of X stays paired with element i of y in whichever partition it
// lands. The outputs are copies; X and y are not modified.
//
//	s, err := modelselection.TrainTestSplit(X, y,
//	    modelselection.WithTestSize(0.2),
//	    modelselection.WithRandomState(42),
//	)
func TrainTestSplit(X mat.Matrix, y mat.Vector, opts ...SplitOption) (*Split, error) {
	rows, cols := X.Dims()
	if y.Len() != rows {
		return nil, errors.NewDimensionError("TrainTestSplit", rows, y.Len(), 0)
	}

	trainIdx, testIdx, err := SplitIndices(rows, opts...)
	if err != nil {
		return nil, err
	}

	XTrain, yTrain := takeRows(X, y, trainIdx, cols)
	XTest, yTest := takeRows(X, y, testIdx, cols)

	return &Split{
		XTrain:       XTrain,
		XTest:        XTest,
		YTrain:       yTrain,
		YTest:        yTest,
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
	}, nil
}

func takeRows(X mat.Matrix, y mat.Vector, idx []int, cols int) (*mat.Dense, *mat.VecDense) {
	Xs := mat.NewDense(len(idx), cols, nil)
	ys := mat.NewVecDense(len(idx), nil)
	for i, src := range idx {
		for j := 0; j < cols; j++ {
			Xs.Set(i, j, X.At(src, j))
		}
		ys.SetVec(i, y.AtVec(src))
	}
	return Xs, ys
}
