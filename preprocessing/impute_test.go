package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/houseval/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var nan = math.NaN()

func TestImpute(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		strategy Strategy
		want     []float64
	}{
		{"mean", []float64{1, nan, 3}, Mean, []float64{1, 2, 3}},
		{"median odd", []float64{1, nan, 2, 10}, Median, []float64{1, 2, 2, 10}},
		{"median even", []float64{4, nan, 1, 3, 2}, Median, []float64{4, 2.5, 1, 3, 2}},
		{"mean skews toward outlier", []float64{1, nan, 2, 10}, Mean, []float64{1, 13.0 / 3.0, 2, 10}},
		{"nothing missing", []float64{5, 6}, Mean, []float64{5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Impute(tt.values, tt.strategy)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestImpute_NoMissingInOutputAndObservedUnchanged(t *testing.T) {
	values := []float64{nan, 12.5, nan, 3, 8, nan, 100}

	for _, strategy := range []Strategy{Mean, Median} {
		got, err := Impute(values, strategy)
		require.NoError(t, err)
		require.Len(t, got, len(values))

		for i, v := range got {
			assert.False(t, math.IsNaN(v), "%s: index %d still missing", strategy, i)
			if !math.IsNaN(values[i]) {
				assert.Equal(t, values[i], v, "%s: observed value at %d changed", strategy, i)
			}
		}
	}

	// input untouched
	assert.True(t, math.IsNaN(values[0]))
}

func TestImpute_Errors(t *testing.T) {
	_, err := Impute([]float64{nan, nan}, Mean)
	assert.True(t, errors.Is(err, errors.ErrNoObservedValues))
	assert.True(t, errors.Is(err, errors.ErrPreconditionViolation))

	_, err = Impute(nil, Median)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = Impute([]float64{1, nan}, Strategy(42))
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("median")
	require.NoError(t, err)
	assert.Equal(t, Median, s)
	assert.Equal(t, "median", s.String())

	s, err = ParseStrategy("mean")
	require.NoError(t, err)
	assert.Equal(t, Mean, s)

	_, err = ParseStrategy("mode")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestImputeColumns(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		nan, 20,
		3, nan,
		5, 60,
	})

	got, err := ImputeColumns(X, Median)
	require.NoError(t, err)

	assert.Equal(t, 3.0, got.At(1, 0))
	assert.Equal(t, 20.0, got.At(2, 1))
	assert.Equal(t, 0, CountMissing(got))
	assert.Equal(t, 2, CountMissing(X), "input must not be modified")
}

func TestSimpleImputer(t *testing.T) {
	train := mat.NewDense(3, 2, []float64{
		1, nan,
		2, 4,
		3, 8,
	})

	imp := NewSimpleImputer(Mean)
	_, err := imp.Transform(train)
	var notFitted *errors.NotFittedError
	require.True(t, errors.As(err, &notFitted))

	require.NoError(t, imp.Fit(train))
	assert.InDeltaSlice(t, []float64{2, 6}, imp.Statistics, 1e-12)
	assert.Equal(t, "SimpleImputer(strategy=mean, n_features=2)", imp.String())

	test := mat.NewDense(2, 2, []float64{nan, nan, 7, 1})
	got, err := imp.Transform(test)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6, 7, 1}, got.RawMatrix().Data)

	_, err = imp.Transform(mat.NewDense(1, 3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestSimpleImputer_AllMissingColumn(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, nan, 2, nan})

	imp := NewSimpleImputer(Median)
	err := imp.Fit(X)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoObservedValues))
	assert.Contains(t, err.Error(), "column 1")
	assert.False(t, imp.IsFitted())
}
