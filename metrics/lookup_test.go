package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestMedianAbsoluteError(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{3, -0.5, 2, 7})
	yPred := mat.NewVecDense(4, []float64{2.5, 0.0, 2, 8})

	// |errors| = 0.5, 0.5, 0, 1 -> sorted 0, 0.5, 0.5, 1
	got, err := MedianAbsoluteError(yTrue, yPred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("MedianAbsoluteError() = %v, want 0.5", got)
	}
}

func TestMaxError(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(3, []float64{1.5, 4, 2})

	got, err := MaxError(yTrue, yPred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("MaxError() = %v, want 2", got)
	}
}

func TestValidationCategories(t *testing.T) {
	empty := &mat.VecDense{}
	a := mat.NewVecDense(2, []float64{1, 2})
	b := mat.NewVecDense(3, []float64{1, 2, 3})

	for _, name := range Names() {
		fn, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}

		if _, err := fn(empty, empty); !errors.Is(err, errors.ErrPreconditionViolation) {
			t.Errorf("%s: empty input error = %v, want precondition violation", name, err)
		}

		_, err = fn(a, b)
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("%s: length mismatch error = %v, want DimensionError", name, err)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"mae", "mse", "rmse", "r2", "median_ae", "max_error", "mape", "explained_variance"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", name, err)
		}
	}

	_, err := Lookup("accuracy")
	if !errors.Is(err, errors.ErrInvalidArgument) {
		t.Fatalf("Lookup(unknown) = %v, want invalid argument", err)
	}
	var argErr *errors.InvalidArgumentError
	if !errors.As(err, &argErr) || argErr.Value != "accuracy" {
		t.Errorf("unexpected error detail: %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	got, err := Evaluate(MAE, []float64{1, 2, 3}, []float64{2, 2, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Evaluate(MAE) = %v, want 1", got)
	}

	if _, err := Evaluate(MAE, nil, nil); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("empty input error = %v", err)
	}
	if _, err := Evaluate(MAE, []float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected dimension error")
	}
}
