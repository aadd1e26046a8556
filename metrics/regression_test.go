package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 住宅価格スケールの実測値と予測値
// 残差は 10000, -10000, -20000, 20000（平均0）
var (
	pricesTrue = []float64{250000, 310000, 180000, 420000}
	pricesPred = []float64{240000, 320000, 200000, 400000}
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

func TestHousingScaleMetrics(t *testing.T) {
	// 平均 290000、TSS = 3.1e10、RSS = 1e9
	tests := []struct {
		name      string
		metric    Func
		want      float64
		tolerance float64
	}{
		{"MSE", MSE, 2.5e8, 1e-6},
		{"RMSE", RMSE, math.Sqrt(2.5e8), 1e-9},
		{"MAE", MAE, 15000, 1e-9},
		{"MedianAbsoluteError", MedianAbsoluteError, 15000, 1e-9},
		{"MaxError", MaxError, 20000, 1e-9},
		{"R2Score", R2Score, 30.0 / 31.0, 1e-12},
		{"ExplainedVarianceScore", ExplainedVarianceScore, 30.0 / 31.0, 1e-12},
		{"MAPE", MAPE, 5.774705581157194, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(vec(pricesTrue...), vec(pricesPred...))
			if err != nil {
				t.Fatalf("%s() unexpected error: %v", tt.name, err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("%s() = %v, want %v (tolerance: %v)", tt.name, got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestExplainedVarianceScore_IgnoresBias(t *testing.T) {
	// 全て 10000 低く予測: 残差の分散は0だが RSS は 4e8
	biased := make([]float64, len(pricesTrue))
	for i, v := range pricesTrue {
		biased[i] = v - 10000
	}

	ev, err := ExplainedVarianceScore(vec(pricesTrue...), vec(biased...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ev-1) > 1e-12 {
		t.Errorf("ExplainedVarianceScore() = %v, want 1", ev)
	}

	r2, err := R2Score(vec(pricesTrue...), vec(biased...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 1 - 4e8/3.1e10; math.Abs(r2-want) > 1e-12 {
		t.Errorf("R2Score() = %v, want %v", r2, want)
	}
}

func TestZeroVarianceTargets(t *testing.T) {
	yTrue := vec(300000, 300000, 300000)
	yPred := vec(290000, 300000, 310000)

	for name, fn := range map[string]Func{
		"R2Score":                R2Score,
		"ExplainedVarianceScore": ExplainedVarianceScore,
	} {
		_, err := fn(yTrue, yPred)
		if !errors.Is(err, errors.ErrZeroVariance) {
			t.Errorf("%s() error = %v, want ErrZeroVariance", name, err)
		}
		if !errors.Is(err, errors.ErrPreconditionViolation) {
			t.Errorf("%s() error = %v, want precondition violation", name, err)
		}
	}
}

func TestMAPE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr error
	}{
		{
			name:  "zero targets are excluded",
			yTrue: vec(0, 100, 200),
			yPred: vec(5, 110, 180),
			want:  10, // (10/100 + 20/200) / 2 * 100
		},
		{
			name:  "perfect prediction",
			yTrue: vec(150000, 275000),
			yPred: vec(150000, 275000),
			want:  0,
		},
		{
			name:    "all targets zero",
			yTrue:   vec(0, 0),
			yPred:   vec(1, 2),
			wantErr: errors.ErrEmptyData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAPE(tt.yTrue, tt.yPred)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("MAPE() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MAPE() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MAPE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetricErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := MSE(&mat.VecDense{}, &mat.VecDense{})
		if !errors.Is(err, errors.ErrEmptyData) || !errors.Is(err, errors.ErrPreconditionViolation) {
			t.Fatalf("MSE() error = %v, want empty data precondition violation", err)
		}
		if msg := err.Error(); !strings.Contains(msg, "yTrue has length 0") || strings.Count(msg, "empty data") != 1 {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := RMSE(vec(1, 2, 3), vec(1, 2))
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Fatalf("RMSE() error = %v, want DimensionError", err)
		}
		if dimErr.Expected != 3 || dimErr.Got != 2 {
			t.Errorf("DimensionError = %+v, want expected 3 got 2", dimErr)
		}
		if !errors.Is(err, errors.ErrPreconditionViolation) {
			t.Errorf("RMSE() error = %v, want precondition violation", err)
		}
	})
}

func BenchmarkMAE(b *testing.B) {
	n := 10000
	yTrue := mat.NewVecDense(n, nil)
	yPred := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yTrue.SetVec(i, 200000+float64(i))
		yPred.SetVec(i, 200000+float64(i)+float64(i%7)*100)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MAE(yTrue, yPred)
	}
}
