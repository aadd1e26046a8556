package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/houseval/metrics"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// OutlierMethod は外れ値の検出方法
type OutlierMethod int

const (
	// IQR は四分位範囲 [Q1 - k*IQR, Q3 + k*IQR] の外側を外れ値とする
	IQR OutlierMethod = iota
	// ZScore は |z| > threshold を外れ値とする（母標準偏差を使用）
	ZScore
)

// String は検出方法の名前を返す
func (m OutlierMethod) String() string {
	switch m {
	case IQR:
		return "iqr"
	case ZScore:
		return "zscore"
	default:
		return "unknown"
	}
}

// ParseOutlierMethod は名前から外れ値の検出方法を取得する
func ParseOutlierMethod(name string) (OutlierMethod, error) {
	switch name {
	case "iqr":
		return IQR, nil
	case "zscore":
		return ZScore, nil
	default:
		return 0, errors.NewInvalidArgumentError("ParseOutlierMethod", "method", name, "iqr", "zscore")
	}
}

// DetectOutliersIQR は四分位範囲に基づく外れ値のマスクを返す
//
// 欠損値は外れ値として扱わない。
func DetectOutliersIQR(values []float64, k float64) ([]bool, error) {
	q1, err := metrics.Quantile(values, 0.25)
	if err != nil {
		return nil, err
	}
	q3, err := metrics.Quantile(values, 0.75)
	if err != nil {
		return nil, err
	}

	iqr := q3 - q1
	lower, upper := q1-k*iqr, q3+k*iqr

	mask := make([]bool, len(values))
	for i, v := range values {
		mask[i] = v < lower || v > upper
	}
	return mask, nil
}

// DetectOutliersZScore は |z| > threshold となる値のマスクを返す
//
// 標準偏差が0の場合は1で割る。欠損値は外れ値として扱わない。
func DetectOutliersZScore(values []float64, threshold float64) ([]bool, error) {
	obs := observed(values)
	if len(obs) == 0 {
		return nil, errors.NewModelError("DetectOutliersZScore", "all values are NaN", errors.ErrNoObservedValues)
	}

	mu, variance := stat.PopMeanVariance(obs, nil)
	sigma := math.Sqrt(variance)
	if sigma == 0 {
		sigma = 1
	}

	mask := make([]bool, len(values))
	for i, v := range values {
		mask[i] = math.Abs((v-mu)/sigma) > threshold
	}
	return mask, nil
}

// DetectOutliers は method に応じて DetectOutliersIQR か DetectOutliersZScore を呼び出す
// param は IQR では k、ZScore では threshold として使われる。
func DetectOutliers(values []float64, method OutlierMethod, param float64) ([]bool, error) {
	switch method {
	case IQR:
		return DetectOutliersIQR(values, param)
	case ZScore:
		return DetectOutliersZScore(values, param)
	default:
		return nil, errors.NewInvalidArgumentError("DetectOutliers", "method", method, "iqr", "zscore")
	}
}

// Winsorize は値を lower 分位点と upper 分位点の範囲に切り詰めた新しいスライスを返す
//
// 欠損値はそのまま残る。
//
// 使用例:
//
//	capped, err := preprocessing.Winsorize(prices, 0.05, 0.95)
func Winsorize(values []float64, lower, upper float64) ([]float64, error) {
	if lower > upper {
		return nil, errors.NewInvalidArgumentError("Winsorize", "bounds", [2]float64{lower, upper}, "lower <= upper")
	}

	lo, err := metrics.Quantile(values, lower)
	if err != nil {
		return nil, err
	}
	hi, err := metrics.Quantile(values, upper)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case IsMissing(v):
			out[i] = v
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out, nil
}

// WinsorizeColumns は各列を独立に Winsorize した新しい行列を返す
func WinsorizeColumns(X mat.Matrix, lower, upper float64) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("WinsorizeColumns", "X has no rows or columns", errors.ErrEmptyData)
	}

	result := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		capped, err := Winsorize(col, lower, upper)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", j)
		}
		result.SetCol(j, capped)
	}
	return result, nil
}

// DropOutlierRows は column 列が外れ値である行を取り除く
//
// 戻り値の kept は残った行の元のインデックス（昇順）。
func DropOutlierRows(X mat.Matrix, column int, method OutlierMethod, param float64) (*mat.Dense, []int, error) {
	const op = "DropOutlierRows"

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, errors.NewModelError(op, "X has no rows or columns", errors.ErrEmptyData)
	}
	if column < 0 || column >= c {
		return nil, nil, errors.NewInvalidArgumentError(op, "column", column)
	}

	mask, err := DetectOutliers(mat.Col(nil, column, X), method, param)
	if err != nil {
		return nil, nil, err
	}

	kept := make([]int, 0, r)
	for i, outlier := range mask {
		if !outlier {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return nil, nil, errors.NewModelError(op, "every row is an outlier", errors.ErrEmptyData)
	}

	result := mat.NewDense(len(kept), c, nil)
	for k, i := range kept {
		result.SetRow(k, mat.Row(nil, i, X))
	}
	return result, kept, nil
}
