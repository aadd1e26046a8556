// Package preprocessing は欠損値補完、欠損行の除去、スケーリング、外れ値処理を提供します。
//
// 欠損値は math.NaN() で表現します。全ての関数は入力を変更せず、新しいスライスや行列を返します。
package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/houseval/metrics"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Strategy は欠損値の補完に使う統計量
type Strategy int

const (
	// Mean は観測値の算術平均で補完する
	Mean Strategy = iota
	// Median は観測値の中央値で補完する（偶数個の場合は中央2値の平均）
	Median
)

// String は戦略名を返す
func (s Strategy) String() string {
	switch s {
	case Mean:
		return "mean"
	case Median:
		return "median"
	default:
		return "unknown"
	}
}

// ParseStrategy は名前から補完戦略を取得する
//
// "mean" と "median" 以外は ErrInvalidArgument としてマークされたエラーを返す。
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "mean":
		return Mean, nil
	case "median":
		return Median, nil
	default:
		return 0, errors.NewInvalidArgumentError("ParseStrategy", "strategy", name, "mean", "median")
	}
}

// IsMissing は値が欠損（NaN）かどうかを返す
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// observed は欠損していない値だけを新しいスライスに集める
func observed(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// FillValue は観測値から補完に使う統計量を計算する
//
// 観測値が一つもない場合は ErrNoObservedValues を原因とする前提条件違反を返す。
func FillValue(values []float64, strategy Strategy) (float64, error) {
	const op = "FillValue"

	obs := observed(values)
	if len(obs) == 0 {
		return 0, errors.NewModelError(op, "all values are missing", errors.ErrNoObservedValues)
	}

	switch strategy {
	case Mean:
		return stat.Mean(obs, nil), nil
	case Median:
		return metrics.Median(obs)
	default:
		return 0, errors.NewInvalidArgumentError(op, "strategy", strategy, "mean", "median")
	}
}

// Impute は欠損値を観測値の統計量で置き換えた新しいスライスを返す
//
// 欠損していない要素はそのまま保持される。
//
// 使用例:
//
//	filled, err := preprocessing.Impute([]float64{1, math.NaN(), 3}, preprocessing.Median)
//	// filled = [1, 2, 3]
func Impute(values []float64, strategy Strategy) ([]float64, error) {
	if len(values) == 0 {
		return nil, errors.NewModelError("Impute", "values has length 0", errors.ErrEmptyData)
	}

	fill, err := FillValue(values, strategy)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if IsMissing(v) {
			out[i] = fill
		} else {
			out[i] = v
		}
	}
	return out, nil
}

// ImputeColumns は各列を独立に補完した新しい行列を返す
func ImputeColumns(X mat.Matrix, strategy Strategy) (*mat.Dense, error) {
	imputer := NewSimpleImputer(strategy)
	return imputer.FitTransform(X)
}
