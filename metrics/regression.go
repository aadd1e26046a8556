// Package metrics は回帰モデルの評価指標を提供します。
//
// 全ての指標は同じシグネチャ Func を持ち、ブートストラップ評価やシナリオ比較に
// そのまま渡すことができます。
package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Func は実測値と予測値から評価指標を計算する関数
type Func func(yTrue, yPred *mat.VecDense) (float64, error)

// validate は空入力と長さの不一致を検証する
func validate(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewModelError(op, "yTrue has length 0", errors.ErrEmptyData)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// residuals は yTrue - yPred を新しいスライスで返す
func residuals(yTrue, yPred *mat.VecDense, n int) []float64 {
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		res[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return res
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	res := residuals(yTrue, yPred, n)
	return floats.Dot(res, res) / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Norm(residuals(yTrue, yPred, n), 1) / float64(n), nil
}

// MedianAbsoluteError は絶対誤差の中央値を計算する
func MedianAbsoluteError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MedianAbsoluteError", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	res := residuals(yTrue, yPred, n)
	for i, r := range res {
		res[i] = math.Abs(r)
	}
	sort.Float64s(res)
	return quantileSorted(res, 0.5), nil
}

// MaxError は絶対誤差の最大値を計算する
func MaxError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MaxError", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(residuals(yTrue, yPred, n), math.Inf(1)), nil
}

// R2Score は決定係数（R²）を計算する
//
// yTrue の分散が0の場合は ErrZeroVariance を返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := stat.Mean(mat.Col(nil, 0, yTrue), nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		d := yTrue.AtVec(i) - yMean
		r := yTrue.AtVec(i) - yPred.AtVec(i)
		tss += d * d
		rss += r * r
	}

	if tss == 0 {
		return 0, errors.NewModelError("R2Score", "total sum of squares is zero", errors.ErrZeroVariance)
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する（yTrue が0の要素は除外）
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAPE = (100/n) * Σ|yTrue - yPred|/|yTrue|
	var sum float64
	validCount := 0
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		if yTrueVal != 0 {
			sum += math.Abs(yTrueVal-yPred.AtVec(i)) / math.Abs(yTrueVal)
			validCount++
		}
	}

	if validCount == 0 {
		return 0, errors.NewModelError("MAPE", "all yTrue values are zero", errors.ErrEmptyData)
	}
	return (sum / float64(validCount)) * 100, nil
}

// ExplainedVarianceScore は説明分散スコアを計算する
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	res := residuals(yTrue, yPred, n)
	varYTrue := stat.PopVariance(mat.Col(nil, 0, yTrue), nil)
	varDiff := stat.PopVariance(res, nil)

	if varYTrue == 0 {
		return 0, errors.NewModelError("ExplainedVarianceScore", "no variance in yTrue", errors.ErrZeroVariance)
	}

	// 1 - Var(yTrue - yPred) / Var(yTrue)
	return 1 - varDiff/varYTrue, nil
}
