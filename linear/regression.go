// Package linear は最小二乗法による線形回帰モデルを提供します。
package linear

import (
	"fmt"
	"math"
	"time"

	"github.com/YuminosukeSato/houseval/core/model"
	"github.com/YuminosukeSato/houseval/core/parallel"
	"github.com/YuminosukeSato/houseval/metrics"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"github.com/YuminosukeSato/houseval/pkg/log"
	"gonum.org/v1/gonum/mat"
)

const (
	modelName = "LinearRegression"

	// WeightsVersion は ExportWeights が書き出すフォーマットのバージョン
	WeightsVersion = "1.0.0"

	// 並列処理の閾値（この値以下の行数では逐次処理を使用）
	parallelThreshold = 1000
)

// LinearRegression は線形回帰モデル
//
// 切片と特徴量ごとの係数を、計画行列 [1 | X] の特異値分解による最小二乗法で求める。
// 計画行列がランク落ちしている場合はノルム最小の解を返す。
type LinearRegression struct {
	model.BaseEstimator

	fitIntercept bool
	rcond        float64
	logger       log.Logger

	coef      []float64 // 係数（学習時の列順）
	intercept float64   // 切片
	rank      int       // 計画行列の実効ランク
	singular  []float64 // 計画行列の特異値（降順）
}

// NewLinearRegression は新しい線形回帰モデルを作成する
//
// 使用例:
//
//	lr := linear.NewLinearRegression(linear.WithFitIntercept(true))
//	if err := lr.Fit(X, y); err != nil {
//		return err
//	}
//	pred, err := lr.Predict(XTest)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept: true,
		rcond:        -1,
		logger:       log.GetLoggerWithName(modelName),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// FitModel は新しいモデルを作成して学習させる
func FitModel(X mat.Matrix, y []float64, opts ...Option) (*LinearRegression, error) {
	lr := NewLinearRegression(opts...)
	if err := lr.Fit(X, y); err != nil {
		return nil, err
	}
	return lr, nil
}

// Fit はモデルを訓練データで学習させる
//
// X は n_samples × n_features（n_features >= 1）、y は長さ n_samples。
// 欠損値（NaN）や無限大を含む入力はエラーになる。
func (lr *LinearRegression) Fit(X mat.Matrix, y []float64) error {
	const op = "LinearRegression.Fit"
	start := time.Now()

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "X has no rows or columns", errors.ErrEmptyData)
	}
	if len(y) != r {
		return errors.NewDimensionError(op, r, len(y), 0)
	}
	if err := errors.CheckMatrix(op, X); err != nil {
		return err
	}
	if err := errors.CheckFinite(op, y); err != nil {
		return err
	}

	design := lr.designMatrix(X)
	_, p := design.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return errors.NewModelError(op, "SVD did not converge", errors.ErrSingularMatrix)
	}

	rcond := lr.rcond
	if rcond < 0 {
		rcond = eps * float64(max(r, p))
	}
	rank := svd.Rank(rcond)
	if rank == 0 {
		return errors.NewModelError(op, "design matrix has rank 0", errors.ErrSingularMatrix)
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, mat.NewVecDense(r, append([]float64(nil), y...)), rank)

	coef := make([]float64, c)
	intercept := 0.0
	offset := 0
	if lr.fitIntercept {
		intercept = beta.AtVec(0)
		offset = 1
	}
	for j := 0; j < c; j++ {
		coef[j] = beta.AtVec(j + offset)
	}
	if err := errors.CheckFinite(op, coef); err != nil {
		return err
	}

	lr.coef = coef
	lr.intercept = intercept
	lr.rank = rank
	lr.singular = svd.Values(nil)
	lr.SetFitted(c)

	lr.logger.Debug("linear regression fitted",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.RankKey, rank,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	if rank < p {
		lr.logger.Debug("design matrix is rank deficient, using minimum-norm solution",
			log.RankKey, rank,
			"design.columns", p,
		)
	}
	return nil
}

// eps は float64 のマシンイプシロン
var eps = math.Nextafter(1, 2) - 1

// designMatrix は切片列を先頭に加えた計画行列を作る
func (lr *LinearRegression) designMatrix(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	if !lr.fitIntercept {
		return mat.DenseCopyOf(X)
	}

	design := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0) // 切片項
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})
	return design
}

// Predict は入力データに対する予測 intercept + X·coef を返す
//
// 列数が学習時と異なる場合は DimensionError を返す（先頭列だけを使うといった読み替えはしない）。
func (lr *LinearRegression) Predict(X mat.Matrix) ([]float64, error) {
	const op = "LinearRegression.Predict"

	r, c := X.Dims()
	if err := lr.CheckPredictable(modelName, "Predict", c); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errors.NewModelError(op, "X has no rows", errors.ErrEmptyData)
	}
	if err := errors.CheckMatrix(op, X); err != nil {
		return nil, err
	}

	var pred mat.VecDense
	pred.MulVec(X, mat.NewVecDense(c, lr.Coef()))

	out := make([]float64, r)
	for i := range out {
		out[i] = pred.AtVec(i) + lr.intercept
	}
	return out, nil
}

// Coef は学習された係数のコピーを返す（未学習なら nil）
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	return append([]float64(nil), lr.coef...)
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Rank は学習時の計画行列の実効ランクを返す
func (lr *LinearRegression) Rank() int {
	return lr.rank
}

// SingularValues は学習時の計画行列の特異値を降順で返す
func (lr *LinearRegression) SingularValues() []float64 {
	return append([]float64(nil), lr.singular...)
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X mat.Matrix, y []float64) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Evaluate(metrics.R2Score, y, yPred)
}

// GetParams はモデルのハイパーパラメータを返す
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"rcond":         lr.rcond,
	}
}

// String はモデルの文字列表現を返す
func (lr *LinearRegression) String() string {
	if !lr.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.fitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, rank=%d)",
		lr.fitIntercept, lr.NFeatures(), lr.rank)
}
