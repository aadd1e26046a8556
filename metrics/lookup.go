package metrics

import (
	"sort"

	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var registry = map[string]Func{
	"mae":       MAE,
	"mse":       MSE,
	"rmse":      RMSE,
	"r2":        R2Score,
	"median_ae": MedianAbsoluteError,
	"max_error": MaxError,
	"mape":      MAPE,

	"explained_variance": ExplainedVarianceScore,
}

// Names は Lookup が受け付ける指標名をソート済みで返す
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup は名前から評価指標を取得する
//
// 未知の名前は ErrInvalidArgument としてマークされたエラーになる。
func Lookup(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, errors.NewInvalidArgumentError("Lookup", "metric", name, Names()...)
	}
	return fn, nil
}

// Evaluate はスライス入力に対して指標を計算する
func Evaluate(metric Func, yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewModelError("Evaluate", "yTrue has length 0", errors.ErrEmptyData)
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Evaluate", len(yTrue), len(yPred), 0)
	}
	return metric(mat.NewVecDense(len(yTrue), yTrue), mat.NewVecDense(len(yPred), yPred))
}
