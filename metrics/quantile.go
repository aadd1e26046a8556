package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/houseval/pkg/errors"
)

// quantileSorted は昇順に並んだ値の p 分位点を線形補間で返す
// 位置は h = (n-1)p（numpy.percentile の既定、R の type 7 と同じ）
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Quantile は NaN を除いた値の p 分位点（0 <= p <= 1）を返す
//
// 入力は変更しない。
func Quantile(values []float64, p float64) (float64, error) {
	const op = "Quantile"

	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, errors.NewInvalidArgumentError(op, "p", p, "[0, 1]")
	}

	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return 0, errors.NewModelError(op, "all values are NaN", errors.ErrNoObservedValues)
	}

	sort.Float64s(sorted)
	return quantileSorted(sorted, p), nil
}

// Median は NaN を除いた値の中央値を返す（偶数個なら中央2値の平均）
func Median(values []float64) (float64, error) {
	return Quantile(values, 0.5)
}
