package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/houseval/core/model"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MinMaxScaler はデータを指定した範囲（デフォルト[0,1]）にスケーリングする
//
// 欠損値（NaN）は最小値・最大値の計算から除外され、変換後も NaN のまま残る。
// そのため補完の前後どちらにも適用できる。
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin は学習データの各列の最小値
	DataMin []float64

	// DataMax は学習データの各列の最大値
	DataMax []float64

	// Scale は各列の (max - min)。定数列では 1
	Scale []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	XScaled, err := scaler.FitTransform(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: featureRange}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は各列の観測値から最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	const op = "MinMaxScaler.Fit"

	if m.FeatureRange[0] >= m.FeatureRange[1] {
		return errors.NewInvalidArgumentError(op, "feature_range", m.FeatureRange)
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "X has no rows or columns", errors.ErrEmptyData)
	}

	dataMin := make([]float64, c)
	dataMax := make([]float64, c)
	scale := make([]float64, c)

	for j := 0; j < c; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if IsMissing(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if math.IsInf(lo, 1) {
			return errors.NewModelError(op, fmt.Sprintf("column %d: all values are missing", j), errors.ErrNoObservedValues)
		}

		dataMin[j] = lo
		dataMax[j] = hi

		// 定数列はスケール1として扱う
		if dataRange := hi - lo; math.Abs(dataRange) < 1e-8 {
			scale[j] = 1.0
		} else {
			scale[j] = dataRange
		}
	}

	m.DataMin, m.DataMax, m.Scale = dataMin, dataMax, scale
	m.SetFitted(c)
	return nil
}

// Transform は学習済みの最小値・最大値でデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	if err := m.CheckPredictable("MinMaxScaler", "Transform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if IsMissing(v) {
				result.Set(i, j, v)
				continue
			}
			// X_scaled = (X - X.min) / (X.max - X.min) * (max - min) + min
			result.Set(i, j, (v-m.DataMin[j])/m.Scale[j]*featureRange+m.FeatureRange[0])
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	if err := m.CheckPredictable("MinMaxScaler", "InverseTransform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if IsMissing(v) {
				result.Set(i, j, v)
				continue
			}
			result.Set(i, j, (v-m.FeatureRange[0])/featureRange*m.Scale[j]+m.DataMin[j])
		}
	}
	return result, nil
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures())
}
