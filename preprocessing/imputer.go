package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/houseval/core/model"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SimpleImputer は列ごとの補完値を学習する欠損値補完器
type SimpleImputer struct {
	model.BaseEstimator

	// Strategy は補完に使う統計量
	Strategy Strategy

	// Statistics は学習した列ごとの補完値
	Statistics []float64
}

// NewSimpleImputer は新しいSimpleImputerを作成する
//
// 使用例:
//
//	imputer := preprocessing.NewSimpleImputer(preprocessing.Median)
//	XFilled, err := imputer.FitTransform(X)
func NewSimpleImputer(strategy Strategy) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

// Fit は各列の観測値から補完値を計算する
//
// いずれかの列が全て欠損している場合はエラーを返し、状態は変更しない。
func (s *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "X has no rows or columns", errors.ErrEmptyData)
	}

	stats := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		fill, err := FillValue(col, s.Strategy)
		if err != nil {
			return errors.Wrapf(err, "column %d", j)
		}
		stats[j] = fill
	}

	s.Statistics = stats
	s.SetFitted(c)
	return nil
}

// Transform は学習済みの補完値で欠損値を置き換える
func (s *SimpleImputer) Transform(X mat.Matrix) (*mat.Dense, error) {
	_, c := X.Dims()
	if err := s.CheckPredictable("SimpleImputer", "Transform", c); err != nil {
		return nil, err
	}

	result := mat.DenseCopyOf(X)
	r, _ := result.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if IsMissing(result.At(i, j)) {
				result.Set(i, j, s.Statistics[j])
			}
		}
	}
	return result, nil
}

// FitTransform は学習と変換を同時に行う
func (s *SimpleImputer) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// String は補完器の文字列表現を返す
func (s *SimpleImputer) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("SimpleImputer(strategy=%s)", s.Strategy)
	}
	return fmt.Sprintf("SimpleImputer(strategy=%s, n_features=%d)", s.Strategy, s.NFeatures())
}
