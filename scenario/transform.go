package scenario

import (
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"github.com/YuminosukeSato/houseval/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Transform は生の特徴量行列を処理済みの行列に変換する
//
// rows は出力の各行に対応する元の行番号を狭義単調増加で並べたもの。
// nil の場合、出力は入力と同じ行を同じ順に持つ。
// 変換は X を変更してはならず、行を追加してはならない。
type Transform func(X mat.Matrix) (cleaned *mat.Dense, rows []int, err error)

// Identity は行列をそのまま返す
func Identity() Transform {
	return func(X mat.Matrix) (*mat.Dense, []int, error) {
		return mat.DenseCopyOf(X), nil, nil
	}
}

// Impute は列ごとに strategy で欠損値を補完する
func Impute(strategy preprocessing.Strategy) Transform {
	return func(X mat.Matrix) (*mat.Dense, []int, error) {
		out, err := preprocessing.ImputeColumns(X, strategy)
		return out, nil, err
	}
}

// MeanImpute は列平均で欠損値を補完する
func MeanImpute() Transform {
	return Impute(preprocessing.Mean)
}

// MedianImpute は列の中央値で欠損値を補完する
func MedianImpute() Transform {
	return Impute(preprocessing.Median)
}

// DropMissing は欠損値を含む行を削除する
func DropMissing() Transform {
	return func(X mat.Matrix) (*mat.Dense, []int, error) {
		return preprocessing.DropMissingRows(X)
	}
}

// MinMaxScaled は inner を適用した後、各列を [0, 1] にスケーリングする
func MinMaxScaled(inner Transform) Transform {
	return Chain(inner, func(X mat.Matrix) (*mat.Dense, []int, error) {
		out, err := preprocessing.NewMinMaxScalerDefault().FitTransform(X)
		return out, nil, err
	})
}

// Winsorized は inner を適用した後、各列を下側・上側の分位点で切り詰める
func Winsorized(lower, upper float64, inner Transform) Transform {
	return Chain(inner, func(X mat.Matrix) (*mat.Dense, []int, error) {
		out, err := preprocessing.WinsorizeColumns(X, lower, upper)
		return out, nil, err
	})
}

// OutliersDropped は inner を適用した後、column の値が外れ値である行を削除する
//
// param は IQR 法では k、Zスコア法では閾値。
func OutliersDropped(column int, method preprocessing.OutlierMethod, param float64, inner Transform) Transform {
	return Chain(inner, func(X mat.Matrix) (*mat.Dense, []int, error) {
		return preprocessing.DropOutlierRows(X, column, method, param)
	})
}

// Chain は変換を左から順に適用し、行番号を合成して元の入力の行を指すようにする
func Chain(transforms ...Transform) Transform {
	return func(X mat.Matrix) (*mat.Dense, []int, error) {
		out := mat.DenseCopyOf(X)
		var rows []int
		for _, t := range transforms {
			next, nextRows, err := t(out)
			if err != nil {
				return nil, nil, err
			}
			if rows, err = composeRows(rows, nextRows); err != nil {
				return nil, nil, err
			}
			out = next
		}
		return out, rows, nil
	}
}

// composeRows は中間結果の行番号を元の行番号に戻す
func composeRows(outer, inner []int) ([]int, error) {
	switch {
	case inner == nil:
		return outer, nil
	case outer == nil:
		return inner, nil
	}
	rows := make([]int, len(inner))
	for k, i := range inner {
		if i < 0 || i >= len(outer) {
			return nil, errors.NewAlignmentError("scenario.Chain", "", len(inner), len(outer), "row index out of range")
		}
		rows[k] = outer[i]
	}
	return rows, nil
}
