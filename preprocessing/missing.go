package preprocessing

import (
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CountMissing は行列に含まれる欠損値の数を返す
func CountMissing(X mat.Matrix) int {
	r, c := X.Dims()
	n := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if IsMissing(X.At(i, j)) {
				n++
			}
		}
	}
	return n
}

// DropMissingRows は欠損値を一つでも含む行を取り除いた行列を返す
//
// 戻り値の kept は残った行の元のインデックス（昇順）で、目的変数を同じ行に揃えるために使う。
// 全ての行が取り除かれた場合は前提条件違反のエラーを返す。
func DropMissingRows(X mat.Matrix) (*mat.Dense, []int, error) {
	const op = "DropMissingRows"

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, errors.NewModelError(op, "X has no rows or columns", errors.ErrEmptyData)
	}

	kept := make([]int, 0, r)
	for i := 0; i < r; i++ {
		complete := true
		for j := 0; j < c; j++ {
			if IsMissing(X.At(i, j)) {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return nil, nil, errors.NewModelError(op, "every row has a missing value", errors.ErrEmptyData)
	}

	result := mat.NewDense(len(kept), c, nil)
	for k, i := range kept {
		for j := 0; j < c; j++ {
			result.Set(k, j, X.At(i, j))
		}
	}
	return result, kept, nil
}

// SelectRows は indices の順に y の要素を取り出した新しいスライスを返す
func SelectRows(y []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for k, i := range indices {
		out[k] = y[i]
	}
	return out
}
