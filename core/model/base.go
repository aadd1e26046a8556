package model

import "github.com/YuminosukeSato/houseval/pkg/errors"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルの基底となる構造体
// 学習状態と学習時の特徴量数を保持する
type BaseEstimator struct {
	state     EstimatorState
	nFeatures int
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定し、学習時の特徴量数を記録する
func (e *BaseEstimator) SetFitted(nFeatures int) {
	e.state = Fitted
	e.nFeatures = nFeatures
}

// NFeatures は学習時の特徴量数を返す（未学習なら0）
func (e *BaseEstimator) NFeatures() int {
	return e.nFeatures
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.nFeatures = 0
}

// CheckPredictable は学習済みであること、および列数が学習時と一致することを検証する
//
// 列数が異なる場合は先頭列だけを使うといった読み替えはせず、必ずエラーを返す。
func (e *BaseEstimator) CheckPredictable(modelName, method string, cols int) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	if cols != e.nFeatures {
		return errors.NewDimensionError(modelName+"."+method, e.nFeatures, cols, 1)
	}
	return nil
}
