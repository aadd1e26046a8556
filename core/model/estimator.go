package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit は特徴量行列 X と目的変数 y でモデルを学習させる
	Fit(X mat.Matrix, y []float64) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は X の各行に対する予測値を返す
	Predict(X mat.Matrix) ([]float64, error)
}

// LinearModel は線形モデルの学習済みパラメータを公開するインターフェース
type LinearModel interface {
	// Coef は学習された係数（特徴量ごと、学習時の列順）を返す
	Coef() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}

// Regressor は学習済みの線形回帰モデル
// シナリオ比較はこのインターフェースだけに依存する
type Regressor interface {
	Predictor
	LinearModel
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換した新しい行列を返す（入力は変更しない）
	Transform(X mat.Matrix) (*mat.Dense, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (*mat.Dense, error)
}
