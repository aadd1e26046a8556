// Package scenario はデータ処理の選択（平均補完と中央値補完、欠損行の削除など）が
// 回帰モデルの当てはめをどう変えるかを比較します。
//
// 各シナリオは生の特徴量行列を変換し、変換後に残った行へ目的変数を揃え、
// モデルを当てはめて同じ行で平均絶対誤差を測ります。誤差は学習データ上の値であり、
// 汎化性能ではなくデータ処理の選択に対する感度を示します。
package scenario

import (
	"math"
	"time"

	"github.com/YuminosukeSato/houseval/bootstrap"
	"github.com/YuminosukeSato/houseval/core/model"
	"github.com/YuminosukeSato/houseval/linear"
	"github.com/YuminosukeSato/houseval/metrics"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"github.com/YuminosukeSato/houseval/pkg/log"
	"github.com/YuminosukeSato/houseval/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Scenario は名前付きの変換
type Scenario struct {
	Name      string
	Transform Transform
}

// Defaults は mean_impute, median_impute, drop_missing の順にシナリオを返す
func Defaults() []Scenario {
	return []Scenario{
		{Name: "mean_impute", Transform: MeanImpute()},
		{Name: "median_impute", Transform: MedianImpute()},
		{Name: "drop_missing", Transform: DropMissing()},
	}
}

// FitFunc は処理済みの行列に回帰モデルを当てはめる
type FitFunc func(X mat.Matrix, y []float64) (model.Regressor, error)

// FitLinear は最小二乗法の FitFunc を返す
func FitLinear(opts ...linear.Option) FitFunc {
	return func(X mat.Matrix, y []float64) (model.Regressor, error) {
		lr, err := linear.FitModel(X, y, opts...)
		if err != nil {
			return nil, err
		}
		return lr, nil
	}
}

// Result は比較表の1行
type Result struct {
	Scenario     string
	MAE          float64
	Coefficients []float64
	Intercept    float64
	NSamples     int

	// WithBootstrap を指定しない場合は nil
	Interval *bootstrap.Result
}

// LeadingCoef は先頭の係数を返す（係数がなければ NaN）
//
// スカラーの要約値であり、残りの係数は Coefficients にある。
func (r Result) LeadingCoef() float64 {
	if len(r.Coefficients) == 0 {
		return math.NaN()
	}
	return r.Coefficients[0]
}

// Run は全シナリオを順に評価し、シナリオごとに1つの結果を返す
//
// 最初に失敗したシナリオで処理を中断し、そのエラーにはシナリオ名が含まれる。
// 失敗はエラーとして返し、debug より上のレベルではログに出さない。
func Run(XRaw mat.Matrix, y []float64, fit FitFunc, scenarios []Scenario, opts ...Option) (Table, error) {
	const op = "scenario.Run"

	cfg := &config{logger: log.GetLoggerWithName("scenario")}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateScenarios(op, scenarios); err != nil {
		return nil, err
	}
	if fit == nil {
		return nil, errors.NewInvalidArgumentError(op, "fit", nil)
	}

	n, c := XRaw.Dims()
	if n == 0 || c == 0 {
		return nil, errors.NewModelError(op, "XRaw has no rows or columns", errors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, errors.NewDimensionError(op, n, len(y), 0)
	}

	logger := cfg.logger.With(log.OperationKey, log.OperationScenarios)
	logger.Debug("running scenarios",
		log.ScenarioCountKey, len(scenarios),
		log.SamplesKey, n,
		log.FeaturesKey, c,
		log.MissingKey, preprocessing.CountMissing(XRaw),
	)

	table := make(Table, 0, len(scenarios))
	for i, s := range scenarios {
		res, err := runOne(XRaw, y, fit, s, cfg)
		if err != nil {
			logger.Debug("scenario failed",
				log.ScenarioKey, s.Name,
				log.ScenarioIndexKey, i,
				log.ErrAttrKey, err,
			)
			return nil, err
		}
		table = append(table, res)
	}
	return table, nil
}

func validateScenarios(op string, scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return errors.NewInvalidArgumentError(op, "scenarios", "empty list")
	}
	seen := make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		if s.Name == "" {
			return errors.NewInvalidArgumentError(op, "scenario name", `""`)
		}
		if seen[s.Name] {
			return errors.NewInvalidArgumentError(op, "scenario name", s.Name, "unique names")
		}
		seen[s.Name] = true
		if s.Transform == nil {
			return errors.NewInvalidArgumentError(op, "transform", s.Name)
		}
	}
	return nil
}

func runOne(XRaw mat.Matrix, y []float64, fit FitFunc, s Scenario, cfg *config) (Result, error) {
	const op = "scenario.Run"
	start := time.Now()
	n, _ := XRaw.Dims()

	var (
		X    *mat.Dense
		rows []int
	)
	err := errors.SafeExecute(op, func() error {
		var err error
		X, rows, err = s.Transform(XRaw)
		return err
	})
	if err != nil {
		return Result{}, errors.Wrapf(err, "scenario %q: transform", s.Name)
	}

	ys, err := align(op, s.Name, n, X, rows, y)
	if err != nil {
		return Result{}, err
	}

	var m model.Regressor
	err = errors.SafeExecute(op, func() error {
		var err error
		m, err = fit(X, ys)
		return err
	})
	if err != nil {
		return Result{}, errors.Wrapf(err, "scenario %q: fit", s.Name)
	}

	pred, err := m.Predict(X)
	if err != nil {
		return Result{}, errors.Wrapf(err, "scenario %q: predict", s.Name)
	}

	mae, err := metrics.Evaluate(metrics.MAE, ys, pred)
	if err != nil {
		return Result{}, errors.Wrapf(err, "scenario %q: mae", s.Name)
	}

	res := Result{
		Scenario:     s.Name,
		MAE:          mae,
		Coefficients: m.Coef(),
		Intercept:    m.Intercept(),
		NSamples:     len(ys),
	}

	if cfg.withCI {
		ci, err := bootstrap.Evaluate(ys, pred, metrics.MAE, cfg.bootstrap...)
		if err != nil {
			return Result{}, errors.Wrapf(err, "scenario %q: bootstrap", s.Name)
		}
		res.Interval = &ci
	}

	cfg.logger.Debug("scenario evaluated",
		log.ScenarioKey, s.Name,
		log.SamplesKey, res.NSamples,
		log.DroppedRowsKey, n-res.NSamples,
		log.MAEKey, res.MAE,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// align は変換後に残った行の目的変数を返す
func align(op, name string, n int, X *mat.Dense, rows []int, y []float64) ([]float64, error) {
	if X == nil || X.IsEmpty() {
		return nil, errors.NewAlignmentError(op, name, 0, n, "transform returned no rows")
	}

	xr, _ := X.Dims()
	if xr > n {
		return nil, errors.NewAlignmentError(op, name, xr, n, "transform added rows")
	}
	if rows == nil {
		if xr != n {
			return nil, errors.NewAlignmentError(op, name, xr, n, "row count changed without row indices")
		}
		return append([]float64(nil), y...), nil
	}
	if len(rows) != xr {
		return nil, errors.NewAlignmentError(op, name, xr, len(rows), "row indices do not match transformed rows")
	}

	prev := -1
	for _, i := range rows {
		if i < 0 || i >= n {
			return nil, errors.NewAlignmentError(op, name, xr, n, "row index out of range")
		}
		if i <= prev {
			return nil, errors.NewAlignmentError(op, name, xr, n, "row indices not strictly increasing")
		}
		prev = i
	}
	return preprocessing.SelectRows(y, rows), nil
}
