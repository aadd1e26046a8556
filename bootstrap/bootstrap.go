// Package bootstrap は (yTrue, yPred) のペアを復元抽出で再標本化し、
// 回帰評価指標のパーセンタイル信頼区間を推定します。
package bootstrap

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/houseval/core/parallel"
	"github.com/YuminosukeSato/houseval/metrics"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"github.com/YuminosukeSato/houseval/pkg/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Result はブートストラップ分布の要約
type Result struct {
	Mean    float64 `json:"mean"`
	CILower float64 `json:"ci_lower"`
	CIUpper float64 `json:"ci_upper"`
}

// String は "mean [lower, upper]" 形式で結果を整形する
func (r Result) String() string {
	return fmt.Sprintf("%.4f [%.4f, %.4f]", r.Mean, r.CILower, r.CIUpper)
}

// Width は CIUpper - CILower を返す
func (r Result) Width() float64 {
	return r.CIUpper - r.CILower
}

// Evaluate はペア入力の B 個の再標本で指標を計算し、
// その平均とパーセンタイル区間を返す
//
// 使用例:
//
//	res, err := bootstrap.Evaluate(y, pred, metrics.MAE,
//		bootstrap.WithNBoot(2000), bootstrap.WithSeed(42))
func Evaluate(yTrue, yPred []float64, metric metrics.Func, opts ...Option) (Result, error) {
	cfg := newConfig(opts)

	samples, err := distribution(yTrue, yPred, metric, cfg)
	if err != nil {
		return Result{}, err
	}

	res, err := Summarize(samples, cfg.confidence)
	if err != nil {
		return Result{}, err
	}

	cfg.logger.Debug("bootstrap interval computed",
		log.OperationKey, log.OperationBootstrap,
		log.IterationsKey, cfg.nBoot,
		log.ConfidenceKey, cfg.confidence,
		log.MeanKey, res.Mean,
		log.CILowerKey, res.CILower,
		log.CIUpperKey, res.CIUpper,
	)
	return res, nil
}

// Distribution は B 個の再標本の指標値を再標本の順に返す
func Distribution(yTrue, yPred []float64, metric metrics.Func, opts ...Option) ([]float64, error) {
	return distribution(yTrue, yPred, metric, newConfig(opts))
}

// Summarize は再標本の指標値を Result に集約する
func Summarize(samples []float64, confidence float64) (Result, error) {
	const op = "bootstrap.Summarize"

	if len(samples) == 0 {
		return Result{}, errors.NewModelError(op, "samples has length 0", errors.ErrEmptyData)
	}
	if err := validateConfidence(op, confidence); err != nil {
		return Result{}, err
	}

	alpha := (1 - confidence) / 2
	lower, err := metrics.Quantile(samples, alpha)
	if err != nil {
		return Result{}, err
	}
	upper, err := metrics.Quantile(samples, 1-alpha)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Mean:    stat.Mean(samples, nil),
		CILower: lower,
		CIUpper: upper,
	}, nil
}

func validateConfidence(op string, confidence float64) error {
	if math.IsNaN(confidence) || confidence <= 0 || confidence >= 1 {
		return errors.NewInvalidArgumentError(op, "confidence", confidence, "(0, 1)")
	}
	return nil
}

func distribution(yTrue, yPred []float64, metric metrics.Func, cfg *config) ([]float64, error) {
	const op = "bootstrap.Distribution"
	start := time.Now()

	n := len(yTrue)
	if n == 0 {
		return nil, errors.NewModelError(op, "yTrue has length 0", errors.ErrEmptyData)
	}
	if len(yPred) != n {
		return nil, errors.NewDimensionError(op, n, len(yPred), 0)
	}
	if metric == nil {
		return nil, errors.NewInvalidArgumentError(op, "metric", nil)
	}
	if cfg.nBoot < 1 {
		return nil, errors.NewInvalidArgumentError(op, "n_boot", cfg.nBoot, ">= 1")
	}
	if err := validateConfidence(op, cfg.confidence); err != nil {
		return nil, err
	}

	src := cfg.source
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	// 各再標本はマスターから順にシードされた専用の乱数生成器を持つ。
	// 出力はワーカーへの分割方法に依存しない。
	master := rand.New(src)
	seeds := make([][2]uint64, cfg.nBoot)
	for b := range seeds {
		seeds[b] = [2]uint64{master.Uint64(), master.Uint64()}
	}

	workers := parallel.Workers(cfg.nJobs)
	samples := make([]float64, cfg.nBoot)

	err := parallel.ParallelizeErr(cfg.nBoot, workers, func(lo, hi int) error {
		trueBuf := make([]float64, n)
		predBuf := make([]float64, n)

		for b := lo; b < hi; b++ {
			rng := rand.New(rand.NewPCG(seeds[b][0], seeds[b][1]))
			for i := 0; i < n; i++ {
				idx := rng.IntN(n)
				trueBuf[i] = yTrue[idx]
				predBuf[i] = yPred[idx]
			}

			var value float64
			err := errors.SafeExecute(op, func() error {
				var err error
				value, err = metric(mat.NewVecDense(n, trueBuf), mat.NewVecDense(n, predBuf))
				return err
			})
			if err != nil {
				return errors.Wrapf(err, "resample %d", b)
			}
			samples[b] = value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := errors.CheckFinite(op, samples); err != nil {
		return nil, err
	}

	fields := []any{
		log.OperationKey, log.OperationBootstrap,
		log.SamplesKey, n,
		log.IterationsKey, cfg.nBoot,
		log.WorkersKey, workers,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if cfg.seed != nil {
		fields = append(fields, log.RandomSeedKey, *cfg.seed)
	}
	cfg.logger.Debug("bootstrap resampling finished", fields...)

	return samples, nil
}
