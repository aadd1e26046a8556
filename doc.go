// Package houseval evaluates housing-price regressions: missing-value
// imputation, ordinary least squares, regression metrics, percentile
// bootstrap intervals and scenario sensitivity comparisons.
//
// # Quick Start
//
// Compare how cleaning choices change a fitted model:
//
//	package main
//
//	import (
//	    "log"
//	    "math"
//	    "os"
//
//	    "github.com/YuminosukeSato/houseval/bootstrap"
//	    "github.com/YuminosukeSato/houseval/scenario"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(5, 1, []float64{1, 2, math.NaN(), 4, 5})
//	    y := []float64{2, 4, 6, 8, 10}
//
//	    table, err := scenario.Run(X, y, scenario.FitLinear(), scenario.Defaults(),
//	        scenario.WithBootstrap(bootstrap.WithSeed(42)))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    table.WriteTo(os.Stdout)
//	}
//
// # Packages
//
//   - preprocessing: mean/median imputation, SimpleImputer, DropMissingRows,
//     MinMaxScaler, IQR and z-score outliers, winsorizing
//   - linear: LinearRegression solved by SVD least squares
//   - metrics: MAE, MSE, RMSE, R², median absolute error, max error, Lookup
//   - bootstrap: percentile bootstrap intervals for any metrics.Func
//   - scenario: ordered scenario runner with target realignment
//   - report: histogram and bar charts rendered with gonum/plot
//   - core/model: estimator state, interfaces, weight persistence
//   - core/parallel: chunked fan-out over CPU cores
//   - pkg/errors: error categories over cockroachdb/errors
//   - pkg/log: Logger interface with a zerolog backend
//
// # Error Handling
//
// Every error carries a stack trace and one of three categories:
//
//	if errors.Is(err, errors.ErrPreconditionViolation) { ... } // empty input, dimension mismatch
//	if errors.Is(err, errors.ErrInvalidArgument) { ... }       // unknown name, bad option
//	if errors.Is(err, errors.ErrAlignment) { ... }             // transform broke row alignment
//
// # Reproducibility
//
// Bootstrap resampling is driven by an injected generator
// (bootstrap.WithSeed or bootstrap.WithSource). A fixed seed gives identical
// output for any number of workers.
package houseval
