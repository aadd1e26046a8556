// Package log defines standard attribute keys for evaluation operations.
//
// Keys follow a hierarchical naming convention ("data.samples",
// "bootstrap.ci_lower") so that log lines from the fitter, the bootstrap
// evaluator and the scenario runner can be filtered together.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values are the Operation* constants below.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package emitted the record.
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase ("training", "evaluation", ...).
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey is the number of rows processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// MissingKey is the number of missing (NaN) entries seen.
	MissingKey = "data.missing"

	// DroppedRowsKey is the number of rows removed by a transform.
	DroppedRowsKey = "data.dropped_rows"

	// RankKey is the effective rank of a design matrix.
	RankKey = "data.rank"
)

// Performance and Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey is the number of goroutines used for a parallel section.
	WorkersKey = "perf.workers"

	// MetricKey names the metric being computed ("mae", "rmse", ...).
	MetricKey = "metrics.name"

	// MAEKey records a mean absolute error.
	MAEKey = "metrics.mae"

	// R2ScoreKey records R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"
)

// Bootstrap
const (
	// IterationsKey is the number of bootstrap resamples.
	IterationsKey = "bootstrap.iterations"

	// ConfidenceKey is the two-sided confidence level, e.g. 0.95.
	ConfidenceKey = "bootstrap.confidence"

	// MeanKey is the mean of the resampled metric.
	MeanKey = "bootstrap.mean"

	// CILowerKey and CIUpperKey are the percentile interval bounds.
	CILowerKey = "bootstrap.ci_lower"
	CIUpperKey = "bootstrap.ci_upper"

	// RandomSeedKey records the seed used for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Scenario
const (
	// ScenarioKey is the name of the scenario being evaluated.
	ScenarioKey = "scenario.name"

	// ScenarioIndexKey is the position of the scenario in the input order.
	ScenarioIndexKey = "scenario.index"

	// ScenarioCountKey is the number of scenarios in a run.
	ScenarioCountKey = "scenario.count"
)

// Error Context
const (
	// ErrAttrKey is the field under which errors are logged.
	ErrAttrKey = "error"

	// StacktraceAttrKey carries the cockroachdb stack trace of ErrAttrKey.
	StacktraceAttrKey = "stacktrace"

	// ErrorDetailKey carries the structured fields of a typed error.
	ErrorDetailKey = "error.detail"

	// ErrorCodeKey provides a structured error code, see the Error* constants.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationImpute    = "impute"
	OperationBootstrap = "bootstrap"
	OperationScenarios = "scenarios"
	OperationPlot      = "plot"

	PhaseTraining      = "training"
	PhaseEvaluation    = "evaluation"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidArgument   = "INVALID_ARGUMENT"
	ErrorAlignment         = "ALIGNMENT"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
