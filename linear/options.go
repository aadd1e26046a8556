package linear

import "github.com/YuminosukeSato/houseval/pkg/log"

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept.
// When false the model passes through the origin and Intercept() is 0.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithRcond sets the relative cutoff below which singular values of the
// design matrix are treated as zero. A negative value selects
// machine epsilon times max(n_samples, n_columns).
func WithRcond(rcond float64) Option {
	return func(lr *LinearRegression) {
		lr.rcond = rcond
	}
}

// WithLogger sets the logger used for fit diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		if logger != nil {
			lr.logger = logger
		}
	}
}
