package bootstrap

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/houseval/pkg/log"
)

const (
	// DefaultNBoot is the number of resamples used when WithNBoot is not given.
	DefaultNBoot = 1000

	// DefaultConfidence is the two-sided confidence level of the interval.
	DefaultConfidence = 0.95
)

type config struct {
	nBoot      int
	confidence float64
	nJobs      int
	source     rand.Source
	seed       *uint64
	logger     log.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		nBoot:      DefaultNBoot,
		confidence: DefaultConfidence,
		nJobs:      1,
		logger:     log.GetLoggerWithName("bootstrap"),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures Evaluate and Distribution.
type Option func(*config)

// WithNBoot sets the number of resamples B.
func WithNBoot(n int) Option {
	return func(c *config) {
		c.nBoot = n
	}
}

// WithSeed makes the resampling reproducible.
// It overrides any earlier WithSource.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		s := seed
		c.seed = &s
		c.source = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithSource injects the generator that drives resampling.
// The source is advanced by every call it is passed to.
func WithSource(src rand.Source) Option {
	return func(c *config) {
		c.source = src
		c.seed = nil
	}
}

// WithConfidence sets the two-sided confidence level, 0 < level < 1.
// 0.95 yields the 2.5th and 97.5th percentiles.
func WithConfidence(level float64) Option {
	return func(c *config) {
		c.confidence = level
	}
}

// WithNJobs sets the number of worker goroutines. -1 uses every CPU core.
// Results do not depend on the worker count.
func WithNJobs(n int) Option {
	return func(c *config) {
		c.nJobs = n
	}
}

// WithLogger sets the logger for run summaries.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
