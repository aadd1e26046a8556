package scenario

import (
	"github.com/YuminosukeSato/houseval/bootstrap"
	"github.com/YuminosukeSato/houseval/pkg/log"
)

type config struct {
	bootstrap []bootstrap.Option
	withCI    bool
	logger    log.Logger
}

// Option configures Run.
type Option func(*config)

// WithBootstrap attaches a bootstrap MAE interval to every result.
func WithBootstrap(opts ...bootstrap.Option) Option {
	return func(c *config) {
		c.withCI = true
		c.bootstrap = append(c.bootstrap, opts...)
	}
}

// WithLogger sets the logger for per-scenario records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
