package report

import (
	"gonum.org/v1/plot/vg"
)

type config struct {
	format string
	width  vg.Length
	height vg.Length
	title  string
	bins   int
}

func newConfig(title string, opts []Option) *config {
	cfg := &config{
		format: "png",
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
		title:  title,
		bins:   30,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a chart.
type Option func(*config)

// WithFormat selects the image encoding, "png" or "svg".
func WithFormat(format string) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// WithTitle overrides the chart title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithBins sets the number of histogram bins.
func WithBins(n int) Option {
	return func(c *config) {
		c.bins = n
	}
}
