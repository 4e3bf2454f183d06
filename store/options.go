package store

import (
	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/resolve"
)

// Option configures a Store.
type Option func(*config)

type config struct {
	logger         openrpc.Logger
	maxExpandDepth int
}

// WithLogger sets a structured logger for the store and its resolver.
// Default: openrpc.NopLogger
func WithLogger(l openrpc.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithMaxExpandDepth limits how many reference hops schema expansion follows
// along one path. Values <= 0 keep the default.
// Default: 100
func WithMaxExpandDepth(n int) Option {
	return func(cfg *config) {
		cfg.maxExpandDepth = n
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{maxExpandDepth: resolve.DefaultMaxDepth}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.logger = openrpc.LoggerOrNop(cfg.logger)
	return cfg
}
