package resolve

import "github.com/erraggy/rpcdoc/openrpc"

// DefaultMaxDepth is the default limit on nested reference hops followed
// by the Expander along a single path.
const DefaultMaxDepth = 100

// Option configures a Resolver or Expander.
type Option func(*config)

type config struct {
	logger   openrpc.Logger
	maxDepth int
}

func newConfig(opts []Option) *config {
	cfg := &config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.logger = openrpc.LoggerOrNop(cfg.logger)
	return cfg
}

// WithLogger sets a structured logger for cache and expansion diagnostics.
// Default: openrpc.NopLogger
func WithLogger(l openrpc.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithMaxDepth limits how many reference hops the Expander follows along one
// path before giving up with a "max depth exceeded" stub. Values <= 0 keep
// the default.
// Default: 100
func WithMaxDepth(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDepth = n
		}
	}
}
