package mcpserver

import (
	"time"

	"github.com/erraggy/rpcdoc/internal/config"
	"github.com/erraggy/rpcdoc/resolve"
)

// serverConfig holds all configurable MCP server defaults.
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Expansion depth for every store the server loads.
	MaxExpandDepth int

	// Listing defaults.
	ListLimit int
	MaxLimit  int

	// Largest inline document accepted by the content input.
	MaxInlineSize int64
}

// cfg is the active server configuration. Run replaces it from the
// application config before any tool is registered.
var cfg = defaultConfig()

func defaultConfig() *serverConfig {
	return newServerConfig(config.Default())
}

// newServerConfig derives server settings from the application config.
// A cache size of zero disables caching.
func newServerConfig(c *config.Config) *serverConfig {
	depth := c.Expand.MaxDepth
	if depth <= 0 {
		depth = resolve.DefaultMaxDepth
	}
	return &serverConfig{
		CacheEnabled:       c.MCP.CacheSize > 0,
		CacheMaxSize:       c.MCP.CacheSize,
		CacheTTL:           c.MCP.CacheTTL,
		CacheSweepInterval: 60 * time.Second,
		MaxExpandDepth:     depth,
		ListLimit:          100,
		MaxLimit:           1000,
		MaxInlineSize:      10 * 1024 * 1024,
	}
}
