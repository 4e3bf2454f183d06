package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/rpcdoc/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.MaxExpandDepth)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestNewServerConfig(t *testing.T) {
	app := config.Default()
	app.MCP.CacheSize = 3
	app.MCP.CacheTTL = time.Minute
	app.Expand.MaxDepth = 7

	c := newServerConfig(app)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 3, c.CacheMaxSize)
	assert.Equal(t, time.Minute, c.CacheTTL)
	assert.Equal(t, 7, c.MaxExpandDepth)
}

func TestNewServerConfig_ZeroCacheDisables(t *testing.T) {
	app := config.Default()
	app.MCP.CacheSize = 0
	app.Expand.MaxDepth = 0

	c := newServerConfig(app)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 100, c.MaxExpandDepth, "invalid depth falls back to the default")
}
