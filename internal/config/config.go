// Package config loads application settings for the rpcdoc command from an
// optional rpcdoc.yaml file and RPCDOC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/erraggy/rpcdoc/rpcerrors"
)

// EnvPrefix is prepended to every environment variable override.
// "serve.addr" is read from RPCDOC_SERVE_ADDR.
const EnvPrefix = "RPCDOC"

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServeConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ExpandConfig struct {
	MaxDepth int `mapstructure:"max_depth"`
}

type MCPConfig struct {
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// Config is the decoded application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Serve  ServeConfig  `mapstructure:"serve"`
	Expand ExpandConfig `mapstructure:"expand"`
	MCP    MCPConfig    `mapstructure:"mcp"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Serve:  ServeConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Expand: ExpandConfig{MaxDepth: 100},
		MCP:    MCPConfig{CacheSize: 10, CacheTTL: 15 * time.Minute},
	}
}

// configDir returns the per-user configuration directory for rpcdoc.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rpcdoc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "rpcdoc")
	}
	return ""
}

// NewViper returns a viper instance with rpcdoc's search paths, defaults and
// environment binding applied. When file is non-empty it is used instead of
// the search paths and must exist.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("rpcdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.shutdown_timeout", d.Serve.ShutdownTimeout)
	v.SetDefault("expand.max_depth", d.Expand.MaxDepth)
	v.SetDefault("mcp.cache_size", d.MCP.CacheSize)
	v.SetDefault("mcp.cache_ttl", d.MCP.CacheTTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file (if any), applies environment overrides
// and decodes the result. A missing file in the search paths is not an error.
func Load(file string) (*Config, error) {
	return LoadFrom(NewViper(file))
}

// LoadFrom decodes the settings held by v, reading its config file first.
func LoadFrom(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting outside its accepted range.
func (c *Config) Validate() error {
	switch {
	case !oneOf(strings.ToLower(c.Log.Level), "trace", "debug", "info", "warn", "warning", "error"):
		return &rpcerrors.ConfigError{Option: "log.level", Value: c.Log.Level, Message: "unknown log level"}
	case !oneOf(strings.ToLower(c.Log.Format), "text", "json"):
		return &rpcerrors.ConfigError{Option: "log.format", Value: c.Log.Format, Message: "must be text or json"}
	case c.Serve.Addr == "":
		return &rpcerrors.ConfigError{Option: "serve.addr", Message: "cannot be empty"}
	case c.Serve.ShutdownTimeout <= 0:
		return &rpcerrors.ConfigError{Option: "serve.shutdown_timeout", Value: c.Serve.ShutdownTimeout, Message: "must be positive"}
	case c.Expand.MaxDepth <= 0:
		return &rpcerrors.ConfigError{Option: "expand.max_depth", Value: c.Expand.MaxDepth, Message: "must be positive"}
	case c.MCP.CacheSize < 0:
		return &rpcerrors.ConfigError{Option: "mcp.cache_size", Value: c.MCP.CacheSize, Message: "cannot be negative"}
	case c.MCP.CacheTTL <= 0:
		return &rpcerrors.ConfigError{Option: "mcp.cache_ttl", Value: c.MCP.CacheTTL, Message: "must be positive"}
	}
	return nil
}

func oneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
