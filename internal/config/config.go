// Package config loads and validates the server configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mdserve/go-mdserve/internal/assets"
	"github.com/mdserve/go-mdserve/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// DefaultFile is searched in the working directory when no path is given.
const DefaultFile = "mdserve.yaml"

// Defaults.
const (
	DefaultAddr                 = ":8080"
	DefaultBodyLimitMB          = 10
	DefaultReadTimeoutSeconds   = 30
	DefaultWriteTimeoutSeconds  = 120
	DefaultRenderTimeoutSeconds = 30
)

// Config holds all server settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Convert ConvertConfig `yaml:"convert"`
}

// ServerConfig defines HTTP listener options.
type ServerConfig struct {
	Addr                string `yaml:"addr"`                // listen address (default ":8080")
	BodyLimitMB         int    `yaml:"bodyLimitMB"`         // max upload size in MB
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`  // request read timeout
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"` // response write timeout; generous, conversions stream late
}

// ConvertConfig defines conversion pipeline options.
type ConvertConfig struct {
	Workers              int    `yaml:"workers"`              // converter pool size (0 = auto from CPU count)
	Theme                string `yaml:"theme"`                // default theme name
	RenderTimeoutSeconds int    `yaml:"renderTimeoutSeconds"` // per browser render call
}

// Default returns a Config with every field at its default value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:                DefaultAddr,
			BodyLimitMB:         DefaultBodyLimitMB,
			ReadTimeoutSeconds:  DefaultReadTimeoutSeconds,
			WriteTimeoutSeconds: DefaultWriteTimeoutSeconds,
		},
		Convert: ConvertConfig{
			Theme:                assets.DefaultTheme,
			RenderTimeoutSeconds: DefaultRenderTimeoutSeconds,
		},
	}
}

// Load reads the config file at path. An empty path tries DefaultFile in the
// working directory and quietly falls back to defaults when it is absent; an
// explicit path that does not exist is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and that the configured theme exists.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr cannot be empty", ErrInvalidConfig)
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("%w: server.bodyLimitMB must be positive", ErrInvalidConfig)
	}
	if c.Server.ReadTimeoutSeconds <= 0 || c.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: server timeouts must be positive", ErrInvalidConfig)
	}
	if c.Convert.Workers < 0 {
		return fmt.Errorf("%w: convert.workers cannot be negative", ErrInvalidConfig)
	}
	if c.Convert.RenderTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: convert.renderTimeoutSeconds must be positive", ErrInvalidConfig)
	}
	if _, ok := assets.ThemeCSS(c.Convert.Theme); !ok {
		return fmt.Errorf("%w: unknown theme %q (available: %v)", ErrInvalidConfig, c.Convert.Theme, assets.Themes())
	}
	return nil
}
