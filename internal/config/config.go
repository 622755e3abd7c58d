// Package config loads server settings from IMAGE_MCP_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/multierr"
)

// EnvPrefix is the prefix shared by every setting's environment variable.
const EnvPrefix = "IMAGE_MCP_"

// Config holds the server settings. Field tags name the environment
// variable without EnvPrefix.
type Config struct {
	// LogLevel is "debug" or "info". Any other value is read as "info".
	LogLevel string `env:"LOG_LEVEL"`

	// JPEGQuality is used when saving crops as JPEG (1-100).
	JPEGQuality int `env:"JPEG_QUALITY"`

	// MaxRequestBytes bounds a single JSON-RPC line on stdin.
	MaxRequestBytes int `env:"MAX_REQUEST_BYTES"`

	// PreviewColor is the default outline color for bounds previews.
	PreviewColor string `env:"PREVIEW_COLOR"`
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		LogLevel:        "info",
		JPEGQuality:     95,
		MaxRequestBytes: 1024 * 1024,
		PreviewColor:    "#FF0000",
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool { return c.LogLevel == "debug" }

// FromEnv reads the process environment.
func FromEnv() (Config, error) {
	return Load(os.Environ())
}

// Load builds a Config from KEY=VALUE pairs. Unset variables keep their
// defaults and every invalid setting is reported. Log levels other than
// debug (warn, error, ...) fall back to info.
func Load(environ []string) (Config, error) {
	values := make(map[string]interface{})
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) || val == "" {
			continue
		}
		values[strings.TrimPrefix(key, EnvPrefix)] = val
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(values); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	if strings.EqualFold(cfg.LogLevel, "debug") {
		cfg.LogLevel = "debug"
	} else {
		cfg.LogLevel = "info"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting and combines the failures.
func (c Config) Validate() error {
	var err error
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		err = multierr.Append(err, fmt.Errorf("%sJPEG_QUALITY: %d not in 1..100", EnvPrefix, c.JPEGQuality))
	}
	if c.MaxRequestBytes < 64*1024 {
		err = multierr.Append(err, fmt.Errorf("%sMAX_REQUEST_BYTES: %d below 65536", EnvPrefix, c.MaxRequestBytes))
	}
	if _, perr := colorful.Hex(c.PreviewColor); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%sPREVIEW_COLOR: %q is not #RRGGBB", EnvPrefix, c.PreviewColor))
	}
	return err
}
