// Package config loads nodetypes configuration: defaults, an optional
// nodetypes.toml project file, and NODETYPES_* environment variables,
// in increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/grammarkit/nodetypes/errors"
)

// Config is the resolved tool configuration.
type Config struct {
	// Manifest is the path to the dependency manifest.
	Manifest string `mapstructure:"manifest"`

	// Output is the directory declaration files are written to.
	Output string `mapstructure:"output"`

	HTTP HTTPConfig `mapstructure:"http"`
	Log  LogConfig  `mapstructure:"log"`
}

// HTTPConfig configures schema downloads.
type HTTPConfig struct {
	// TimeoutSeconds bounds each fetch. 0 disables the deadline.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LogConfig configures logging output.
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

var globalConfig *Config

// Load reads the configuration, caching the result.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := viper.New()
	v.SetEnvPrefix("NODETYPES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return globalConfig, nil
}

// LoadWithViper loads configuration from a provided Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
}

// findProjectConfig walks up from the working directory looking for a
// nodetypes.toml. Returns empty when none exists; the file is optional.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "nodetypes.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
