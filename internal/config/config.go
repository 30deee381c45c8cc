// Package config provides configuration management for pngtidy using Viper.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/pngtidy/internal/paths"
)

// DefaultDir is the directory processed when nothing overrides it,
// relative to the working directory.
const DefaultDir = "public/resized_cards"

// EnvPrefix prefixes environment overrides (PNGTIDY_DIR, PNGTIDY_OUTPUT).
const EnvPrefix = "PNGTIDY"

// Output formats for the run report.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int    `mapstructure:"version" yaml:"version" toml:"version" json:"version"`
	Dir     string `mapstructure:"dir" yaml:"dir" toml:"dir" json:"dir"`
	Output  string `mapstructure:"output" yaml:"output" toml:"output" json:"output"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Version: 1,
		Dir:     DefaultDir,
		Output:  OutputText,
	}
}

// Init resets Viper and installs defaults, search paths and env binding.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName(paths.AppName)

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("dir", def.Dir)
	viper.SetDefault("output", def.Output)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults are fine
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// Used returns the config file Viper loaded, or "" when running on defaults.
func Used() string {
	return viper.ConfigFileUsed()
}
