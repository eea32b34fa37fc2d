// Package config loads resolver configuration from config.yaml and the
// environment, and initializes the global logger.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/lead-resolver/internal/cost"
)

// Config holds the full application configuration.
type Config struct {
	Places   PlacesConfig   `yaml:"places" mapstructure:"places"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Score    ScoreConfig    `yaml:"score" mapstructure:"score"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Pricing  cost.Rates     `yaml:"pricing" mapstructure:"pricing"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// PlacesConfig configures the directory API.
type PlacesConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ResolverConfig configures call spacing, retries and search behavior.
type ResolverConfig struct {
	MinIntervalMs    int     `yaml:"min_interval_ms" mapstructure:"min_interval_ms"`
	TimeoutSecs      int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	GeoBiasRadiusM   float64 `yaml:"geo_bias_radius_m" mapstructure:"geo_bias_radius_m"`
	Region           string  `yaml:"region" mapstructure:"region"`
}

// MinInterval returns the minimum spacing between directory calls.
func (r ResolverConfig) MinInterval() time.Duration {
	return time.Duration(r.MinIntervalMs) * time.Millisecond
}

// BatchConfig configures batch resolution.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ScoreConfig points at optional score-tier overrides.
type ScoreConfig struct {
	TiersFile string `yaml:"tiers_file" mapstructure:"tiers_file"`
}

// SourceConfig configures remote lead-file downloads.
type SourceConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("places.key", "")
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("resolver.min_interval_ms", 1000)
	v.SetDefault("resolver.timeout_secs", 10)
	v.SetDefault("resolver.max_attempts", 4)
	v.SetDefault("resolver.initial_backoff_ms", 500)
	v.SetDefault("resolver.max_backoff_ms", 8000)
	v.SetDefault("resolver.geo_bias_radius_m", 50000.0)
	v.SetDefault("resolver.region", "US")
	v.SetDefault("batch.concurrency", 5)
	v.SetDefault("score.tiers_file", "")
	v.SetDefault("source.timeout_secs", 30)
	v.SetDefault("source.user_agent", "lead-resolver/1.0")
	rates := cost.DefaultRates()
	v.SetDefault("pricing.search_per_1k", rates.SearchPer1K)
	v.SetDefault("pricing.details_per_1k", rates.DetailsPer1K)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. mode is "resolve" or
// "batch" for commands that call the directory and "score" for offline
// scoring.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "resolve", "batch":
		if c.Places.Key == "" {
			errs = append(errs, "places.key is required")
		}
		if c.Places.BaseURL == "" {
			errs = append(errs, "places.base_url is required")
		}
		if c.Resolver.MinIntervalMs < 0 {
			errs = append(errs, "resolver.min_interval_ms must be >= 0")
		}
		if c.Resolver.TimeoutSecs <= 0 {
			errs = append(errs, "resolver.timeout_secs must be > 0")
		}
		if c.Resolver.MaxAttempts < 1 || c.Resolver.MaxAttempts > 10 {
			errs = append(errs, fmt.Sprintf("resolver.max_attempts must be 1-10 (got %d)", c.Resolver.MaxAttempts))
		}
		if c.Resolver.GeoBiasRadiusM <= 0 || c.Resolver.GeoBiasRadiusM > 50000 {
			errs = append(errs, "resolver.geo_bias_radius_m must be in (0, 50000]")
		}
		if mode == "batch" && (c.Batch.Concurrency < 1 || c.Batch.Concurrency > 20) {
			errs = append(errs, fmt.Sprintf("batch.concurrency must be 1-20 (got %d)", c.Batch.Concurrency))
		}
	case "score":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or console (got %q)", c.Log.Format))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
