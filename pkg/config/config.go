// Package config loads harvest settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all harvest settings.
type Config struct {
	Harvest  HarvestConfig  `yaml:"harvest"`
	Output   OutputConfig   `yaml:"output"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// HarvestConfig controls fetching and batching.
type HarvestConfig struct {
	URLTemplate  string        `yaml:"url_template"  env:"DGLAI_URL_TEMPLATE"  env-default:"https://tal.ircam.ma/dglai/search/indexs?session=%s"`
	BatchSize    int           `yaml:"batch_size"    env:"DGLAI_BATCH_SIZE"    env-default:"1000"`
	Workers      int           `yaml:"workers"       env:"DGLAI_WORKERS"       env-default:"16"`
	ClientType   string        `yaml:"client_type"   env:"DGLAI_CLIENT_TYPE"   env-default:"browser"`
	Timeout      time.Duration `yaml:"timeout"       env:"DGLAI_TIMEOUT"       env-default:"0s"`
	Resume       bool          `yaml:"resume"        env:"DGLAI_RESUME"        env-default:"true"`
	SkipExisting bool          `yaml:"skip_existing" env:"DGLAI_SKIP_EXISTING" env-default:"false"`
}

// OutputConfig controls the file sink.
type OutputConfig struct {
	Dir     string `yaml:"dir"     env:"DGLAI_OUTPUT_DIR"     env-default:"./harvest-output"`
	Enabled bool   `yaml:"enabled" env:"DGLAI_OUTPUT_ENABLED" env-default:"true"`
}

// MongoConfig enables the MongoDB sink when URI is set.
type MongoConfig struct {
	URI      string `yaml:"uri"      env:"MONGODB_URI"`
	Database string `yaml:"database" env:"MONGODB_DATABASE" env-default:"dglai"`
}

// PostgresConfig enables the Postgres sink when DSN is set.
type PostgresConfig struct {
	DSN          string        `yaml:"dsn"            env:"DATABASE_DSN"`
	MaxOpenConns int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS" env-default:"4"`
	ConnMaxLife  time.Duration `yaml:"conn_max_life"  env:"DATABASE_CONN_MAX_LIFE"  env-default:"30m"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// MetricsConfig enables the /metrics endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"METRICS_ADDR"`
}

// Load reads config from the YAML file at path, with environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would make a run impossible.
func (c *Config) Validate() error {
	var errs []error
	if c.Harvest.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("harvest.batch_size must be positive, got %d", c.Harvest.BatchSize))
	}
	if c.Harvest.Workers <= 0 {
		errs = append(errs, fmt.Errorf("harvest.workers must be positive, got %d", c.Harvest.Workers))
	}
	if strings.Count(c.Harvest.URLTemplate, "%s") != 1 {
		errs = append(errs, fmt.Errorf("harvest.url_template must contain exactly one %%s"))
	}
	switch c.Harvest.ClientType {
	case "browser", "plain", "":
	default:
		errs = append(errs, fmt.Errorf("harvest.client_type %q is not one of browser, plain", c.Harvest.ClientType))
	}
	if c.Harvest.Timeout < 0 {
		errs = append(errs, fmt.Errorf("harvest.timeout must not be negative"))
	}
	if !c.Output.Enabled && c.Mongo.URI == "" && c.Postgres.DSN == "" {
		errs = append(errs, errors.New("no sink configured: enable output or set mongo.uri / postgres.dsn"))
	}
	if c.Output.Enabled && c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required when output is enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
