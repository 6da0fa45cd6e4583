package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	// set from the selected table, not read from the file
	Environment string `toml:"-"`

	Host string
	Port int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// tracker storage
	StoreBackend        string `toml:"store_backend"`
	SQLitePath          string `toml:"sqlite_path"`
	StoreCacheSizeBytes int    `toml:"store_cache_size_bytes"`
	StoreKeyPrefix      string `toml:"store_key_prefix"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// submissions
	MongoDBName                 string `toml:"mongo_db_name"`
	SubmissionsRateLimitPerMin  int    `toml:"submissions_rate_limit_per_min"`
	LoginRateLimitAllowedPerMin int    `toml:"login_rate_limit_per_min"`
	// cors
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, env = t.Development, "development"
	case "prod", "production":
		cfg, env = t.Production, "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config table for env: %s", env)
	}
	cfg.Environment = env
	return cfg, nil
}

// Load reads the TOML file at path and returns the table for env, with defaults
// filled in and validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreSQLite
	}
	if c.StoreBackend == StoreSQLite && c.SQLitePath == "" {
		c.SQLitePath = "workoutlog.db"
	}
	if c.SubmissionsRateLimitPerMin <= 0 {
		c.SubmissionsRateLimitPerMin = 5
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
}

// SharedStore reports whether the store backend can be written by other
// processes. A per-process cache in front of such a store would serve stale reads.
func (c *Config) SharedStore() bool {
	return c.StoreBackend == StoreRedis || c.StoreBackend == StorePostgres
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}

	switch c.StoreBackend {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		if c.RedisHost == "" {
			errs = append(errs, errors.New("redis store needs redis_host"))
		}
	case StorePostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			errs = append(errs, errors.New("postgres store needs postgres_host and postgres_db_name"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend: %s", c.StoreBackend))
	}

	if c.StoreCacheSizeBytes < 0 {
		errs = append(errs, errors.New("store_cache_size_bytes must not be negative"))
	}
	if c.StoreCacheSizeBytes > 0 && c.SharedStore() {
		errs = append(errs, fmt.Errorf("store_cache_size_bytes must be 0 for the shared %s store", c.StoreBackend))
	}

	return errors.Join(errs...)
}
