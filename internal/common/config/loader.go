// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<environment>.yaml when
// present, and lets environment variables override individual keys.
func Load() (*Config, error) {
	// .env is optional; system environment always wins.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like STORE_HTTP_BASE_URL.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "studio-application-flow"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "http"
	}
	if cfg.Store.HTTP.Timeout <= 0 {
		cfg.Store.HTTP.Timeout = 10000
	}
	if cfg.Store.Postgres.MaxConnections <= 0 {
		cfg.Store.Postgres.MaxConnections = 10
	}
	if cfg.Store.Postgres.MaxIdle <= 0 {
		cfg.Store.Postgres.MaxIdle = 5
	}
	if cfg.Store.Postgres.SSLMode == "" {
		cfg.Store.Postgres.SSLMode = "disable"
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 300
	}
	if cfg.Console.FundingRangeMax <= 0 {
		cfg.Console.FundingRangeMax = 10000000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Store.Backend {
	case "http":
		if cfg.Store.HTTP.BaseURL == "" {
			return fmt.Errorf("store.http.base_url is required for the http backend")
		}
	case "postgres":
		if cfg.Store.Postgres.Host == "" || cfg.Store.Postgres.Database == "" {
			return fmt.Errorf("store.postgres.host and store.postgres.database are required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when the cache is enabled")
	}

	return nil
}
