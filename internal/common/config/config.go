// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig identifies the deployment.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StoreConfig selects and configures the remote store backend.
type StoreConfig struct {
	// Backend is "http" or "postgres".
	Backend  string         `mapstructure:"backend"`
	HTTP     HTTPStoreConfig `mapstructure:"http"`
	Postgres PostgresConfig  `mapstructure:"postgres"`
}

// HTTPStoreConfig configures the REST client for the remote store.
type HTTPStoreConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// PostgresConfig configures the colocated-database store backend.
type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// CacheConfig configures the redis snapshot cache.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// ConsoleConfig holds review-console behavior settings.
type ConsoleConfig struct {
	// FundingRangeMax is the inclusive upper bound offered by the funding
	// filter when no range is selected.
	FundingRangeMax int64 `mapstructure:"funding_range_max"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds the /metrics listener settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
