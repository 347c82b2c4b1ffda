package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "http", cfg.Store.Backend)
	assert.Equal(t, 10000, cfg.Store.HTTP.Timeout)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, int64(10000000), cfg.Console.FundingRangeMax)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "http backend with base url",
			mutate: func(c *Config) { c.Store.HTTP.BaseURL = "http://localhost:4000" },
		},
		{
			name:    "http backend without base url",
			mutate:  func(c *Config) {},
			wantErr: "store.http.base_url",
		},
		{
			name: "postgres backend requires host and database",
			mutate: func(c *Config) {
				c.Store.Backend = "postgres"
				c.Store.Postgres.Host = "localhost"
			},
			wantErr: "store.postgres",
		},
		{
			name: "unknown backend rejected",
			mutate: func(c *Config) {
				c.Store.Backend = "dynamo"
			},
			wantErr: "unknown store backend",
		},
		{
			name: "enabled cache requires address",
			mutate: func(c *Config) {
				c.Store.HTTP.BaseURL = "http://localhost:4000"
				c.Cache.Enabled = true
			},
			wantErr: "cache.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	dsn := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "studio",
		User:     "console",
		Password: "secret",
		SSLMode:  "require",
	}.GetDSN()

	assert.Equal(t, "host=db.internal port=5432 user=console password=secret dbname=studio sslmode=require", dsn)
}
