package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type SourcesConfig struct {
	BusinessURL string `mapstructure:"business_url" validate:"required"`
	ExpressURL  string `mapstructure:"express_url" validate:"required"`
	TreasuryURL string `mapstructure:"treasury_url" validate:"required"`
	SettingsURL string `mapstructure:"settings_url" validate:"required"`
	LedgerURL   string `mapstructure:"ledger_url" validate:"required"`
}

type RatesConfig struct {
	Default  float64       `mapstructure:"default"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Config struct {
	Server   ServerConfig  `mapstructure:"server"`
	Sources  SourcesConfig `mapstructure:"sources"`
	Rates    RatesConfig   `mapstructure:"rates"`
	DbPath   string        `mapstructure:"db_path"`
	MaxFetch int           `mapstructure:"max_concurrent_fetches"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("rates.default", 63)
	v.SetDefault("rates.cache_ttl", 5*time.Minute)
	v.SetDefault("db_path", "ops-atlas.db")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
