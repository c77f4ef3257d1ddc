// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store backend names accepted in STORE_BACKEND.
const (
	StoreBackendSQLite = "sqlite"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port              string `mapstructure:"PORT"`
	Env               string `mapstructure:"APP_ENV"`
	StoreBackend      string `mapstructure:"STORE_BACKEND"`
	StorePath         string `mapstructure:"STORE_PATH"`
	RedisURL          string `mapstructure:"REDIS_URL"`
	InstitutionDomain string `mapstructure:"INSTITUTION_DOMAIN"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults
	// are enough to run.
	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Set default values for development
	viper.SetDefault("PORT", "8480")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_BACKEND", StoreBackendSQLite)
	viper.SetDefault("STORE_PATH", "lostfound.db")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("INSTITUTION_DOMAIN", "metu.edu.tr")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and coherent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.StoreBackend {
	case StoreBackendSQLite:
		if c.StorePath == "" {
			return errors.New("STORE_PATH is required for the sqlite store backend")
		}
	case StoreBackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis store backend")
		}
	case StoreBackendMemory:
		// nothing to check
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (expected sqlite, redis, or memory)", c.StoreBackend)
	}
	if strings.TrimSpace(c.InstitutionDomain) == "" {
		return errors.New("INSTITUTION_DOMAIN is required")
	}
	return nil
}
