// Package config loads client settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	// APIBaseURL is the single base URL of the league backend.
	APIBaseURL  string `mapstructure:"API_BASE_URL" validate:"required,url"`
	Env         string `mapstructure:"APP_ENV"`
	ServiceName string `mapstructure:"SERVICE_NAME" validate:"required"`
	LogLevel    string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error fatal panic"`

	// StoreDriver selects where the token and cached profile live.
	StoreDriver   string `mapstructure:"STORE_DRIVER" validate:"oneof=memory sqlite redis"`
	SQLitePath    string `mapstructure:"SQLITE_PATH" validate:"required_if=StoreDriver sqlite"`
	RedisAddr     string `mapstructure:"REDIS_ADDR" validate:"required_if=StoreDriver redis"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB" validate:"gte=0"`

	SessionCheckInterval time.Duration `mapstructure:"SESSION_CHECK_INTERVAL" validate:"gt=0"`
	HTTPAddr             string        `mapstructure:"HTTP_ADDR"`
	HTTPTimeout          time.Duration `mapstructure:"HTTP_TIMEOUT" validate:"gt=0"`

	OtelEnabled    bool    `mapstructure:"OTEL_ENABLED"`
	OtelEndpoint   string  `mapstructure:"OTEL_ENDPOINT" validate:"required_if=OtelEnabled true"`
	OtelSampleRate float64 `mapstructure:"OTEL_SAMPLE_RATE" validate:"gte=0,lte=1"`
}

// Load reads envFile when it exists, then the environment, which wins.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig()
	}

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_NAME", "selectctl")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("SQLITE_PATH", defaultSQLitePath())
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_CHECK_INTERVAL", "5m")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_ENDPOINT", "")
	v.SetDefault("OTEL_SAMPLE_RATE", 1.0)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
