package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"VOLTLEDGER_HTTP_PORT"`
}

// DatabaseConfig holds Postgres settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"VOLTLEDGER_POSTGRES_DSN"`
}

// RedisConfig holds the notification channel settings.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"VOLTLEDGER_REDIS_ADDR"`
	Password string `yaml:"password" env:"VOLTLEDGER_REDIS_PASSWORD"`
	Channel  string `yaml:"channel" env:"VOLTLEDGER_REDIS_CHANNEL"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	Secret          string `yaml:"secret" env:"VOLTLEDGER_AUTH_SECRET"`
	TokenTTLMinutes int    `yaml:"tokenTtlMinutes" env:"VOLTLEDGER_AUTH_TOKEN_TTL"`
}

// Config defines voltledger service configuration.
type Config struct {
	HTTP       HTTPConfig     `yaml:"http"`
	Database   DatabaseConfig `yaml:"database"`
	Redis      RedisConfig    `yaml:"redis"`
	Auth       AuthConfig     `yaml:"auth"`
	ProviderID string         `yaml:"providerId" env:"VOLTLEDGER_PROVIDER_ID"`
	LogLevel   string         `yaml:"logLevel" env:"VOLTLEDGER_LOG_LEVEL"`
}

// Load reads configuration from file and environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP:  HTTPConfig{Port: "8080"},
		Redis: RedisConfig{Addr: "localhost:6379", Channel: "voltledger.events"},
		Auth:  AuthConfig{TokenTTLMinutes: 60},
	}

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("config: redis addr required")
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("config: auth secret required")
	}
	if strings.TrimSpace(cfg.ProviderID) == "" {
		return nil, errors.New("config: provider id required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TokenTTL returns the token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}
