package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/segyhp/fincalc-engine/internal/domain"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Logging  LoggingConfig  `mapstructure:",squash"`
	Business BusinessConfig `mapstructure:",squash"`
	Health   HealthConfig   `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

// RedisConfig configures the schedule cache. An empty Host disables caching.
type RedisConfig struct {
	Host     string        `mapstructure:"REDIS_HOST"`
	Port     string        `mapstructure:"REDIS_PORT"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	TTL      time.Duration `mapstructure:"SCHEDULE_CACHE_TTL"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	DefaultCompoundingFrequency int    `mapstructure:"DEFAULT_COMPOUNDING_FREQUENCY"`
	DefaultLoanMethod           string `mapstructure:"DEFAULT_LOAN_METHOD"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var compoundingFrequencies = map[int]bool{1: true, 2: true, 4: true, 12: true, 365: true}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SCHEDULE_CACHE_TTL", "1h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DEFAULT_COMPOUNDING_FREQUENCY", domain.DefaultCompoundingFrequency)
	v.SetDefault("DEFAULT_LOAN_METHOD", string(domain.DefaultLoanMethod))
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Redis.Host != "" && c.Redis.Port == "" {
		return fmt.Errorf("REDIS_PORT is required when REDIS_HOST is set")
	}

	if c.Redis.TTL < 0 {
		return fmt.Errorf("SCHEDULE_CACHE_TTL must not be negative")
	}

	if !compoundingFrequencies[c.Business.DefaultCompoundingFrequency] {
		return fmt.Errorf("DEFAULT_COMPOUNDING_FREQUENCY must be one of 1, 2, 4, 12 or 365, got %d", c.Business.DefaultCompoundingFrequency)
	}

	method := strings.ToLower(strings.TrimSpace(c.Business.DefaultLoanMethod))
	if domain.ParseLoanMethod(method) != domain.LoanMethod(method) {
		return fmt.Errorf("DEFAULT_LOAN_METHOD %q is not a known repayment method", c.Business.DefaultLoanMethod)
	}

	// Validate health check timeout
	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// CacheEnabled reports whether a Redis schedule cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Host != ""
}

// RedisAddr returns host:port of the cache.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// ServerAddr returns the listen address.
func (c *Config) ServerAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetDefaultLoanMethod returns the configured repayment method.
func (c *Config) GetDefaultLoanMethod() domain.LoanMethod {
	return domain.ParseLoanMethod(c.Business.DefaultLoanMethod)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
