package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DataSource DataSourceConfig `mapstructure:"datasource"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Workers    WorkersConfig    `mapstructure:"workers"`
	Toggle     ToggleConfig     `mapstructure:"toggle"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	Mode            string `mapstructure:"mode"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Data source drivers
const (
	DriverPostgres = "postgres"
	DriverREST     = "rest"
	DriverSample   = "sample"
)

// DataSourceConfig selects where catalog records come from
type DataSourceConfig struct {
	Driver               string `mapstructure:"driver"`
	RestURL              string `mapstructure:"rest_url"`
	APIKey               string `mapstructure:"api_key"`
	ServiceKey           string `mapstructure:"service_key"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	CircuitBreakerDelay  int    `mapstructure:"circuit_breaker_delay"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`
	Migrate  bool   `mapstructure:"migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	AdminRole string `mapstructure:"admin_role"`
	Issuer    string `mapstructure:"issuer"`
}

type WorkersConfig struct {
	Count      int `mapstructure:"count"`
	MaxRetries int `mapstructure:"max_retries"`
}

type ToggleConfig struct {
	LockTTL int `mapstructure:"lock_ttl"`
}

func (t ToggleConfig) TTL() time.Duration {
	return time.Duration(t.LockTTL) * time.Second
}

// Load loads configuration from config.yaml in the working directory with
// environment variable overrides
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads the given YAML file, or config.yaml from the working
// directory when path is empty.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.DataSource.Driver {
	case DriverPostgres, DriverSample:
	case DriverREST:
		if c.DataSource.RestURL == "" {
			return fmt.Errorf("datasource.rest_url is required for the %s driver", DriverREST)
		}
	default:
		return fmt.Errorf("unknown datasource.driver %q", c.DataSource.Driver)
	}
	if c.Workers.Count < 1 {
		return fmt.Errorf("workers.count must be at least 1")
	}
	if c.Redis.Enabled && c.Redis.MinIdleTime < 1 {
		return fmt.Errorf("redis.min_idle_time must be at least 1 second")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("datasource.driver", DriverSample)
	v.SetDefault("datasource.rest_url", "")
	v.SetDefault("datasource.api_key", "")
	v.SetDefault("datasource.service_key", "")
	v.SetDefault("datasource.timeout", 30)
	v.SetDefault("datasource.max_retries", 3)
	v.SetDefault("datasource.max_requests_per_second", 20)
	v.SetDefault("datasource.circuit_breaker_delay", 60)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "marketplace")
	v.SetDefault("database.user", "marketplace_user")
	v.SetDefault("database.password", "marketplace_pass")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "storefront_consumer")
	v.SetDefault("redis.min_idle_time", 120)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_role", "ADMIN")
	v.SetDefault("auth.issuer", "")

	v.SetDefault("workers.count", 2)
	v.SetDefault("workers.max_retries", 5)

	v.SetDefault("toggle.lock_ttl", 30)
}
