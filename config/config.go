package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Upstream  UpstreamConfig  `split_words:"true"`
	Output    OutputConfig    `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Archive   ArchiveConfig   `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`

	// CitiesFile optionally points to a JSON file overriding the built-in
	// city registry.
	CitiesFile string `envconfig:"CITIES_FILE" default:""`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host  string `envconfig:"HOST" default:"0.0.0.0"`
	Port  int    `envconfig:"PORT" default:"8000"`
	Debug bool   `envconfig:"DEBUG" default:"false"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig contains settings for the forecast API the fetcher talks to
type UpstreamConfig struct {
	BaseURL string        `envconfig:"OPEN_METEO_BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`
	Timeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`

	// PacingDelay is the courtesy pause between consecutive city fetches.
	PacingDelay time.Duration `envconfig:"UPSTREAM_PACING_DELAY" default:"100ms"`
}

// OutputConfig contains paths for the exported artifacts
type OutputConfig struct {
	CSVPath   string `envconfig:"OUTPUT_CSV_FILE" default:"weather_data.csv"`
	ChartsDir string `envconfig:"CHARTS_DIR" default:"static/charts"`
}

// CacheType identifies a snapshot cache backend.
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// CacheConfig selects and configures the snapshot cache backend
type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

// RedisConfig contains redis connection settings for the redis cache backend
type RedisConfig struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	Key          string        `envconfig:"REDIS_KEY" default:"weatherdash:snapshot"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// ArchiveConfig configures the optional observation archive side channel
type ArchiveConfig struct {
	Enabled bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	Driver  string `envconfig:"ARCHIVE_DRIVER" default:"sqlite"`

	// SQLitePath is the database file used with the sqlite driver.
	SQLitePath string `envconfig:"ARCHIVE_SQLITE_PATH" default:"weather_archive.db"`

	Host     string `envconfig:"ARCHIVE_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"ARCHIVE_DB_PORT" default:"5432"`
	User     string `envconfig:"ARCHIVE_DB_USER" default:"postgres"`
	Password string `envconfig:"ARCHIVE_DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"ARCHIVE_DB_NAME" default:"weatherdash"`
	SSLMode  string `envconfig:"ARCHIVE_DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (a ArchiveConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		a.Host, a.Port, a.User, a.Password, a.Name, a.SSLMode)
}

// SchedulerConfig contains settings for the periodic background refresh
type SchedulerConfig struct {
	Enabled         bool `envconfig:"REFRESH_ENABLED" default:"true"`
	IntervalMinutes int  `envconfig:"REFRESH_INTERVAL_MINUTES" default:"30"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Upstream.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks upstream API configuration
func (u *UpstreamConfig) Validate() error {
	if u.BaseURL == "" {
		return errors.NewConfigurationError("OPEN_METEO_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(u.BaseURL, "http://") && !strings.HasPrefix(u.BaseURL, "https://") {
		return errors.NewConfigurationError("OPEN_METEO_BASE_URL must start with http:// or https://", nil)
	}
	if u.Timeout <= 0 {
		return errors.NewConfigurationError("UPSTREAM_TIMEOUT must be positive", nil)
	}
	if u.PacingDelay < 0 {
		return errors.NewConfigurationError("UPSTREAM_PACING_DELAY cannot be negative", nil)
	}
	return nil
}

// Validate checks output artifact configuration
func (o *OutputConfig) Validate() error {
	if o.CSVPath == "" {
		return errors.NewConfigurationError("OUTPUT_CSV_FILE cannot be empty", nil)
	}
	if o.ChartsDir == "" {
		return errors.NewConfigurationError("CHARTS_DIR cannot be empty", nil)
	}
	return nil
}

// Validate checks cache backend configuration
func (c *CacheConfig) Validate() error {
	switch c.Type {
	case CacheTypeMemory:
		return nil
	case CacheTypeRedis:
		if c.Redis.Addr == "" {
			return errors.NewConfigurationError("REDIS_ADDR cannot be empty", nil)
		}
		if c.Redis.Key == "" {
			return errors.NewConfigurationError("REDIS_KEY cannot be empty", nil)
		}
		return nil
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("CACHE_TYPE must be one of: %s, %s", CacheTypeMemory, CacheTypeRedis), nil)
	}
}

// Validate checks archive configuration
func (a *ArchiveConfig) Validate() error {
	if !a.Enabled {
		return nil
	}
	switch a.Driver {
	case "sqlite":
		if a.SQLitePath == "" {
			return errors.NewConfigurationError("ARCHIVE_SQLITE_PATH cannot be empty", nil)
		}
	case "postgres":
		if a.Host == "" {
			return errors.NewConfigurationError("ARCHIVE_DB_HOST cannot be empty", nil)
		}
		if a.Port < 1 || a.Port > 65535 {
			return errors.NewConfigurationError("ARCHIVE_DB_PORT must be between 1 and 65535", nil)
		}
		if a.Name == "" {
			return errors.NewConfigurationError("ARCHIVE_DB_NAME cannot be empty", nil)
		}
	default:
		return errors.NewConfigurationError("ARCHIVE_DRIVER must be sqlite or postgres", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if !s.Enabled {
		return nil
	}
	if s.IntervalMinutes < 1 {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES must be at least 1", nil)
	}
	if s.IntervalMinutes > 1440 {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES cannot exceed 1440 (24 hours)", nil)
	}
	return nil
}
