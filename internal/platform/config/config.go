// Package config loads application configuration from .env, an optional YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port            string        `yaml:"port"`
		LogLevel        string        `yaml:"log_level"`
		LogFormat       string        `yaml:"log_format"` // json | text
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	AlphaVantage struct {
		APIKey            string        `yaml:"api_key"`
		BaseURL           string        `yaml:"base_url"`
		Timeout           time.Duration `yaml:"timeout"`
		CallTimeout       time.Duration `yaml:"call_timeout"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
	} `yaml:"alphavantage"`
	Cache struct {
		SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
		PriceTTL    time.Duration `yaml:"price_ttl"`
		Capacity    int           `yaml:"capacity"`
	} `yaml:"cache"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Database struct {
		Driver  string `yaml:"driver"` // sqlite | postgres; empty keeps the watchlist in memory
		DSN     string `yaml:"dsn"`
		Migrate bool   `yaml:"migrate"`
	} `yaml:"database"`
	JWT struct {
		Secret     string        `yaml:"secret"`
		Expiration time.Duration `yaml:"expiration"`
	} `yaml:"jwt"`
	Predictor struct {
		SeriesPath string `yaml:"series_path"`
	} `yaml:"predictor"`
	LLM struct {
		Enabled bool          `yaml:"enabled"`
		APIKey  string        `yaml:"api_key"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"llm"`
	Watch struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"watch"`
}

// Load reads .env (if present), then the YAML file at CONFIG_PATH, then applies
// environment variable overrides and defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn(".env could not be parsed", "error", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile is Load without the .env step. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.LogLevel, "LOG_LEVEL")
	setString(&c.Server.LogFormat, "LOG_FORMAT")

	setString(&c.AlphaVantage.APIKey, "ALPHAVANTAGE_API_KEY")
	setString(&c.AlphaVantage.BaseURL, "ALPHAVANTAGE_BASE_URL")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")

	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.Predictor.SeriesPath, "PREDICTOR_SERIES_PATH")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.Model, "LLM_MODEL")

	var errs []error
	errs = append(errs,
		setInt(&c.AlphaVantage.RequestsPerMinute, "ALPHAVANTAGE_RPM"),
		setInt(&c.Cache.Capacity, "CACHE_CAPACITY"),
		setDuration(&c.Cache.SnapshotTTL, "SNAPSHOT_TTL"),
		setDuration(&c.Cache.PriceTTL, "PRICE_TTL"),
		setDuration(&c.JWT.Expiration, "JWT_EXPIRATION"),
		setDuration(&c.Watch.Interval, "WATCH_INTERVAL"),
		setBool(&c.Redis.Enabled, "REDIS_ENABLED"),
		setBool(&c.Database.Migrate, "RUN_MIGRATIONS"),
		setBool(&c.LLM.Enabled, "LLM_ENABLED"),
	)
	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.LogFormat == "" {
		c.Server.LogFormat = "json"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co"
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = 10 * time.Second
	}
	if c.AlphaVantage.CallTimeout == 0 {
		c.AlphaVantage.CallTimeout = 12 * time.Second
	}
	if c.Cache.SnapshotTTL == 0 {
		c.Cache.SnapshotTTL = 60 * time.Second
	}
	if c.Cache.PriceTTL == 0 {
		c.Cache.PriceTTL = 60 * time.Second
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = 1024
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.JWT.Expiration == 0 {
		c.JWT.Expiration = time.Hour
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 20 * time.Second
	}
	if c.Watch.Interval == 0 {
		c.Watch.Interval = 5 * time.Second
	}
}

// Validate checks that values are usable before wiring components.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Server.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("server.log_format must be json or text, got %q", c.Server.LogFormat)
	}
	if _, err := ParseLevel(c.Server.LogLevel); err != nil {
		return err
	}
	switch c.Database.Driver {
	case "":
	case DriverSQLite, DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative")
	}
	if c.Cache.SnapshotTTL < 0 || c.Cache.PriceTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	if c.AlphaVantage.RequestsPerMinute < 0 {
		return fmt.Errorf("alphavantage.requests_per_minute must not be negative")
	}
	if c.Watch.Interval < time.Second {
		return fmt.Errorf("watch.interval must be at least 1s")
	}
	return nil
}

// LLMEnabled reports whether the chat fallback should call the LLM.
func (c *Config) LLMEnabled() bool {
	return c.LLM.Enabled && c.LLM.APIKey != ""
}

// ParseLevel converts a log level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
