package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAppEnv            = "dev"
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "gutvbooker.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTAccessTTL      = "24h"
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultCatalogCacheTTL   = "5m"
	defaultAdvanceNoticeDays = 3
	defaultMaxAttempts       = 2
	defaultOsnovaCron        = "0 0 3 * * *"
)

type Config struct {
	AppEnv   string         `yaml:"app_env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Booking  BookingConfig  `yaml:"booking"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

type HTTPConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	AccessTTL time.Duration `yaml:"access_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RedisConfig is optional; an empty URL disables the catalog cache.
type RedisConfig struct {
	URL             string        `yaml:"url"`
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"`
}

type BookingConfig struct {
	AdvanceNoticeDays     int `yaml:"advance_notice_days"`
	MaxAllocationAttempts int `yaml:"max_allocation_attempts"`
}

type JobsConfig struct {
	OsnovaPromotionCron string `yaml:"osnova_promotion_cron"`
}

// Load builds the configuration from defaults, an optional YAML file, a
// .env file and the process environment, in that order of precedence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	accessTTL, _ := time.ParseDuration(defaultJWTAccessTTL)
	cacheTTL, _ := time.ParseDuration(defaultCatalogCacheTTL)
	return &Config{
		AppEnv:   defaultAppEnv,
		HTTP:     HTTPConfig{Addr: defaultHTTPAddr},
		Database: DatabaseConfig{URL: defaultDatabaseURL},
		JWT:      JWTConfig{Secret: defaultJWTSecret, AccessTTL: accessTTL},
		Log:      LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Redis:    RedisConfig{CatalogCacheTTL: cacheTTL},
		Booking: BookingConfig{
			AdvanceNoticeDays:     defaultAdvanceNoticeDays,
			MaxAllocationAttempts: defaultMaxAttempts,
		},
		Jobs: JobsConfig{OsnovaPromotionCron: defaultOsnovaCron},
	}
}

func (c *Config) overrideWithEnv() error {
	if v := firstEnv("APP_ENV", "ENV"); v != "" {
		c.AppEnv = v
	}
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.HTTP.CORSAllowedOrigins = splitList(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("OSNOVA_PROMOTION_CRON"); v != "" {
		c.Jobs.OsnovaPromotionCron = v
	}

	var err error
	if c.JWT.AccessTTL, err = durationEnv("JWT_ACCESS_TTL", c.JWT.AccessTTL); err != nil {
		return err
	}
	if c.Redis.CatalogCacheTTL, err = durationEnv("CATALOG_CACHE_TTL", c.Redis.CatalogCacheTTL); err != nil {
		return err
	}
	if c.Booking.AdvanceNoticeDays, err = intEnv("BOOKING_ADVANCE_NOTICE_DAYS", c.Booking.AdvanceNoticeDays); err != nil {
		return err
	}
	if c.Booking.MaxAllocationAttempts, err = intEnv("BOOKING_MAX_ATTEMPTS", c.Booking.MaxAllocationAttempts); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be > 0")
	}
	if c.Booking.AdvanceNoticeDays < 0 {
		return errors.New("BOOKING_ADVANCE_NOTICE_DAYS must be >= 0")
	}
	if c.Booking.MaxAllocationAttempts < 1 {
		return errors.New("BOOKING_MAX_ATTEMPTS must be >= 1")
	}
	if c.Redis.URL != "" && c.Redis.CatalogCacheTTL <= 0 {
		return errors.New("CATALOG_CACHE_TTL must be > 0 when REDIS_URL is set")
	}
	if c.IsProdLike() && isEmptyOrDefault(c.JWT.Secret, defaultJWTSecret) {
		return errors.New("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	return d, nil
}

func intEnv(name string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
