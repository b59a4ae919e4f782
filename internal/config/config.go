package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Dashboard DashboardConfig
	Storage   StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	Locale      string
	FrontendURL string
}

// DashboardConfig bounds what a single dashboard load may fetch
type DashboardConfig struct {
	DefaultDays     int
	EventLimit      int
	MaxEmployees    int
	RefreshInterval time.Duration
	QueryAttempts   int
	QueryBackoff    time.Duration
}

type StorageConfig struct {
	BasePath string
	LogoPath string // relative to BasePath, optional
}

func Load() (*Config, error) {
	// A missing .env is fine, the process environment is used as is.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "fichajes"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "America/El_Salvador"),
		Locale:      getEnv("APP_LOCALE", "es"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Dashboard configuration
	defaultDays, err := getEnvInt("DASHBOARD_DEFAULT_DAYS", 7)
	if err != nil {
		return nil, err
	}
	eventLimit, err := getEnvInt("DASHBOARD_EVENT_LIMIT", 500)
	if err != nil {
		return nil, err
	}
	maxEmployees, err := getEnvInt("SCOPE_MAX_EMPLOYEES", 5000)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := time.ParseDuration(getEnv("DASHBOARD_REFRESH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH_INTERVAL: %w", err)
	}

	queryAttempts, err := getEnvInt("DASHBOARD_QUERY_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	queryBackoff, err := time.ParseDuration(getEnv("DASHBOARD_QUERY_BACKOFF", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_QUERY_BACKOFF: %w", err)
	}

	config.Dashboard = DashboardConfig{
		DefaultDays:     defaultDays,
		EventLimit:      eventLimit,
		MaxEmployees:    maxEmployees,
		RefreshInterval: refreshInterval,
		QueryAttempts:   queryAttempts,
		QueryBackoff:    queryBackoff,
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		LogoPath: getEnv("BRANDING_LOGO_PATH", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Dashboard.DefaultDays < 1 || c.Dashboard.DefaultDays > 90 {
		return fmt.Errorf("DASHBOARD_DEFAULT_DAYS must be between 1 and 90")
	}
	if c.Dashboard.EventLimit < 1 {
		return fmt.Errorf("DASHBOARD_EVENT_LIMIT must be positive")
	}
	if c.Dashboard.MaxEmployees < 1 {
		return fmt.Errorf("SCOPE_MAX_EMPLOYEES must be positive")
	}
	if c.Dashboard.QueryAttempts < 1 || c.Dashboard.QueryAttempts > 5 {
		return fmt.Errorf("DASHBOARD_QUERY_ATTEMPTS must be between 1 and 5")
	}
	if c.Dashboard.RefreshInterval < time.Second {
		return fmt.Errorf("DASHBOARD_REFRESH_INTERVAL must be at least 1s")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the business timezone used for local-day bucketing.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel parses LOG_LEVEL, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
