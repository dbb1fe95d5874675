package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Market data provider
	MarketData MarketDataConfig

	// Scanning
	Scan ScanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration for the quote cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// MarketDataConfig holds the quote/history provider configuration.
type MarketDataConfig struct {
	BaseURL     string
	ScreenerURL string
	Timeout     time.Duration

	// Provider-side politeness limit, requests per second.
	RequestsPerSecond float64
}

// ScanConfig holds defaults for screening runs.
type ScanConfig struct {
	ProfilePath   string
	TopN          int
	Workers       int
	QuoteCacheTTL time.Duration
	Schedule      string // cron expression for the daily scan job
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8085"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		MarketData: MarketDataConfig{
			BaseURL:           getEnv("MARKET_DATA_BASE_URL", "https://query1.finance.yahoo.com"),
			ScreenerURL:       getEnv("MARKET_DATA_SCREENER_URL", "https://finance.yahoo.com/most-active"),
			Timeout:           getEnvAsDuration("MARKET_DATA_TIMEOUT", "15s"),
			RequestsPerSecond: getEnvAsFloat("MARKET_DATA_RPS", 4.0),
		},

		Scan: ScanConfig{
			ProfilePath:   getEnv("SCAN_PROFILE", ""),
			TopN:          getEnvAsInt("SCAN_TOP_N", 10),
			Workers:       getEnvAsInt("SCAN_WORKERS", 8),
			QuoteCacheTTL: getEnvAsDuration("SCAN_QUOTE_CACHE_TTL", "5m"),
			Schedule:      getEnv("SCAN_SCHEDULE", "0 30 16 * * MON-FRI"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration sanity.
func (c *Config) validate() error {
	if c.Scan.TopN <= 0 {
		return fmt.Errorf("SCAN_TOP_N must be positive, got %d", c.Scan.TopN)
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("SCAN_WORKERS must be positive, got %d", c.Scan.Workers)
	}
	if c.MarketData.RequestsPerSecond <= 0 {
		return fmt.Errorf("MARKET_DATA_RPS must be positive, got %g", c.MarketData.RequestsPerSecond)
	}
	return nil
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// loadEnvFile tries to load a .env file from a few likely locations.
// Missing files are fine; real environments set variables directly.
func loadEnvFile() {
	paths := []string{
		".env",
		filepath.Join("..", ".env"),
		filepath.Join("..", "..", ".env"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	v := getEnv(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
