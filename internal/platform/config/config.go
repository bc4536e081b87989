package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	BackendBaseURL  string
	Environment     string
	SessionCookie   string
	SessionTTL      time.Duration
	BackendTimeout  time.Duration
	ReadRetries     int
	CacheTTL        time.Duration
	BulkConcurrency int
	PageSize        int
	MaxBodyBytes    int64
}

func Load() Config {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	return Config{
		Addr:            getEnv("APP_ADDR", ":8080"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:9090/api"),
		Environment:     getEnv("APP_ENV", "development"),
		SessionCookie:   getEnv("SESSION_COOKIE", "conge_session"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 8*time.Hour),
		BackendTimeout:  getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		ReadRetries:     getEnvInt("READ_RETRIES", 1),
		CacheTTL:        getEnvDuration("CACHE_TTL", 30*time.Second),
		BulkConcurrency: getEnvInt("BULK_CONCURRENCY", 4),
		PageSize:        getEnvInt("PAGE_SIZE", 10),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BackendBaseURL) == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if _, err := url.Parse(c.BackendBaseURL); err != nil {
		return fmt.Errorf("BACKEND_BASE_URL is not a valid URL: %w", err)
	}
	if c.ReadRetries < 0 {
		return fmt.Errorf("READ_RETRIES must not be negative")
	}
	if c.BulkConcurrency <= 0 {
		return fmt.Errorf("BULK_CONCURRENCY must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.Environment == "production" && strings.HasPrefix(c.BackendBaseURL, "http://localhost") {
		return fmt.Errorf("BACKEND_BASE_URL must point at the real backend in production")
	}
	return nil
}
