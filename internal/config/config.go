// package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// database
	DatabaseURL string

	// nats
	NatsURL string

	// server
	HTTPPort    int
	CORSOrigins string

	// upstream catalog
	CatalogBaseURL string
	CatalogRPS     float64
	CatalogBurst   int
	CacheRedisURL  string

	// browser
	BackendURL     string
	DefaultUserID  int
	SearchDebounce time.Duration
	HTTPTimeout    time.Duration

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "./data/starred.db"),
		NatsURL:        getEnv("NATS_URL", ""),
		HTTPPort:       getEnvInt("HTTP_PORT", 3001),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:4000"),
		CatalogRPS:     getEnvFloat("CATALOG_RPS", 10),
		CatalogBurst:   getEnvInt("CATALOG_BURST", 5),
		CacheRedisURL:  getEnv("CACHE_REDIS_URL", ""),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:3001"),
		DefaultUserID:  getEnvInt("DEFAULT_USER_ID", 1),
		SearchDebounce: getEnvDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
		HTTPTimeout:    getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", "./logs/starred.log"),
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
