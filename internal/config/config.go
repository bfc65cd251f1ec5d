package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Upstream   UpstreamConfig
	ModelStore ModelStoreConfig
	Catalog    CatalogConfig
	CORS       CORSConfig
	Heuristics Heuristics
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// RedisConfig holds the connection settings for the memoization cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UpstreamConfig holds the base URLs and timeout for the sibling services the
// engine fetches customer, asset, and market data from.
type UpstreamConfig struct {
	CustomerServiceURL   string
	AssetServiceURL      string
	MarketDataServiceURL string
	Timeout              time.Duration
}

// ModelStoreConfig holds the path of the SQLite database that persists fitted
// model parameters across restarts.
type ModelStoreConfig struct {
	Path string
}

// CatalogConfig holds the catalog refresh schedule.
type CatalogConfig struct {
	RefreshCron string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file.
// Heuristic tables start from compiled-in defaults and may be overridden by
// the YAML file named in HEURISTICS_PATH.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}

	heuristics, err := LoadHeuristics(getEnv("HEURISTICS_PATH", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to load heuristics: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8004"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Upstream: UpstreamConfig{
			CustomerServiceURL:   getEnv("CUSTOMER_SERVICE_URL", "http://customer-service:8001"),
			AssetServiceURL:      getEnv("ASSET_SERVICE_URL", "http://asset-service:8002"),
			MarketDataServiceURL: getEnv("MARKET_DATA_SERVICE_URL", "http://market-data-service:8003"),
			Timeout:              timeout,
		},
		ModelStore: ModelStoreConfig{
			Path: getEnv("MODEL_DB_PATH", "./data/advisor_models.db"),
		},
		Catalog: CatalogConfig{
			RefreshCron: getEnv("CATALOG_REFRESH_CRON", "0 */6 * * *"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Heuristics: heuristics,
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
