package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Feed     FeedConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig selects the zap logger level and encoding.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// FeedConfig controls the simulated market feed.
type FeedConfig struct {
	Interval   time.Duration // Period of scheduled ticks
	AutoUpdate bool          // Whether scheduled ticks start armed
	Latency    time.Duration // Simulated network delay per tick
	Seed       int64         // Random seed, 0 seeds from the clock
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	intervalMs, err := getEnvInt("FEED_INTERVAL_MS", 30000)
	if err != nil {
		return nil, err
	}
	if intervalMs <= 0 {
		return nil, fmt.Errorf("FEED_INTERVAL_MS must be positive, got %d", intervalMs)
	}

	latencyMs, err := getEnvInt("FEED_LATENCY_MS", 500)
	if err != nil {
		return nil, err
	}
	if latencyMs < 0 {
		return nil, fmt.Errorf("FEED_LATENCY_MS cannot be negative, got %d", latencyMs)
	}

	seed, err := getEnvInt("FEED_SEED", 0)
	if err != nil {
		return nil, err
	}

	autoUpdate, err := getEnvBool("FEED_AUTO_UPDATE", true)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/market_simulator.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost")),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Feed: FeedConfig{
			Interval:   time.Duration(intervalMs) * time.Millisecond,
			AutoUpdate: autoUpdate,
			Latency:    time.Duration(latencyMs) * time.Millisecond,
			Seed:       seed,
		},
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

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
