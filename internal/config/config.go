package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	Store  StoreConfig
	Cache  CacheConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
}

// GitHubConfig holds fetch-layer configuration.
type GitHubConfig struct {
	Token          string
	RequestsPerSec float64
}

// StoreConfig holds scan persistence configuration.
type StoreConfig struct {
	DataDir string
}

// CacheConfig holds response cache configuration.
type CacheConfig struct {
	TTLMinutes int
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 120),
		},
		GitHub: GitHubConfig{
			Token:          getEnv("GITHUB_TOKEN", ""),
			RequestsPerSec: getEnvAsFloat("GITHUB_RPS", 5),
		},
		Store: StoreConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Cache: CacheConfig{
			TTLMinutes: getEnvAsInt("CACHE_TTL_MINUTES", 15),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Store.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.GitHub.RequestsPerSec <= 0 {
		return fmt.Errorf("GITHUB_RPS must be positive")
	}
	if c.Cache.TTLMinutes <= 0 {
		return fmt.Errorf("CACHE_TTL_MINUTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
