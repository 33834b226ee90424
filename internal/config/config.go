package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Event   EventConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// StorageConfig selects the snapshot persistence backend
type StorageConfig struct {
	Type string // "memory", "file" or "sqlite"
	Path string
}

// EventConfig holds display metadata about the event itself
type EventConfig struct {
	Name string
}

func Load() (*Config, error) {
	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Storage = StorageConfig{
		Type: getEnv("STORAGE_TYPE", "file"),
		Path: getEnv("STORAGE_PATH", "data"),
	}

	config.Event = EventConfig{
		Name: getEnv("EVENT_NAME", "My Event"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory":
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required for %s storage", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
