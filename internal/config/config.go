package config

import (
	"fmt"
	"os"
	"strings"

	"invoicegen/internal/logger"
)

// Config holds settings read from the environment (and .env, loaded in main).
type Config struct {
	// Google Cloud Configuration
	GoogleCloudProject string
	GCSOutputBucket    string

	// Generator defaults
	ObjectPattern string
	Sink          string
	OutputDir     string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	config := &Config{
		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GCSOutputBucket:    getEnv("GCS_OUTPUT_BUCKET", ""),
		ObjectPattern:      getEnv("INVOICEGEN_PATTERN", ""),
		Sink:               getEnv("INVOICEGEN_SINK", "gcs"),
		OutputDir:          getEnv("INVOICEGEN_OUTPUT_DIR", "./out"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:      getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:          getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'console' or 'json', got %q", c.LogFormat)
	}
	switch c.Sink {
	case "gcs", "local":
	default:
		return fmt.Errorf("INVOICEGEN_SINK must be 'gcs' or 'local', got %q", c.Sink)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
