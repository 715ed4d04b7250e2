package config

import (
	"fmt"
	"os"

	"intersdk/internal/logger"
)

// DefaultBaseURL is the production partner-API host.
const DefaultBaseURL = "https://cdpj.partners.bancointer.com.br"

type Config struct {
	// Mutual-TLS client credentials issued by the bank
	CertificatePath string
	PrivateKeyPath  string

	// OAuth client-credentials pair
	ClientID     string
	ClientSecret string

	// API base URL (overridable for sandbox environments)
	BaseURL string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		CertificatePath: getEnv("INTER_CERTIFICATE_PATH", ""),
		PrivateKeyPath:  getEnv("INTER_PRIVATE_KEY_PATH", ""),
		ClientID:        getEnv("INTER_CLIENT_ID", ""),
		ClientSecret:    getEnv("INTER_CLIENT_SECRET", ""),
		BaseURL:         getEnv("INTER_BASE_URL", DefaultBaseURL),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:   getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.CertificatePath == "" {
		return fmt.Errorf("INTER_CERTIFICATE_PATH is required")
	}
	if c.PrivateKeyPath == "" {
		return fmt.Errorf("INTER_PRIVATE_KEY_PATH is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("INTER_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("INTER_CLIENT_SECRET is required")
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
