// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// BrokerConfig holds settings for the Dhan REST API client.
type BrokerConfig struct {
	// BaseURL is the broker API host. Override only for testing.
	BaseURL string

	// ClientID is the Dhan client identifier sent in the client-id header.
	// Required for every data API call.
	ClientID string

	// RequestTimeoutSeconds is the HTTP request timeout.
	RequestTimeoutSeconds int

	// RequestsPerSecond caps the outgoing request rate. Dhan data APIs
	// are rate limited per client, so requests are paced, not retried.
	RequestsPerSecond float64
}

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	Broker BrokerConfig

	// ScripMasterPath is the path to the Dhan scrip master CSV dump
	// used by the token resolver.
	ScripMasterPath string
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		Broker: BrokerConfig{
			BaseURL:               getEnv("DHAN_BASE_URL", "https://api.dhan.co"),
			ClientID:              getEnv("BROKER_API_KEY", ""),
			RequestTimeoutSeconds: getEnvInt("DHAN_REQUEST_TIMEOUT_SECONDS", 30),
			RequestsPerSecond:     getEnvFloat("DHAN_REQUESTS_PER_SECOND", 5),
		},
		ScripMasterPath: getEnv("SCRIP_MASTER_PATH", "api-scrip-master.csv"),
	}
}

// NewLogger builds the default application logger.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
