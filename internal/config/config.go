// Package config loads process-wide settings from the environment.
package config

import (
	"os"
	"strings"

	"github.com/lynza/transcript-triage/internal/queue"
)

// Config holds application configuration. It is read once at process start
// and shared read-only afterwards.
type Config struct {
	Env                 string
	LogLevel            string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	QueueURL            string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_URL", ""),
		QueueURL:            getEnv("SQS_QUEUE_URL", ""),
	}
}

// Validate reports settings without which the pipeline cannot publish.
// A missing queue URL is a deployment defect and should stop the process.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.QueueURL) == "" {
		return &queue.ConfigurationError{Setting: "SQS_QUEUE_URL"}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
