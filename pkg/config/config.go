// Package config provides configuration management for the exporter.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Actual ActualConfig
	Export ExportConfig
	Debug  bool
}

// ActualConfig represents Actual Budget server configuration.
type ActualConfig struct {
	ServerURL string
	Password  string
	SyncID    string
}

// ExportConfig represents export-related configuration.
type ExportConfig struct {
	OutputFile  string
	MappingFile string
	Currency    string
	DBPath      string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Actual: ActualConfig{
			ServerURL: getEnvOrDefault("ACTUAL_SERVER_URL", "http://localhost:5006"),
			Password:  os.Getenv("ACTUAL_PASSWORD"),
			SyncID:    os.Getenv("ACTUAL_SYNC_ID"),
		},
		Export: ExportConfig{
			OutputFile:  getEnvOrDefault("EXPORT_OUTPUT_FILE", "./ledger.beancount"),
			MappingFile: getEnvOrDefault("EXPORT_MAPPING_FILE", "./mapping.yaml"),
			Currency:    getEnvOrDefault("EXPORT_CURRENCY", "EUR"),
			DBPath:      os.Getenv("EXPORT_DB_PATH"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set and reports every missing one.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "actual":
			switch path[1] {
			case "serverUrl":
				value = c.Actual.ServerURL
			case "password":
				value = c.Actual.Password
			case "syncId":
				value = c.Actual.SyncID
			}
		case "export":
			switch path[1] {
			case "outputFile":
				value = c.Export.OutputFile
			case "mappingFile":
				value = c.Export.MappingFile
			case "currency":
				value = c.Export.Currency
			case "dbPath":
				value = c.Export.DBPath
			}
		}

		if value == "" {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
