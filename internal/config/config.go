package config

import (
	"os"
	"strconv"
	"strings"

	"wbreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Charts  ChartConfig
	Console ConsoleConfig
	Log     LogConfig
}

// DataConfig holds dataset loading settings
type DataConfig struct {
	DatasetPath   string
	Lenient       bool
	MissingTokens []string
}

// ChartConfig holds chart output settings
type ChartConfig struct {
	OutputDir string
	Width     int
	Height    int
}

// ConsoleConfig holds preview settings
type ConsoleConfig struct {
	PreviewRows int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    *loadDataConfig(),
		Charts:  *loadChartConfig(),
		Console: *loadConsoleConfig(),
		Log:     LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		DatasetPath:   getEnvOrDefault("DATASET_PATH", "Dataset.csv"),
		Lenient:       getEnvBoolOrDefault("COERCE_LENIENT", false),
		MissingTokens: getEnvListOrDefault("MISSING_TOKENS", nil),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		OutputDir: getEnvOrDefault("OUTPUT_DIR", "charts"),
		Width:     getEnvIntOrDefault("CHART_WIDTH", 1000),
		Height:    getEnvIntOrDefault("CHART_HEIGHT", 600),
	}
}

func loadConsoleConfig() *ConsoleConfig {
	return &ConsoleConfig{
		PreviewRows: getEnvIntOrDefault("PREVIEW_ROWS", 5),
	}
}

// Validate checks settings after flags have been applied
func (c *Config) Validate() error {
	if c.Data.DatasetPath == "" {
		return errors.ConfigInvalid("dataset path is required")
	}
	if c.Charts.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return errors.ConfigInvalid("chart width and height must be positive")
	}
	if c.Console.PreviewRows < 0 {
		return errors.ConfigInvalid("preview rows cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blank entries
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
