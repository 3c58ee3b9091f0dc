// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	DataSource                 string
	DataQuery                  string
	KeyValue                   string
	SearchOn                   []string
	DisableOccurrenceWeighting bool
	Normalizer                 string
	MaxResults                 int
	APIPort                    string
	APIHost                    string
	LogLevel                   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DataSource: getEnv("DATA_SOURCE", "data.json"),
		DataQuery:  os.Getenv("DATA_QUERY"), // empty selects the loader's default
		KeyValue:   getEnv("KEY_VALUE", "name"),
		SearchOn:   splitList(os.Getenv("SEARCH_ON")),
		Normalizer: getEnv("NORMALIZER", "simplify"),
		APIPort:    getEnv("API_PORT", "8080"),
		APIHost:    getEnv("API_HOST", "0.0.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.DisableOccurrenceWeighting, err = strconv.ParseBool(getEnv("DISABLE_OCCURRENCE_WEIGHTING", "false"))
	if err != nil {
		return nil, fmt.Errorf("DISABLE_OCCURRENCE_WEIGHTING: %w", err)
	}

	cfg.MaxResults, err = strconv.Atoi(getEnv("MAX_RESULTS", "10"))
	if err != nil {
		return nil, fmt.Errorf("MAX_RESULTS: %w", err)
	}
	if cfg.MaxResults < 0 {
		return nil, fmt.Errorf("MAX_RESULTS must not be negative")
	}

	if cfg.DataSource == "" {
		return nil, fmt.Errorf("DATA_SOURCE is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// splitList splits a comma separated list, dropping blanks. An empty input
// yields nil, meaning "not set".
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
