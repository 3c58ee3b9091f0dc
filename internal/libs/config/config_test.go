package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	// Test with default values
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIPort != "8080" {
		t.Errorf("expected default APIPort=8080, got %s", cfg.APIPort)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel=info, got %s", cfg.LogLevel)
	}

	if cfg.KeyValue != "name" {
		t.Errorf("expected default KeyValue=name, got %s", cfg.KeyValue)
	}

	if cfg.MaxResults != 10 {
		t.Errorf("expected default MaxResults=10, got %d", cfg.MaxResults)
	}

	if cfg.DataQuery != "" {
		t.Errorf("expected DataQuery unset, got %q", cfg.DataQuery)
	}

	if cfg.SearchOn != nil {
		t.Errorf("expected SearchOn unset, got %v", cfg.SearchOn)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KEY_VALUE", "title")
	t.Setenv("SEARCH_ON", "title, author ,,tags")
	t.Setenv("DISABLE_OCCURRENCE_WEIGHTING", "true")
	t.Setenv("MAX_RESULTS", "0")
	t.Setenv("NORMALIZER", "fold")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("expected APIPort=9000, got %s", cfg.APIPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}

	if cfg.KeyValue != "title" {
		t.Errorf("expected KeyValue=title, got %s", cfg.KeyValue)
	}

	expected := []string{"title", "author", "tags"}
	if len(cfg.SearchOn) != len(expected) {
		t.Fatalf("expected SearchOn=%v, got %v", expected, cfg.SearchOn)
	}
	for i := range expected {
		if cfg.SearchOn[i] != expected[i] {
			t.Errorf("expected SearchOn=%v, got %v", expected, cfg.SearchOn)
		}
	}

	if !cfg.DisableOccurrenceWeighting {
		t.Error("expected DisableOccurrenceWeighting=true")
	}

	if cfg.MaxResults != 0 {
		t.Errorf("expected MaxResults=0, got %d", cfg.MaxResults)
	}

	if cfg.Normalizer != "fold" {
		t.Errorf("expected Normalizer=fold, got %s", cfg.Normalizer)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric max results", "MAX_RESULTS", "ten"},
		{"negative max results", "MAX_RESULTS", "-1"},
		{"bad bool", "DISABLE_OCCURRENCE_WEIGHTING", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
