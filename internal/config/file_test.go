package config

import (
	"path/filepath"
	"testing"
)

// createTempConfigFile creates a temporary config file for testing
func createTempConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	configPath := filepath.Join(dir, ".codemancer", ConfigFileName)
	writeFile(t, configPath, content)
	return configPath
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// =============================================================================
// loadConfigFromPath Tests
// =============================================================================

func TestLoadConfigFromPath_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
api_url: http://localhost:8080/v1/chat/completions
api_key: file-key
model: gpt-4o
temperature: 0.7
verbosity: 1

defaults:
  render: true
  check_placeholders: true
`
	configPath := createTempConfigFile(t, tmpDir, configContent)

	cfg, err := loadConfigFromPath(configPath)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}

	if cfg.APIURL != "http://localhost:8080/v1/chat/completions" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "file-key")
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gpt-4o")
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.Verbosity == nil || *cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %v, want 1", cfg.Verbosity)
	}
	if cfg.Defaults == nil || !cfg.Defaults.Render || !cfg.Defaults.CheckPlaceholders {
		t.Errorf("Defaults = %+v, want both enabled", cfg.Defaults)
	}
}

func TestLoadConfigFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := createTempConfigFile(t, tmpDir, "model: [invalid yaml\n")

	if _, err := loadConfigFromPath(configPath); err == nil {
		t.Error("loadConfigFromPath() should return error for invalid YAML")
	}
}

func TestLoadConfigFromPath_NotFound(t *testing.T) {
	if _, err := loadConfigFromPath("/nonexistent/path/config.yaml"); err == nil {
		t.Error("loadConfigFromPath() should return error for non-existent file")
	}
}

func TestLoadConfigFromPath_ZeroValuesArePresent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := createTempConfigFile(t, tmpDir, "temperature: 0\nverbosity: 0\n")

	cfg, err := loadConfigFromPath(configPath)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}
	if cfg.Temperature == nil || cfg.Verbosity == nil {
		t.Errorf("explicit zero values were dropped: %+v", cfg)
	}
}

// =============================================================================
// LoadConfigFile Tests
// =============================================================================

func TestLoadConfigFile_NoConfigFile(t *testing.T) {
	runInTempDir(t)

	cfg, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg == nil {
		t.Error("LoadConfigFile() should return non-nil config even when no file exists")
	}
}

func TestLoadConfigFile_CurrentDirectory(t *testing.T) {
	tmpDir := runInTempDir(t)
	createTempConfigFile(t, tmpDir, "model: local-model\n")

	cfg, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.Model != "local-model" {
		t.Errorf("Model = %q, want %q", cfg.Model, "local-model")
	}
}

// =============================================================================
// GetConfigPaths Tests
// =============================================================================

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()

	if len(paths) == 0 {
		t.Fatal("GetConfigPaths() should return at least one path")
	}
	if paths[0] != filepath.Join(".", ".codemancer", ConfigFileName) {
		t.Errorf("First path = %q, want current directory path", paths[0])
	}
	for i, p := range paths {
		if filepath.Base(p) != ConfigFileName {
			t.Errorf("Path %d = %q, should end with %q", i, p, ConfigFileName)
		}
	}
}

// =============================================================================
// ApplyFileConfig Tests
// =============================================================================

func TestConfig_ApplyFileConfig_Nil(t *testing.T) {
	cfg := NewConfig()
	cfg.Model = "existing"

	cfg.ApplyFileConfig(nil)

	if cfg.Model != "existing" {
		t.Error("ApplyFileConfig(nil) should not modify config")
	}
}

func TestConfig_ApplyFileConfig_Values(t *testing.T) {
	cfg := NewConfig()
	cfg.ApplyFileConfig(&FileConfig{
		APIURL:      "http://example.test",
		APIKey:      "file-key",
		Model:       "gpt-4o",
		Temperature: floatPtr(1.5),
		Verbosity:   intPtr(0),
		LogLevel:    "warn",
		LogFormat:   "json",
		Defaults:    &DefaultsConfig{Render: true, CheckPlaceholders: true},
	})

	if cfg.APIURL != "http://example.test" || cfg.APIKey != "file-key" {
		t.Errorf("endpoint = %q / %q", cfg.APIURL, cfg.APIKey)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gpt-4o")
	}
	if cfg.Temperature != 1.5 {
		t.Errorf("Temperature = %v, want 1.5", cfg.Temperature)
	}
	if cfg.Verbosity != 0 {
		t.Errorf("Verbosity = %d, want 0", cfg.Verbosity)
	}
	if !cfg.Render || !cfg.CheckPlaceholders {
		t.Errorf("Render = %v, CheckPlaceholders = %v, want both true", cfg.Render, cfg.CheckPlaceholders)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "json" {
		t.Errorf("LogLevel = %q, LogFormat = %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestConfig_ApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := NewConfig()
	cfg.Model = "flag-model"
	cfg.Temperature = 0
	cfg.Verbosity = 3
	cfg.Render = false
	for _, f := range []string{FieldModel, FieldTemperature, FieldVerbosity, FieldRender} {
		cfg.MarkSet(f)
	}

	cfg.ApplyFileConfig(&FileConfig{
		Model:       "file-model",
		Temperature: floatPtr(1),
		Verbosity:   intPtr(1),
		Defaults:    &DefaultsConfig{Render: true},
	})

	if cfg.Model != "flag-model" {
		t.Errorf("Model = %q, want flag value", cfg.Model)
	}
	if cfg.Temperature != 0 {
		t.Errorf("Temperature = %v, want flag value 0", cfg.Temperature)
	}
	if cfg.Verbosity != 3 {
		t.Errorf("Verbosity = %d, want flag value 3", cfg.Verbosity)
	}
	if cfg.Render {
		t.Error("Render = true, want explicit --render=false kept")
	}
}

func TestConfig_IsSet(t *testing.T) {
	cfg := &Config{}
	if cfg.IsSet(FieldModel) {
		t.Error("IsSet() = true on empty config")
	}
	cfg.MarkSet(FieldModel)
	if !cfg.IsSet(FieldModel) {
		t.Error("IsSet() = false after MarkSet()")
	}
}
