package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/codemancer/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Endpoint settings
	APIURL string `yaml:"api_url,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`

	// Model settings
	Model       string   `yaml:"model,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`

	// Output settings
	Verbosity *int `yaml:"verbosity,omitempty"`

	// Logging settings; --debug overrides the level
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render            bool `yaml:"render,omitempty"`
	CheckPlaceholders bool `yaml:"check_placeholders,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile loads the first config file found. A missing file is not an
// error; a file that exists but cannot be read or parsed is.
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// Settings given on the command line are left alone.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}

	if fc.Model != "" && !c.IsSet(FieldModel) {
		c.Model = fc.Model
	}
	if fc.Temperature != nil && !c.IsSet(FieldTemperature) {
		c.Temperature = *fc.Temperature
	}
	if fc.Verbosity != nil && !c.IsSet(FieldVerbosity) {
		c.Verbosity = *fc.Verbosity
	}

	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}

	if fc.Defaults != nil {
		if fc.Defaults.Render && !c.IsSet(FieldRender) {
			c.Render = true
		}
		if fc.Defaults.CheckPlaceholders && !c.IsSet(FieldCheckPlaceholders) {
			c.CheckPlaceholders = true
		}
	}
}
