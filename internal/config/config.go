package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quocvuong92/codemancer/internal/constants"
)

// Environment variable names
const (
	EnvAPIKey = "OPENAI_API_KEY"
	EnvAPIURL = "OPENAI_API_URL"
	EnvModel  = "CODEMANCER_MODEL"
)

// DotEnvFileName is read from the working directory and the user config dir.
const DotEnvFileName = ".env"

// Names of settings that command-line flags can set explicitly.
const (
	FieldModel             = "model"
	FieldTemperature       = "temperature"
	FieldVerbosity         = "verbosity"
	FieldRender            = "render"
	FieldCheckPlaceholders = "check-placeholders"
)

// Errors
var (
	ErrPromptRequired     = errors.New("prompt is required")
	ErrInvalidTemperature = fmt.Errorf("temperature must be between 0 and %g", constants.MaxTemperature)
	ErrInvalidVerbosity   = fmt.Errorf("verbosity must be between 0 and %d", constants.MaxVerbosity)
)

// Config holds the application configuration
type Config struct {
	// Request settings
	APIKey      string
	APIURL      string // resolved once by Validate
	UsingProxy  bool   // true when no key and no URL were configured
	Model       string
	Temperature float64

	// Run settings
	Prompt            string
	Inputs            []string
	Outputs           []string
	Verbosity         int
	Render            bool
	Debug             bool
	CheckPlaceholders bool

	// Logging, from the config file only
	LogLevel  string // debug, info, warn, error or none; empty disables logging
	LogFormat string // text or json

	// set holds the settings given explicitly on the command line.
	set map[string]bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{
		Model:       constants.DefaultModel,
		Temperature: constants.DefaultTemperature,
		Verbosity:   constants.DefaultVerbosity,
		set:         make(map[string]bool),
	}
}

// MarkSet records that a setting was given on the command line, so the
// config file and environment do not override it.
func (c *Config) MarkSet(field string) {
	if c.set == nil {
		c.set = make(map[string]bool)
	}
	c.set[field] = true
}

// IsSet reports whether a setting was given on the command line.
func (c *Config) IsSet(field string) bool {
	return c.set[field]
}

// Validate loads the config file, .env files and environment, then checks
// the result. Precedence, lowest first: defaults, config file, .env files,
// environment, flags.
func (c *Config) Validate() error {
	fileConfig, err := LoadConfigFile()
	if err != nil {
		return err
	}
	c.ApplyFileConfig(fileConfig)

	env := readEnvironment()

	if !c.IsSet(FieldModel) {
		if model := strings.TrimSpace(env[EnvModel]); model != "" {
			c.Model = model
		}
	}
	if key := strings.TrimSpace(env[EnvAPIKey]); key != "" {
		c.APIKey = key
	}
	if url := strings.TrimSpace(env[EnvAPIURL]); url != "" {
		c.APIURL = url
	}

	if strings.TrimSpace(c.Prompt) == "" {
		return ErrPromptRequired
	}
	if c.Temperature < 0 || c.Temperature > constants.MaxTemperature {
		return ErrInvalidTemperature
	}
	if c.Verbosity < 0 || c.Verbosity > constants.MaxVerbosity {
		return ErrInvalidVerbosity
	}
	if c.Model == "" {
		c.Model = constants.DefaultModel
	}
	if len(c.Outputs) == 0 {
		c.Outputs = c.Inputs
	}

	c.resolveEndpoint()
	return nil
}

// resolveEndpoint picks the chat-completions URL. An explicit URL always
// wins; otherwise the OpenAI endpoint is used with a key and the free proxy
// without one.
func (c *Config) resolveEndpoint() {
	c.UsingProxy = false
	switch {
	case c.APIURL != "":
		c.APIURL = strings.TrimSuffix(c.APIURL, "/")
	case c.APIKey != "":
		c.APIURL = constants.OpenAIChatURL
	default:
		c.APIURL = constants.ProxyChatURL
		c.UsingProxy = true
	}
}

// readEnvironment merges the process environment over the .env files. A .env in
// the working directory wins over the one in the user config directory.
func readEnvironment() map[string]string {
	env := make(map[string]string)
	paths := GetDotEnvPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		values, err := godotenv.Read(paths[i])
		if err != nil {
			continue
		}
		for k, v := range values {
			env[k] = v
		}
	}

	for _, key := range []string{EnvAPIKey, EnvAPIURL, EnvModel} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	return env
}

// GetDotEnvPaths returns the .env files to read, highest priority first.
func GetDotEnvPaths() []string {
	paths := []string{filepath.Join(".", DotEnvFileName)}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, DotEnvFileName))
	}
	return paths
}

// SplitList splits a comma-separated flag value, dropping empty entries.
func SplitList(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
