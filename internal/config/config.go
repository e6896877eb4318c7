package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
)

// Grid source kinds
const (
	SourceSheets   = "sheets"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config represents the application configuration
type Config struct {
	Source string `yaml:"source" validate:"required,oneof=sheets csv postgres"`

	// Google Sheets source
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required_if=Source sheets"`
	SheetTab      string `yaml:"sheetTab" validate:"required_if=Source sheets"`

	// CSV source
	CSVPath string `yaml:"csvPath" validate:"required_if=Source csv"`

	// PostgreSQL source
	DatabaseURL string `yaml:"databaseURL" validate:"required_if=Source postgres"`
	GridName    string `yaml:"gridName" validate:"required_if=Source postgres"`

	// Layout overrides the default cell positions field by field
	Layout *compiler.Layout `yaml:"layout,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LayoutOrDefault returns the configured layout, or the default layout when none is set
func (c *Config) LayoutOrDefault() compiler.Layout {
	if c.Layout == nil {
		return compiler.DefaultLayout()
	}
	return *c.Layout
}

// Load loads and validates the configuration from cb_script_builder_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "cb_script_builder_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Layout fields missing from the file keep their default values
	defaults := compiler.DefaultLayout()
	cfg := Config{Layout: &defaults}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and the layout overrides
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Layout != nil {
		if err := cfg.Layout.Validate(); err != nil {
			return fmt.Errorf("invalid layout: %w", err)
		}
	}

	return nil
}

func configFileName(env string) string {
	if env == "" {
		return "cb_script_builder_config.yaml"
	}
	return "cb_script_builder_config." + env + ".yaml"
}

// findConfigFile searches for the config file in the current directory and home directory
func findConfigFile(env string) (string, error) {
	return findFile(configFileName(env))
}

func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
