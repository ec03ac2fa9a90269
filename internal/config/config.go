package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileName = "voluntariado_config.yaml"

// Config represents the application configuration. Values from the YAML
// file can be overridden through the environment, which is how deployments
// inject the database credentials.
type Config struct {
	DatabaseURL string `yaml:"databaseURL" env:"DATABASE_URL" validate:"required"`

	// MinMotivationLength is the minimum length of an application's
	// motivation text.
	MinMotivationLength int `yaml:"minMotivationLength" env:"MIN_MOTIVATION_LENGTH" validate:"min=1"`

	// ReportWindowDays bounds the application statistics report to requests
	// created in the last N days.
	ReportWindowDays int `yaml:"reportWindowDays" env:"REPORT_WINDOW_DAYS" validate:"min=1"`

	// TopVolunteersLimit caps the volunteer activity ranking.
	TopVolunteersLimit int `yaml:"topVolunteersLimit" env:"TOP_VOLUNTEERS_LIMIT" validate:"min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func applyDefaults(cfg *Config) {
	if cfg.MinMotivationLength == 0 {
		cfg.MinMotivationLength = 30
	}
	if cfg.ReportWindowDays == 0 {
		cfg.ReportWindowDays = 90
	}
	if cfg.TopVolunteersLimit == 0 {
		cfg.TopVolunteersLimit = 20
	}
}

// Load loads and validates the configuration from voluntariado_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
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

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment wins over the file.
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for voluntariado_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
