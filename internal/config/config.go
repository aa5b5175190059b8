package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DatabaseURL is taken from the DATABASE_URL environment variable
	// (optionally via .env) so credentials stay out of the config file.
	DatabaseURL string `yaml:"-" validate:"required"`

	ListenAddr       string `yaml:"listenAddr" validate:"required,hostname_port"`
	StationName      string `yaml:"stationName" validate:"required"`
	UpcomingDays     int    `yaml:"upcomingDays,omitempty" validate:"omitempty,min=1,max=90"`
	ShutdownTimeout  int    `yaml:"shutdownTimeoutSeconds,omitempty" validate:"omitempty,min=1"`
	MigrateOnStartup bool   `yaml:"migrateOnStartup,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from shiftops_config.yaml
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

	applyDefaults(&cfg)

	// A .env alongside the binary is optional; a missing file is fine
	_ = godotenv.Load()
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

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

func applyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "localhost:8080"
	}
	if cfg.UpcomingDays == 0 {
		cfg.UpcomingDays = 7
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10
	}
}

// findConfigFile searches for shiftops_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "shiftops_config.yaml"

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
