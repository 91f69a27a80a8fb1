package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServiceSettings holds settings of the session service itself
type ServiceSettings struct {
	Port         string `yaml:"port" validate:"required"`
	EnableStats  bool   `yaml:"enable_stats"`
	AuditEnabled bool   `yaml:"audit_enabled"`
}

// Validate checks that all fields in ServiceSettings are valid
func (s *ServiceSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServiceSettings: %w", err)
	}

	return nil
}

// RestConfig aggregates all settings required by the REST API binary
type RestConfig struct {
	Service  ServiceSettings  `yaml:"service"`
	Logger   LoggerSettings   `yaml:"logger"`
	Database DatabaseSettings `yaml:"database"`
}

// Validate checks all nested settings
func (c *RestConfig) Validate() error {
	if err := c.Service.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeRestConfig reads and validates the REST API configuration from a YAML file
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg RestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
