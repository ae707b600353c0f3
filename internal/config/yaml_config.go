package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"walink/internal/countries"
	"walink/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Countries []models.Country `yaml:"countries"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")
	return loadYAMLFile(path)
}

func loadYAMLFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Catalog returns the country catalog from the file, or the built-in list
// when the file is absent or lists no countries.
func (c *YAMLConfig) Catalog() (*countries.Catalog, error) {
	if c == nil || len(c.Countries) == 0 {
		return countries.Default(), nil
	}
	return countries.New(c.Countries)
}
