// Package config loads the CLI's configuration. Two files contribute:
// a per-user file (by default ~/.nerves-hub/config.yml) holding account
// defaults such as the organization, and an optional per-project file
// (.nerves-hub.yml in the working directory) naming the project and its
// application identifier. Both are optional; environment variables
// override the per-user file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Environment variables recognized as overrides of the per-user file.
const (
	OrgEnvVar  = "NERVES_HUB_ORG"
	HostEnvVar = "NERVES_HUB_HOST"
)

// ProjectFileName is the per-project configuration file looked up in the
// working directory.
const ProjectFileName = ".nerves-hub.yml"

// Config represents the resolved CLI configuration.
type Config struct {
	Org       string `yaml:"org"`
	Product   string `yaml:"product"`
	APIHost   string `yaml:"api_host"`
	TokenPath string `yaml:"token_path"`

	// Project holds the per-project configuration, loaded separately
	// from the working directory.
	Project ProjectConfig `yaml:"-"`
}

// ProjectConfig holds per-project settings from .nerves-hub.yml.
type ProjectConfig struct {
	Name string `yaml:"name"`
	App  string `yaml:"app"`
}

// DefaultUserPath returns the default location of the per-user
// configuration file.
func DefaultUserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nerves-hub", "config.yml")
}

// Load loads the configuration from the per-user file at userPath and the
// per-project file in projectDir. A missing file is not an error, only an
// unreadable or unparseable one is.
func Load(userPath, projectDir string) (*Config, error) {
	var cfg Config

	if err := loadYAMLFile(userPath, &cfg); err != nil {
		return nil, fmt.Errorf("user config %s: %w", userPath, err)
	}

	projectPath := filepath.Join(projectDir, ProjectFileName)
	if err := loadYAMLFile(projectPath, &cfg.Project); err != nil {
		return nil, fmt.Errorf("project config %s: %w", projectPath, err)
	}

	validateAndPrepare(&cfg)
	return &cfg, nil
}

// loadYAMLFile unmarshals the yaml file at path into v, treating a missing
// file as empty configuration.
func loadYAMLFile(path string, v any) error {
	if path == "" {
		return nil
	}
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(contents, v); err != nil {
		return fmt.Errorf("unable to parse YAML config file: %w", err)
	}
	return nil
}

// validateAndPrepare applies environment overrides and fills in derived
// defaults. The organization is deliberately not required here: commands
// resolve it against their --org flag and report its absence themselves.
func validateAndPrepare(c *Config) {
	if org := os.Getenv(OrgEnvVar); org != "" {
		c.Org = org
	}
	if host := os.Getenv(HostEnvVar); host != "" {
		c.APIHost = host
	}

	if c.TokenPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.TokenPath = filepath.Join(home, ".nerves-hub", "token.json")
		}
	}
}
