// Package config loads the tempocorreld service's YAML settings file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the top-level service configuration.
type Settings struct {
	HTTPAddr     string         `yaml:"httpAddr"`
	TemporalAddr string         `yaml:"temporalAddr"`
	Namespace    string         `yaml:"namespace"`
	TaskQueue    string         `yaml:"taskQueue"`
	LogLevel     string         `yaml:"logLevel"`
	JobStore     JobStoreConfig `yaml:"jobStore"`
}

// JobStoreConfig configures the run-history SQLite database.
type JobStoreConfig struct {
	Path string `yaml:"path"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks and normalizes Settings, filling in defaults for any
// field left unset.
func (s *Settings) Validate() error {
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	normalized := strings.ToLower(s.LogLevel)
	if !validLogLevels[normalized] {
		return fmt.Errorf("logLevel must be one of [debug, info, warn, error], got %q", s.LogLevel)
	}
	s.LogLevel = normalized

	if s.HTTPAddr == "" {
		s.HTTPAddr = ":8080"
	}
	if s.TemporalAddr == "" {
		s.TemporalAddr = "localhost:7233"
	}
	if s.Namespace == "" {
		s.Namespace = "default"
	}
	if s.TaskQueue == "" {
		s.TaskQueue = "tempocorrelate-task-queue"
	}
	if s.JobStore.Path == "" {
		s.JobStore.Path = "tempocorrelate.db"
	}

	return nil
}

// Load reads and validates a Settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate %q: %w", path, err)
	}

	return &settings, nil
}
