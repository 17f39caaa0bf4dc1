// Package config provides configuration loading and structs for the doctext commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the system-wide config location used when no other config is found.
const DefaultPath = "/usr/local/etc/doctext/config.yaml"

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "DOCTEXT_CONFIG"

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Batch  BatchConfig  `yaml:"batch"`
	Server ServerConfig `yaml:"server"`
}

// BatchConfig holds settings for the batch PDF extractor.
type BatchConfig struct {
	InputDir     string `yaml:"input_dir"`
	Extension    string `yaml:"extension"`
	OutputSuffix string `yaml:"output_suffix"`
	// Output is the status output format: text or json.
	Output string `yaml:"output"`
	// Watch keeps the extractor running and processes new or changed files.
	Watch bool `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Addr returns host:port.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A relative input_dir from the file resolves against the file's directory. The default
	// is applied afterwards and stays relative, so it resolves against the working directory.
	cfg.Batch.InputDir = expandPath(cfg.Batch.InputDir, filepath.Dir(path))
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads path, returning the defaults when path is empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		cfg, err := Load(path)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg, nil
}

// ResolvePath returns the config file to use: $DOCTEXT_CONFIG when set, else config.yaml
// in the current directory when it exists, else DefaultPath.
func ResolvePath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, "config.yaml")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	return DefaultPath
}

// expandPath makes a relative path absolute against configDir; "~/" expands to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
		return path
	}
	return filepath.Join(configDir, path)
}
