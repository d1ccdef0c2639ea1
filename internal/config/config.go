// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration including reading and writing
// the configuration file, locating the password data file, and describing where
// the master password for destructive operations comes from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDataPath is used when no data path is configured. It is relative to
// the working directory, matching where the tool has always kept its file.
const DefaultDataPath = "passwords.json"

// Master password sources.
const (
	MasterSourceConfig   = "config"
	MasterSourceKeychain = "keychain"
)

// Config represents the top-level application configuration
type Config struct {
	// DataPath is the JSON file holding the saved entries (optional)
	DataPath string `yaml:"data_path,omitempty"`

	// MasterPassword is compared verbatim against the purge argument (plaintext, discouraged)
	MasterPassword string `yaml:"master_password,omitempty"`

	// MasterPasswordHash is a bcrypt hash of the master password
	MasterPasswordHash string `yaml:"master_password_hash,omitempty"`

	// MasterSource selects where the master password lives: "config" (default) or "keychain"
	MasterSource string `yaml:"master_source,omitempty"`

	// LogLevel is one of debug, info, warn, error (defaults to info)
	LogLevel string `yaml:"log_level,omitempty"`
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "password-manager", "config.yaml"), nil
}

// LoadConfig reads the configuration from the default location.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom reads the configuration at configPath. A missing file yields
// an empty Config and no error.
func LoadConfigFrom(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	cfg.MasterSource = strings.ToLower(strings.TrimSpace(cfg.MasterSource))
	if cfg.MasterSource != "" && cfg.MasterSource != MasterSourceConfig && cfg.MasterSource != MasterSourceKeychain {
		return Config{}, fmt.Errorf("invalid master_source %q in %s: must be %q or %q",
			cfg.MasterSource, configPath, MasterSourceConfig, MasterSourceKeychain)
	}

	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

// SaveConfig writes cfg to the default location.
func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	return SaveConfigTo(configPath, cfg)
}

// SaveConfigTo writes cfg to configPath, creating the parent directory if needed.
func SaveConfigTo(configPath string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", configPath, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

// EffectiveDataPath returns the data file path with "~/" expanded, falling
// back to DefaultDataPath when none is configured.
func (c Config) EffectiveDataPath() (string, error) {
	if c.DataPath == "" {
		return DefaultDataPath, nil
	}
	return ResolvePath(c.DataPath)
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
