// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := LoadFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in the working directory, then in ConfigDir.
func findConfigFile() string {
	dir := ConfigDir()
	candidates := []string{
		"./biomegen.yaml",
		"./biomegen.toml",
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.toml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Biomegen")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Biomegen")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "biomegen")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "biomegen")
	}
}

// LoadFile merges a YAML or TOML file (by extension) over cfg. Fields absent from the file
// keep their values. Lists present in the file replace the existing ones.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		return unmarshalTOML(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// unmarshalTOML decodes TOML into a map and feeds it back through the YAML decoder.
func unmarshalTOML(data []byte, cfg *Config) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	converted, err := yaml.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	return yaml.Unmarshal(converted, cfg)
}
