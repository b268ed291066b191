package userconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "frogcafe"
	configFileName = "config.yaml"
)

// UserConfig holds the CLI preferences stored in ~/.config/frogcafe/config.yaml.
// Empty fields fall back to the environment and built-in defaults.
type UserConfig struct {
	APIURL     string `yaml:"api_url,omitempty"`
	Redirects  string `yaml:"redirects,omitempty"`
	TokenStore string `yaml:"token_store,omitempty"`
	Output     string `yaml:"output,omitempty"`
}

// Keys lists the settable preference names
var Keys = []string{"api_url", "redirects", "token_store", "output"}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	if dir := os.Getenv("FROGCAFE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDirName, configFileName), nil
}

// Load reads the user configuration file. A missing file is an empty config.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Save writes the user configuration, creating the directory if needed
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// Get returns the value stored under key
func (c *UserConfig) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "redirects":
		return c.Redirects, nil
	case "token_store":
		return c.TokenStore, nil
	case "output":
		return c.Output, nil
	}
	return "", fmt.Errorf("unknown setting %q (valid: %v)", key, Keys)
}

// Set stores value under key. An empty value unsets it.
func (c *UserConfig) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "redirects":
		c.Redirects = value
	case "token_store":
		c.TokenStore = value
	case "output":
		c.Output = value
	default:
		return fmt.Errorf("unknown setting %q (valid: %v)", key, Keys)
	}
	return nil
}
