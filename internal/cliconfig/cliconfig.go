// Package cliconfig manages the CLI's on-disk state under ~/.yigyaps.
package cliconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dirName  = ".yigyaps"
	fileName = "config.json"

	defaultRegistryURL = "http://localhost:8080"
)

// Config is the JSON structure of ~/.yigyaps/config.json. The API key is a
// credential, so the file is written 0600.
type Config struct {
	RegistryURL string     `json:"registryUrl"`
	ApiKey      string     `json:"apiKey,omitempty"`
	Username    string     `json:"username,omitempty"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	FirstRun    bool       `json:"firstRun"`
}

// Path returns the config file location, honoring YIGYAPS_CONFIG_DIR for
// tests.
func Path() (string, error) {
	if dir := os.Getenv("YIGYAPS_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the config, returning defaults (FirstRun=true) when the file
// does not exist. YIGYAPS_REGISTRY_URL overrides the stored registry URL.
func Load() (*Config, error) {
	cfg := &Config{RegistryURL: defaultRegistryURL, FirstRun: true}

	p, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config %s: %w", p, jerr)
		}
		cfg.FirstRun = false
	case os.IsNotExist(err):
		// keep defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if override := os.Getenv("YIGYAPS_REGISTRY_URL"); override != "" {
		cfg.RegistryURL = override
	}
	if cfg.RegistryURL == "" {
		cfg.RegistryURL = defaultRegistryURL
	}
	return cfg, nil
}

// Save writes the config atomically: temp file in the same directory, then
// rename.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
