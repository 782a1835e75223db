package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application settings that are not per-invocation
// flags: where the raw table is served and how the vault is labelled.
type Config struct {
	Vault struct {
		ID  string `yaml:"id"`
		URL string `yaml:"url"`
	} `yaml:"vault"`
	Source struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"source"`
}

const (
	defaultVaultID     = "110428"
	defaultVaultURLFmt = "https://ox.fun/en/vaults/profile/%s"
	// The JSON mirror of the table the vault profile page renders.
	defaultEndpointFmt = "https://ox.fun/api/vaults/%s/pnl"
)

// LoadConfig reads the YAML config file at path, then applies
// environment variable overrides and defaults. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OXVAULT_VAULT_ID"); v != "" {
		cfg.Vault.ID = v
	}
	if v := os.Getenv("OXVAULT_ENDPOINT"); v != "" {
		cfg.Source.Endpoint = v
	}

	// Defaults
	if cfg.Vault.ID == "" {
		cfg.Vault.ID = defaultVaultID
	}
	if cfg.Vault.URL == "" {
		cfg.Vault.URL = fmt.Sprintf(defaultVaultURLFmt, cfg.Vault.ID)
	}
	if cfg.Source.Endpoint == "" {
		cfg.Source.Endpoint = fmt.Sprintf(defaultEndpointFmt, cfg.Vault.ID)
	}
	return cfg, nil
}
