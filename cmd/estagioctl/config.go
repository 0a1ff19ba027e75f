package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cliConfig is read from ~/.estagioctl.yaml.
type cliConfig struct {
	ServerURL string `yaml:"ServerURL"`
	Timeout   string `yaml:"Timeout"`
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".estagioctl.yaml"
	}
	return filepath.Join(home, ".estagioctl.yaml")
}

func loadConfig() (*cliConfig, error) {
	cfg := &cliConfig{ServerURL: "http://localhost:8080"}

	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	return cfg, nil
}

// serverURL resolves the base URL: flag first, then config file.
func serverURL(cmd *cobra.Command) (string, error) {
	if flag, _ := cmd.Flags().GetString("server"); flag != "" {
		return strings.TrimRight(flag, "/"), nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(cfg.ServerURL, "/"), nil
}
