// Package config loads the application configuration from config/app.yaml
// with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration shared by the api and batch
// binaries.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		Dir string `yaml:"dir"`
	} `yaml:"cache"`
	Batch struct {
		DelayMs      int `yaml:"delay_ms"`
		SaveInterval int `yaml:"save_interval"`
	} `yaml:"batch"`
	Resources struct {
		Synonyms string `yaml:"synonyms"`
	} `yaml:"resources"`
}

// Load reads the yaml file at path, falling back to defaults when the
// file is missing. PORT overrides the server address.
func Load(path string) Config {
	cfg := Config{}
	cfg.Server.Addr = ":8080"
	cfg.Batch.DelayMs = 50
	cfg.Batch.SaveInterval = 10
	cfg.Resources.Synonyms = "config/synonyms.hjson"

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("[CONFIG] %s not found, using defaults\n", path)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] failed to parse %s: %v\n", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg
}
