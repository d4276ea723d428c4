package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/Navteca/cline/internal/model"
)

// ConfigYAMLRepository loads assistant configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads an assistant configuration from a YAML file and returns a
// validated domain model.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.AssistantConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.AssistantConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.AssistantConfig{}, ctx.Err()
	}

	var cfg AssistantConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.AssistantConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	mCfg := cfg.toModel()
	if err := mCfg.Validate(); err != nil {
		return model.AssistantConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return mCfg, nil
}

// AssistantConfig represents the YAML structure for assistant configuration.
type AssistantConfig struct {
	APIProvider string  `yaml:"api_provider"`
	APIKey      string  `yaml:"api_key"`
	APIURL      string  `yaml:"api_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

func (c AssistantConfig) toModel() model.AssistantConfig {
	return model.AssistantConfig{
		Provider:    model.APIProvider(c.APIProvider),
		APIKey:      c.APIKey,
		APIURL:      c.APIURL,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}
}
