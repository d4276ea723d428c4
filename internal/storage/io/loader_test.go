package io

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/internal/model"
)

func TestConfigYAMLRepository_GetConfig(t *testing.T) {
	tests := map[string]struct {
		fs     fstest.MapFS
		path   string
		expCfg model.AssistantConfig
		expErr bool
		errMsg string
	}{
		"Full config should load successfully": {
			fs: fstest.MapFS{
				"config.yaml": &fstest.MapFile{
					Data: []byte(`api_provider: anthropic
api_key: sk-test
model: claude-sonnet-4
max_tokens: 4096
temperature: 0.2
`),
				},
			},
			path: "config.yaml",
			expCfg: model.AssistantConfig{
				Provider:    model.APIProviderAnthropic,
				APIKey:      "sk-test",
				Model:       "claude-sonnet-4",
				MaxTokens:   4096,
				Temperature: 0.2,
			},
		},

		"Local provider with custom URL should load successfully": {
			fs: fstest.MapFS{
				"config.yaml": &fstest.MapFile{
					Data: []byte(`api_provider: local
api_url: http://localhost:11434
model: llama3
`),
				},
			},
			path: "config.yaml",
			expCfg: model.AssistantConfig{
				Provider: model.APIProviderLocal,
				APIURL:   "http://localhost:11434",
				Model:    "llama3",
			},
		},

		"Empty config should load successfully": {
			fs: fstest.MapFS{
				"empty.yaml": &fstest.MapFile{
					Data: []byte("---\n"),
				},
			},
			path:   "empty.yaml",
			expCfg: model.AssistantConfig{},
		},

		"Missing file should return error": {
			fs:     fstest.MapFS{},
			path:   "nonexistent.yaml",
			expErr: true,
			errMsg: "reading config file",
		},

		"Invalid YAML should return error": {
			fs: fstest.MapFS{
				"bad.yaml": &fstest.MapFile{
					Data: []byte("api_provider: [unclosed"),
				},
			},
			path:   "bad.yaml",
			expErr: true,
			errMsg: "parsing YAML",
		},

		"Unknown provider should return error": {
			fs: fstest.MapFS{
				"config.yaml": &fstest.MapFile{
					Data: []byte("api_provider: bedrock\n"),
				},
			},
			path:   "config.yaml",
			expErr: true,
			errMsg: "invalid configuration",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewConfigYAMLRepository(tt.fs)
			cfg, err := repo.GetConfig(context.Background(), tt.path)

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expCfg, cfg)
			}
		})
	}
}
