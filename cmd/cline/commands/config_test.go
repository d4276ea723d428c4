package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
)

func TestRootCommandAssistantConfig(t *testing.T) {
	tests := map[string]struct {
		config  string
		missing bool
		expCfg  model.AssistantConfig
		expErr  bool
	}{
		"A valid config file should load": {
			config: `
api_provider: openai
api_key: sk-test
model: gpt-4o
max_tokens: 4096
`,
			expCfg: model.AssistantConfig{
				Provider:  model.APIProviderOpenAI,
				APIKey:    "sk-test",
				Model:     "gpt-4o",
				MaxTokens: 4096,
			},
		},
		"A missing config file should yield an empty config": {
			missing: true,
			expCfg:  model.AssistantConfig{},
		},
		"An invalid config file should fail": {
			config: `api_provider: not-a-provider`,
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if !tc.missing {
				require.NoError(t, os.WriteFile(path, []byte(tc.config), 0o644))
			}

			rootCmd := &RootCommand{ConfigPath: path, Logger: log.Noop}

			cfg, err := rootCmd.AssistantConfig(context.TODO())

			if tc.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expCfg, cfg)
		})
	}
}
