package model

import "fmt"

// APIProvider identifies the backing LLM API provider.
type APIProvider string

const (
	APIProviderOpenAI     APIProvider = "openai"
	APIProviderAnthropic  APIProvider = "anthropic"
	APIProviderOpenRouter APIProvider = "openrouter"
	APIProviderLocal      APIProvider = "local"
)

// AssistantConfig is the configuration record for the assistant core.
// Persistence of this record is delegated to the surrounding host.
type AssistantConfig struct {
	Provider    APIProvider
	APIKey      string
	APIURL      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Validate validates the configuration.
func (c *AssistantConfig) Validate() error {
	switch c.Provider {
	case "", APIProviderOpenAI, APIProviderAnthropic, APIProviderOpenRouter, APIProviderLocal:
	default:
		return fmt.Errorf("unknown api provider %q: %w", c.Provider, ErrNotValid)
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must be positive: %w", ErrNotValid)
	}

	return nil
}

// ConfigUpdate is a partial configuration change. Nil fields are left
// untouched when merged.
type ConfigUpdate struct {
	Provider    *APIProvider
	APIKey      *string
	APIURL      *string
	Model       *string
	MaxTokens   *int
	Temperature *float64
}

// Merge returns a copy of the configuration with the update's set fields
// applied (shallow merge semantics).
func (c AssistantConfig) Merge(u ConfigUpdate) AssistantConfig {
	if u.Provider != nil {
		c.Provider = *u.Provider
	}
	if u.APIKey != nil {
		c.APIKey = *u.APIKey
	}
	if u.APIURL != nil {
		c.APIURL = *u.APIURL
	}
	if u.Model != nil {
		c.Model = *u.Model
	}
	if u.MaxTokens != nil {
		c.MaxTokens = *u.MaxTokens
	}
	if u.Temperature != nil {
		c.Temperature = *u.Temperature
	}
	return c
}
