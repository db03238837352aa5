package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/a4kulshr/github-navigator/pkg/cli/config"
)

func TestInference_ResolveProvider(t *testing.T) {
	// Explicit provider wins regardless of available keys
	cfg := &config.Inference{Provider: "gemini", OpenRouterKey: "or-key"}
	p, err := cfg.ResolveProvider()
	gt.NoError(t, err)
	gt.Equal(t, p.String(), "gemini")

	// Unknown explicit provider is an error
	cfg = &config.Inference{Provider: "mistral"}
	_, err = cfg.ResolveProvider()
	gt.Error(t, err)

	// Preference order: openrouter beats claude beats gpt4v beats gemini
	cfg = &config.Inference{
		AnthropicKey:  "a",
		OpenAIKey:     "o",
		GeminiKey:     "g",
		OpenRouterKey: "or",
	}
	p, err = cfg.ResolveProvider()
	gt.NoError(t, err)
	gt.Equal(t, p.String(), "openrouter")

	cfg.OpenRouterKey = ""
	p, err = cfg.ResolveProvider()
	gt.NoError(t, err)
	gt.Equal(t, p.String(), "claude")

	cfg.AnthropicKey = ""
	p, err = cfg.ResolveProvider()
	gt.NoError(t, err)
	gt.Equal(t, p.String(), "gpt4v")

	cfg.OpenAIKey = ""
	p, err = cfg.ResolveProvider()
	gt.NoError(t, err)
	gt.Equal(t, p.String(), "gemini")

	// No keys at all
	cfg.GeminiKey = ""
	_, err = cfg.ResolveProvider()
	gt.Error(t, err)
}

func TestInference_APIKey(t *testing.T) {
	cfg := &config.Inference{GeminiKeyAlt: "alt-key"}

	// GEMINI_API_KEY serves as the fallback alias for GOOGLE_API_KEY
	p, err := cfg.ResolveProvider()
	gt.NoError(t, err)
	key, err := cfg.APIKey(p)
	gt.NoError(t, err)
	gt.Equal(t, key, "alt-key")

	cfg.GeminiKey = "primary-key"
	key, err = cfg.APIKey(p)
	gt.NoError(t, err)
	gt.Equal(t, key, "primary-key")

	// Missing credential for the requested provider
	_, err = cfg.APIKey("claude")
	gt.Error(t, err)
}
