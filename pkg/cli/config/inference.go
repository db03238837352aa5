package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

// Inference holds vision provider configuration. API keys come from the
// same environment variables the provider vendors document.
type Inference struct {
	Provider  string
	Model     string
	CallDelay time.Duration

	AnthropicKey  string
	OpenAIKey     string
	GeminiKey     string
	GeminiKeyAlt  string
	OpenRouterKey string
}

// Flags returns CLI flags for inference configuration
func (c *Inference) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "Vision provider (claude, gpt4v, gemini, openrouter); default resolved from available API keys",
			Destination: &c.Provider,
			Sources:     cli.EnvVars("GHNAV_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Model identifier (per-provider default when empty)",
			Destination: &c.Model,
			Sources:     cli.EnvVars("GHNAV_MODEL"),
		},
		&cli.DurationFlag{
			Name:        "call-delay",
			Usage:       "Fixed delay before every inference call",
			Value:       2 * time.Second,
			Destination: &c.CallDelay,
			Sources:     cli.EnvVars("GHNAV_CALL_DELAY"),
		},
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key",
			Destination: &c.AnthropicKey,
			Sources:     cli.EnvVars("ANTHROPIC_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Destination: &c.OpenAIKey,
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Google Gemini API key",
			Destination: &c.GeminiKey,
			Sources:     cli.EnvVars("GOOGLE_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "gemini-api-key-alt",
			Usage:       "Google Gemini API key (GEMINI_API_KEY alias)",
			Hidden:      true,
			Destination: &c.GeminiKeyAlt,
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "openrouter-api-key",
			Usage:       "OpenRouter API key",
			Destination: &c.OpenRouterKey,
			Sources:     cli.EnvVars("OPENROUTER_API_KEY"),
		},
	}
}

// ResolveProvider returns the configured provider, or picks one from the
// available API keys in preference order: openrouter, claude, gpt4v, gemini.
func (c *Inference) ResolveProvider() (types.Provider, error) {
	if c.Provider != "" {
		p := types.Provider(c.Provider)
		if !p.IsValid() {
			return "", goerr.New("unknown provider",
				goerr.V("provider", c.Provider),
				goerr.V("supported", types.Providers()),
			)
		}
		return p, nil
	}

	switch {
	case c.OpenRouterKey != "":
		return types.ProviderOpenRouter, nil
	case c.AnthropicKey != "":
		return types.ProviderClaude, nil
	case c.OpenAIKey != "":
		return types.ProviderGPT4V, nil
	case c.GeminiKey != "" || c.GeminiKeyAlt != "":
		return types.ProviderGemini, nil
	default:
		return "", goerr.New("no provider selected and no API key found in environment")
	}
}

// APIKey returns the credential for the given provider
func (c *Inference) APIKey(p types.Provider) (string, error) {
	var key string
	switch p {
	case types.ProviderClaude:
		key = c.AnthropicKey
	case types.ProviderGPT4V:
		key = c.OpenAIKey
	case types.ProviderGemini:
		key = c.GeminiKey
		if key == "" {
			key = c.GeminiKeyAlt
		}
	case types.ProviderOpenRouter:
		key = c.OpenRouterKey
	}
	if key == "" {
		return "", goerr.New("API key not found for provider", goerr.V("provider", p))
	}
	return key, nil
}
