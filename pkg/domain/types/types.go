package types

// Version is the application version, overridden at build time via ldflags
var Version = "dev"

// Provider identifies a vision-capable inference provider
type Provider string

const (
	ProviderClaude     Provider = "claude"
	ProviderGPT4V      Provider = "gpt4v"
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
)

// Providers lists all supported provider identifiers
func Providers() []Provider {
	return []Provider{ProviderClaude, ProviderGPT4V, ProviderGemini, ProviderOpenRouter}
}

// IsValid checks if the provider identifier is a known variant
func (p Provider) IsValid() bool {
	switch p {
	case ProviderClaude, ProviderGPT4V, ProviderGemini, ProviderOpenRouter:
		return true
	default:
		return false
	}
}

func (p Provider) String() string {
	return string(p)
}

// Viewport dimensions used for screenshots and coordinate estimation.
// The decide-action prompt quotes these, so they must match the emulated
// browser viewport.
const (
	ViewportWidth  = 1280
	ViewportHeight = 900
)
