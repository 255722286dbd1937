// Package itinerary turns trip requests into generated itineraries. It defines
// a provider-agnostic LLM interface with OpenAI and Gemini implementations and
// a deterministic mock for testing. The Client wraps a provider and collapses
// every failure into a tagged Result so callers never handle provider errors.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
	ErrUnauthorized  = errors.New("LLM provider rejected the credentials")
	ErrRateLimited   = errors.New("LLM provider rate limit exceeded")
	ErrEmptyResponse = errors.New("LLM returned no completion")
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Messages is the two-part exchange sent to a model: a system-level
// instruction and the user-level request.
type Messages struct {
	System string
	User   string
}

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces a single completion for the exchange.
	Generate(ctx context.Context, msgs Messages) (string, error)
}

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Provider selects the backend ("openai" or "gemini")
	Provider string

	// Model specifies the model identifier (e.g., "gpt-4-turbo")
	Model string

	// Temperature controls randomness (0.0 = provider default)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways)
	BaseURL string

	// Timeout bounds a single generation call
	Timeout time.Duration
}

// DefaultLLMConfig returns the sampling settings itineraries are tuned for.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:    ProviderOpenAI,
		Model:       "gpt-4-turbo",
		Temperature: 0.7,
		MaxTokens:   2000,
		Timeout:     60 * time.Second,
	}
}

// DefaultModel returns the model used when none is configured for provider.
func DefaultModel(provider string) string {
	if strings.EqualFold(provider, ProviderGemini) {
		return "gemini-2.0-flash"
	}
	return "gpt-4-turbo"
}

// NewLLM builds the provider named in config.
func NewLLM(ctx context.Context, config LLMConfig) (LLM, error) {
	switch strings.ToLower(config.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAILLM(config)
	case ProviderGemini:
		return NewGeminiLLM(ctx, config)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, config.Provider)
	}
}
