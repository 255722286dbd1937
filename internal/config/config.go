// Package config loads roam's settings from defaults, an optional config file
// and ROAM_-prefixed environment variables, in increasing precedence.
package config

import (
	"time"

	"github.com/Yates-Labs/roam/internal/itinerary"
	"github.com/Yates-Labs/roam/internal/render"
)

// Config holds all application configuration.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
	Render RenderConfig `mapstructure:"render" validate:"required"`
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Log    LogConfig    `mapstructure:"log" validate:"required"`
}

// LLMConfig selects and tunes the generation provider.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	Temperature float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int           `mapstructure:"max_tokens" validate:"gt=0"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// RenderConfig controls PDF font lookup.
type RenderConfig struct {
	FontDir  string `mapstructure:"font_dir"`
	Fallback bool   `mapstructure:"fallback"`
	Compress bool   `mapstructure:"compress"`
}

// ServerConfig contains the HTTP host settings.
type ServerConfig struct {
	Addr       string        `mapstructure:"addr" validate:"required"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`

	// AllowedOrigins enables CORS for the listed origins.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,url"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=console json"`
}

// Itinerary converts the LLM section into the provider configuration.
func (c LLMConfig) Itinerary() itinerary.LLMConfig {
	model := c.Model
	if model == "" {
		model = itinerary.DefaultModel(c.Provider)
	}
	return itinerary.LLMConfig{
		Provider:    c.Provider,
		Model:       model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Timeout:     c.Timeout,
	}
}

// Renderer converts the render section into renderer settings.
func (c RenderConfig) Renderer() render.Config {
	return render.Config{
		FontDir:  c.FontDir,
		Fallback: c.Fallback,
		Compress: c.Compress,
	}
}
