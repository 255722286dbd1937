package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no roam variables set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, name := range []string{
		"ROAM_LLM_PROVIDER", "ROAM_LLM_MODEL", "ROAM_LLM_API_KEY", "ROAM_LLM_TIMEOUT",
		"ROAM_SERVER_ADDR", "ROAM_SERVER_ALLOWED_ORIGINS", "ROAM_LOG_LEVEL", "ROAM_RENDER_FALLBACK",
		"OPENAI_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "assets/fonts", cfg.Render.FontDir)
	assert.True(t, cfg.Render.Fallback)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("ROAM_LLM_PROVIDER", "Gemini")
	t.Setenv("ROAM_LLM_TIMEOUT", "15s")
	t.Setenv("ROAM_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ROAM_RENDER_FALLBACK", "false")
	t.Setenv("ROAM_SERVER_ALLOWED_ORIGINS", "http://localhost:5173,https://roam.example.com")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.False(t, cfg.Render.Fallback)
	assert.Equal(t, []string{"http://localhost:5173", "https://roam.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gem-key", cfg.LLM.APIKey)

	llm := cfg.LLM.Itinerary()
	assert.Equal(t, "gemini-2.0-flash", llm.Model)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
[llm]
model = "gpt-4o-mini"
max_tokens = 1200

[render]
font_dir = "/usr/share/fonts/roam"

[log]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 1200, cfg.LLM.MaxTokens)
	assert.Equal(t, "/usr/share/fonts/roam", cfg.Render.Renderer().FontDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roam.toml"), []byte("[llm]\nmodel = \"from-file\"\n"), 0o644))
	t.Setenv("ROAM_LLM_MODEL", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.Model)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown provider", "ROAM_LLM_PROVIDER", "llama"},
		{"bad log level", "ROAM_LOG_LEVEL", "verbose"},
		{"zero timeout", "ROAM_LLM_TIMEOUT", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLLMConfig_Itinerary(t *testing.T) {
	c := LLMConfig{Provider: "openai", Temperature: 0.2, MaxTokens: 500, Timeout: time.Second}
	got := c.Itinerary()

	assert.Equal(t, "gpt-4-turbo", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.Equal(t, time.Second, got.Timeout)
}
