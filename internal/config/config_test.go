package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "openai", cfg.Provider.Default)
	assert.Empty(t, cfg.Provider.Model)
	assert.InDelta(t, 0.3, cfg.Provider.Temperature, 1e-9)
	require.Len(t, cfg.Provider.OpenAI, 1)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Provider.OpenAI[0].BaseURL)
	assert.Equal(t, "http://localhost:11434", cfg.Provider.Ollama.BaseURL)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[provider]
default = "gemini"
model = "gemini-2.0-flash"
temperature = 0.1

[provider.gemini]
api_key_source = "config"
api_key = "g-key"

[history]
enabled = false

[log]
level = "debug"
file = "/tmp/repolens.log"
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0o644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider.Default)
	assert.Equal(t, "gemini-2.0-flash", cfg.Provider.Model)
	assert.InDelta(t, 0.1, cfg.Provider.Temperature, 1e-9)
	assert.Equal(t, "config", cfg.Provider.Gemini.APIKeySource)
	assert.Equal(t, "g-key", cfg.Provider.Gemini.APIKey)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/repolens.log", cfg.Log.File)
	// Fields not set in the file keep their defaults.
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, "http://localhost:11434", cfg.Provider.Ollama.BaseURL)
	require.Len(t, cfg.Provider.OpenAI, 1)
	assert.Equal(t, "openai", cfg.Provider.OpenAI[0].Name)
}

func TestLoadOpenAICompatibleProviders(t *testing.T) {
	tomlContent := `
[provider]
default = "openrouter"
model = "anthropic/claude-sonnet-4-5"

[[provider.openai_compatible]]
name = "openai"
base_url = "https://api.openai.com/v1"
api_key_source = "env"

[[provider.openai_compatible]]
name = "openrouter"
base_url = "https://openrouter.ai/api/v1"
api_key_source = "env"
extra_headers = { HTTP-Referer = "https://github.com/julianshen/repolens" }
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0o644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "openrouter", cfg.Provider.Default)
	require.Len(t, cfg.Provider.OpenAI, 2)
	assert.Equal(t, "openai", cfg.Provider.OpenAI[0].Name)
	assert.Equal(t, "openrouter", cfg.Provider.OpenAI[1].Name)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.Provider.OpenAI[1].BaseURL)
	assert.Equal(t, "https://github.com/julianshen/repolens", cfg.Provider.OpenAI[1].ExtraHeaders["HTTP-Referer"])
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider.Default)
	assert.Empty(t, cfg.Provider.Model)
	assert.False(t, cfg.History.Enabled)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0o644))

	_, err := Load(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestHistoryPathOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.Path = "/var/lib/repolens/runs.db"

	p, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/repolens/runs.db", p)
}

func TestHistoryPathDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()

	p, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "history.db", filepath.Base(p))
	assert.Equal(t, "repolens", filepath.Base(filepath.Dir(p)))
}

func TestLoadRejectsHighTemperature(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[provider]\ntemperature = 1.9\n"), 0o644))

	_, err := Load(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider.temperature 1.9 out of range")
}

func TestValidateTemperatureBounds(t *testing.T) {
	tests := []struct {
		temp    float64
		wantErr bool
	}{
		{0, false},
		{DefaultTemperature, false},
		{MaxTemperature, false},
		{-0.1, true},
		{0.7, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Provider.Temperature = tt.temp
		err := cfg.Validate()
		if tt.wantErr {
			assert.Error(t, err, "temperature %v", tt.temp)
		} else {
			assert.NoError(t, err, "temperature %v", tt.temp)
		}
	}
}

func TestDefaultModelFor(t *testing.T) {
	assert.Equal(t, "gpt-4o", DefaultModelFor("openai"))
	assert.Equal(t, "gemini-2.0-flash", DefaultModelFor("gemini"))
	assert.Equal(t, "llama3.2", DefaultModelFor("ollama"))
	assert.Equal(t, FallbackModel, DefaultModelFor("openrouter"))
}

func TestResolveModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.Default = "ollama"
	cfg.ResolveModel()
	assert.Equal(t, "llama3.2", cfg.Provider.Model)

	cfg.Provider.Model = "mistral"
	cfg.ResolveModel()
	assert.Equal(t, "mistral", cfg.Provider.Model)
}

func TestLoadHistoryOptIn(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[history]\nenabled = true\n"), 0o644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.True(t, cfg.History.Enabled)
}
