package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the top-level application configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

// ProviderConfig holds settings for completion provider selection.
type ProviderConfig struct {
	Default     string                   `toml:"default"`
	Model       string                   `toml:"model"`
	Temperature float64                  `toml:"temperature"`
	Gemini      GeminiProviderConfig     `toml:"gemini"`
	Ollama      OllamaProviderConfig     `toml:"ollama"`
	OpenAI      []OpenAICompatibleConfig `toml:"openai_compatible"`
}

// GeminiProviderConfig holds Gemini-specific provider settings.
type GeminiProviderConfig struct {
	APIKeySource string `toml:"api_key_source"`
	APIKey       string `toml:"api_key"`
}

// OllamaProviderConfig holds settings for a local Ollama server.
type OllamaProviderConfig struct {
	BaseURL string `toml:"base_url"`
}

// OpenAICompatibleConfig holds settings for an OpenAI-compatible provider.
type OpenAICompatibleConfig struct {
	Name         string            `toml:"name"`
	BaseURL      string            `toml:"base_url"`
	APIKeySource string            `toml:"api_key_source"`
	APIKey       string            `toml:"api_key"`
	ExtraHeaders map[string]string `toml:"extra_headers"`
}

// HistoryConfig controls the local run ledger. It is off unless enabled.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// DefaultTemperature keeps report output close to deterministic.
const DefaultTemperature = 0.3

// MaxTemperature is the highest sampling temperature Load accepts.
const MaxTemperature = 0.5

// FallbackModel is used when no model is configured and the provider has no
// entry in DefaultModels.
const FallbackModel = "gpt-4o"

// DefaultModels maps a provider name to the model used when neither the
// config file nor the command line names one.
var DefaultModels = map[string]string{
	"openai": FallbackModel,
	"gemini": "gemini-2.0-flash",
	"ollama": "llama3.2",
}

// DefaultModelFor returns the default model for the named provider.
func DefaultModelFor(providerName string) string {
	if m, ok := DefaultModels[providerName]; ok {
		return m
	}
	return FallbackModel
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Default:     "openai",
			Temperature: DefaultTemperature,
			Gemini: GeminiProviderConfig{
				APIKeySource: "env",
			},
			Ollama: OllamaProviderConfig{
				BaseURL: "http://localhost:11434",
			},
			OpenAI: []OpenAICompatibleConfig{
				{
					Name:         "openai",
					BaseURL:      "https://api.openai.com/v1",
					APIKeySource: "env",
				},
			},
		},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the TOML file at path over DefaultConfig. A missing file is not
// an error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Decoding replaces the default openai_compatible list only when the
	// file declares one.
	defaults := cfg.Provider.OpenAI
	cfg.Provider.OpenAI = nil
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.Provider.OpenAI == nil {
		cfg.Provider.OpenAI = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that the TOML decoder cannot constrain.
func (c *Config) Validate() error {
	if t := c.Provider.Temperature; t < 0 || t > MaxTemperature {
		return fmt.Errorf("provider.temperature %v out of range [0, %v]", t, MaxTemperature)
	}
	return nil
}

// ResolveModel fills in the provider's default model when none is set.
func (c *Config) ResolveModel() {
	if c.Provider.Model == "" {
		c.Provider.Model = DefaultModelFor(c.Provider.Default)
	}
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "repolens"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the configured history database path, falling back
// to history.db in the default config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
