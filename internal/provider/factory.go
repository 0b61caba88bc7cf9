package provider

import (
	"fmt"

	"github.com/julianshen/repolens/internal/config"
)

// ProviderConstructor is a function that creates a new LLMProvider.
type ProviderConstructor func(baseURL, apiKey string, extraHeaders map[string]string) (LLMProvider, error)

// registry holds registered provider constructors.
var registry = map[string]ProviderConstructor{}

// RegisterProvider registers a provider constructor by name.
func RegisterProvider(name string, constructor ProviderConstructor) {
	registry[name] = constructor
}

// NewProvider creates an LLMProvider based on the given configuration.
// "gemini" and "ollama" select those backends; any other name is looked up
// among the OpenAI-compatible configurations.
func NewProvider(cfg *config.Config) (LLMProvider, error) {
	switch cfg.Provider.Default {
	case "gemini":
		return newGeminiProvider(cfg)
	case "ollama":
		return newOllamaProvider(cfg)
	default:
		return newOpenAIProvider(cfg)
	}
}

func lookup(name string) (ProviderConstructor, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%s provider not registered", name)
	}
	return constructor, nil
}

func newGeminiProvider(cfg *config.Config) (LLMProvider, error) {
	constructor, err := lookup("gemini")
	if err != nil {
		return nil, err
	}

	apiKey, err := config.ResolveAPIKey(
		cfg.Provider.Gemini.APIKeySource,
		cfg.Provider.Gemini.APIKey,
		"GEMINI_API_KEY",
	)
	if err != nil {
		return nil, fmt.Errorf("resolving Gemini API key: %w", err)
	}

	return constructor("", apiKey, nil)
}

func newOllamaProvider(cfg *config.Config) (LLMProvider, error) {
	constructor, err := lookup("ollama")
	if err != nil {
		return nil, err
	}
	return constructor(cfg.Provider.Ollama.BaseURL, "", nil)
}

func newOpenAIProvider(cfg *config.Config) (LLMProvider, error) {
	name := cfg.Provider.Default

	constructor, err := lookup("openai")
	if err != nil {
		return nil, err
	}

	for _, oc := range cfg.Provider.OpenAI {
		if oc.Name == name {
			envVar := config.EnvVarFor(name)
			apiKey, err := config.ResolveAPIKey(oc.APIKeySource, oc.APIKey, envVar)
			if err != nil {
				return nil, fmt.Errorf("resolving %s API key: %w", name, err)
			}

			return constructor(oc.BaseURL, apiKey, oc.ExtraHeaders)
		}
	}

	return nil, fmt.Errorf("unknown provider: %q", name)
}
