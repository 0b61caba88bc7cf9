package config

import (
	"fmt"
	"os"
	"strings"
)

// ResolveAPIKey resolves an API key based on the given source.
// Supported sources: "env" (from environment variable), "config" (from config value),
// "keyring" (currently falls back to env). An empty source means "env".
func ResolveAPIKey(source, configValue, envVar string) (string, error) {
	switch source {
	case "", "env", "keyring":
		return resolveFromEnv(envVar)
	case "config":
		if strings.TrimSpace(configValue) == "" {
			return "", fmt.Errorf("api_key_source is 'config' but no api_key value provided")
		}
		return strings.TrimSpace(configValue), nil
	default:
		return "", fmt.Errorf("unknown api_key_source: %q", source)
	}
}

// EnvVarFor returns the environment variable holding the API key for the
// named provider, e.g. "openrouter" -> "OPENROUTER_API_KEY".
func EnvVarFor(providerName string) string {
	name := strings.ToUpper(strings.ReplaceAll(providerName, "-", "_"))
	return name + "_API_KEY"
}

func resolveFromEnv(envVar string) (string, error) {
	if envVar == "" {
		return "", fmt.Errorf("no environment variable name specified")
	}
	val := strings.TrimSpace(os.Getenv(envVar))
	if val == "" {
		return "", fmt.Errorf("environment variable %s is not set", envVar)
	}
	return val, nil
}
