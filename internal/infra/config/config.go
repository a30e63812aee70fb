package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// Config is the read-only process-wide configuration. It is loaded once at
// startup and injected into the components that need it; nothing reads the
// environment after Load returns.
type Config struct {
	Env             string
	Port            string
	Version         string
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	ProviderTimeout int // seconds
	SupportedModels []string
	SystemPrompts   map[string]string
}

func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "8000"),
		Version:         getEnv("SERVICE_VERSION", "1.0.0"),
		DeepSeekAPIKey:  getSecret("DEEPSEEK_API_KEY", "DEEPSEEK_API_KEY_FILE", ""),
		DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		ProviderTimeout: getEnvInt("PROVIDER_TIMEOUT_SECONDS", 30),
		SupportedModels: getEnvJSONList("SUPPORTED_MODELS", []string{"deepseek-chat"}),
		SystemPrompts:   getEnvJSONMap("SYSTEM_PROMPTS"),
	}
}

// GetPrompt returns the system prompt registered under the scene id.
func (c *Config) GetPrompt(sceneID string) (string, bool) {
	prompt, ok := c.SystemPrompts[sceneID]
	return prompt, ok
}

// IsModelSupported checks the model id against the allow-list.
func (c *Config) IsModelSupported(model string) bool {
	for _, m := range c.SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	// 1. Try direct environment variable
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	// 2. Try reading from file specified by fileEnvKey
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvJSONList decodes a JSON array env var, falling back on missing or
// invalid JSON.
func getEnvJSONList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var parsed []string
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return fallback
	}
	return parsed
}

// getEnvJSONMap decodes a JSON object env var, falling back to an empty map
// on missing or invalid JSON.
func getEnvJSONMap(key string) map[string]string {
	parsed := map[string]string{}
	value, ok := os.LookupEnv(key)
	if !ok {
		return parsed
	}
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return map[string]string{}
	}
	return parsed
}
