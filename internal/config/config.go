package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ConfigurationError reports a required credential missing at startup.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Name)
}

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	SearchAPIKey string
	OpenAIKey    string
	OpenAIModel  string
	AmazonDomain string
	DatabaseURL  string
	VapiAPIKey   string
	AssistantID  string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		SearchAPIKey: os.Getenv("SEARCHAPI_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4o"),
		AmazonDomain: getenv("AMAZON_DOMAIN", "amazon.com"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		VapiAPIKey:   os.Getenv("VAPI_API_KEY"),
		AssistantID:  os.Getenv("ASSISTANT_ID"),
	}

	if cfg.SearchAPIKey == "" {
		return nil, &ConfigurationError{Name: "SEARCHAPI_API_KEY"}
	}
	if cfg.OpenAIKey == "" {
		return nil, &ConfigurationError{Name: "OPENAI_API_KEY"}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
