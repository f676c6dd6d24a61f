package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SEARCHAPI_API_KEY", "search-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("AMAZON_DOMAIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "amazon.com", cfg.AmazonDomain)
	assert.Equal(t, "search-key", cfg.SearchAPIKey)
}

func TestLoad_MissingRequiredKey(t *testing.T) {
	t.Setenv("SEARCHAPI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	_, err := Load()
	require.Error(t, err)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "SEARCHAPI_API_KEY", confErr.Name)
}

func TestLoad_MissingOpenAIKey(t *testing.T) {
	t.Setenv("SEARCHAPI_API_KEY", "search-key")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "OPENAI_API_KEY", confErr.Name)
}
