package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_APIKEY", "openai-key")
	t.Setenv("SERPERAPI_APIKEY", "serper-key")
	t.Setenv("CONFIG_PATH", "")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, SearchProviderSerper, cfg.SearchProvider)
	assert.Equal(t, "in", cfg.SearchRegion)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, "openai-key", cfg.OpenAIKey)
	assert.Equal(t, "serper-key", cfg.SearchAPIKey)
}

func TestLoad_MissingCredentials(t *testing.T) {
	testCases := []struct {
		name   string
		openai string
		serper string
	}{
		{"MissingOpenAI", "", "serper-key"},
		{"MissingSerper", "openai-key", ""},
		{"MissingBoth", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", "")
			t.Setenv("OPENAI_APIKEY", tc.openai)
			t.Setenv("SERPERAPI_APIKEY", tc.serper)

			_, err := Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingCredential)
		})
	}
}

func TestLoad_SerpApiUsesItsOwnKey(t *testing.T) {
	setCredentials(t)
	t.Setenv("SEARCH_PROVIDER", SearchProviderSerpApi)
	t.Setenv("SERPAPI_APIKEY", "")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrMissingCredential)

	t.Setenv("SERPAPI_APIKEY", "serpapi-key")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "serpapi-key", cfg.SearchAPIKey)
}

func TestLoad_FileThenEnv(t *testing.T) {
	setCredentials(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app_port: 9000
search_region: us
fetch_timeout: 5s
extract_mode: readability
max_attempts: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SEARCH_REGION", "gb")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.AppPort)
	assert.Equal(t, "gb", cfg.SearchRegion)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ExtractModeReadability, cfg.ExtractMode)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"BadPort", "APP_PORT", "eighty"},
		{"BadTimeout", "MODEL_TIMEOUT", "soon"},
		{"BadProvider", "SEARCH_PROVIDER", "bing"},
		{"BadFetchMode", "FETCH_MODE", "ftp"},
		{"ZeroAttempts", "MAX_ATTEMPTS", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyDebugPathDisablesDump(t *testing.T) {
	setCredentials(t)
	t.Setenv("DEBUG_PROMPT_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.DebugPromptPath)
}
