package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrMissingCredential = errors.New("required credential is not set")

const (
	SearchProviderSerper  = "serper"
	SearchProviderSerpApi = "serpapi"

	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"

	ExtractModeDOM         = "dom"
	ExtractModeReadability = "readability"
	ExtractModeTrafilatura = "trafilatura"
)

type Config struct {
	AppPort     int      `yaml:"app_port"`
	LogLevel    string   `yaml:"log_level"`
	CorsOrigins []string `yaml:"cors_origins"`

	OpenAIKey   string `yaml:"-"`
	OpenAIModel string `yaml:"openai_model"`

	SearchProvider string `yaml:"search_provider"`
	SearchAPIKey   string `yaml:"-"`
	SearchRegion   string `yaml:"search_region"`

	FetchMode   string `yaml:"fetch_mode"`
	ExtractMode string `yaml:"extract_mode"`
	ProxyURL    string `yaml:"proxy_url"`

	DebugPromptPath string `yaml:"debug_prompt_path"`

	SearchTimeout time.Duration `yaml:"search_timeout"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	ModelTimeout  time.Duration `yaml:"model_timeout"`
	MaxAttempts   int           `yaml:"max_attempts"`
	TopN          int           `yaml:"top_n"`
}

// Default returns the settings used when neither the config file nor the
// environment override them.
func Default() *Config {
	return &Config{
		AppPort:         8000,
		LogLevel:        "info",
		CorsOrigins:     []string{"*"},
		OpenAIModel:     "gpt-4o",
		SearchProvider:  SearchProviderSerper,
		SearchRegion:    "in",
		FetchMode:       FetchModeHTTP,
		ExtractMode:     ExtractModeDOM,
		DebugPromptPath: "complete_prompt.txt",
		SearchTimeout:   15 * time.Second,
		FetchTimeout:    20 * time.Second,
		ModelTimeout:    120 * time.Second,
		MaxAttempts:     2,
		TopN:            3,
	}
}

// Load reads .env (if present), the optional YAML file at path and then the
// process environment. Missing credentials are reported as
// ErrMissingCredential.
func Load(path string) (*Config, error) {
	// .env is optional, the real environment always wins
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.loadCredentials(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid APP_PORT %q: %w", v, err)
		}
		c.AppPort = port
	}

	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.OpenAIModel, "OPENAI_MODEL")
	setString(&c.SearchProvider, "SEARCH_PROVIDER")
	setString(&c.SearchRegion, "SEARCH_REGION")
	setString(&c.FetchMode, "FETCH_MODE")
	setString(&c.ExtractMode, "EXTRACT_MODE")
	setString(&c.ProxyURL, "PROXY_URL")

	// an explicitly empty DEBUG_PROMPT_PATH disables the prompt dump
	if v, ok := os.LookupEnv("DEBUG_PROMPT_PATH"); ok {
		c.DebugPromptPath = v
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CorsOrigins = origins
	}

	for key, dst := range map[string]*time.Duration{
		"SEARCH_TIMEOUT": &c.SearchTimeout,
		"FETCH_TIMEOUT":  &c.FetchTimeout,
		"MODEL_TIMEOUT":  &c.ModelTimeout,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}

	for key, dst := range map[string]*int{
		"MAX_ATTEMPTS": &c.MaxAttempts,
		"TOP_N":        &c.TopN,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) loadCredentials() error {
	c.OpenAIKey = os.Getenv("OPENAI_APIKEY")
	if c.OpenAIKey == "" {
		return fmt.Errorf("%w: OPENAI_APIKEY", ErrMissingCredential)
	}

	searchKeyEnv := "SERPERAPI_APIKEY"
	if c.SearchProvider == SearchProviderSerpApi {
		searchKeyEnv = "SERPAPI_APIKEY"
	}
	c.SearchAPIKey = os.Getenv(searchKeyEnv)
	if c.SearchAPIKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingCredential, searchKeyEnv)
	}

	return nil
}

func (c *Config) validate() error {
	switch c.SearchProvider {
	case SearchProviderSerper, SearchProviderSerpApi:
	default:
		return fmt.Errorf("unsupported search provider %q", c.SearchProvider)
	}

	switch c.FetchMode {
	case FetchModeHTTP, FetchModeBrowser:
	default:
		return fmt.Errorf("unsupported fetch mode %q", c.FetchMode)
	}

	switch c.ExtractMode {
	case ExtractModeDOM, ExtractModeReadability, ExtractModeTrafilatura:
	default:
		return fmt.Errorf("unsupported extract mode %q", c.ExtractMode)
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top n must not be negative, got %d", c.TopN)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
