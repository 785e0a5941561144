package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM backend. Field tags match the
// llm.* keys of the application config file.
type Config struct {
	Provider string `mapstructure:"provider"`

	Anthropic  Credentials `mapstructure:"anthropic"`
	OpenAI     Credentials `mapstructure:"openai"`
	Gemini     Credentials `mapstructure:"gemini"`
	OpenRouter Credentials `mapstructure:"openrouter"`

	Retry RetryConfig `mapstructure:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Credentials configures one provider. BaseURL is honoured by the
// OpenAI-compatible providers only.
type Credentials struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  Credentials{Model: "claude-haiku"},
		OpenAI:     Credentials{Model: "gpt-4o"},
		Gemini:     Credentials{Model: "gemini-flash"},
		OpenRouter: Credentials{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// discoveryOrder is the priority in which well-known API key variables are
// probed by Discover.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Discover fills in the provider and API key of cfg from the first
// well-known API key variable that getenv reports. It returns false and cfg
// unchanged when none is set.
func Discover(cfg Config, getenv func(string) string) (Config, bool) {
	for _, d := range discoveryOrder {
		key := getenv(d.env)
		if key == "" {
			continue
		}
		cfg.Provider = d.provider
		cfg.credentials(d.provider).APIKey = key
		return cfg, true
	}
	return cfg, false
}

// HasKey reports whether the selected provider can be constructed without
// further configuration.
func (c Config) HasKey() bool {
	if c.Provider == ProviderMock {
		return true
	}
	cred := c.credentials(c.Provider)
	return cred != nil && cred.APIKey != ""
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if !c.HasKey() {
			return fmt.Errorf("llm.%s.api_key (MATHPLACE_LLM_%s_API_KEY) is required for the %s provider",
				c.Provider, strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

func (c *Config) credentials(provider string) *Credentials {
	switch provider {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}
