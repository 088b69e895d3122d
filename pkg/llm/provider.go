// Package llm provides the completion providers used for question generation and
// answer evaluation. The set of providers is closed; New selects one by kind.
package llm

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-hiring-assistant/internal/domain"
)

type Kind string

const (
	KindGroq   Kind = "groq"
	KindOpenAI Kind = "openai"
	KindGemini Kind = "gemini"
)

// Kinds lists every supported provider in display order.
var Kinds = []Kind{KindGroq, KindOpenAI, KindGemini}

const (
	DefaultTemperature = 0.2
	DefaultTimeout     = 60 * time.Second

	groqBaseURL = "https://api.groq.com/openai/v1"
)

// DefaultModels is used when neither the environment nor the session picks a model.
var DefaultModels = map[Kind]string{
	KindGroq:   "llama-3.1-8b-instant",
	KindOpenAI: "gpt-4o-mini",
	KindGemini: "gemini-2.0-flash",
}

// ParseKind maps a provider tag to its Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", &domain.ConfigError{Message: fmt.Sprintf("Unsupported provider %q. Choose one of: groq, openai, gemini.", s)}
}

type Config struct {
	Kind    Kind
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// New builds the provider for cfg. A missing API key is reported before any
// network call is made.
func New(cfg Config) (domain.CompletionProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &domain.ConfigError{
			Message: fmt.Sprintf("API key for %s is not configured. Set it in the environment or in the session settings.", cfg.Kind),
		}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModels[cfg.Kind]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Kind {
	case KindGroq:
		if cfg.BaseURL == "" {
			cfg.BaseURL = groqBaseURL
		}
		return newOpenAICompatible(string(KindGroq), cfg, httpClient), nil
	case KindOpenAI:
		return newOpenAICompatible(string(KindOpenAI), cfg, httpClient), nil
	case KindGemini:
		return newGemini(cfg, httpClient), nil
	default:
		return nil, &domain.ConfigError{Message: fmt.Sprintf("Unsupported provider %q. Choose one of: groq, openai, gemini.", cfg.Kind)}
	}
}

// Options holds the environment defaults a session can override.
type Options struct {
	DefaultProvider Kind
	APIKeys         map[Kind]string
	Models          map[Kind]string
	BaseURLs        map[Kind]string
	Timeout         time.Duration
}

// Resolve merges session settings over the environment defaults.
func (o Options) Resolve(s domain.Settings) (Config, error) {
	kind := o.DefaultProvider
	if kind == "" {
		kind = KindGroq
	}
	if s.Provider != "" {
		k, err := ParseKind(s.Provider)
		if err != nil {
			return Config{}, err
		}
		kind = k
	}

	cfg := Config{
		Kind:    kind,
		APIKey:  o.APIKeys[kind],
		Model:   o.Models[kind],
		BaseURL: o.BaseURLs[kind],
		Timeout: o.Timeout,
	}
	if s.APIKey != "" {
		cfg.APIKey = s.APIKey
	}
	if s.Model != "" {
		cfg.Model = s.Model
	}
	return cfg, nil
}

// Configured reports whether a key is available for the default provider.
func (o Options) Configured() bool {
	cfg, err := o.Resolve(domain.Settings{})
	return err == nil && strings.TrimSpace(cfg.APIKey) != ""
}

// Factory returns a domain.ProviderFactory backed by New.
func (o Options) Factory() domain.ProviderFactory {
	return func(s domain.Settings) (domain.CompletionProvider, error) {
		cfg, err := o.Resolve(s)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	}
}
