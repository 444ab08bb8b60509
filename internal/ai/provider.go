// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for interacting with multiple
// LLM providers (OpenAI, Gemini, Claude, Mistral). Each provider implements
// the Provider interface, and the Registry selects the active one by name.
package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNoAPIKey is returned when a provider is requested without credentials.
var ErrNoAPIKey = errors.New("ai: no API key configured")

// Request is a single chat completion call.
type Request struct {
	// Model overrides the provider's default model when non-empty.
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	// MaxTokens caps the output length. Zero means provider default.
	MaxTokens int
	// JSON asks the provider to return a single JSON object.
	JSON bool
}

// Completion is the provider's answer to a Request.
type Completion struct {
	Text       string
	Model      string
	TokensUsed int
}

// Provider defines the interface that all AI providers must implement.
// Each provider handles its own HTTP communication and response parsing.
type Provider interface {
	// Complete sends a request to the LLM and returns the generated text
	// together with usage accounting.
	Complete(ctx context.Context, req Request) (*Completion, error)

	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

// NewProvider builds the named provider. Returns ErrNoAPIKey when the
// config carries no key.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	switch name {
	case "openai":
		return newOpenAI(cfg), nil
	case "gemini":
		return newGemini(cfg), nil
	case "claude":
		return newClaude(cfg), nil
	case "mistral":
		return newMistral(cfg), nil
	}
	return nil, fmt.Errorf("ai: unknown provider %q", name)
}

// Registry manages available AI providers and names the default one.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	configs   map[string]ProviderConfig
	active    string
	moderator Moderator // may be nil if no moderation API is available
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are skipped but their
// settings are kept so that callers can Connect with their own key.
// A Moderator is automatically configured: OpenAI's free moderation API is
// preferred; Mistral's paid endpoint is used as fallback.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		configs:   make(map[string]ProviderConfig),
		active:    active,
	}

	for name, cfg := range configs {
		switch name {
		case "openai", "gemini", "claude", "mistral":
		default:
			continue
		}
		r.configs[name] = cfg
		if p, err := NewProvider(name, cfg); err == nil {
			r.providers[name] = p
		}
	}

	// When both keys are available, use a fallback moderator that automatically
	// switches from OpenAI to Mistral on auth errors (e.g. project-scoped keys).
	openaiCfg, hasOpenAI := configs["openai"]
	hasOpenAI = hasOpenAI && openaiCfg.APIKey != ""
	mistralCfg, hasMistral := configs["mistral"]
	hasMistral = hasMistral && mistralCfg.APIKey != ""

	if hasOpenAI && hasMistral {
		r.moderator = newFallbackModerator(
			newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL),
			newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL),
		)
	} else if hasOpenAI {
		r.moderator = newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL)
	} else if hasMistral {
		r.moderator = newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL)
	}

	return r
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// Connect returns the named provider authenticated with apiKey. An empty
// apiKey falls back to the server-configured key; if neither exists the
// error is ErrNoAPIKey. An empty name selects the active provider.
func (r *Registry) Connect(name, apiKey string) (Provider, error) {
	r.mu.RLock()
	if name == "" {
		name = r.active
	}
	cfg, known := r.configs[name]
	registered, hasRegistered := r.providers[name]
	r.mu.RUnlock()

	if apiKey == "" && hasRegistered {
		return registered, nil
	}
	if !known && !hasRegistered {
		return nil, fmt.Errorf("ai: unknown provider %q", name)
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	return NewProvider(name, cfg)
}

// ServerKey returns the server-configured API key for name, or for the
// active provider when name is empty.
func (r *Registry) ServerKey(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		name = r.active
	}
	return r.configs[name].APIKey
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the sorted names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckPrompt runs the user prompt through the moderation API before
// generation. Returns a safe result if no moderator is configured
// (graceful degradation; providers still have their own built-in safety
// filters). Returns a *ModerationResult with Safe=false and flagged
// Categories if the prompt violates policies.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, prompt)
}

// HasProvider reports whether Connect can build the named provider, either
// with the server key or with a key supplied by the caller.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.providers[name]; ok {
		return true
	}
	_, ok := r.configs[name]
	return ok
}
