// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config loads application configuration from environment
// variables through viper. Empty variables count as unset and fall back
// to the defaults below.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Providers lists the AI provider names AI_PROVIDER may select.
var Providers = []string{"openai", "gemini", "claude", "mistral"}

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// AI provider settings
	AIProvider       string
	OpenAIKey        string
	OpenAIModel      string
	OpenAIImageModel string
	OpenAIBaseURL    string
	GeminiKey        string
	GeminiModel      string
	GeminiImageModel string
	GeminiBaseURL    string
	ClaudeKey        string
	ClaudeModel      string
	ClaudeBaseURL    string
	MistralKey       string
	MistralModel     string
	MistralBaseURL   string

	// Valkey (Redis-compatible render cache and session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	RenderCacheTTL time.Duration

	// S3-compatible storage for published renders and images (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Rasterizer
	ChromePath    string
	RenderSettle  time.Duration
	RenderTimeout time.Duration

	// Requests per minute per client on generation and render routes.
	RateLimit int
	// Idle time after which a session's studio is dropped.
	WorkspaceTTL time.Duration

	// Tracing
	OTelEnabled    bool
	OTelEndpoint   string
	OTelSampleRate float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "debug")

	v.SetDefault("ai_provider", "openai")
	v.SetDefault("openai_model", "gpt-4o")
	v.SetDefault("openai_image_model", "dall-e-3")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("claude_model", "claude-sonnet-4-5")
	v.SetDefault("claude_base_url", "https://api.anthropic.com")
	v.SetDefault("mistral_model", "mistral-large-latest")
	v.SetDefault("mistral_base_url", "https://api.mistral.ai")

	v.SetDefault("valkey_host", "localhost")
	v.SetDefault("valkey_port", "6379")
	v.SetDefault("render_cache_ttl", time.Hour)

	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_bucket", "artboard")

	v.SetDefault("render_settle", 100*time.Millisecond)
	v.SetDefault("render_timeout", 10*time.Second)
	v.SetDefault("rate_limit", 30)
	v.SetDefault("workspace_ttl", 2*time.Hour)

	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("otel_sample_rate", 1.0)
}

// Load reads configuration from the environment and validates it.
// Production mode rejects settings that are only safe for development.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Host:     v.GetString("app_host"),
		Port:     v.GetString("app_port"),
		Env:      v.GetString("app_env"),
		LogLevel: v.GetString("log_level"),

		AIProvider:       strings.ToLower(v.GetString("ai_provider")),
		OpenAIKey:        v.GetString("openai_api_key"),
		OpenAIModel:      v.GetString("openai_model"),
		OpenAIImageModel: v.GetString("openai_image_model"),
		OpenAIBaseURL:    v.GetString("openai_base_url"),
		GeminiKey:        v.GetString("gemini_api_key"),
		GeminiModel:      v.GetString("gemini_model"),
		GeminiImageModel: v.GetString("gemini_image_model"),
		GeminiBaseURL:    v.GetString("gemini_base_url"),
		ClaudeKey:        v.GetString("claude_api_key"),
		ClaudeModel:      v.GetString("claude_model"),
		ClaudeBaseURL:    v.GetString("claude_base_url"),
		MistralKey:       v.GetString("mistral_api_key"),
		MistralModel:     v.GetString("mistral_model"),
		MistralBaseURL:   v.GetString("mistral_base_url"),

		ValkeyHost:     v.GetString("valkey_host"),
		ValkeyPort:     v.GetString("valkey_port"),
		ValkeyPassword: v.GetString("valkey_password"),
		RenderCacheTTL: v.GetDuration("render_cache_ttl"),

		S3Endpoint:  v.GetString("s3_endpoint"),
		S3Region:    v.GetString("s3_region"),
		S3AccessKey: v.GetString("s3_access_key"),
		S3SecretKey: v.GetString("s3_secret_key"),
		S3Bucket:    v.GetString("s3_bucket"),
		S3PublicURL: v.GetString("s3_public_url"),

		ChromePath:    v.GetString("chrome_path"),
		RenderSettle:  v.GetDuration("render_settle"),
		RenderTimeout: v.GetDuration("render_timeout"),
		RateLimit:     v.GetInt("rate_limit"),
		WorkspaceTTL:  v.GetDuration("workspace_ttl"),

		OTelEnabled:    v.GetBool("otel_enabled"),
		OTelEndpoint:   v.GetString("otel_endpoint"),
		OTelSampleRate: v.GetFloat64("otel_sample_rate"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	known := false
	for _, p := range Providers {
		if c.AIProvider == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("AI_PROVIDER %q is not one of %s", c.AIProvider, strings.Join(Providers, ", "))
	}
	if c.RenderSettle < 0 {
		return fmt.Errorf("RENDER_SETTLE must not be negative")
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("RENDER_TIMEOUT must be positive")
	}
	if c.RenderCacheTTL <= 0 {
		return fmt.Errorf("RENDER_CACHE_TTL must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive")
	}
	if c.WorkspaceTTL <= 0 {
		return fmt.Errorf("WORKSPACE_TTL must be positive")
	}
	if c.OTelSampleRate < 0 || c.OTelSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0 and 1")
	}
	if c.Env == "production" && c.ValkeyPassword == "" {
		return fmt.Errorf("VALKEY_PASSWORD must be set in production")
	}
	return nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean debug.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
