// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// claudeDefaultMaxTokens is sent when the caller leaves MaxTokens at zero;
// the Messages API requires the field.
const claudeDefaultMaxTokens = 4096

// claudeProvider implements the Provider interface using the Anthropic
// Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *claudeProvider) Name() string { return "claude" }

// Complete sends a message to the Messages API. The API has no JSON mode,
// so a JSON request appends an instruction to the system prompt instead.
func (p *claudeProvider) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = claudeDefaultMaxTokens
	}
	system := req.SystemPrompt
	if req.JSON {
		system = strings.TrimSpace(system + "\n\nRespond with a single JSON object and nothing else.")
	}

	temperature := req.Temperature
	// Anthropic caps temperature at 1.0.
	if temperature > 1 {
		temperature = 1
	}

	body := claudeRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      system,
		Temperature: temperature,
		Messages: []claudeMessage{
			{Role: "user", Content: req.UserPrompt},
		},
	}

	var result claudeResponse
	headers := map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": "2023-06-01",
	}
	if err := postJSON(ctx, p.client, "claude", p.config.BaseURL+"/v1/messages", headers, body, &result); err != nil {
		return nil, err
	}

	if result.Model != "" {
		model = result.Model
	}
	for _, block := range result.Content {
		if block.Type == "text" {
			return &Completion{
				Text:       block.Text,
				Model:      model,
				TokensUsed: result.Usage.InputTokens + result.Usage.OutputTokens,
			}, nil
		}
	}

	return nil, fmt.Errorf("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system,omitempty"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type claudeResponse struct {
	Model   string               `json:"model"`
	Content []claudeContentBlock `json:"content"`
	Usage   claudeUsage          `json:"usage"`
}
