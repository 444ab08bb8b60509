// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// openAIProvider implements Provider using the OpenAI chat completions API
// (POST /v1/chat/completions) and ImageGenerator using POST /v1/images/generations.
type openAIProvider struct {
	name        string
	config      ProviderConfig
	client      *http.Client
	imageClient *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "dall-e-3"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &openAIProvider{
		name:        "openai",
		config:      cfg,
		client:      &http.Client{Timeout: 60 * time.Second},
		imageClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return p.name }

// Complete sends a chat completion request and returns the assistant's text.
func (p *openAIProvider) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	body := openAIRequest{
		Model: model,
		Messages: []openAIMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		body.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	var result openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + p.config.APIKey}
	if err := postJSON(ctx, p.client, p.name, p.config.BaseURL+"/chat/completions", headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices returned", p.name)
	}

	if result.Model != "" {
		model = result.Model
	}
	return &Completion{
		Text:       result.Choices[0].Message.Content,
		Model:      model,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

// GenerateImage creates one image. The API answers with either a hosted URL
// or base64 bytes depending on response_format; both are passed through.
func (p *openAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	req = req.withDefaults(p.config.ImageModel)

	body := openAIImageRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		N:       req.N,
		Size:    req.Size,
		Quality: req.Quality,
		Style:   req.Style,
	}

	var result openAIImageResponse
	headers := map[string]string{"Authorization": "Bearer " + p.config.APIKey}
	if err := postJSON(ctx, p.imageClient, p.name+" image", p.config.BaseURL+"/images/generations", headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("%s image: no data returned", p.name)
	}

	d := result.Data[0]
	if d.URL != "" {
		return &ImageResult{URL: d.URL, Model: req.Model, RevisedPrompt: d.RevisedPrompt}, nil
	}
	if d.B64JSON == "" {
		return nil, fmt.Errorf("%s image: response has neither url nor b64_json", p.name)
	}
	data, err := base64.StdEncoding.DecodeString(d.B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%s image decode base64: %w", p.name, err)
	}
	return &ImageResult{
		Data:          data,
		ContentType:   "image/png",
		Model:         req.Model,
		RevisedPrompt: d.RevisedPrompt,
	}, nil
}

// --- OpenAI-compatible request/response types ---
// Used by both OpenAI and Mistral providers.

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	Temperature    float64               `json:"temperature"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIUsage struct {
	TotalTokens int `json:"total_tokens"`
}

type openAIImageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
	Style   string `json:"style,omitempty"`
}

type openAIImageResponse struct {
	Data []openAIImageData `json:"data"`
}

type openAIImageData struct {
	URL           string `json:"url"`
	B64JSON       string `json:"b64_json"`
	RevisedPrompt string `json:"revised_prompt"`
}
