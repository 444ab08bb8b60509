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

// geminiProvider implements the Provider interface using the Google
// Gemini REST API (POST /v1beta/models/{model}:generateContent).
type geminiProvider struct {
	config      ProviderConfig
	client      *http.Client
	imageClient *http.Client
}

// newGemini creates a new Google Gemini provider.
func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &geminiProvider{
		config:      cfg,
		client:      &http.Client{Timeout: 60 * time.Second},
		imageClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) endpoint(model string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.config.BaseURL, model)
}

// Complete sends a generateContent request. JSON requests set
// responseMimeType so the model returns a bare JSON document.
func (p *geminiProvider) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	temperature := req.Temperature
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.UserPrompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}
	if req.JSON {
		body.GenerationConfig.ResponseMimeType = "application/json"
	}

	var result geminiResponse
	headers := map[string]string{"x-goog-api-key": p.config.APIKey}
	if err := postJSON(ctx, p.client, "gemini", p.endpoint(model), headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates returned")
	}

	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			if result.ModelVersion != "" {
				model = result.ModelVersion
			}
			return &Completion{
				Text:       part.Text,
				Model:      model,
				TokensUsed: result.UsageMetadata.TotalTokenCount,
			}, nil
		}
	}

	return nil, fmt.Errorf("gemini: no text in response")
}

// GenerateImage creates an image using Gemini's native generateContent API
// with responseModalities set to IMAGE. Gemini always returns inline bytes,
// never a hosted URL. Size, quality and style have no Gemini equivalent and
// are folded into the prompt text.
func (p *geminiProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	req = req.withDefaults(p.config.ImageModel)
	if req.Model == "" {
		return nil, fmt.Errorf("gemini: image generation requires GEMINI_IMAGE_MODEL to be set")
	}

	prompt := "Generate an image of: " + req.Prompt
	if req.Style != "" {
		prompt += " Style: " + req.Style + "."
	}
	if req.Size != "" {
		prompt += " Target size: " + req.Size + "."
	}

	body := geminiImageRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiImageConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	var result geminiImageResponse
	headers := map[string]string{"x-goog-api-key": p.config.APIKey}
	if err := postJSON(ctx, p.imageClient, "gemini image", p.endpoint(req.Model), headers, body, &result); err != nil {
		return nil, err
	}

	for _, c := range result.Candidates {
		for _, part := range c.Content.ImageParts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gemini image decode base64: %w", err)
			}
			contentType := part.InlineData.MimeType
			if contentType == "" {
				contentType = "image/png"
			}
			return &ImageResult{Data: data, ContentType: contentType, Model: req.Model}, nil
		}
	}

	return nil, fmt.Errorf("gemini image: no image data in response")
}

// --- Gemini API types ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiUsage struct {
	TotalTokenCount int `json:"totalTokenCount"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata geminiUsage       `json:"usageMetadata"`
	ModelVersion  string            `json:"modelVersion"`
}

// --- Gemini native image generation types ---

type geminiImageRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig geminiImageConfig `json:"generationConfig"`
}

type geminiImageConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiImagePart struct {
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	Text       string            `json:"text,omitempty"`
}

type geminiImageContent struct {
	ImageParts []geminiImagePart `json:"parts"`
}

type geminiImageCandidate struct {
	Content geminiImageContent `json:"content"`
}

type geminiImageResponse struct {
	Candidates []geminiImageCandidate `json:"candidates"`
}
