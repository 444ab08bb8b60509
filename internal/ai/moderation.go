// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names (empty when safe)
}

// Moderator checks briefs for policy violations before they are sent to
// generation endpoints.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// moderationClient calls an OpenAI-style POST {base}/moderations endpoint.
// OpenAI's endpoint is free for key holders; Mistral's is the same shape
// minus the top-level "flagged" flag.
type moderationClient struct {
	label  string
	model  string
	apiKey string
	url    string
	client *http.Client
}

// newOpenAIModerator creates a moderator that uses OpenAI's free moderation API.
func newOpenAIModerator(apiKey, baseURL string) *moderationClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &moderationClient{
		label:  "openai moderation",
		model:  "omni-moderation-latest",
		apiKey: apiKey,
		url:    strings.TrimRight(baseURL, "/") + "/moderations",
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// newMistralModerator creates a moderator using Mistral's classification endpoint.
func newMistralModerator(apiKey, baseURL string) *moderationClient {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &moderationClient{
		label:  "mistral moderation",
		model:  "mistral-moderation-latest",
		apiKey: apiKey,
		url:    strings.TrimRight(baseURL, "/") + "/v1/moderations",
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *moderationClient) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var result moderationResponse
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}
	body := moderationRequest{Model: m.model, Input: text}
	if err := postJSON(ctx, m.client, m.label, m.url, headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	r := result.Results[0]
	var flagged []string
	for cat, isFlagged := range r.Categories {
		if isFlagged {
			flagged = append(flagged, readableCategory(cat))
		}
	}
	sort.Strings(flagged)

	// OpenAI reports an overall verdict; Mistral only has categories.
	safe := len(flagged) == 0
	if r.Flagged != nil && *r.Flagged {
		safe = false
	}
	return &ModerationResult{Safe: safe, Categories: flagged}, nil
}

// readableCategory turns "hate/threatening" into "hate (threatening)" and
// "self_harm" into "self harm".
func readableCategory(cat string) string {
	display := strings.ReplaceAll(cat, "/", " (")
	if strings.Contains(cat, "/") {
		display += ")"
	}
	return strings.ReplaceAll(display, "_", " ")
}

// fallbackModerator asks primary first and falls back to secondary when it
// fails. After an authentication error the primary is skipped for good.
type fallbackModerator struct {
	primary     Moderator
	secondary   Moderator
	primaryDown atomic.Bool
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	if !m.primaryDown.Load() {
		result, err := m.primary.CheckSafety(ctx, text)
		if err == nil {
			return result, nil
		}
		if isAuthError(err) {
			m.primaryDown.Store(true)
		}
		slog.Warn("primary moderator failed, using fallback", "error", err)
	}
	return m.secondary.CheckSafety(ctx, text)
}

// isAuthError reports whether err came from a 401 or 403 API response.
func isAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "status 401") || strings.Contains(msg, "status 403")
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []moderationResultEntry `json:"results"`
}

type moderationResultEntry struct {
	Flagged    *bool           `json:"flagged,omitempty"`
	Categories map[string]bool `json:"categories"`
}
