// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"strings"
)

// mistralProvider implements Provider on Mistral's chat completions API,
// which speaks the OpenAI wire format. It does not generate images.
type mistralProvider struct {
	inner *openAIProvider
}

// newMistral creates a new Mistral provider. BaseURL is the API host
// without the version segment, matching the moderator's convention.
func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
	inner := newOpenAI(cfg)
	inner.name = "mistral"
	return &mistralProvider{inner: inner}
}

func (p *mistralProvider) Name() string { return "mistral" }

// Complete sends a chat completion request to Mistral.
func (p *mistralProvider) Complete(ctx context.Context, req Request) (*Completion, error) {
	return p.inner.Complete(ctx, req)
}
