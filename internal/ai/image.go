// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// ImageRequest describes a single image generation call.
type ImageRequest struct {
	// Model overrides the provider's image model when non-empty.
	Model  string
	Prompt string
	// Size is "WIDTHxHEIGHT", e.g. "1024x1024".
	Size    string
	Quality string
	Style   string
	N       int
}

func (r ImageRequest) withDefaults(model string) ImageRequest {
	if r.Model == "" {
		r.Model = model
	}
	if r.N <= 0 {
		r.N = 1
	}
	return r
}

// ImageResult holds a generated image. Exactly one of URL or Data is set.
type ImageResult struct {
	URL           string
	Data          []byte
	ContentType   string
	Model         string
	RevisedPrompt string
}

// ImageGenerator is an optional interface that AI providers can implement
// to support image generation. Not all providers have this capability
// (e.g., Claude and Mistral are text-only).
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// ImageGenerator returns the named provider's image generator, if it has one.
// An empty name selects the active provider.
func (r *Registry) ImageGenerator(name, apiKey string) (ImageGenerator, error) {
	p, err := r.Connect(name, apiKey)
	if err != nil {
		return nil, err
	}
	ig, ok := p.(ImageGenerator)
	if !ok {
		return nil, fmt.Errorf("ai: provider %q does not support image generation", p.Name())
	}
	return ig, nil
}

// SupportsImageGeneration returns true if the active provider can generate images.
func (r *Registry) SupportsImageGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(ImageGenerator)
	return ok
}
