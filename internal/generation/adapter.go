// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generation turns a brief and an optional style profile into typed
// design assets. Each asset kind is one provider call whose JSON answer is
// parsed, validated and enriched before it is handed back.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"artboard/internal/ai"
	"artboard/internal/models"
	"artboard/internal/telemetry"
)

// ErrNotConfigured is returned, without any network call, when the adapter
// has no credential.
var ErrNotConfigured = errors.New("AI provider is not configured: supply an API key")

var errBriefRequired = errors.New("brief is required")

// Publisher stores inline image bytes and returns a public URL for them.
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Adapter issues generation calls on behalf of one credential.
type Adapter struct {
	apiKey    string
	text      ai.Provider
	images    ai.ImageGenerator // nil when the provider cannot draw
	publisher Publisher         // nil falls back to data: URLs
}

// NewAdapter builds an adapter. images and publisher may be nil.
func NewAdapter(apiKey string, text ai.Provider, images ai.ImageGenerator, publisher Publisher) *Adapter {
	return &Adapter{apiKey: apiKey, text: text, images: images, publisher: publisher}
}

// FromRegistry builds the adapter for a session's provider choice. A blank
// apiKey falls back to the server key for provider; with neither, every
// call fails with ErrNotConfigured. Text-only providers get no image
// generator.
func FromRegistry(reg *ai.Registry, provider, apiKey string, publisher Publisher) *Adapter {
	apiKey = strings.TrimSpace(apiKey)
	key := apiKey
	if key == "" {
		key = reg.ServerKey(provider)
	}
	if key == "" {
		return NewAdapter("", nil, nil, publisher)
	}

	text, err := reg.Connect(provider, apiKey)
	if err != nil {
		slog.Warn("ai provider unavailable", "provider", provider, "error", err)
		return NewAdapter("", nil, nil, publisher)
	}
	images, _ := reg.ImageGenerator(provider, apiKey)
	return NewAdapter(key, text, images, publisher)
}

// Configured reports whether a non-blank credential and a text provider
// are present.
func (a *Adapter) Configured() bool {
	return a != nil && strings.TrimSpace(a.apiKey) != "" && a.text != nil
}

// ProviderName returns the text provider's name, or "" when unset.
func (a *Adapter) ProviderName() string {
	if a == nil || a.text == nil {
		return ""
	}
	return a.text.Name()
}

// GenerateCopy produces headline, subline and call-to-action text.
func (a *Adapter) GenerateCopy(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) models.Result[models.CopyContent] {
	return toResult(a.copy(ctx, brief, profile, opts))
}

// GeneratePalette produces up to MaxPaletteColors colors, brand colors first.
func (a *Adapter) GeneratePalette(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) models.Result[models.PaletteContent] {
	return toResult(a.palette(ctx, brief, profile, opts))
}

// GenerateLayout produces grid areas, breakpoints and container properties.
// Recognized profile tones override gap and padding.
func (a *Adapter) GenerateLayout(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) models.Result[models.LayoutContent] {
	return toResult(a.layout(ctx, brief, profile, opts))
}

// GenerateComponent produces an HTML/CSS/JS bundle. Unlike the other kinds
// it returns failures as errors.
func (a *Adapter) GenerateComponent(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) (*models.ComponentContent, *models.GenerationMeta, error) {
	return generateStructured(ctx, a, models.KindComponent, brief, profile, opts, completeComponent)
}

// Generate dispatches on kind. Soft failures come back as errors so callers
// can treat every kind the same way.
func (a *Adapter) Generate(ctx context.Context, kind models.Kind, brief string, profile *models.StyleProfile, opts Options) (models.Content, *models.GenerationMeta, error) {
	switch kind {
	case models.KindCopy:
		return asContent(a.copy(ctx, brief, profile, opts))
	case models.KindImage:
		return asContent(a.image(ctx, brief, profile, opts))
	case models.KindPalette:
		return asContent(a.palette(ctx, brief, profile, opts))
	case models.KindLayout:
		return asContent(a.layout(ctx, brief, profile, opts))
	case models.KindComponent:
		return asContent(a.GenerateComponent(ctx, brief, profile, opts))
	}
	return nil, nil, fmt.Errorf("unknown asset kind %q", kind)
}

func (a *Adapter) copy(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) (*models.CopyContent, *models.GenerationMeta, error) {
	return generateStructured(ctx, a, models.KindCopy, brief, profile, opts,
		func(c *models.CopyContent) error { return validateCopy(c, profile) })
}

func (a *Adapter) palette(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) (*models.PaletteContent, *models.GenerationMeta, error) {
	return generateStructured(ctx, a, models.KindPalette, brief, profile, opts,
		func(p *models.PaletteContent) error { return mergePalette(p, profile) })
}

func (a *Adapter) layout(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) (*models.LayoutContent, *models.GenerationMeta, error) {
	return generateStructured(ctx, a, models.KindLayout, brief, profile, opts,
		func(l *models.LayoutContent) error { return applyTone(l, profile) })
}

func toResult[T any](data *T, meta *models.GenerationMeta, err error) models.Result[T] {
	if err != nil {
		return models.Failed[T](err)
	}
	return models.Succeeded(*data, meta)
}

// asContent widens a concrete content pointer to models.Content. On error
// it returns a nil interface rather than one wrapping a nil pointer.
func asContent(data models.Content, meta *models.GenerationMeta, err error) (models.Content, *models.GenerationMeta, error) {
	if err != nil {
		return nil, nil, err
	}
	return data, meta, nil
}

// call is the bookkeeping shared by every kind: precondition checks,
// tracing, metrics and logging around the provider round trip.
type call struct {
	kind     models.Kind
	brief    string
	opts     Options
	provider string
	started  time.Time
}

// begin validates the common preconditions. It performs no I/O.
func (a *Adapter) begin(kind models.Kind, brief string, opts Options) (*call, error) {
	if !a.Configured() {
		return nil, ErrNotConfigured
	}
	brief = strings.TrimSpace(brief)
	if brief == "" {
		return nil, errBriefRequired
	}
	resolved, err := opts.resolve(kind)
	if err != nil {
		return nil, err
	}
	return &call{kind: kind, brief: brief, opts: resolved, provider: a.text.Name(), started: time.Now()}, nil
}

// finish records the outcome and builds the metadata for a success.
func (c *call) finish(model string, tokens int, err error) *models.GenerationMeta {
	elapsed := time.Since(c.started)
	kind := string(c.kind)
	telemetry.GenerationTotal.WithLabelValues(kind, c.provider, telemetry.Status(err)).Inc()
	telemetry.GenerationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())

	if err != nil {
		slog.Warn("asset generation failed", "kind", kind, "provider", c.provider, "duration", elapsed, "error", err)
		return nil
	}

	cost := EstimateCost(c.kind, elapsed)
	telemetry.GenerationTokens.WithLabelValues(kind, c.provider).Add(float64(tokens))
	telemetry.GenerationEstimatedCost.WithLabelValues(kind).Add(cost)
	slog.Info("asset generated", "kind", kind, "provider", c.provider, "model", model, "tokens", tokens, "duration", elapsed)

	return &models.GenerationMeta{
		Provider:      c.provider,
		Model:         model,
		Temperature:   c.opts.temperature(),
		TokensUsed:    tokens,
		Prompt:        c.brief,
		Duration:      elapsed,
		EstimatedCost: cost,
	}
}

// generateStructured runs one JSON completion for kind and decodes it into T.
// post validates and enriches the decoded value.
func generateStructured[T any](ctx context.Context, a *Adapter, kind models.Kind, brief string, profile *models.StyleProfile, opts Options, post func(*T) error) (*T, *models.GenerationMeta, error) {
	c, err := a.begin(kind, brief, opts)
	if err != nil {
		return nil, nil, err
	}

	ctx, span := telemetry.Start(ctx, "generation."+string(kind), trace.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.String("provider", c.provider),
	))

	completion, err := a.text.Complete(ctx, ai.Request{
		Model:        c.opts.Model,
		SystemPrompt: systemPrompt(kind),
		UserPrompt:   userPrompt(c.brief, profile),
		Temperature:  c.opts.temperature(),
		MaxTokens:    c.opts.MaxTokens,
		JSON:         true,
	})

	data := new(T)
	if err != nil {
		err = fmt.Errorf("%s generation failed: %w", kind, err)
	} else if err = decodeObject(completion.Text, data); err == nil {
		err = post(data)
	}
	telemetry.End(span, err)

	if err != nil {
		c.finish("", 0, err)
		return nil, nil, err
	}

	model := completion.Model
	if model == "" {
		model = c.opts.Model
	}
	return data, c.finish(model, completion.TokensUsed, nil), nil
}
