// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package studio owns a session's design: it fans a brief out to one
// generation call per asset kind and swaps single assets on regeneration.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"artboard/internal/generation"
	"artboard/internal/models"
	"artboard/internal/telemetry"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoDesign      = errors.New("no design has been created yet")
	ErrInvalidBrief  = errors.New("invalid brief")
)

// Generator produces one asset's content. *generation.Adapter implements it.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, kind models.Kind, brief string, profile *models.StyleProfile, opts generation.Options) (models.Content, *models.GenerationMeta, error)
}

// Discarder is told about assets that leave the studio for good: the
// finished assets of a failed round, the assets of a replaced design and a
// regenerated asset.
type Discarder func(ctx context.Context, assets []models.Asset)

// Status is the session-level view of the last operation.
type Status struct {
	Generating bool   `json:"generating"`
	Error      string `json:"error,omitempty"`
}

// Studio holds one session's design. Operations are serialized; Status and
// Current may be read while an operation runs.
type Studio struct {
	op sync.Mutex // serializes CreateDesign and RegenerateAsset

	mu      sync.RWMutex
	gen     Generator
	discard Discarder
	options map[models.Kind]generation.Options
	design  *models.Design
	version int
	status  Status
}

// New creates an empty studio backed by gen.
func New(gen Generator) *Studio {
	return &Studio{gen: gen, options: make(map[models.Kind]generation.Options)}
}

// SetGenerator replaces the generator, e.g. after the session's credential
// changes. It takes effect for the next operation.
func (s *Studio) SetGenerator(gen Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
}

// SetDiscarder installs d. A nil d drops discarded assets silently.
func (s *Studio) SetDiscarder(d Discarder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discard = d
}

// SetOptions replaces the per-kind generation options. They apply to the
// next CreateDesign and to regenerations of its assets. A nil map restores
// the defaults.
func (s *Studio) SetOptions(options map[models.Kind]generation.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = make(map[models.Kind]generation.Options, len(options))
	for k, v := range options {
		s.options[k] = v
	}
}

// Current returns a copy of the committed design.
func (s *Studio) Current() (*models.Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.design == nil {
		return nil, ErrNoDesign
	}
	return s.design.Clone(), nil
}

// Status reports whether an operation is running and the last error.
func (s *Studio) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// CreateDesign generates one asset per requested kind concurrently. If any
// call fails the whole round fails, its finished assets are discarded and
// the previously committed design stays current.
func (s *Studio) CreateDesign(ctx context.Context, text string, kinds []models.Kind, profile *models.StyleProfile) (*models.Design, error) {
	s.op.Lock()
	defer s.op.Unlock()

	gen, options, discard := s.begin()
	previous := s.committed()
	design, partial, err := s.createDesign(ctx, gen, options, text, kinds, profile)
	telemetry.DesignsTotal.WithLabelValues("create", telemetry.Status(err)).Inc()
	if err = s.end(design, err); err != nil {
		release(ctx, discard, partial)
		return nil, err
	}
	if previous != nil {
		release(ctx, discard, previous.Assets)
	}
	return design, nil
}

// createDesign runs the round. On failure it also returns the assets that
// finished before the round failed.
func (s *Studio) createDesign(ctx context.Context, gen Generator, options map[models.Kind]generation.Options, text string, kinds []models.Kind, profile *models.StyleProfile) (*models.Design, []models.Asset, error) {
	if gen == nil || !gen.Configured() {
		return nil, nil, generation.ErrNotConfigured
	}
	brief, err := models.NewBrief(text, kinds, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBrief, err)
	}

	ctx, span := telemetry.Start(ctx, "studio.create_design", trace.WithAttributes(
		attribute.Int("kinds", len(brief.Kinds)),
	))

	designID := uuid.New()
	assets := make([]models.Asset, len(brief.Kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range brief.Kinds {
		g.Go(func() error {
			content, meta, err := gen.Generate(gctx, kind, brief.Text, profile, options[kind])
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			assets[i] = newAsset(designID, content, meta)
			return nil
		})
	}
	err = g.Wait()
	telemetry.End(span, err)
	if err != nil {
		var partial []models.Asset
		for _, a := range assets {
			if a.Content != nil {
				partial = append(partial, a)
			}
		}
		return nil, partial, err
	}

	return &models.Design{
		ID:     designID,
		Brief:  brief,
		Assets: assets,
	}, nil, nil
}

// RegenerateAsset replaces one asset with a freshly generated one of the same
// kind. newPrompt replaces the asset's prompt when non-blank. On failure the
// design is unchanged.
func (s *Studio) RegenerateAsset(ctx context.Context, assetID uuid.UUID, newPrompt string) (*models.Design, error) {
	s.op.Lock()
	defer s.op.Unlock()

	gen, options, discard := s.begin()
	design, replaced, err := s.regenerate(ctx, gen, options, assetID, newPrompt)
	telemetry.DesignsTotal.WithLabelValues("regenerate", telemetry.Status(err)).Inc()
	if err = s.end(design, err); err != nil {
		return nil, err
	}
	release(ctx, discard, []models.Asset{replaced})
	return design, nil
}

// regenerate builds the next design and returns it with the asset it replaced.
func (s *Studio) regenerate(ctx context.Context, gen Generator, options map[models.Kind]generation.Options, assetID uuid.UUID, newPrompt string) (*models.Design, models.Asset, error) {
	current, err := s.Current()
	if err != nil {
		return nil, models.Asset{}, ErrAssetNotFound
	}
	idx := current.FindAsset(assetID)
	if idx < 0 {
		return nil, models.Asset{}, ErrAssetNotFound
	}
	if gen == nil || !gen.Configured() {
		return nil, models.Asset{}, generation.ErrNotConfigured
	}

	old := current.Assets[idx]
	prompt := strings.TrimSpace(newPrompt)
	if prompt == "" {
		prompt = old.Metadata.Prompt
	}
	var profile *models.StyleProfile
	if current.Brief != nil {
		profile = current.Brief.StyleProfile
	}

	ctx, span := telemetry.Start(ctx, "studio.regenerate_asset", trace.WithAttributes(
		attribute.String("kind", string(old.Kind)),
	))
	content, meta, err := gen.Generate(ctx, old.Kind, prompt, profile, options[old.Kind])
	telemetry.End(span, err)
	if err != nil {
		return nil, models.Asset{}, fmt.Errorf("%s: %w", old.Kind, err)
	}

	assets := make([]models.Asset, 0, len(current.Assets))
	assets = append(assets, current.Assets[:idx]...)
	assets = append(assets, current.Assets[idx+1:]...)
	assets = append(assets, newAsset(current.ID, content, meta))
	current.Assets = assets
	return current, old, nil
}

// release hands assets to discard, detached from the request's cancellation.
func release(ctx context.Context, discard Discarder, assets []models.Asset) {
	if discard == nil || len(assets) == 0 {
		return
	}
	discard(context.WithoutCancel(ctx), assets)
}

// committed returns the committed design without copying it. Committed
// designs are never mutated in place.
func (s *Studio) committed() *models.Design {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.design
}

// begin marks the studio busy and snapshots the generator, options and
// discarder.
func (s *Studio) begin() (Generator, map[models.Kind]generation.Options, Discarder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Generating = true
	options := make(map[models.Kind]generation.Options, len(s.options))
	for k, v := range s.options {
		options[k] = v
	}
	return s.gen, options, s.discard
}

// end commits design on success, records err otherwise, and clears the busy
// flag. It returns err unchanged.
func (s *Studio) end(design *models.Design, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Generating = false

	if err != nil {
		s.status.Error = err.Error()
		slog.Warn("studio operation failed", "error", err)
		return err
	}

	s.version++
	design.Version = s.version
	design.UpdatedAt = time.Now()
	s.design = design.Clone()
	s.status.Error = ""
	return nil
}

func newAsset(designID uuid.UUID, content models.Content, meta *models.GenerationMeta) models.Asset {
	now := time.Now()
	a := models.Asset{
		ID:        uuid.New(),
		Kind:      content.Kind(),
		Content:   content,
		CreatedAt: now,
		DesignID:  designID,
	}
	if meta != nil {
		cost := meta.EstimatedCost
		a.Metadata = models.AssetMetadata{
			Prompt:        meta.Prompt,
			Provider:      meta.Provider,
			Model:         meta.Model,
			Temperature:   meta.Temperature,
			TokensUsed:    meta.TokensUsed,
			EstimatedCost: &cost,
			CreatedAt:     now,
		}
	}
	return a
}
