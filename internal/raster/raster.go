// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package raster turns generated component bundles into PNG bitmaps on a
// shared off-screen surface. One render runs at a time; a script that
// throws is logged and never fails the render.
package raster

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"artboard/internal/cache"
	"artboard/internal/models"
	"artboard/internal/telemetry"
)

// ErrSurfaceClosed is returned when no render surface is available, either
// because none was provided or because Close was called.
var ErrSurfaceClosed = errors.New("render surface is not available")

const (
	// DefaultSettle gives CSS transitions time to finish before the capture.
	DefaultSettle = 100 * time.Millisecond
	// DefaultTimeout bounds one snapshot, including the component script.
	DefaultTimeout = 10 * time.Second
)

const (
	defaultWidth  = 300
	defaultHeight = 200
	maxDimension  = 4096
)

// Cache stores encoded render results by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
}

// Publisher uploads a PNG and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Config holds the optional collaborators of a Rasterizer.
type Config struct {
	Settle    time.Duration
	Timeout   time.Duration
	Cache     Cache     // nil disables caching
	Publisher Publisher // nil returns data: URLs
}

// Rasterizer owns a Host and serializes access to it.
type Rasterizer struct {
	mu     sync.Mutex
	host   Host
	closed bool
	cfg    Config
}

// New wraps host. A nil host yields a rasterizer whose renders all fail
// with ErrSurfaceClosed.
func New(host Host, cfg Config) *Rasterizer {
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Rasterizer{host: host, cfg: cfg}
}

// Available reports whether renders can currently succeed.
func (r *Rasterizer) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host != nil && !r.closed
}

type cachedRender struct {
	PNG          []byte   `json:"png"`
	ScriptErrors []string `json:"script_errors,omitempty"`
}

// RenderComponent mounts c in a wrapper of its declared size, runs its
// script, waits for the settle delay and captures the wrapper as PNG.
func (r *Rasterizer) RenderComponent(ctx context.Context, c *models.ComponentContent) (*models.RenderedComponent, error) {
	if c == nil {
		return nil, fmt.Errorf("raster render: component is nil")
	}
	width, height := dimensions(c)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.host == nil || r.closed {
		return nil, ErrSurfaceClosed
	}

	key := cache.RenderKey(c)
	if r.cfg.Cache != nil {
		if data, ok := r.cfg.Cache.Get(ctx, key); ok {
			var entry cachedRender
			if err := json.Unmarshal(data, &entry); err == nil && len(entry.PNG) > 0 {
				telemetry.RenderTotal.WithLabelValues("cache_hit").Inc()
				return r.result(ctx, key, entry.PNG, width, height, entry.ScriptErrors), nil
			}
		}
	}

	ctx, span := telemetry.Start(ctx, "raster.render", trace.WithAttributes(
		attribute.Int("width", width),
		attribute.Int("height", height),
		attribute.Bool("script", c.JS != ""),
	))
	start := time.Now()

	p := Page{
		Document: buildDocument(c, width, height),
		Width:    width,
		Height:   height,
		Selector: RootSelector,
		Settle:   r.cfg.Settle,
	}
	if c.JS != "" {
		p.Script = scriptRunner(c.JS)
	}

	snapCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	snap, err := r.host.Snapshot(snapCtx, p)
	cancel()
	telemetry.RenderDuration.Observe(time.Since(start).Seconds())
	telemetry.RenderTotal.WithLabelValues(telemetry.Status(err)).Inc()
	telemetry.End(span, err)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			slog.Warn("component render timed out", "timeout", r.cfg.Timeout, "width", width, "height", height)
		}
		return nil, fmt.Errorf("raster render: %w", err)
	}

	for _, msg := range snap.ScriptErrors {
		telemetry.RenderScriptErrors.Inc()
		slog.Warn("component script error", "error", msg)
	}

	if r.cfg.Cache != nil {
		if data, err := json.Marshal(cachedRender{PNG: snap.PNG, ScriptErrors: snap.ScriptErrors}); err == nil {
			r.cfg.Cache.Set(ctx, key, data)
		}
	}

	return r.result(ctx, key, snap.PNG, width, height, snap.ScriptErrors), nil
}

// RenderMultipleComponents renders each component independently. Failures
// are logged and left out of the result.
func (r *Rasterizer) RenderMultipleComponents(ctx context.Context, cs []*models.ComponentContent) []*models.RenderedComponent {
	out := make([]*models.RenderedComponent, 0, len(cs))
	for i, c := range cs {
		if ctx.Err() != nil {
			slog.Warn("batch render cancelled", "rendered", len(out), "remaining", len(cs)-i)
			break
		}
		rendered, err := r.RenderComponent(ctx, c)
		if err != nil {
			slog.Error("component render failed", "index", i, "error", err)
			continue
		}
		out = append(out, rendered)
	}
	return out
}

// Close releases the surface. Later renders fail with ErrSurfaceClosed.
func (r *Rasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.host == nil {
		r.closed = true
		return nil
	}
	r.closed = true
	return r.host.Close()
}

func (r *Rasterizer) result(ctx context.Context, key string, png []byte, width, height int, scriptErrors []string) *models.RenderedComponent {
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	if r.cfg.Publisher != nil {
		published, err := r.cfg.Publisher.Publish(ctx, "renders/"+key+".png", png, "image/png")
		if err != nil {
			slog.Warn("publish render failed, using data URL", "error", err)
		} else {
			url = published
		}
	}
	return &models.RenderedComponent{
		PNG:          png,
		ImageURL:     url,
		Width:        width,
		Height:       height,
		ScriptErrors: scriptErrors,
	}
}

// dimensions returns the declared size, falling back to defaults and
// clamping to maxDimension.
func dimensions(c *models.ComponentContent) (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return min(w, maxDimension), min(h, maxDimension)
}
