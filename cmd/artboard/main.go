// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the artboard studio server.
// It loads configuration, connects to services, starts the render surface,
// sets up routing, and serves HTTP with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artboard/internal/ai"
	"artboard/internal/cache"
	"artboard/internal/config"
	"artboard/internal/handlers"
	"artboard/internal/middleware"
	"artboard/internal/raster"
	"artboard/internal/render"
	"artboard/internal/router"
	"artboard/internal/session"
	"artboard/internal/storage"
	"artboard/internal/studio"
	"artboard/internal/telemetry"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if !cfg.IsDev() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.TracerConfig{
		Endpoint:   cfg.OTelEndpoint,
		SampleRate: cfg.OTelSampleRate,
		Enabled:    cfg.OTelEnabled,
	})
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (render cache + session store).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderCache := cache.NewRenderCache(valkeyClient, cfg.RenderCacheTTL)
	if cfg.IsDev() {
		// Document template changes are common while developing.
		if n, err := renderCache.InvalidateAll(ctx); err != nil {
			slog.Warn("failed to clear render cache", "error", err)
		} else if n > 0 {
			slog.Info("render cache cleared", "keys", n)
		}
	}

	// Connect to S3-compatible object storage (optional: data URLs without it).
	storageClient, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var objects handlers.ObjectStore
	var publisher raster.Publisher
	if storageClient != nil {
		objects, publisher = storageClient, storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, images are returned as data URLs")
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, ImageModel: cfg.OpenAIImageModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, ImageModel: cfg.GeminiImageModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
		"images", aiRegistry.SupportsImageGeneration(),
	)

	// Start the render surface. The server still runs without a browser;
	// render endpoints then answer 503.
	var host raster.Host
	chrome, err := raster.NewChromeHost(cfg.ChromePath)
	if err != nil {
		slog.Error("render surface unavailable", "error", err)
	} else {
		host = chrome
	}
	rasterizer := raster.New(host, raster.Config{
		Settle:    cfg.RenderSettle,
		Timeout:   cfg.RenderTimeout,
		Cache:     renderCache,
		Publisher: publisher,
	})
	defer rasterizer.Close()

	handoff, err := render.New()
	if err != nil {
		slog.Error("failed to parse handoff templates", "error", err)
		os.Exit(1)
	}

	workspaces := studio.NewWorkspaces(cfg.WorkspaceTTL, nil)
	defer workspaces.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	h := handlers.New(handlers.Deps{
		Registry:   aiRegistry,
		Sessions:   sessionStore,
		Workspaces: workspaces,
		Renderer:   rasterizer,
		Storage:    objects,
		Handoff:    handoff,
	})

	r := router.New(router.Config{
		Sessions:      sessionStore,
		SecureCookies: secureCookies,
		Limiter:       limiter,
	}, h)

	// WriteTimeout must accommodate a full design round: several provider
	// calls run concurrently, image generation takes the longest.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("tracer shutdown failed", "error", err)
	}

	slog.Info("server stopped gracefully")
}
