// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API of the studio. Handlers are grouped
// by concern (session, studio, render, colors) and receive their
// dependencies through the Handler struct.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"artboard/internal/ai"
	"artboard/internal/generation"
	"artboard/internal/middleware"
	"artboard/internal/models"
	"artboard/internal/raster"
	"artboard/internal/session"
	"artboard/internal/studio"
)

// SessionStore is the part of session.Store the handlers need.
type SessionStore interface {
	Update(ctx context.Context, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error)
}

// Renderer rasterizes component bundles. *raster.Rasterizer implements it.
type Renderer interface {
	Available() bool
	RenderComponent(ctx context.Context, c *models.ComponentContent) (*models.RenderedComponent, error)
	RenderMultipleComponents(ctx context.Context, cs []*models.ComponentContent) []*models.RenderedComponent
}

// Moderator screens prompts before generation. *ai.Registry implements it.
type Moderator interface {
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
}

// ProviderSet names the providers a session may select. *ai.Registry
// implements it.
type ProviderSet interface {
	HasProvider(name string) bool
}

// ObjectStore publishes generated images and removes replaced ones.
// *storage.Client implements it.
type ObjectStore interface {
	Publish(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(rawURL string) (string, bool)
}

// HandoffRenderer writes a design as a standalone HTML document.
// *render.Renderer implements it.
type HandoffRenderer interface {
	Handoff(w io.Writer, d *models.Design) error
}

// Deps groups the collaborators of a Handler. Renderer, Storage and Handoff
// may be nil when the browser, object storage or templates are unavailable.
type Deps struct {
	Registry   *ai.Registry
	Sessions   SessionStore
	Workspaces *studio.Workspaces
	Renderer   Renderer
	Storage    ObjectStore
	Handoff    HandoffRenderer
}

// Handler serves the studio API.
type Handler struct {
	sessions   SessionStore
	workspaces *studio.Workspaces
	renderer   Renderer
	storage    ObjectStore
	handoff    HandoffRenderer
	moderator  Moderator
	providers  ProviderSet

	// generator builds the session's generator from its provider choice.
	generator func(sess *session.Data) studio.Generator
}

// New creates a Handler from d.
func New(d Deps) *Handler {
	h := &Handler{
		sessions:   d.Sessions,
		workspaces: d.Workspaces,
		renderer:   d.Renderer,
		storage:    d.Storage,
		handoff:    d.Handoff,
	}
	if d.Registry != nil {
		h.moderator = d.Registry
		h.providers = d.Registry
	}

	var publisher generation.Publisher
	if d.Storage != nil {
		publisher = d.Storage
	}
	h.generator = func(sess *session.Data) studio.Generator {
		if d.Registry == nil {
			return nil
		}
		return generation.FromRegistry(d.Registry, sess.Provider, sess.APIKey, publisher)
	}
	return h
}

// currentSession returns the request's session, answering 503 when the
// session middleware did not run.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Data, bool) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.ID == "" {
		writeError(w, http.StatusServiceUnavailable, "No session is available.")
		return nil, false
	}
	return sess, true
}

// checkPromptSafety runs the prompt through the moderation API. It returns
// true if the prompt is safe or no moderator answered. A flagged prompt
// gets a 422 response.
func (h *Handler) checkPromptSafety(w http.ResponseWriter, r *http.Request, prompt string) bool {
	if h.moderator == nil || strings.TrimSpace(prompt) == "" {
		return true
	}
	result, err := h.moderator.CheckPrompt(r.Context(), prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return true
	}
	if result == nil || result.Safe {
		return true
	}

	categories := strings.Join(result.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)
	writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf(
		"Your prompt was flagged for: %s. Please reformulate your request and try again.",
		categories,
	))
	return false
}

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generation.ErrNotConfigured), errors.Is(err, studio.ErrInvalidBrief):
		return http.StatusBadRequest
	case errors.Is(err, studio.ErrAssetNotFound), errors.Is(err, studio.ErrNoDesign):
		return http.StatusNotFound
	case errors.Is(err, raster.ErrSurfaceClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// writeDomainError writes err with the status statusFor picks.
func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}
	writeError(w, status, err.Error())
}

// decodeJSON reads a size-limited JSON body into dst. An empty body is
// accepted when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body with a single message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writePNG writes an encoded PNG.
func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
