// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artboard/internal/generation"
	"artboard/internal/models"
	"artboard/internal/session"
	"artboard/internal/studio"
)

type studioResponse struct {
	Design *models.Design `json:"design"`
	Status studio.Status  `json:"status"`
}

type designRequest struct {
	Brief        string                        `json:"brief"`
	Kinds        []string                      `json:"kinds"`
	StyleProfile *models.StyleProfile          `json:"style_profile,omitempty"`
	Options      map[string]generation.Options `json:"options,omitempty"`
}

type regenerateRequest struct {
	Prompt string `json:"prompt"`
}

// Studio returns the session's committed design and operation status. A
// session without a design gets a null design.
func (h *Handler) Studio(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	resp := studioResponse{}
	if st, ok := h.workspaces.Lookup(sess.ID); ok {
		resp.Status = st.Status()
		if design, err := st.Current(); err == nil {
			resp.Design = design
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateDesign generates a new design from a brief. A missing credential is
// reported before the brief leaves the server; the brief is then moderated
// before any generation call is made.
func (h *Handler) CreateDesign(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req designRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateBrief(req.Brief); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateProfile(req.StyleProfile); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	kinds := make([]models.Kind, 0, len(req.Kinds))
	for _, s := range req.Kinds {
		kind, err := models.ParseKind(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kinds = append(kinds, kind)
	}

	options := make(map[models.Kind]generation.Options, len(req.Options))
	for s, opts := range req.Options {
		kind, err := models.ParseKind(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := opts.Validate(kind); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s options: %v", kind, err))
			return
		}
		options[kind] = opts
	}

	gen, ok := h.configuredGenerator(w, sess)
	if !ok {
		return
	}
	if !h.checkPromptSafety(w, r, req.Brief) {
		return
	}

	st := h.workspaces.Get(sess.ID)
	h.prepare(st, gen)
	st.SetOptions(options)

	design, err := st.CreateDesign(r.Context(), req.Brief, kinds, req.StyleProfile)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("design created", "design_id", design.ID, "assets", len(design.Assets), "version", design.Version)
	writeJSON(w, http.StatusCreated, design)
}

// RegenerateAsset replaces one asset of the session's design. An optional
// prompt replaces the asset's original prompt.
func (h *Handler) RegenerateAsset(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	assetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asset ID.")
		return
	}

	var req regenerateRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validatePrompt(req.Prompt); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	st, ok := h.workspaces.Lookup(sess.ID)
	if !ok {
		writeDomainError(w, studio.ErrAssetNotFound)
		return
	}
	gen, ok := h.configuredGenerator(w, sess)
	if !ok {
		return
	}
	if !h.checkPromptSafety(w, r, req.Prompt) {
		return
	}

	h.prepare(st, gen)
	design, err := st.RegenerateAsset(r.Context(), assetID, req.Prompt)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// configuredGenerator builds the session's generator and answers
// ErrNotConfigured when it has no credential. It performs no I/O.
func (h *Handler) configuredGenerator(w http.ResponseWriter, sess *session.Data) (studio.Generator, bool) {
	gen := h.generator(sess)
	if gen == nil || !gen.Configured() {
		writeDomainError(w, generation.ErrNotConfigured)
		return nil, false
	}
	return gen, true
}

// prepare points st at gen and, with object storage, at releaseImages.
func (h *Handler) prepare(st *studio.Studio, gen studio.Generator) {
	st.SetGenerator(gen)
	if h.storage != nil {
		st.SetDiscarder(h.releaseImages)
	}
}

// releaseImages deletes the stored objects of discarded image assets.
// Failures are logged and otherwise ignored.
func (h *Handler) releaseImages(ctx context.Context, assets []models.Asset) {
	var c imageCollector
	for _, a := range assets {
		if a.Content == nil {
			continue
		}
		if err := a.Content.Accept(&c); err != nil {
			return
		}
	}
	for _, u := range c.urls {
		key, ok := h.storage.KeyFromURL(u)
		if !ok {
			continue
		}
		if err := h.storage.Delete(ctx, key); err != nil {
			slog.Warn("delete discarded image failed", "key", key, "error", err)
			continue
		}
		slog.Debug("discarded image deleted", "key", key)
	}
}

// imageCollector gathers the URLs of image content.
type imageCollector struct {
	urls []string
}

func (c *imageCollector) VisitImage(img *models.ImageContent) error {
	c.urls = append(c.urls, img.URL)
	return nil
}

func (*imageCollector) VisitCopy(*models.CopyContent) error           { return nil }
func (*imageCollector) VisitPalette(*models.PaletteContent) error     { return nil }
func (*imageCollector) VisitLayout(*models.LayoutContent) error       { return nil }
func (*imageCollector) VisitComponent(*models.ComponentContent) error { return nil }
