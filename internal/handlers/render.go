// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"artboard/internal/models"
	"artboard/internal/preview"
	"artboard/internal/raster"
)

type batchResponse struct {
	Components []*models.RenderedComponent `json:"components"`
	Requested  int                         `json:"requested"`
}

type sheetRequest struct {
	Components []*models.ComponentContent `json:"components"`
	Columns    int                        `json:"columns"`
}

// RenderComponent rasterizes one component bundle.
func (h *Handler) RenderComponent(w http.ResponseWriter, r *http.Request) {
	var c models.ComponentContent
	if err := decodeJSON(w, r, &c, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateComponent(&c); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if !h.rendererReady(w) {
		return
	}

	rendered, err := h.renderer.RenderComponent(r.Context(), &c)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

// RenderBatch rasterizes a list of components. Components that fail are
// left out of the response.
func (h *Handler) RenderBatch(w http.ResponseWriter, r *http.Request) {
	var cs []*models.ComponentContent
	if err := decodeJSON(w, r, &cs, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateBatch(cs); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if !h.rendererReady(w) {
		return
	}

	rendered := h.renderer.RenderMultipleComponents(r.Context(), cs)
	writeJSON(w, http.StatusOK, batchResponse{Components: rendered, Requested: len(cs)})
}

// ContactSheet renders a list of components and lays them out on one PNG.
func (h *Handler) ContactSheet(w http.ResponseWriter, r *http.Request) {
	var req sheetRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateBatch(req.Components); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Columns < 0 || req.Columns > maxSheetColumns {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Columns must be between 0 and %d.", maxSheetColumns))
		return
	}
	if !h.rendererReady(w) {
		return
	}

	rendered := h.renderer.RenderMultipleComponents(r.Context(), req.Components)
	items := make([]models.RenderedComponent, 0, len(rendered))
	for _, rc := range rendered {
		if rc != nil {
			items = append(items, *rc)
		}
	}

	sheet, err := preview.ContactSheet(items, req.Columns)
	if errors.Is(err, preview.ErrNoComponents) {
		writeError(w, http.StatusBadGateway, "No component could be rendered.")
		return
	}
	if err != nil {
		slog.Error("contact sheet failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build the contact sheet.")
		return
	}
	writePNG(w, sheet)
}

// rendererReady answers 503 when no render surface is available.
func (h *Handler) rendererReady(w http.ResponseWriter) bool {
	if h.renderer == nil || !h.renderer.Available() {
		writeDomainError(w, raster.ErrSurfaceClosed)
		return false
	}
	return true
}

// validateBatch checks the size of a component list and each entry.
func validateBatch(cs []*models.ComponentContent) string {
	if len(cs) == 0 {
		return "At least one component is required."
	}
	if len(cs) > maxBatchSize {
		return fmt.Sprintf("Too many components (max %d).", maxBatchSize)
	}
	for i, c := range cs {
		if msg := validateComponent(c); msg != "" {
			return fmt.Sprintf("Component %d: %s", i+1, msg)
		}
	}
	return ""
}
