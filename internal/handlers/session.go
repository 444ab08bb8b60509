// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"artboard/internal/config"
)

type sessionRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

// sessionResponse never echoes the key back.
type sessionResponse struct {
	Provider   string `json:"provider"`
	HasKey     bool   `json:"has_key"`
	Configured bool   `json:"configured"`
}

// UpdateSession stores the caller's provider choice and API key. A blank
// key falls back to the server's key for that provider.
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req sessionRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if provider != "" && (h.providers == nil || !h.providers.HasProvider(provider)) {
		writeError(w, http.StatusBadRequest, "Unknown provider. Choose one of: "+strings.Join(config.Providers, ", ")+".")
		return
	}

	sess.Provider = provider
	sess.APIKey = strings.TrimSpace(req.APIKey)
	if err := h.sessions.Update(r.Context(), sess); err != nil {
		slog.Error("update session failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to save the session.")
		return
	}

	gen := h.generator(sess)
	if st, ok := h.workspaces.Lookup(sess.ID); ok {
		st.SetGenerator(gen)
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Provider:   provider,
		HasKey:     sess.APIKey != "",
		Configured: gen != nil && gen.Configured(),
	})
}

// DeleteSession destroys the session and discards its workspace.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Destroy(r.Context(), w, r)
	if err != nil {
		slog.Error("destroy session failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to end the session.")
		return
	}
	if id != "" {
		h.workspaces.Remove(id)
	}
	w.WriteHeader(http.StatusNoContent)
}
