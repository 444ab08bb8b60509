// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"artboard/internal/studio"
)

// handoffCSP lets the document carry its own inline styles and show
// remote or inline images. Nothing else loads.
const handoffCSP = "default-src 'none'; style-src 'unsafe-inline'; img-src https: http: data:; frame-ancestors 'none'"

// Handoff returns the committed design as a standalone HTML document.
func (h *Handler) Handoff(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	if h.handoff == nil {
		writeError(w, http.StatusServiceUnavailable, "Handoff export is unavailable.")
		return
	}

	st, ok := h.workspaces.Lookup(sess.ID)
	if !ok {
		writeDomainError(w, studio.ErrNoDesign)
		return
	}
	design, err := st.Current()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Buffer so a template failure still yields a clean error response.
	var buf bytes.Buffer
	if err := h.handoff.Handoff(&buf, design); err != nil {
		slog.Error("handoff render failed", "design", design.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render the handoff document.")
		return
	}

	w.Header().Set("Content-Security-Policy", handoffCSP)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
