// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"artboard/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// SessionKey is the context key for the session data.
const SessionKey contextKey = "session"

// SessionStore is the part of session.Store the middleware needs.
type SessionStore interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
}

// LoadSession loads the caller's session into the request context, starting
// an anonymous one when the request has none. Anonymous sessions use the
// server's default provider and key. A store failure answers 503 since no
// workspace can be addressed without a session.
func LoadSession(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err == nil && data == nil {
				data = &session.Data{}
				_, err = store.Create(r.Context(), w, data)
			}
			if err != nil {
				slog.Error("session unavailable", "error", err, "path", r.URL.Path)
				writeError(w, http.StatusServiceUnavailable, "session store is unavailable")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), data)))
		})
	}
}

// WithSession returns a copy of ctx carrying data.
func WithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
