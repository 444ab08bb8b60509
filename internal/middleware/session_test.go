// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"artboard/internal/session"
)

// fakeStore is an in-memory SessionStore.
type fakeStore struct {
	existing *session.Data
	getErr   error
	created  int
}

func (f *fakeStore) Get(ctx context.Context, r *http.Request) (*session.Data, error) {
	return f.existing, f.getErr
}

func (f *fakeStore) Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	f.created++
	data.ID = "new-session"
	return data.ID, nil
}

func TestLoadSession(t *testing.T) {
	t.Run("existing session is loaded", func(t *testing.T) {
		store := &fakeStore{existing: &session.Data{ID: "abc", Provider: "claude"}}
		var got *session.Data
		handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionFromCtx(r.Context())
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if got == nil || got.ID != "abc" || got.Provider != "claude" || store.created != 0 {
			t.Errorf("session = %+v, created = %d", got, store.created)
		}
	})

	t.Run("missing session starts an anonymous one", func(t *testing.T) {
		store := &fakeStore{}
		var got *session.Data
		handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionFromCtx(r.Context())
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if got == nil || got.ID != "new-session" || got.Provider != "" || store.created != 1 {
			t.Errorf("session = %+v, created = %d", got, store.created)
		}
	})

	t.Run("store failure is 503", func(t *testing.T) {
		next, called := okHandler()
		rr := httptest.NewRecorder()
		LoadSession(&fakeStore{getErr: errors.New("valkey down")})(next).
			ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusServiceUnavailable || *called {
			t.Errorf("status %d, called %v", rr.Code, *called)
		}
	})
}

func TestSessionFromCtx(t *testing.T) {
	if SessionFromCtx(context.Background()) != nil {
		t.Error("expected nil without a session")
	}
	data := &session.Data{ID: "x"}
	if SessionFromCtx(WithSession(context.Background(), data)) != data {
		t.Error("expected the stored session")
	}
	if SessionFromCtx(context.WithValue(context.Background(), SessionKey, "wrong type")) != nil {
		t.Error("expected nil for a wrong type")
	}
}
