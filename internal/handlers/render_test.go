// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"artboard/internal/models"
	"artboard/internal/preview"
)

func TestRenderComponent(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(env.h.RenderComponent, http.MethodPost, "/api/components/render",
		models.ComponentContent{HTML: "<button>Buy</button>", CSS: "button{color:red}", Width: 320, Height: 120})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got models.RenderedComponent
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Width != 320 || got.Height != 120 || got.ImageURL == "" {
		t.Errorf("rendered = %+v", got)
	}
	if got.PNG != nil {
		t.Error("raw PNG bytes must not be serialized")
	}
}

func TestRenderComponentErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      any
		available bool
		err       error
		want      int
	}{
		{"invalid json", "[", true, nil, http.StatusBadRequest},
		{"missing html", models.ComponentContent{CSS: "p{}"}, true, nil, http.StatusBadRequest},
		{"surface closed", models.ComponentContent{HTML: "<p>x</p>"}, false, nil, http.StatusServiceUnavailable},
		{"render failure", models.ComponentContent{HTML: "<p>x</p>"}, true, errors.New("chrome crashed"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.renderer.available = tt.available
			env.renderer.err = tt.err
			rec := env.do(env.h.RenderComponent, http.MethodPost, "/api/components/render", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRenderComponentNoRenderer(t *testing.T) {
	env := newTestEnv(t)
	env.h.renderer = nil
	rec := env.do(env.h.RenderComponent, http.MethodPost, "/api/components/render", models.ComponentContent{HTML: "<p>x</p>"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRenderBatchPartialSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.renderer.failHTML = "<p>broken</p>"

	rec := env.do(env.h.RenderBatch, http.MethodPost, "/api/components/render-batch", []models.ComponentContent{
		{HTML: "<p>a</p>", Width: 100, Height: 50},
		{HTML: "<p>broken</p>"},
		{HTML: "<p>c</p>", Width: 80, Height: 40},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Requested != 3 || len(resp.Components) != 2 {
		t.Fatalf("requested = %d, rendered = %d", resp.Requested, len(resp.Components))
	}
	if resp.Components[0].Width != 100 || resp.Components[1].Width != 80 {
		t.Errorf("order not preserved: %d, %d", resp.Components[0].Width, resp.Components[1].Width)
	}
}

func TestRenderBatchValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"empty list", []models.ComponentContent{}},
		{"too many", make([]models.ComponentContent, 21)},
		{"invalid entry", []models.ComponentContent{{HTML: "<p>a</p>"}, {HTML: ""}}},
		{"null entry", "[null]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(env.h.RenderBatch, http.MethodPost, "/api/components/render-batch", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestContactSheet(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(env.h.ContactSheet, http.MethodPost, "/api/components/sheet", map[string]any{
		"components": []models.ComponentContent{
			{HTML: "<p>a</p>", Width: 100, Height: 50},
			{HTML: "<p>b</p>", Width: 60, Height: 80},
			{HTML: "<p>c</p>", Width: 40, Height: 30},
		},
		"columns": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}

	// Two columns of the widest item, rows as tall as their tallest item.
	img := decodePNG(t, rec.Body.Bytes())
	wantW := preview.Gutter + 2*(100+preview.Gutter)
	wantH := preview.Gutter + (80 + preview.Gutter) + (30 + preview.Gutter)
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestContactSheetErrors(t *testing.T) {
	t.Run("bad columns", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(env.h.ContactSheet, http.MethodPost, "/api/components/sheet", map[string]any{
			"components": []models.ComponentContent{{HTML: "<p>a</p>"}},
			"columns":    9,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("nothing rendered", func(t *testing.T) {
		env := newTestEnv(t)
		env.renderer.err = errors.New("capture failed")
		rec := env.do(env.h.ContactSheet, http.MethodPost, "/api/components/sheet", map[string]any{
			"components": []models.ComponentContent{{HTML: "<p>a</p>"}},
		})
		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})
}
