// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"artboard/internal/models"
)

func testDesign() *models.Design {
	cost := 0.0125
	ratio := 4.5
	return &models.Design{
		ID: uuid.New(),
		Brief: &models.DesignBrief{
			Text:  "Spring sale for a plant shop",
			Kinds: []models.Kind{models.KindCopy, models.KindPalette, models.KindImage, models.KindComponent},
			StyleProfile: &models.StyleProfile{
				Name:       "Fern",
				Colors:     []string{"#2f6f3e"},
				Fonts:      []string{"Inter", "Lora"},
				Tone:       "playful",
				Guidelines: "Keep **plenty** of whitespace.",
			},
		},
		Version:   3,
		UpdatedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		Assets: []models.Asset{
			{
				Kind:     models.KindCopy,
				Content:  &models.CopyContent{Headline: "Grow something", Subline: "20% off all ferns", CTA: "Shop now"},
				Metadata: models.AssetMetadata{Provider: "openai", Model: "gpt-4o", TokensUsed: 120, EstimatedCost: &cost},
			},
			{
				Kind: models.KindPalette,
				Content: &models.PaletteContent{
					Colors:        []models.PaletteColor{{Hex: "#ff0000", Name: "Signal", Usage: "accents"}},
					ContrastRatio: &ratio,
				},
			},
			{
				Kind:    models.KindImage,
				Content: &models.ImageContent{URL: "https://cdn.example/images/fern.png", Alt: "A fern", Width: 1024, Height: 1024},
			},
			{
				Kind:    models.KindComponent,
				Content: &models.ComponentContent{HTML: `<button class="cta">Buy</button>`, CSS: ".cta { color: red; }", Framework: "vanilla"},
			},
		},
	}
}

func renderHandoff(t *testing.T, d *models.Design) string {
	t.Helper()
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := rn.Handoff(&buf, d); err != nil {
		t.Fatalf("Handoff: %v", err)
	}
	return buf.String()
}

func TestHandoff(t *testing.T) {
	out := renderHandoff(t, testDesign())

	want := []string{
		"<title>Fern handoff</title>",
		"Spring sale for a plant shop",
		"Version 3",
		"2026-04-01 12:00 UTC",
		"Inter, Lora",
		"<strong>plenty</strong>",
		"Grow something",
		"Shop now",
		"120 tokens",
		"$0.0125",
		"#ff0000",
		"Signal",
		"Contrast ratio 4.50:1",
		`src="https://cdn.example/images/fern.png"`,
		`alt="A fern"`,
		"<pre",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q", w)
		}
	}
	if strings.Contains(out, `<button class="cta">`) {
		t.Error("component markup must be shown as code, not rendered")
	}
	// Sections follow asset order.
	if strings.Index(out, `id="copy"`) > strings.Index(out, `id="component"`) {
		t.Error("sections out of asset order")
	}
}

func TestHandoffImageURLs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantImg bool
	}{
		{"https", "https://cdn.example/a.png", true},
		{"http", "http://localhost:9000/a.png", true},
		{"data url", "data:image/png;base64,iVBORw0KGgo=", true},
		{"javascript", "javascript:alert(1)", false},
		{"data html", "data:text/html,<script>x</script>", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &models.Design{Assets: []models.Asset{{
				Kind:    models.KindImage,
				Content: &models.ImageContent{URL: tt.url, Alt: "pic"},
			}}}
			out := renderHandoff(t, d)
			if got := strings.Contains(out, "<img"); got != tt.wantImg {
				t.Errorf("img present = %v, want %v", got, tt.wantImg)
			}
		})
	}
}

func TestHandoffEscapesText(t *testing.T) {
	d := &models.Design{
		Brief: &models.DesignBrief{Text: "<script>alert(1)</script>"},
		Assets: []models.Asset{{
			Kind:    models.KindCopy,
			Content: &models.CopyContent{Headline: `"><img src=x onerror=alert(1)>`},
		}},
	}
	out := renderHandoff(t, d)
	if strings.Contains(out, "<script>alert") || strings.Contains(out, "<img src=x") {
		t.Errorf("user text was not escaped: %s", out)
	}
}

func TestHandoffNoDesign(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := rn.Handoff(&bytes.Buffer{}, nil); err == nil {
		t.Error("expected an error for a nil design")
	}
}

func TestHandoffSkipsEmptyAssets(t *testing.T) {
	data, err := buildHandoff(&models.Design{Assets: []models.Asset{
		{Kind: models.KindCopy},
		{Kind: models.KindLayout, Content: &models.LayoutContent{GridAreas: []string{"header header"}}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Sections) != 1 || data.Sections[0].Layout == nil {
		t.Errorf("sections = %+v, want one layout section", data.Sections)
	}
	if data.Title != "Design handoff" {
		t.Errorf("title = %q", data.Title)
	}
}

func TestFixed(t *testing.T) {
	v := 1.0 / 3
	if got := fixed(&v, 2); got != "0.33" {
		t.Errorf("fixed = %q", got)
	}
	if got := fixed(nil, 2); got != "" {
		t.Errorf("fixed(nil) = %q", got)
	}
}
