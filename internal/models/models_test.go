// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"copy", KindCopy, false},
		{" Palette ", KindPalette, false},
		{"COMPONENT", KindComponent, false},
		{"video", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKinds(t *testing.T) {
	t.Run("removes duplicates keeping first occurrence", func(t *testing.T) {
		got, err := NormalizeKinds([]Kind{KindPalette, KindCopy, KindPalette, KindLayout, KindCopy})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Kind{KindPalette, KindCopy, KindLayout}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("kinds[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		if _, err := NormalizeKinds([]Kind{KindCopy, "sound"}); err == nil {
			t.Fatal("expected error for unknown kind")
		}
	})

	t.Run("rejects empty set", func(t *testing.T) {
		if _, err := NormalizeKinds(nil); err == nil {
			t.Fatal("expected error for empty kinds")
		}
	})
}

func TestNewBrief(t *testing.T) {
	if _, err := NewBrief("   ", []Kind{KindCopy}, nil); err == nil {
		t.Error("expected error for blank brief")
	}

	b, err := NewBrief("  Launch page for a coffee brand ", []Kind{KindCopy, KindCopy}, nil)
	if err != nil {
		t.Fatalf("NewBrief: %v", err)
	}
	if b.Text != "Launch page for a coffee brand" {
		t.Errorf("Text = %q, want trimmed brief", b.Text)
	}
	if len(b.Kinds) != 1 {
		t.Errorf("Kinds = %v, want one entry", b.Kinds)
	}
	if b.ID == uuid.Nil {
		t.Error("expected a generated ID")
	}
}

func TestResultInvariant(t *testing.T) {
	ok := Succeeded(CopyContent{Headline: "Hi"}, &GenerationMeta{Model: "m"})
	if !ok.Success || ok.Data == nil || ok.Error != "" {
		t.Errorf("Succeeded broke invariant: %+v", ok)
	}

	bad := Failed[CopyContent](errors.New("boom"))
	if bad.Success || bad.Data != nil || bad.Error != "boom" {
		t.Errorf("Failed broke invariant: %+v", bad)
	}

	empty := Failed[CopyContent](nil)
	if empty.Error == "" {
		t.Error("Failed(nil) must still carry a message")
	}
}

func TestAssetJSONDecodesContentByKind(t *testing.T) {
	original := Asset{
		ID:   uuid.New(),
		Kind: KindLayout,
		Content: &LayoutContent{
			GridAreas:     []string{"header", "main"},
			Breakpoints:   map[string]string{"md": "1fr 1fr"},
			CSSProperties: map[string]string{"gap": "1rem"},
		},
		DesignID: uuid.New(),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Asset
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	layout, ok := decoded.Content.(*LayoutContent)
	if !ok {
		t.Fatalf("content type = %T, want *LayoutContent", decoded.Content)
	}
	if layout.CSSProperties["gap"] != "1rem" {
		t.Errorf("gap = %q, want 1rem", layout.CSSProperties["gap"])
	}
	if decoded.ID != original.ID || decoded.DesignID != original.DesignID {
		t.Error("envelope fields were not preserved")
	}
}

func TestDecodeContentUnknownKind(t *testing.T) {
	if _, err := DecodeContent("video", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		content Content
		want    string
	}{
		{&CopyContent{Headline: "Fresh roast"}, "Fresh roast"},
		{&PaletteContent{Colors: []PaletteColor{{Hex: "#000000"}, {Hex: "#ffffff"}}}, "#000000 #ffffff"},
		{&LayoutContent{GridAreas: []string{"a", "b"}}, "a / b"},
		{&ImageContent{Width: 1024, Height: 1024, Style: "vivid"}, "1024x1024 vivid image"},
		{&ComponentContent{Description: "Card", Width: 300, Height: 200, Framework: "vanilla"}, "Card (300x200, vanilla)"},
	}
	for _, tt := range tests {
		if got := Summarize(tt.content); got != tt.want {
			t.Errorf("Summarize(%T) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestDesignCloneIsIndependent(t *testing.T) {
	d := &Design{Assets: []Asset{{ID: uuid.New()}}}
	c := d.Clone()
	c.Assets = append(c.Assets[:0], Asset{ID: uuid.New()})
	if d.Assets[0].ID == c.Assets[0].ID {
		t.Error("clone shares its asset slice with the original")
	}
	if d.FindAsset(c.Assets[0].ID) != -1 {
		t.Error("FindAsset found an asset that only exists in the clone")
	}
}
