// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tones with dedicated layout spacing rules.
const (
	ToneMinimal      = "minimal"
	ToneLuxurious    = "luxurious"
	TonePlayful      = "playful"
	ToneProfessional = "professional"
)

// DesignBrief is the immutable input of one generation session.
type DesignBrief struct {
	ID           uuid.UUID     `json:"id"`
	Text         string        `json:"brief"`
	Kinds        []Kind        `json:"kinds"`
	StyleProfile *StyleProfile `json:"style_profile,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewBrief validates the brief text and kinds and returns a new brief.
// Kinds are deduplicated in first-seen order.
func NewBrief(text string, kinds []Kind, profile *StyleProfile) (*DesignBrief, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("brief is required")
	}
	normalized, err := NormalizeKinds(kinds)
	if err != nil {
		return nil, err
	}
	return &DesignBrief{
		ID:           uuid.New(),
		Text:         text,
		Kinds:        normalized,
		StyleProfile: profile,
		CreatedAt:    time.Now(),
	}, nil
}

// StyleProfile holds reusable brand constraints injected into generation
// prompts. The core never mutates it.
type StyleProfile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Colors     []string  `json:"colors"`
	Fonts      []string  `json:"fonts"`
	Tone       string    `json:"tone"`
	Guidelines string    `json:"guidelines"`
}

// NormalizedTone returns the tone lowercased and trimmed.
func (p *StyleProfile) NormalizedTone() string {
	if p == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(p.Tone))
}
