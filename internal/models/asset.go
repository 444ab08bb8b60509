// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Asset is one generated creative artifact belonging to a design.
// Assets are replaced, never mutated: regeneration removes the old asset
// and appends a new one with a fresh ID.
type Asset struct {
	ID        uuid.UUID     `json:"id"`
	Kind      Kind          `json:"kind"`
	Content   Content       `json:"content"`
	Metadata  AssetMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
	DesignID  uuid.UUID     `json:"design_id"`
}

// AssetMetadata records how an asset was generated.
type AssetMetadata struct {
	Prompt        string    `json:"prompt"`
	Provider      string    `json:"provider,omitempty"`
	Model         string    `json:"model"`
	Temperature   float64   `json:"temperature"`
	TokensUsed    int       `json:"tokens_used,omitempty"`
	EstimatedCost *float64  `json:"estimated_cost,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// UnmarshalJSON decodes an asset, using its kind tag to pick the content type.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type alias Asset
	var raw struct {
		alias
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := DecodeContent(raw.Kind, raw.Content)
	if err != nil {
		return err
	}
	*a = Asset(raw.alias)
	a.Content = content
	return nil
}

// DecodeContent decodes a JSON content payload for the given kind.
func DecodeContent(kind Kind, data []byte) (Content, error) {
	var c Content
	switch kind {
	case KindCopy:
		c = &CopyContent{}
	case KindImage:
		c = &ImageContent{}
	case KindPalette:
		c = &PaletteContent{}
	case KindLayout:
		c = &LayoutContent{}
	case KindComponent:
		c = &ComponentContent{}
	default:
		return nil, fmt.Errorf("unknown asset kind %q", string(kind))
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", kind, err)
	}
	return c, nil
}
