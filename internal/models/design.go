// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Design is the versioned asset collection produced for one brief.
type Design struct {
	ID        uuid.UUID    `json:"id"`
	Brief     *DesignBrief `json:"brief"`
	Assets    []Asset      `json:"assets"`
	Version   int          `json:"version"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FindAsset returns the index of the asset with the given ID, or -1.
func (d *Design) FindAsset(id uuid.UUID) int {
	for i := range d.Assets {
		if d.Assets[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy whose asset slice can be modified independently.
func (d *Design) Clone() *Design {
	if d == nil {
		return nil
	}
	c := *d
	c.Assets = append([]Asset(nil), d.Assets...)
	return &c
}

// RenderedComponent is a rasterized component ready for the canvas.
type RenderedComponent struct {
	PNG          []byte   `json:"-"`
	ImageURL     string   `json:"image_url"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	ScriptErrors []string `json:"script_errors,omitempty"`
}
