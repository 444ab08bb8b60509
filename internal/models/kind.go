// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain records shared by the generation,
// orchestration, and rendering layers: briefs, style profiles, assets and
// their kind-tagged content payloads.
package models

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five asset content shapes.
type Kind string

const (
	KindCopy      Kind = "copy"
	KindImage     Kind = "image"
	KindPalette   Kind = "palette"
	KindLayout    Kind = "layout"
	KindComponent Kind = "component"
)

// AllKinds lists every asset kind in canonical order.
var AllKinds = []Kind{KindCopy, KindImage, KindPalette, KindLayout, KindComponent}

// ParseKind converts a string to a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown asset kind %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCopy, KindImage, KindPalette, KindLayout, KindComponent:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// NormalizeKinds validates kinds and removes duplicates, keeping the
// first occurrence of each. Returns an error for unknown kinds or an
// empty result.
func NormalizeKinds(kinds []Kind) ([]Kind, error) {
	seen := make(map[Kind]bool, len(kinds))
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("unknown asset kind %q", string(k))
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one asset kind is required")
	}
	return out, nil
}
