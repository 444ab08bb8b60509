// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"artboard/internal/generation"
	"artboard/internal/models"
)

// Validation limits for request bodies and fields.
const (
	maxJSONBody       = 1 << 20
	maxUploadSize     = 10 << 20
	maxBriefLen       = 2_000
	maxPromptLen      = 2_000
	maxGuidelinesLen  = 2_000
	maxProfileColors  = 12
	maxProfileFonts   = 6
	maxPaletteColors  = 24
	maxBatchSize      = 20
	maxMarkupLen      = 200_000
	maxSheetColumns   = 8
	maxComponentWidth = 4096
)

// validateBrief checks the brief text and returns the first error found.
func validateBrief(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Brief is required."
	}
	if utf8.RuneCountInString(text) > maxBriefLen {
		return "Brief is too long (max 2,000 characters)."
	}
	return ""
}

// validatePrompt checks an optional regeneration prompt.
func validatePrompt(text string) string {
	if utf8.RuneCountInString(text) > maxPromptLen {
		return "Prompt is too long (max 2,000 characters)."
	}
	return ""
}

// validateProfile checks the brand constraints of a style profile.
func validateProfile(p *models.StyleProfile) string {
	if p == nil {
		return ""
	}
	if len(p.Colors) > maxProfileColors {
		return "Style profile has too many colors (max 12)."
	}
	for _, c := range p.Colors {
		if !generation.ValidHex(strings.TrimSpace(c)) {
			return fmt.Sprintf("Style profile color %q is not a #RRGGBB value.", c)
		}
	}
	if len(p.Fonts) > maxProfileFonts {
		return "Style profile has too many fonts (max 6)."
	}
	if utf8.RuneCountInString(p.Guidelines) > maxGuidelinesLen {
		return "Style profile guidelines are too long (max 2,000 characters)."
	}
	return ""
}

// validateComponent checks a component bundle before it is rendered.
func validateComponent(c *models.ComponentContent) string {
	if c == nil || strings.TrimSpace(c.HTML) == "" {
		return "Component HTML is required."
	}
	if len(c.HTML)+len(c.CSS)+len(c.JS) > maxMarkupLen {
		return "Component is too large (max 200,000 bytes of HTML, CSS and JS)."
	}
	if c.Width < 0 || c.Height < 0 || c.Width > maxComponentWidth || c.Height > maxComponentWidth {
		return "Component size must be between 0 and 4096 pixels."
	}
	return ""
}

// validatePalette checks a palette before a swatch sheet is drawn.
func validatePalette(p *models.PaletteContent) string {
	if len(p.Colors) == 0 {
		return "Palette has no colors."
	}
	if len(p.Colors) > maxPaletteColors {
		return "Palette has too many colors (max 24)."
	}
	return ""
}
