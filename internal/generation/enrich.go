// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"artboard/internal/models"
)

// MaxPaletteColors caps a palette after brand colors are merged in.
const MaxPaletteColors = 7

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidHex reports whether s is a "#rrggbb" color.
func ValidHex(s string) bool {
	return hexColorRe.MatchString(s)
}

func validateCopy(c *models.CopyContent, profile *models.StyleProfile) error {
	c.Headline = strings.TrimSpace(c.Headline)
	c.Subline = strings.TrimSpace(c.Subline)
	c.CTA = strings.TrimSpace(c.CTA)
	if c.Headline == "" {
		return errors.New("copy response is missing a headline")
	}
	if c.Subline == "" {
		return errors.New("copy response is missing a subline")
	}
	if strings.TrimSpace(c.Tone) == "" && profile != nil {
		c.Tone = profile.Tone
	}
	return nil
}

// mergePalette validates the AI colors, puts the profile's brand colors in
// front and drops AI colors that repeat a brand hex exactly.
func mergePalette(p *models.PaletteContent, profile *models.StyleProfile) error {
	for i, c := range p.Colors {
		if !ValidHex(c.Hex) {
			return fmt.Errorf("palette color %d has invalid hex %q", i+1, c.Hex)
		}
	}

	var merged []models.PaletteColor
	brand := make(map[string]bool)
	if profile != nil {
		n := 0
		for _, hex := range profile.Colors {
			hex = strings.TrimSpace(hex)
			if !ValidHex(hex) || brand[hex] {
				continue
			}
			n++
			brand[hex] = true
			merged = append(merged, models.PaletteColor{
				Hex:   hex,
				Name:  fmt.Sprintf("Brand Color %d", n),
				Usage: "Brand primary",
			})
		}
	}
	for _, c := range p.Colors {
		if brand[c.Hex] {
			continue
		}
		merged = append(merged, c)
	}

	if len(merged) > MaxPaletteColors {
		merged = merged[:MaxPaletteColors]
	}
	if len(merged) == 0 {
		return errors.New("palette response contains no colors")
	}
	p.Colors = merged
	return nil
}

type spacing struct {
	gap, padding, borderRadius string
}

var toneSpacing = map[string]spacing{
	models.ToneMinimal:      {gap: "2rem", padding: "2rem"},
	models.ToneLuxurious:    {gap: "3rem", padding: "3rem"},
	models.TonePlayful:      {gap: "1.5rem", padding: "1.5rem", borderRadius: "12px"},
	models.ToneProfessional: {gap: "1rem", padding: "1.5rem"},
}

// applyTone normalizes l and overrides spacing properties for the tones
// that define them.
func applyTone(l *models.LayoutContent, profile *models.StyleProfile) error {
	if len(l.GridAreas) == 0 {
		return errors.New("layout response is missing grid areas")
	}
	if l.Breakpoints == nil {
		l.Breakpoints = map[string]string{}
	}
	if l.CSSProperties == nil {
		l.CSSProperties = map[string]string{}
	}

	s, ok := toneSpacing[profile.NormalizedTone()]
	if !ok {
		return nil
	}
	l.CSSProperties["gap"] = s.gap
	l.CSSProperties["padding"] = s.padding
	if s.borderRadius != "" {
		l.CSSProperties["borderRadius"] = s.borderRadius
	}
	return nil
}

const (
	defaultComponentWidth  = 300
	defaultComponentHeight = 200
)

// completeComponent rejects responses missing required fields and fills
// the optional ones.
func completeComponent(c *models.ComponentContent) error {
	var missing []string
	if strings.TrimSpace(c.HTML) == "" {
		missing = append(missing, "html")
	}
	if strings.TrimSpace(c.CSS) == "" {
		missing = append(missing, "css")
	}
	if strings.TrimSpace(c.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("component response is missing required fields: %s", strings.Join(missing, ", "))
	}

	if c.Width <= 0 {
		c.Width = defaultComponentWidth
	}
	if c.Height <= 0 {
		c.Height = defaultComponentHeight
	}
	switch fw := strings.ToLower(strings.TrimSpace(c.Framework)); fw {
	case models.FrameworkReact, models.FrameworkVue:
		c.Framework = fw
	default:
		c.Framework = models.FrameworkVanilla
	}
	return nil
}
