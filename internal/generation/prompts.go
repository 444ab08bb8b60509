// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"strings"

	"artboard/internal/models"
)

// imagePromptSuffix is appended to every image prompt.
const imagePromptSuffix = ", high quality, professional design, clean background"

const copySystemPrompt = `You are a senior brand copywriter. Write marketing copy for the brief.
Respond with a single JSON object and nothing else, using exactly this shape:
{"headline": string, "subline": string, "tone": string, "callToAction": string}
The headline is at most 10 words. The subline is one or two sentences.
"tone" names the voice you used in one or two words.`

const paletteSystemPrompt = `You are a color designer. Propose a color palette for the brief.
Respond with a single JSON object and nothing else, using exactly this shape:
{"colors": [{"hex": "#RRGGBB", "name": string, "usage": string}], "contrastRatio": number}
Return between 4 and 7 colors. Every hex is "#" followed by six hexadecimal digits.
"usage" says where the color belongs (background, primary action, accent, text...).
"contrastRatio" is the WCAG contrast ratio between the main text and background colors.`

const layoutSystemPrompt = `You are a web layout designer. Propose a CSS grid layout for the brief.
Respond with a single JSON object and nothing else, using exactly this shape:
{"gridAreas": [string], "breakpoints": {"mobile": string, "tablet": string, "desktop": string}, "cssProperties": {string: string}}
"gridAreas" lists the named areas (header, hero, features, footer...).
Each breakpoint value is a grid-template-areas expression for that screen size.
"cssProperties" holds container properties in camelCase, such as gap, padding and maxWidth.`

// componentSystemPrompt carries the ten structural rules every generated
// component must follow.
const componentSystemPrompt = `You are an expert front-end engineer. Build one self-contained UI component for the brief.
Respond with a single JSON object and nothing else, using exactly this shape:
{"html": string, "css": string, "js": string, "framework": "vanilla", "description": string, "width": number, "height": number}

Rules:
1. Use semantic HTML elements (button, nav, section, article, figure...).
2. Make the markup accessible: labels, alt text, ARIA attributes and sufficient contrast.
3. Write modern CSS using flexbox or grid and CSS custom properties.
4. Keep the styling responsive inside the declared width and height.
5. Scope every CSS selector under one root class so the component cannot leak styles.
6. Use vanilla JavaScript only. No frameworks, imports or external scripts.
7. The script receives the component's container element as "container" and must only query inside it.
8. The component must work standalone, with no network requests, external fonts or images.
9. Add hover states, focus styles and subtle micro-interactions where they make sense.
10. Pick sensible pixel dimensions: "width" and "height" describe the rendered size, between 200 and 1200.`

func systemPrompt(kind models.Kind) string {
	switch kind {
	case models.KindCopy:
		return copySystemPrompt
	case models.KindPalette:
		return paletteSystemPrompt
	case models.KindLayout:
		return layoutSystemPrompt
	case models.KindComponent:
		return componentSystemPrompt
	}
	return ""
}

// userPrompt renders the brief followed by the style profile, if any.
// Profile values are embedded verbatim.
func userPrompt(brief string, profile *models.StyleProfile) string {
	var b strings.Builder
	b.WriteString("Brief: ")
	b.WriteString(brief)
	writeProfile(&b, profile)
	return b.String()
}

// imagePrompt is the text sent to the image API.
func imagePrompt(brief string, profile *models.StyleProfile) string {
	var b strings.Builder
	b.WriteString(brief)
	if profile != nil {
		if len(profile.Colors) > 0 {
			b.WriteString(", using the brand colors ")
			b.WriteString(strings.Join(profile.Colors, ", "))
		}
		if profile.Tone != "" {
			b.WriteString(", ")
			b.WriteString(profile.Tone)
			b.WriteString(" mood")
		}
	}
	b.WriteString(imagePromptSuffix)
	return b.String()
}

func writeProfile(b *strings.Builder, p *models.StyleProfile) {
	if p == nil {
		return
	}
	b.WriteString("\n\nFollow this brand style profile")
	if p.Name != "" {
		b.WriteString(" (")
		b.WriteString(p.Name)
		b.WriteString(")")
	}
	b.WriteString(":\n")
	if len(p.Colors) > 0 {
		b.WriteString("- Brand colors: ")
		b.WriteString(strings.Join(p.Colors, ", "))
		b.WriteString("\n")
	}
	if len(p.Fonts) > 0 {
		b.WriteString("- Fonts: ")
		b.WriteString(strings.Join(p.Fonts, ", "))
		b.WriteString("\n")
	}
	if p.Tone != "" {
		b.WriteString("- Tone: ")
		b.WriteString(p.Tone)
		b.WriteString("\n")
	}
	if p.Guidelines != "" {
		b.WriteString("- Guidelines: ")
		b.WriteString(p.Guidelines)
		b.WriteString("\n")
	}
}
