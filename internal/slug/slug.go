// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns free text, such as a design brief, into a short
// URL-safe token for object keys.
package slug

import (
	"regexp"
	"strings"
)

var (
	// separators become a single hyphen.
	separators = regexp.MustCompile(`[\s_/.]+`)
	// disallowed matches anything outside the slug alphabet.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Autumn launch / Coffee & Cream" → "autumn-launch-coffee-cream"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Limit returns the slug of s cut to at most n bytes. The cut moves back to
// the last hyphen when one sits in the second half, so words stay whole.
func Limit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	result := Generate(s)
	if len(result) <= n {
		return result
	}
	result = result[:n]
	if i := strings.LastIndexByte(result, '-'); i > n/2 {
		result = result[:i]
	}
	return strings.Trim(result, "-")
}
