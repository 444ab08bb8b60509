// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// Content is the kind-tagged payload of an asset. The set of
// implementations is closed: only the five types in this file satisfy it.
// Consumers dispatch with Accept so that a new kind fails to compile
// until every ContentVisitor handles it.
type Content interface {
	Kind() Kind
	Accept(v ContentVisitor) error
	sealed()
}

// ContentVisitor handles each content variant.
type ContentVisitor interface {
	VisitCopy(*CopyContent) error
	VisitImage(*ImageContent) error
	VisitPalette(*PaletteContent) error
	VisitLayout(*LayoutContent) error
	VisitComponent(*ComponentContent) error
}

// CopyContent is generated marketing copy.
type CopyContent struct {
	Headline string `json:"headline"`
	Subline  string `json:"subline"`
	Tone     string `json:"tone"`
	CTA      string `json:"callToAction,omitempty"`
}

// ImageContent references a generated image.
type ImageContent struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PaletteColor is one entry of a palette.
type PaletteColor struct {
	Hex   string `json:"hex"`
	Name  string `json:"name"`
	Usage string `json:"usage"`
}

// PaletteContent is an ordered color palette.
type PaletteContent struct {
	Colors        []PaletteColor `json:"colors"`
	ContrastRatio *float64       `json:"contrastRatio,omitempty"`
}

// LayoutContent describes a CSS grid layout.
type LayoutContent struct {
	GridAreas     []string          `json:"gridAreas"`
	Breakpoints   map[string]string `json:"breakpoints"`
	CSSProperties map[string]string `json:"cssProperties"`
}

// Framework tags for generated components.
const (
	FrameworkVanilla = "vanilla"
	FrameworkReact   = "react"
	FrameworkVue     = "vue"
)

// ComponentContent is a self-contained markup/style/script bundle.
type ComponentContent struct {
	HTML        string `json:"html"`
	CSS         string `json:"css"`
	JS          string `json:"js,omitempty"`
	Framework   string `json:"framework"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

func (*CopyContent) Kind() Kind      { return KindCopy }
func (*ImageContent) Kind() Kind     { return KindImage }
func (*PaletteContent) Kind() Kind   { return KindPalette }
func (*LayoutContent) Kind() Kind    { return KindLayout }
func (*ComponentContent) Kind() Kind { return KindComponent }

func (c *CopyContent) Accept(v ContentVisitor) error      { return v.VisitCopy(c) }
func (c *ImageContent) Accept(v ContentVisitor) error     { return v.VisitImage(c) }
func (c *PaletteContent) Accept(v ContentVisitor) error   { return v.VisitPalette(c) }
func (c *LayoutContent) Accept(v ContentVisitor) error    { return v.VisitLayout(c) }
func (c *ComponentContent) Accept(v ContentVisitor) error { return v.VisitComponent(c) }

func (*CopyContent) sealed()      {}
func (*ImageContent) sealed()     {}
func (*PaletteContent) sealed()   {}
func (*LayoutContent) sealed()    {}
func (*ComponentContent) sealed() {}

// Summarize returns a short human-readable description of a content
// payload, used in logs and API listings.
func Summarize(c Content) string {
	var s summarizer
	if err := c.Accept(&s); err != nil {
		return ""
	}
	return s.out
}

type summarizer struct{ out string }

func (s *summarizer) VisitCopy(c *CopyContent) error {
	s.out = c.Headline
	return nil
}

func (s *summarizer) VisitImage(c *ImageContent) error {
	s.out = fmt.Sprintf("%dx%d %s image", c.Width, c.Height, c.Style)
	return nil
}

func (s *summarizer) VisitPalette(c *PaletteContent) error {
	hexes := make([]string, len(c.Colors))
	for i, col := range c.Colors {
		hexes[i] = col.Hex
	}
	s.out = strings.Join(hexes, " ")
	return nil
}

func (s *summarizer) VisitLayout(c *LayoutContent) error {
	s.out = strings.Join(c.GridAreas, " / ")
	return nil
}

func (s *summarizer) VisitComponent(c *ComponentContent) error {
	s.out = fmt.Sprintf("%s (%dx%d, %s)", c.Description, c.Width, c.Height, c.Framework)
	return nil
}
