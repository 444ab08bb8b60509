// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render produces the design handoff document: a standalone HTML
// page that lists every asset of a design with its copy, colors, layout,
// images and highlighted component code.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"artboard/internal/markdown"
	"artboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// HandoffData holds everything the handoff template shows.
type HandoffData struct {
	Title      string
	Brief      string
	Kinds      []models.Kind
	Profile    *models.StyleProfile
	Guidelines template.HTML
	Version    int
	UpdatedAt  time.Time
	Sections   []Section
}

// Section is one asset of the design.
type Section struct {
	Kind     models.Kind
	Metadata models.AssetMetadata

	// Exactly one of these is set, matching Kind.
	Copy      *models.CopyContent
	Image     *models.ImageContent
	Palette   *models.PaletteContent
	Layout    *models.LayoutContent
	Component *models.ComponentContent

	Code []CodeSample
}

// CodeSample is a highlighted block of component source.
type CodeSample struct {
	Lang string
	HTML template.HTML
}

// Renderer executes the embedded handoff template.
type Renderer struct {
	handoff *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"imageSrc": imageSrc,
		"fixed":    fixed,
		"upper":    strings.ToUpper,
	}
	tmpl, err := template.New("handoff.html").Funcs(funcMap).ParseFS(templateFS, "templates/handoff.html")
	if err != nil {
		return nil, fmt.Errorf("parse template handoff.html: %w", err)
	}
	return &Renderer{handoff: tmpl}, nil
}

// Handoff writes d as a standalone HTML document.
func (rn *Renderer) Handoff(w io.Writer, d *models.Design) error {
	data, err := buildHandoff(d)
	if err != nil {
		return err
	}
	if err := rn.handoff.ExecuteTemplate(w, "handoff.html", data); err != nil {
		return fmt.Errorf("render handoff: %w", err)
	}
	return nil
}

func buildHandoff(d *models.Design) (*HandoffData, error) {
	if d == nil {
		return nil, fmt.Errorf("render handoff: no design")
	}
	data := &HandoffData{
		Title:     "Design handoff",
		Version:   d.Version,
		UpdatedAt: d.UpdatedAt,
	}
	if b := d.Brief; b != nil {
		data.Brief = b.Text
		data.Kinds = b.Kinds
		data.Profile = b.StyleProfile
		if b.StyleProfile != nil && b.StyleProfile.Name != "" {
			data.Title = b.StyleProfile.Name + " handoff"
		}
		if b.StyleProfile != nil && strings.TrimSpace(b.StyleProfile.Guidelines) != "" {
			html, err := markdown.ToHTML(b.StyleProfile.Guidelines)
			if err != nil {
				return nil, fmt.Errorf("render guidelines: %w", err)
			}
			data.Guidelines = template.HTML(html)
		}
	}

	for _, a := range d.Assets {
		if a.Content == nil {
			continue
		}
		s := &sectionBuilder{section: Section{Kind: a.Kind, Metadata: a.Metadata}}
		if err := a.Content.Accept(s); err != nil {
			return nil, fmt.Errorf("render %s asset: %w", a.Kind, err)
		}
		data.Sections = append(data.Sections, s.section)
	}
	return data, nil
}

// sectionBuilder fills a Section from one content variant.
type sectionBuilder struct {
	section Section
}

func (b *sectionBuilder) VisitCopy(c *models.CopyContent) error {
	b.section.Copy = c
	return nil
}

func (b *sectionBuilder) VisitImage(c *models.ImageContent) error {
	b.section.Image = c
	return nil
}

func (b *sectionBuilder) VisitPalette(c *models.PaletteContent) error {
	b.section.Palette = c
	return nil
}

func (b *sectionBuilder) VisitLayout(c *models.LayoutContent) error {
	b.section.Layout = c
	return nil
}

func (b *sectionBuilder) VisitComponent(c *models.ComponentContent) error {
	b.section.Component = c
	for _, src := range []struct{ lang, code string }{
		{"html", c.HTML},
		{"css", c.CSS},
		{"js", c.JS},
	} {
		if strings.TrimSpace(src.code) == "" {
			continue
		}
		html, err := markdown.CodeBlock(src.lang, src.code)
		if err != nil {
			return err
		}
		b.section.Code = append(b.section.Code, CodeSample{Lang: src.lang, HTML: template.HTML(html)})
	}
	return nil
}

// imageSrc passes https, http and inline image URLs through to an img src
// and blanks everything else.
func imageSrc(u string) template.URL {
	switch {
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"):
		return template.URL(u)
	case strings.HasPrefix(u, "data:image/"):
		return template.URL(u)
	}
	return ""
}

// fixed formats an optional number with prec decimals.
func fixed(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
