// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"fmt"
	"strings"

	"artboard/internal/models"
)

// DefaultImageStyle is used when Options.Style is empty.
const DefaultImageStyle = "vivid"

// Options tunes a single generation call. Unset fields select the per-kind
// defaults. Temperature is a pointer so that an explicit 0 is kept.
type Options struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	// Model overrides the provider's configured model.
	Model string `json:"model,omitempty"`
	// Style is the image style label ("vivid" or "natural"). Ignored by
	// the text kinds.
	Style string `json:"style,omitempty"`
}

type kindDefaults struct {
	temperature float64
	maxTokens   int
}

var defaults = map[models.Kind]kindDefaults{
	models.KindCopy:      {temperature: 0.8, maxTokens: 800},
	models.KindPalette:   {temperature: 0.7, maxTokens: 600},
	models.KindLayout:    {temperature: 0.5, maxTokens: 800},
	models.KindComponent: {temperature: 0.7, maxTokens: 2000},
}

// resolve validates o and fills unset values from the kind's defaults. The
// result always carries a Temperature.
func (o Options) resolve(kind models.Kind) (Options, error) {
	if t := o.Temperature; t != nil && (*t < 0 || *t > 2) {
		return o, fmt.Errorf("temperature must be between 0 and 2, got %g", *t)
	}
	if o.MaxTokens < 0 {
		return o, fmt.Errorf("max tokens must be positive, got %d", o.MaxTokens)
	}

	d := defaults[kind]
	if o.Temperature == nil {
		t := d.temperature
		o.Temperature = &t
	} else {
		t := *o.Temperature
		o.Temperature = &t
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = d.maxTokens
	}
	o.Model = strings.TrimSpace(o.Model)
	o.Style = strings.ToLower(strings.TrimSpace(o.Style))
	if kind == models.KindImage && o.Style == "" {
		o.Style = DefaultImageStyle
	}
	return o, nil
}

// temperature returns the resolved temperature.
func (o Options) temperature() float64 {
	if o.Temperature == nil {
		return 0
	}
	return *o.Temperature
}

// Validate reports whether o is acceptable for kind.
func (o Options) Validate(kind models.Kind) error {
	_, err := o.resolve(kind)
	return err
}
