// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package preview draws PNG overview sheets for palettes and rendered
// components.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/gogpu/gg"

	"artboard/internal/generation"
	"artboard/internal/models"
)

const (
	SwatchWidth  = 120
	SwatchHeight = 160
	Gutter       = 16

	swatchRadius   = 12
	defaultColumns = 3
)

var (
	ErrEmptyPalette = errors.New("palette has no colors")
	ErrNoComponents = errors.New("no rendered components")
)

// PaletteSwatch draws one rounded swatch per color, left to right, on a
// white sheet.
func PaletteSwatch(p models.PaletteContent) ([]byte, error) {
	if len(p.Colors) == 0 {
		return nil, ErrEmptyPalette
	}
	for _, c := range p.Colors {
		if !generation.ValidHex(c.Hex) {
			return nil, fmt.Errorf("preview swatch: invalid color %q", c.Hex)
		}
	}

	n := len(p.Colors)
	dc := gg.NewContext(Gutter+n*(SwatchWidth+Gutter), SwatchHeight+2*Gutter)
	defer dc.Close()

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, c := range p.Colors {
		x := float64(Gutter + i*(SwatchWidth+Gutter))
		dc.SetHexColor(c.Hex)
		dc.DrawRoundedRectangle(x, Gutter, SwatchWidth, SwatchHeight, swatchRadius)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("preview swatch: %w", err)
		}
	}

	return encode(dc)
}

// ContactSheet lays the rendered components out on a grid. Columns are as
// wide as the widest item and each row is as tall as its tallest item.
// A non-positive columns picks a default.
func ContactSheet(items []models.RenderedComponent, columns int) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoComponents
	}
	if columns <= 0 {
		columns = defaultColumns
	}
	columns = min(columns, len(items))

	imgs := make([]image.Image, len(items))
	cellWidth := 0
	for i, it := range items {
		img, err := png.Decode(bytes.NewReader(it.PNG))
		if err != nil {
			return nil, fmt.Errorf("preview sheet: item %d: %w", i, err)
		}
		imgs[i] = img
		cellWidth = max(cellWidth, img.Bounds().Dx())
	}

	rows := (len(imgs) + columns - 1) / columns
	rowHeights := make([]int, rows)
	for i, img := range imgs {
		r := i / columns
		rowHeights[r] = max(rowHeights[r], img.Bounds().Dy())
	}

	height := Gutter
	for _, h := range rowHeights {
		height += h + Gutter
	}
	width := Gutter + columns*(cellWidth+Gutter)

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := Gutter
	for r, h := range rowHeights {
		for c := 0; c < columns; c++ {
			i := r*columns + c
			if i >= len(imgs) {
				break
			}
			x := Gutter + c*(cellWidth+Gutter)
			dc.DrawImage(gg.ImageBufFromImage(imgs[i]), float64(x), float64(y))
		}
		y += h + Gutter
	}

	return encode(dc)
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("preview encode: %w", err)
	}
	return buf.Bytes(), nil
}
