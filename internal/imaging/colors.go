// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging samples representative colors from uploaded images.
// It accepts PNG, JPEG, GIF, WebP, BMP and TIFF input. Sampling is a
// coarse scan of every tenth pixel; there is no clustering or ranking,
// so the result favours colors near the top of the image.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxColors is the most colors ExtractColors returns.
	MaxColors = 10
	// SampleStep is the distance in pixels between two samples.
	SampleStep = 10
	// MaxPixels bounds the decoded size of an upload. Compressed formats
	// can declare dimensions far beyond their byte size.
	MaxPixels = 40_000_000
)

var (
	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("image has no pixels")
	// ErrImageTooLarge is returned when the declared dimensions exceed MaxPixels.
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// ExtractColors decodes r and returns up to MaxColors distinct lowercase
// "#rrggbb" values in the order they were first seen.
func ExtractColors(r io.Reader) ([]string, error) {
	// The header is read through a buffer so the full decode can replay it.
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, fmt.Errorf("imaging decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmptyImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, fmt.Errorf("imaging decode: %w", err)
	}

	nrgba := toNRGBA(img)
	pixels := len(nrgba.Pix) / 4
	if pixels == 0 {
		return nil, ErrEmptyImage
	}

	seen := make(map[string]struct{}, MaxColors)
	colors := make([]string, 0, MaxColors)
	for i := 0; i < pixels && len(colors) < MaxColors; i += SampleStep {
		p := nrgba.Pix[i*4 : i*4+3]
		hex := fmt.Sprintf("#%02x%02x%02x", p[0], p[1], p[2])
		if _, ok := seen[hex]; ok {
			continue
		}
		seen[hex] = struct{}{}
		colors = append(colors, hex)
	}

	return colors, nil
}

// toNRGBA returns img as a tightly packed non-premultiplied buffer whose
// pixel i sits at Pix[4*i].
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
