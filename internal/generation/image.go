// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"artboard/internal/ai"
	"artboard/internal/models"
	"artboard/internal/slug"
	"artboard/internal/telemetry"
)

// ImageSize is the square render size requested from the image API.
const ImageSize = 1024

const maxKeySlug = 48

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// GenerateImage asks the image provider for one picture. Inline bytes are
// published through the Publisher when one is set, otherwise they are
// returned as a data: URL.
func (a *Adapter) GenerateImage(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) models.Result[models.ImageContent] {
	return toResult(a.image(ctx, brief, profile, opts))
}

func (a *Adapter) image(ctx context.Context, brief string, profile *models.StyleProfile, opts Options) (*models.ImageContent, *models.GenerationMeta, error) {
	c, err := a.begin(models.KindImage, brief, opts)
	if err != nil {
		return nil, nil, err
	}
	if a.images == nil {
		err := fmt.Errorf("provider %q does not support image generation", c.provider)
		c.finish("", 0, err)
		return nil, nil, err
	}

	ctx, span := telemetry.Start(ctx, "generation.image", trace.WithAttributes(
		attribute.String("kind", string(models.KindImage)),
		attribute.String("provider", c.provider),
	))

	res, err := a.images.GenerateImage(ctx, ai.ImageRequest{
		Model:   c.opts.Model,
		Prompt:  imagePrompt(c.brief, profile),
		Size:    fmt.Sprintf("%dx%d", ImageSize, ImageSize),
		Quality: "standard",
		Style:   c.opts.Style,
		N:       1,
	})

	var url string
	if err != nil {
		err = fmt.Errorf("image generation failed: %w", err)
	} else {
		url, err = a.imageURL(ctx, res, c.brief)
	}
	telemetry.End(span, err)

	if err != nil {
		c.finish("", 0, err)
		return nil, nil, err
	}

	content := &models.ImageContent{
		URL:    url,
		Alt:    c.brief,
		Style:  c.opts.Style,
		Width:  ImageSize,
		Height: ImageSize,
	}
	model := res.Model
	if model == "" {
		model = c.opts.Model
	}
	return content, c.finish(model, 0, nil), nil
}

// imageURL returns a URL for res, publishing inline bytes if needed.
func (a *Adapter) imageURL(ctx context.Context, res *ai.ImageResult, brief string) (string, error) {
	if res.URL != "" {
		return res.URL, nil
	}
	if len(res.Data) == 0 {
		return "", fmt.Errorf("image generation returned no image")
	}

	contentType := res.ContentType
	if contentType == "" {
		contentType = "image/png"
	}

	if a.publisher != nil {
		ext, ok := imageExtensions[contentType]
		if !ok {
			ext = ".png"
		}
		url, err := a.publisher.Publish(ctx, imageKey(brief, ext), res.Data, contentType)
		if err != nil {
			return "", fmt.Errorf("publish image: %w", err)
		}
		return url, nil
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(res.Data), nil
}

// imageKey names a published image after its brief so that bucket listings
// stay readable. The UUID keeps keys unique.
func imageKey(brief, ext string) string {
	name := slug.Limit(brief, maxKeySlug)
	if name == "" {
		return "images/" + uuid.NewString() + ext
	}
	return "images/" + name + "-" + uuid.NewString() + ext
}
