// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"artboard/internal/imaging"
	"artboard/internal/models"
	"artboard/internal/preview"
)

type colorsResponse struct {
	Colors []string `json:"colors"`
}

// ExtractColors samples the dominant colors of an uploaded image sent as
// the multipart field "image".
func (h *Handler) ExtractColors(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image too large. Maximum size is 10 MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "Expected a multipart form with an image field.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image provided.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Image too large. Maximum size is 10 MB.")
		return
	}

	colors, err := imaging.ExtractColors(file)
	if errors.Is(err, imaging.ErrImageTooLarge) {
		slog.Warn("image dimensions rejected", "filename", header.Filename, "error", err)
		writeError(w, http.StatusRequestEntityTooLarge, "Image dimensions too large. Maximum is 40 megapixels.")
		return
	}
	if err != nil {
		slog.Warn("color extraction failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, "Unsupported or corrupt image.")
		return
	}
	writeJSON(w, http.StatusOK, colorsResponse{Colors: colors})
}

// PalettePreview draws a palette as a PNG swatch sheet.
func (h *Handler) PalettePreview(w http.ResponseWriter, r *http.Request) {
	var p models.PaletteContent
	if err := decodeJSON(w, r, &p, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validatePalette(&p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	sheet, err := preview.PaletteSwatch(p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writePNG(w, sheet)
}
