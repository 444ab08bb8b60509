// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"time"

	"artboard/internal/models"
)

// baseRates are USD per second of wall-clock generation time.
var baseRates = map[models.Kind]float64{
	models.KindCopy:      0.002,
	models.KindPalette:   0.001,
	models.KindLayout:    0.002,
	models.KindImage:     0.04,
	models.KindComponent: 0.003,
}

// EstimateCost returns a rough cost figure for a generation that took d.
// It scales a per-kind rate by elapsed seconds and is not derived from
// token or image billing, so treat it as an indicator only.
func EstimateCost(kind models.Kind, d time.Duration) float64 {
	return baseRates[kind] * float64(d.Milliseconds()) / 1000
}
