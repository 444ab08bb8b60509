// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package telemetry holds the process-wide Prometheus collectors and the
// OpenTelemetry tracer used around generation and rendering.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "artboard"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	// GenerationTotal counts adapter calls; status is "success" or "failure".
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "calls_total",
			Help:      "Total number of asset generation calls",
		},
		[]string{"kind", "provider", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Asset generation duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"kind"},
	)

	GenerationTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "tokens_used_total",
			Help:      "Total tokens reported by the provider",
		},
		[]string{"kind", "provider"},
	)

	GenerationEstimatedCost = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "estimated_cost_total",
			Help:      "Sum of wall-clock cost estimates in USD",
		},
		[]string{"kind"},
	)

	// RenderTotal counts rasterizations; status is "success", "failure" or "cache_hit".
	RenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "raster",
			Name:      "renders_total",
			Help:      "Total number of component rasterizations",
		},
		[]string{"status"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "raster",
			Name:      "render_duration_seconds",
			Help:      "Component rasterization duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	RenderScriptErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "raster",
			Name:      "script_errors_total",
			Help:      "Script exceptions caught while rendering components",
		},
	)

	DesignsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "studio",
			Name:      "designs_total",
			Help:      "Design creations and regenerations by outcome",
		},
		[]string{"operation", "status"},
	)
)

// Status maps an error to the status label used by the counters above.
func Status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
