// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// GenerationMeta describes one successful generation call.
type GenerationMeta struct {
	Provider      string        `json:"provider,omitempty"`
	Model         string        `json:"model"`
	Temperature   float64       `json:"temperature"`
	TokensUsed    int           `json:"tokens_used"`
	Prompt        string        `json:"prompt"`
	Duration      time.Duration `json:"duration"`
	EstimatedCost float64       `json:"estimated_cost"`
}

// Result is the outcome of a soft-failing generation call.
// Success is true iff Data is non-nil and Error is empty.
// Build results with Succeeded and Failed only.
type Result[T any] struct {
	Success bool            `json:"success"`
	Data    *T              `json:"data,omitempty"`
	Meta    *GenerationMeta `json:"metadata,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Succeeded wraps a payload and its metadata.
func Succeeded[T any](data T, meta *GenerationMeta) Result[T] {
	return Result[T]{Success: true, Data: &data, Meta: meta}
}

// Failed wraps an error. A nil error yields a generic message so that the
// invariant holds.
func Failed[T any](err error) Result[T] {
	msg := "generation failed"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result[T]{Error: msg}
}
