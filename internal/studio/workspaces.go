// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"log/slog"
	"sync"
	"time"
)

type workspace struct {
	studio   *Studio
	lastSeen time.Time
}

// Workspaces maps session IDs to their studios. Studios idle for longer
// than the TTL are dropped by a background sweep.
type Workspaces struct {
	mu     sync.Mutex
	items  map[string]*workspace
	ttl    time.Duration
	newGen func(sessionID string) Generator
	stopCh chan struct{}
}

// NewWorkspaces creates the registry. newGen supplies the generator for a
// freshly created studio and may return nil.
func NewWorkspaces(ttl time.Duration, newGen func(sessionID string) Generator) *Workspaces {
	w := &Workspaces{
		items:  make(map[string]*workspace),
		ttl:    ttl,
		newGen: newGen,
		stopCh: make(chan struct{}),
	}

	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.sweep(time.Now())
			case <-w.stopCh:
				return
			}
		}
	}()

	return w
}

// Stop terminates the background sweep.
func (w *Workspaces) Stop() {
	close(w.stopCh)
}

// Get returns the session's studio, creating it on first use.
func (w *Workspaces) Get(sessionID string) *Studio {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws, ok := w.items[sessionID]
	if !ok {
		var gen Generator
		if w.newGen != nil {
			gen = w.newGen(sessionID)
		}
		ws = &workspace{studio: New(gen)}
		w.items[sessionID] = ws
	}
	ws.lastSeen = time.Now()
	return ws.studio
}

// Lookup returns the session's studio without creating one.
func (w *Workspaces) Lookup(sessionID string) (*Studio, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ws, ok := w.items[sessionID]
	if !ok {
		return nil, false
	}
	ws.lastSeen = time.Now()
	return ws.studio, true
}

// Remove drops the session's studio.
func (w *Workspaces) Remove(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.items, sessionID)
}

// Len returns the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// sweep removes idle workspaces that are not mid-operation.
func (w *Workspaces) sweep(now time.Time) {
	cutoff := now.Add(-w.ttl)

	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for id, ws := range w.items {
		if ws.lastSeen.Before(cutoff) && !ws.studio.Status().Generating {
			delete(w.items, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("evicted idle workspaces", "count", removed, "remaining", len(w.items))
	}
}
