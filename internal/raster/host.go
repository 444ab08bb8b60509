// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package raster

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Page is one render request for a Host.
type Page struct {
	Document string
	Width    int
	Height   int
	// Selector is the element captured in the screenshot.
	Selector string
	// Script is a JS expression evaluated after the document loads. It must
	// evaluate to an array of error strings.
	Script string
	Settle time.Duration
}

// blockedURLs keeps component documents off the network. Inline data: and
// about: URLs have no "://" and still load.
var blockedURLs = []string{"*://*"}

// Snapshot is what a Host returns for a Page.
type Snapshot struct {
	PNG          []byte
	ScriptErrors []string
}

// Host is an off-screen rendering surface.
type Host interface {
	Snapshot(ctx context.Context, p Page) (*Snapshot, error)
	Close() error
}

// ChromeHost renders pages in a headless Chrome started at construction.
// Each snapshot runs in its own tab that is closed when it returns.
type ChromeHost struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closeOnce     sync.Once
}

// NewChromeHost launches the browser. execPath may be empty to let chromedp
// find an installed Chrome or Chromium.
func NewChromeHost(execPath string) (*ChromeHost, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			slog.Debug("chrome", "message", fmt.Sprintf(format, args...))
		}),
	)

	// The first Run on a fresh context starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("raster start chrome: %w", err)
	}

	slog.Info("headless chrome started")
	return &ChromeHost{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Snapshot loads p.Document into a fresh tab and captures p.Selector.
func (h *ChromeHost) Snapshot(ctx context.Context, p Page) (*Snapshot, error) {
	tabCtx, cancel := chromedp.NewContext(h.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		png        []byte
		scriptErrs []string
	)
	actions := []chromedp.Action{
		chromedp.EmulateViewport(int64(p.Width), int64(p.Height)),
		network.Enable(),
		network.SetBlockedURLS(blockedURLs),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, p.Document).Do(ctx)
		}),
		chromedp.WaitReady(p.Selector, chromedp.ByQuery),
	}
	if p.Script != "" {
		actions = append(actions, chromedp.Evaluate(p.Script, &scriptErrs))
	}
	if p.Settle > 0 {
		actions = append(actions, chromedp.Sleep(p.Settle))
	}
	actions = append(actions, chromedp.Screenshot(p.Selector, &png, chromedp.ByQuery))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return &Snapshot{PNG: png, ScriptErrors: scriptErrs}, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (h *ChromeHost) Close() error {
	h.closeOnce.Do(func() {
		h.browserCancel()
		h.allocCancel()
		slog.Info("headless chrome stopped")
	})
	return nil
}
