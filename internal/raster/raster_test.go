// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"artboard/internal/models"
)

// fakeHost produces a solid PNG of the requested size and records pages.
type fakeHost struct {
	mu        sync.Mutex
	pages     []Page
	scriptErr []string
	failWidth int
	hangWidth int
	delay     time.Duration
	active    atomic.Int32
	maxActive atomic.Int32
	closes    atomic.Int32
}

func (h *fakeHost) Snapshot(ctx context.Context, p Page) (*Snapshot, error) {
	n := h.active.Add(1)
	defer h.active.Add(-1)
	for {
		cur := h.maxActive.Load()
		if n <= cur || h.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	if h.delay > 0 {
		time.Sleep(h.delay)
	}
	if p.Width == h.hangWidth {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	h.mu.Lock()
	h.pages = append(h.pages, p)
	h.mu.Unlock()

	if p.Width == h.failWidth {
		return nil, errors.New("tab crashed")
	}
	return &Snapshot{PNG: solidPNG(p.Width, p.Height), ScriptErrors: h.scriptErr}, nil
}

func (h *fakeHost) Close() error {
	h.closes.Add(1)
	return nil
}

func (h *fakeHost) pageCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pages)
}

func solidPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 0xff, 0xff
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(ctx context.Context, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

type fakePublisher struct{ keys []string }

func (p *fakePublisher) Publish(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	p.keys = append(p.keys, key)
	return "https://cdn.example/" + key, nil
}

func button() *models.ComponentContent {
	return &models.ComponentContent{
		HTML:        `<button class="cta">Buy</button>`,
		CSS:         `.cta{color:red}`,
		Framework:   models.FrameworkVanilla,
		Description: "Buy button",
		Width:       320,
		Height:      120,
	}
}

func TestRenderComponent(t *testing.T) {
	host := &fakeHost{}
	r := New(host, Config{})

	c := button()
	c.JS = `container.querySelector(".cta").textContent = "Go"`
	got, err := r.RenderComponent(context.Background(), c)
	if err != nil {
		t.Fatalf("RenderComponent: %v", err)
	}
	if got.Width != 320 || got.Height != 120 {
		t.Errorf("size = %dx%d", got.Width, got.Height)
	}
	if !strings.HasPrefix(got.ImageURL, "data:image/png;base64,") {
		t.Errorf("ImageURL = %.40s", got.ImageURL)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(got.PNG))
	if err != nil || cfg.Width != 320 || cfg.Height != 120 {
		t.Errorf("png = %+v, %v", cfg, err)
	}

	p := host.pages[0]
	if p.Selector != RootSelector || p.Settle != DefaultSettle || p.Width != 320 || p.Height != 120 {
		t.Errorf("page = %+v", p)
	}
	styleAt := strings.Index(p.Document, "<style>.cta{color:red}</style>")
	markupAt := strings.Index(p.Document, `<button class="cta">Buy</button>`)
	rootAt := strings.Index(p.Document, `id="component-root"`)
	if rootAt < 0 || styleAt < rootAt || markupAt < styleAt {
		t.Errorf("style must precede markup inside the wrapper:\n%s", p.Document)
	}
	if !strings.Contains(p.Document, "width:320px;height:120px") {
		t.Error("wrapper is not sized to the component")
	}
	if !strings.Contains(p.Script, `new Function("container", "container.querySelector(\".cta\").textContent = \"Go\"")(root)`) {
		t.Errorf("script wrapper = %s", p.Script)
	}
}

func TestRenderComponent_ScriptErrorsAreNotFatal(t *testing.T) {
	host := &fakeHost{scriptErr: []string{"boom is not defined"}}
	r := New(host, Config{})

	c := button()
	c.JS = "boom()"
	got, err := r.RenderComponent(context.Background(), c)
	if err != nil {
		t.Fatalf("RenderComponent: %v", err)
	}
	if len(got.ScriptErrors) != 1 || got.ScriptErrors[0] != "boom is not defined" {
		t.Errorf("ScriptErrors = %v", got.ScriptErrors)
	}
	if len(got.PNG) == 0 {
		t.Error("expected a bitmap despite the script error")
	}
}

func TestRenderComponent_NoScript(t *testing.T) {
	host := &fakeHost{}
	if _, err := New(host, Config{Settle: time.Millisecond}).RenderComponent(context.Background(), button()); err != nil {
		t.Fatal(err)
	}
	if host.pages[0].Script != "" || host.pages[0].Settle != time.Millisecond {
		t.Errorf("page = %+v", host.pages[0])
	}
}

func TestRenderComponent_Defaults(t *testing.T) {
	host := &fakeHost{}
	c := button()
	c.Width, c.Height = 0, 99999
	got, err := New(host, Config{}).RenderComponent(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != defaultWidth || got.Height != maxDimension {
		t.Errorf("size = %dx%d", got.Width, got.Height)
	}
}

func TestSurfaceClosed(t *testing.T) {
	if _, err := New(nil, Config{}).RenderComponent(context.Background(), button()); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("nil host: %v", err)
	}

	host := &fakeHost{}
	r := New(host, Config{})
	if !r.Available() {
		t.Error("Available() = false before Close")
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	r.Close()
	if host.closes.Load() != 1 {
		t.Errorf("host closed %d times", host.closes.Load())
	}
	if r.Available() {
		t.Error("Available() = true after Close")
	}
	if _, err := r.RenderComponent(context.Background(), button()); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("after Close: %v", err)
	}
	if host.pageCount() != 0 {
		t.Error("host used after Close")
	}
}

func TestRenderComponent_Serialized(t *testing.T) {
	host := &fakeHost{delay: 10 * time.Millisecond}
	r := New(host, Config{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := button()
			c.Width = 100 + i
			if _, err := r.RenderComponent(context.Background(), c); err != nil {
				t.Errorf("render %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if got := host.maxActive.Load(); got != 1 {
		t.Errorf("max concurrent snapshots = %d, want 1", got)
	}
}

func TestRenderMultipleComponents_PartialSuccess(t *testing.T) {
	host := &fakeHost{failWidth: 222}
	r := New(host, Config{})

	a, b, c := button(), button(), button()
	b.Width = 222
	c.Width = 400

	got := r.RenderMultipleComponents(context.Background(), []*models.ComponentContent{a, b, nil, c})
	if len(got) != 2 {
		t.Fatalf("rendered %d, want 2", len(got))
	}
	if got[0].Width != 320 || got[1].Width != 400 {
		t.Errorf("widths = %d, %d", got[0].Width, got[1].Width)
	}
}

func TestRenderMultipleComponents_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	host := &fakeHost{}
	got := New(host, Config{}).RenderMultipleComponents(ctx, []*models.ComponentContent{button(), button()})
	if len(got) != 0 || host.pageCount() != 0 {
		t.Errorf("rendered %d after cancel", len(got))
	}
}

func TestRenderComponent_Cache(t *testing.T) {
	host := &fakeHost{scriptErr: []string{"warn"}}
	mc := &memCache{data: map[string][]byte{}}
	r := New(host, Config{Cache: mc})

	first, err := r.RenderComponent(context.Background(), button())
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.RenderComponent(context.Background(), button())
	if err != nil {
		t.Fatal(err)
	}
	if host.pageCount() != 1 {
		t.Errorf("host called %d times, want 1", host.pageCount())
	}
	if !bytes.Equal(first.PNG, second.PNG) || len(second.ScriptErrors) != 1 {
		t.Error("cached render differs from the original")
	}

	other := button()
	other.CSS = ".cta{color:blue}"
	if _, err := r.RenderComponent(context.Background(), other); err != nil {
		t.Fatal(err)
	}
	if host.pageCount() != 2 {
		t.Error("a different bundle should miss the cache")
	}
}

func TestRenderComponent_Publisher(t *testing.T) {
	pub := &fakePublisher{}
	got, err := New(&fakeHost{}, Config{Publisher: pub}).RenderComponent(context.Background(), button())
	if err != nil {
		t.Fatal(err)
	}
	if len(pub.keys) != 1 || !strings.HasPrefix(pub.keys[0], "renders/") || got.ImageURL != "https://cdn.example/"+pub.keys[0] {
		t.Errorf("published %v -> %s", pub.keys, got.ImageURL)
	}
}

func TestBuildDocumentEscapesStyleClose(t *testing.T) {
	c := button()
	c.CSS = `.a{} </style><script>alert(1)</script>`
	doc := buildDocument(c, 10, 10)
	if strings.Count(doc, "</style>") != 2 {
		t.Errorf("css closed the style element early:\n%s", doc)
	}
}

func TestRenderComponent_Timeout(t *testing.T) {
	host := &fakeHost{hangWidth: 640}
	r := New(host, Config{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := r.RenderComponent(context.Background(), &models.ComponentContent{HTML: "<div></div>", JS: "for(;;){}", Width: 640, Height: 480})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("render returned after %v", elapsed)
	}

	got, err := r.RenderComponent(context.Background(), &models.ComponentContent{HTML: "<div></div>", Width: 100, Height: 80})
	if err != nil {
		t.Fatalf("render after timeout: %v", err)
	}
	if got.Width != 100 || got.Height != 80 {
		t.Errorf("size = %dx%d", got.Width, got.Height)
	}
}

func TestNewAppliesDefaultTimeout(t *testing.T) {
	r := New(&fakeHost{}, Config{})
	if r.cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", r.cfg.Timeout, DefaultTimeout)
	}
}
