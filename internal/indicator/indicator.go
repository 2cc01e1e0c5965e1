// Package indicator provides the floating window shown while recording.
package indicator

import (
	"image/color"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
)

// LevelProvider reports the current input level in the range 0..1.
type LevelProvider interface {
	Level() float32
}

// Config holds window configuration.
type Config struct {
	Width       int           // Window width in pixels
	Height      int           // Window height in pixels
	RefreshRate time.Duration // Refresh interval
	Bars        int           // Number of level bars
	BGColor     color.NRGBA   // Background color
	LevelColor  color.NRGBA   // Level bar color
	DotColor    color.NRGBA   // Recording dot color
	TextColor   color.NRGBA   // Text color
	PanelColor  color.NRGBA   // Panel background
	TrackColor  color.NRGBA   // Empty bar color
	LoudColor   color.NRGBA   // Bar color above 0.7
	MediumColor color.NRGBA   // Bar color above 0.4
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       240,
		Height:      72,
		RefreshRate: 33 * time.Millisecond, // ~30fps
		Bars:        32,
		BGColor:     color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		LevelColor:  color.NRGBA{R: 80, G: 200, B: 120, A: 255},
		DotColor:    color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		TextColor:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		PanelColor:  color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		TrackColor:  color.NRGBA{R: 60, G: 60, B: 65, A: 255},
		LoudColor:   color.NRGBA{R: 255, G: 80, B: 80, A: 255},
		MediumColor: color.NRGBA{R: 255, G: 180, B: 0, A: 255},
	}
}

// Window manages the floating recording indicator.
type Window struct {
	mu        sync.Mutex
	provider  LevelProvider
	config    Config
	startTime time.Time
	history   *history

	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates an indicator window fed by provider.
func New(provider LevelProvider, cfg Config) *Window {
	return &Window{
		provider: provider,
		config:   cfg,
		history:  newHistory(cfg.Bars),
	}
}

// Show displays the indicator (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.startTime = time.Now()
	w.history.reset()
	if w.running {
		if w.window != nil {
			w.window.Invalidate()
		}
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop(w.stopCh, w.doneCh)
}

// Hide closes the indicator.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	// Wait for window to close
	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

const windowTitle = "Parrot - Recording"

func (w *Window) runEventLoop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	win := new(app.Window)
	win.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(w.config.Width), unit.Dp(w.config.Height)),
		app.Decorated(false), // Borderless
	)
	w.mu.Lock()
	w.window = win
	w.mu.Unlock()

	var ops op.Ops

	// Position window after it appears
	go positionWindow(windowTitle, w.config.Width, w.config.Height)

	// Sampling, invalidation and close goroutine
	go func() {
		ticker := time.NewTicker(w.config.RefreshRate)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				win.Perform(system.ActionClose)
				return
			case <-ticker.C:
				if w.provider != nil {
					w.history.push(w.provider.Level())
				}
				win.Invalidate()
			}
		}
	}()

	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			w.mu.Lock()
			w.window = nil
			w.mu.Unlock()
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			w.mu.Lock()
			startTime := w.startTime
			w.mu.Unlock()

			w.draw(gtx, time.Since(startTime))
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context, elapsed time.Duration) {
	drawIndicator(gtx, w.history.snapshot(), elapsed, w.config)
}

// history is a fixed-size ring of recent levels, oldest first on snapshot.
type history struct {
	mu     sync.Mutex
	levels []float32
	next   int
	filled bool
}

func newHistory(n int) *history {
	return &history{levels: make([]float32, max(n, 1))}
}

func (h *history) push(level float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.levels[h.next] = min(max(level, 0), 1)
	h.next = (h.next + 1) % len(h.levels)
	if h.next == 0 {
		h.filled = true
	}
}

func (h *history) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.levels)
	h.next = 0
	h.filled = false
}

func (h *history) snapshot() []float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.filled {
		return append([]float32(nil), h.levels[:h.next]...)
	}
	out := make([]float32, 0, len(h.levels))
	out = append(out, h.levels[h.next:]...)
	return append(out, h.levels[:h.next]...)
}
