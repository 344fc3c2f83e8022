// Package overlay provides the floating recording indicator window.
package overlay

import (
	"image/color"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"murmur/internal/bridge"
)

const barCount = 24

// Config holds window configuration.
type Config struct {
	Width       int           // Window width in pixels
	Height      int           // Window height in pixels
	RefreshRate time.Duration // Refresh interval
	BGColor     color.NRGBA   // Background color
	BarColor    color.NRGBA   // Level bar color
	TextColor   color.NRGBA   // Text color
	DimColor    color.NRGBA   // Dim text color
	AccentColor color.NRGBA   // Accent color (spinner)
	PanelColor  color.NRGBA   // Panel background
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       360,
		Height:      100,
		RefreshRate: 33 * time.Millisecond, // ~30fps
		BGColor:     color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		BarColor:    color.NRGBA{R: 80, G: 200, B: 120, A: 255},
		TextColor:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		DimColor:    color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		AccentColor: color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		PanelColor:  color.NRGBA{R: 45, G: 45, B: 50, A: 255},
	}
}

// Window manages the floating overlay. It is created once at startup and
// driven over the bus: ShowOverlay/HideOverlay toggle visibility,
// MicLevel frames feed the bars.
type Window struct {
	mu        sync.Mutex
	config    Config
	smoother  Smoother
	startTime time.Time
	state     bridge.OverlayState
	onCancel  func()

	subs []*bridge.Subscription

	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates the overlay and subscribes it to the bus. Close releases
// the subscriptions.
func New(cfg Config, bus *bridge.Bus) *Window {
	w := &Window{config: cfg}
	w.subs = []*bridge.Subscription{
		bus.SubscribeShow(w.show),
		bus.SubscribeHide(w.Hide),
		bus.SubscribeLevels(w.feed),
	}
	return w
}

// Close unsubscribes from the bus and hides the window.
func (w *Window) Close() {
	for _, s := range w.subs {
		s.Close()
	}
	w.Hide()
}

// OnCancel sets the callback for when the overlay is dismissed with ESC.
func (w *Window) OnCancel(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCancel = fn
}

// show displays the overlay in the given state (non-blocking).
func (w *Window) show(state bridge.OverlayState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		// Window already visible - just switch state
		if state == bridge.StateRecording && w.state != bridge.StateRecording {
			w.startTime = time.Now()
			w.smoother.Reset()
		}
		w.state = state
		if w.window != nil {
			w.window.Invalidate()
		}
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.startTime = time.Now()
	w.state = state
	w.smoother.Reset()

	go w.runEventLoop()
}

// Hide closes the overlay window.
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

// IsVisible returns true if the overlay is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// feed folds one frame of microphone levels into the smoother.
func (w *Window) feed(levels []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.smoother.Feed(levels)
}

const windowTitle = "Murmur - Recording"

func (w *Window) runEventLoop() {
	defer close(w.doneCh)

	w.window = new(app.Window)
	w.window.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(w.config.Width), unit.Dp(w.config.Height)),
		app.Decorated(false), // Borderless
	)

	var ops op.Ops

	// Position window after it appears
	go positionWindow(windowTitle, w.config.Width, w.config.Height)

	ticker := time.NewTicker(w.config.RefreshRate)
	defer ticker.Stop()

	// Invalidation and close goroutine. Hide nils w.stopCh, so the loop
	// selects on a local copy.
	stopCh := w.stopCh
	go func() {
		for {
			select {
			case <-stopCh:
				if w.window != nil {
					w.window.Perform(system.ActionClose)
				}
				return
			case <-ticker.C:
				if w.window != nil {
					w.window.Invalidate()
				}
			}
		}
	}()

	for {
		switch e := w.window.Event().(type) {
		case app.DestroyEvent:
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.frame(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) frame(gtx layout.Context) {
	// ESC cancels the operation and closes the overlay
	for {
		event, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if e, ok := event.(key.Event); ok && e.State == key.Press {
			w.mu.Lock()
			cancelFn := w.onCancel
			w.mu.Unlock()
			if cancelFn != nil {
				go cancelFn()
			}
			go w.Hide()
			return
		}
	}

	w.mu.Lock()
	startTime := w.startTime
	state := w.state
	bars := w.smoother.Bars(barCount)
	w.mu.Unlock()

	elapsed := time.Since(startTime)

	switch state {
	case bridge.StateTranscribing:
		drawTranscribing(gtx, elapsed, w.config)
	default:
		drawRecording(gtx, bars, elapsed, w.config)
	}
}
