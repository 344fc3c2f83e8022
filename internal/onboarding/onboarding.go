// Package onboarding provides the first-run model picker window. It is
// shown when no speech model is present yet and blocks the rest of the
// app behind downloading at least one.
package onboarding

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"murmur/internal/bridge"
	"murmur/internal/config"
	"murmur/internal/models"
)

// Window represents the onboarding dialog.
type Window struct {
	mu      sync.Mutex
	manager *models.Manager
	store   *config.Store
	bus     *bridge.Bus

	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Download state
	downloading    bool
	downloadCancel context.CancelFunc
	progress       float64
	progressModel  string

	// Widgets
	downloadBtns map[string]*widget.Clickable
	continueBtn  widget.Clickable
	modelList    widget.List

	onDone func()
}

// New creates the onboarding window.
func New(manager *models.Manager, store *config.Store, bus *bridge.Bus) *Window {
	w := &Window{
		manager:      manager,
		store:        store,
		bus:          bus,
		downloadBtns: make(map[string]*widget.Clickable),
	}
	for _, m := range models.Registry {
		w.downloadBtns[m.ID] = new(widget.Clickable)
	}
	w.modelList.Axis = layout.Vertical
	return w
}

// OnDone sets the callback for when the user finishes onboarding.
func (w *Window) OnDone(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onDone = fn
}

// Show displays the onboarding window (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop()
}

// Hide closes the onboarding window.
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

	if w.downloadCancel != nil {
		w.downloadCancel()
	}
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible returns true if the window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) runEventLoop() {
	defer close(w.doneCh)

	w.window = new(app.Window)
	w.window.Option(
		app.Title("Murmur - Choose a model"),
		app.Size(unit.Dp(440), unit.Dp(560)),
		app.MinSize(unit.Dp(400), unit.Dp(480)),
	)

	var ops op.Ops

	// Hide nils w.stopCh, so the loop selects on a local copy.
	stopCh := w.stopCh
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
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
			w.handleEvents(gtx)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) handleEvents(gtx layout.Context) {
	for id, btn := range w.downloadBtns {
		if btn.Clicked(gtx) {
			w.startDownload(id)
		}
	}

	if w.continueBtn.Clicked(gtx) && w.manager.HasAnyDownloaded() {
		w.finish()
	}
}

// finish picks a selected model when none is set yet, then closes.
func (w *Window) finish() {
	if w.store.ModelID() == "" {
		for _, st := range w.manager.Available() {
			if st.Downloaded {
				w.store.SetModelID(st.ID)
				break
			}
		}
	}

	w.mu.Lock()
	done := w.onDone
	w.mu.Unlock()

	go w.Hide()
	if done != nil {
		go done()
	}
}

func (w *Window) startDownload(modelID string) {
	w.mu.Lock()
	if w.downloading {
		w.mu.Unlock()
		return
	}

	info, ok := models.GetModel(modelID)
	if !ok {
		w.mu.Unlock()
		return
	}

	w.downloading = true
	w.progressModel = modelID
	w.progress = 0
	ctx, cancel := context.WithCancel(context.Background())
	w.downloadCancel = cancel
	w.mu.Unlock()

	go func() {
		progressCh := make(chan models.Progress, 10)

		go func() {
			for p := range progressCh {
				w.mu.Lock()
				if p.Total > 0 {
					w.progress = float64(p.Downloaded) / float64(p.Total)
				}
				w.mu.Unlock()
			}
		}()

		err := w.manager.Download(ctx, info, progressCh)
		close(progressCh)

		w.mu.Lock()
		w.downloading = false
		w.downloadCancel = nil
		w.mu.Unlock()

		if err == nil {
			// First model becomes the selection
			if w.store.ModelID() == "" {
				w.store.SetModelID(modelID)
			}
			w.bus.ModelStateChanged()
		} else if !errors.Is(err, context.Canceled) {
			log.Printf("Onboarding: download error: %v", err)
		}
	}()
}

func (w *Window) downloadState() (downloading bool, progress float64, progressModel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.downloading, w.progress, w.progressModel
}
