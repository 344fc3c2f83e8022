// Package settings provides the Gio-based settings window.
package settings

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"murmur/internal/bridge"
	"murmur/internal/config"
	"murmur/internal/hook"
	"murmur/internal/input"
	"murmur/internal/models"
	"murmur/internal/recorder"
)

// Window represents the settings dialog window.
type Window struct {
	mu      sync.Mutex
	manager *models.Manager
	store   *config.Store
	hooks   *hook.Manager
	rec     *recorder.Recorder
	bus     *bridge.Bus

	// Window state
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Widgets - Shortcuts
	editBtns  map[string]*widget.Clickable
	resetBtns map[string]*widget.Clickable

	// Mouse state during chord recording
	heldButtons pointer.Buttons

	// Widgets - General
	pushToTalk    widget.Bool
	notifications widget.Bool

	// Widgets - API key
	apiKeyEditor  widget.Editor
	apiKeyFocused bool

	// Download state
	downloading    bool
	downloadCancel context.CancelFunc
	progress       float64
	progressModel  string

	// Widgets - Models
	modelBtns    map[string]*widget.Clickable
	downloadBtns map[string]*widget.Clickable

	// Scroll state
	contentList widget.List

	// Cached filters for chord recording
	keyFilters []event.Filter
}

// New creates a new settings window.
func New(manager *models.Manager, store *config.Store, hooks *hook.Manager, rec *recorder.Recorder, bus *bridge.Bus) *Window {
	w := &Window{
		manager:      manager,
		store:        store,
		hooks:        hooks,
		rec:          rec,
		bus:          bus,
		editBtns:     make(map[string]*widget.Clickable),
		resetBtns:    make(map[string]*widget.Clickable),
		modelBtns:    make(map[string]*widget.Clickable),
		downloadBtns: make(map[string]*widget.Clickable),
	}

	for _, b := range store.Bindings() {
		w.editBtns[b.ID] = new(widget.Clickable)
		w.resetBtns[b.ID] = new(widget.Clickable)
	}
	for _, m := range models.Registry {
		w.modelBtns[m.ID] = new(widget.Clickable)
		w.downloadBtns[m.ID] = new(widget.Clickable)
	}

	w.contentList.Axis = layout.Vertical
	w.apiKeyEditor.SingleLine = true
	w.apiKeyEditor.Mask = '•'

	w.initKeyFilters()

	return w
}

// initKeyFilters builds the filter list used to observe raw key presses
// while a chord is being recorded.
func (w *Window) initKeyFilters() {
	modifiers := key.ModCtrl | key.ModShift | key.ModAlt | key.ModSuper

	names := []key.Name{
		key.NameSpace, key.NameTab, key.NameReturn, key.NameEnter,
		key.NameEscape, key.NameDeleteBackward, key.NameDeleteForward,
		key.NameHome, key.NameEnd, key.NamePageUp, key.NamePageDown,
		key.NameUpArrow, key.NameDownArrow, key.NameLeftArrow, key.NameRightArrow,
		key.NameCtrl, key.NameShift, key.NameAlt, key.NameSuper, key.NameCommand,
		key.NameF1, key.NameF2, key.NameF3, key.NameF4, key.NameF5, key.NameF6,
		key.NameF7, key.NameF8, key.NameF9, key.NameF10, key.NameF11, key.NameF12,
	}
	for c := 'A'; c <= 'Z'; c++ {
		names = append(names, key.Name(string(c)))
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, key.Name(string(c)))
	}

	w.keyFilters = make([]event.Filter, 0, len(names)+1)
	for _, n := range names {
		w.keyFilters = append(w.keyFilters, key.Filter{Name: n, Optional: modifiers})
	}
	// Modifier-only events
	w.keyFilters = append(w.keyFilters, key.Filter{Optional: modifiers})
}

// gioKeyNames maps Gio's symbolic key names to normalizer tokens. Names
// missing here go through input.NormalizeKey as-is.
var gioKeyNames = map[key.Name]string{
	key.NameEscape:         "esc",
	key.NameReturn:         "enter",
	key.NameEnter:          "enter",
	key.NameSpace:          "space",
	key.NameTab:            "tab",
	key.NameCtrl:           "ctrl",
	key.NameShift:          "shift",
	key.NameAlt:            "alt",
	key.NameSuper:          "super",
	key.NameCommand:        "command",
	key.NameUpArrow:        "up",
	key.NameDownArrow:      "down",
	key.NameLeftArrow:      "left",
	key.NameRightArrow:     "right",
	key.NameHome:           "home",
	key.NameEnd:            "end",
	key.NamePageUp:         "pageup",
	key.NamePageDown:       "pagedown",
	key.NameDeleteBackward: "backspace",
	key.NameDeleteForward:  "delete",
}

func keyEventFor(name key.Name) input.KeyEvent {
	if token, ok := gioKeyNames[name]; ok {
		return input.KeyEvent{Key: token}
	}
	return input.KeyEvent{Key: string(name)}
}

// mouse button order matches the platform numbering the recorder expects:
// left, middle, right, then extras.
var pointerButtons = []struct {
	mask pointer.Buttons
	idx  int
}{
	{pointer.ButtonPrimary, 0},
	{pointer.ButtonTertiary, 1},
	{pointer.ButtonSecondary, 2},
	{pointer.ButtonQuaternary, 3},
	{pointer.ButtonQuinary, 4},
}

// Show displays the settings window (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	// Reload persisted values into the widgets
	w.notifications.Value = w.store.NotificationsEnabled()
	w.pushToTalk.Value = w.store.PushToTalk()
	w.apiKeyEditor.SetText(w.store.APIKey())
	w.apiKeyFocused = false

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop()
}

// Hide closes the settings window.
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

	// Cancel any ongoing download
	if w.downloadCancel != nil {
		w.downloadCancel()
	}
	w.mu.Unlock()

	// A chord recording session must not outlive the window
	w.rec.Cancel()

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

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) runEventLoop() {
	defer close(w.doneCh)

	w.window = new(app.Window)
	w.window.Option(
		app.Title("Murmur - Settings"),
		app.Size(unit.Dp(460), unit.Dp(620)),
		app.MinSize(unit.Dp(400), unit.Dp(500)),
	)

	var ops op.Ops

	// Invalidation goroutine. Hide nils w.stopCh, so the loop selects on
	// a local copy.
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
	recordingID, recording := w.rec.ActiveID()

	// Shortcut rows
	for _, b := range w.store.Bindings() {
		if w.editBtns[b.ID].Clicked(gtx) {
			if recording && recordingID == b.ID {
				// Second click on the active row cancels the session
				w.rec.Cancel()
			} else {
				w.startRecording(b)
			}
		}
		if w.resetBtns[b.ID].Clicked(gtx) {
			if recording {
				w.rec.Cancel()
			}
			if _, err := w.hooks.ResetBinding(b.ID); err != nil {
				log.Printf("Settings: reset %s: %v", b.ID, err)
			}
		}
	}

	if recording {
		w.handleRecording(gtx)
	}

	// General checkboxes commit on change
	if w.notifications.Update(gtx) {
		w.store.SetNotifications(w.notifications.Value)
	}
	if w.pushToTalk.Update(gtx) {
		w.store.SetPushToTalk(w.pushToTalk.Value)
	}

	w.handleAPIKey(gtx)

	// Model selection and downloads
	for id, btn := range w.modelBtns {
		if btn.Clicked(gtx) {
			if info, ok := models.GetModel(id); ok && w.manager.IsDownloaded(info) {
				w.store.SetModelID(id)
			}
		}
	}
	for id, btn := range w.downloadBtns {
		if btn.Clicked(gtx) {
			w.startDownload(id)
		}
	}
}

// startRecording opens a chord recording session for the binding and
// routes global raw input into the recorder for its duration.
func (w *Window) startRecording(b config.Binding) {
	w.mu.Lock()
	w.heldButtons = 0
	w.mu.Unlock()

	w.rec.Start(b.ID, b.Current)
	w.hooks.SetCapture(w.feedRaw)
}

func (w *Window) feedRaw(e hook.RawEvent) {
	if e.IsMouse {
		if e.Pressed {
			w.rec.MouseDown(e.Button)
		} else {
			w.rec.MouseUp(e.Button)
		}
		return
	}
	if e.Pressed {
		w.rec.KeyDown(e.Key)
	} else {
		w.rec.KeyUp(e.Key)
	}
}

// handleRecording feeds window key and pointer events into the recorder
// while a session is active.
func (w *Window) handleRecording(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(w.keyFilters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok {
			continue
		}
		ke := keyEventFor(e.Name)
		if e.State == key.Press {
			w.rec.KeyDown(ke)
		} else {
			w.rec.KeyUp(ke)
		}
	}

	// Pointer events on the window background: reserved buttons cancel
	// the session (outside click), extra buttons become chord tokens.
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: w, Kinds: pointer.Press | pointer.Release})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		w.mu.Lock()
		prev := w.heldButtons
		w.heldButtons = e.Buttons
		w.mu.Unlock()

		for _, pb := range pointerButtons {
			was := prev&pb.mask != 0
			now := e.Buttons&pb.mask != 0
			switch {
			case now && !was:
				if input.ReservedMouseButton(pb.idx) {
					w.rec.OutsideClick()
				} else {
					w.rec.MouseDown(pb.idx)
				}
			case was && !now:
				if !input.ReservedMouseButton(pb.idx) {
					w.rec.MouseUp(pb.idx)
				}
			}
		}
	}
}

// handleAPIKey commits the editor buffer on blur instead of per
// keystroke.
func (w *Window) handleAPIKey(gtx layout.Context) {
	for {
		if _, ok := w.apiKeyEditor.Update(gtx); !ok {
			break
		}
	}

	focused := gtx.Source.Focused(&w.apiKeyEditor)
	w.mu.Lock()
	wasFocused := w.apiKeyFocused
	w.apiKeyFocused = focused
	w.mu.Unlock()

	if wasFocused && !focused {
		w.store.SetAPIKey(w.apiKeyEditor.Text())
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
			w.bus.ModelStateChanged()
		} else if !errors.Is(err, context.Canceled) {
			log.Printf("Settings: download error: %v", err)
		}
	}()
}

func (w *Window) downloadState() (downloading bool, progress float64, progressModel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.downloading, w.progress, w.progressModel
}
