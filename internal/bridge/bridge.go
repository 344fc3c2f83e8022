// Package bridge is the in-process event bus between the app core and
// the UI windows. Publishing is synchronous; subscribers get their own
// handle and must close it when the window hides.
package bridge

import (
	"sync"
)

// OverlayState is what the recording overlay should display.
type OverlayState int

const (
	StateRecording OverlayState = iota
	StateTranscribing
)

func (s OverlayState) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	default:
		return "unknown"
	}
}

type topic int

const (
	topicShow topic = iota
	topicHide
	topicLevels
	topicModelState
)

type handler struct {
	show       func(OverlayState)
	hide       func()
	levels     func([]float32)
	modelState func()
}

// Subscription is a handle to one subscribed handler. Close is
// idempotent; a subscription that is never closed keeps its handler
// alive for the lifetime of the bus.
type Subscription struct {
	once sync.Once
	bus  *Bus
	top  topic
	id   int
}

// Close removes the handler from the bus.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.handlers[s.top], s.id)
		s.bus.mu.Unlock()
	})
}

// Bus fans events out to subscribed handlers.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[topic]map[int]handler
}

func New() *Bus {
	return &Bus{
		handlers: map[topic]map[int]handler{
			topicShow:       {},
			topicHide:       {},
			topicLevels:     {},
			topicModelState: {},
		},
	}
}

func (b *Bus) subscribe(top topic, h handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[top][b.nextID] = h
	return &Subscription{bus: b, top: top, id: b.nextID}
}

// SubscribeShow registers a handler for overlay show requests.
func (b *Bus) SubscribeShow(fn func(OverlayState)) *Subscription {
	return b.subscribe(topicShow, handler{show: fn})
}

// SubscribeHide registers a handler for overlay hide requests.
func (b *Bus) SubscribeHide(fn func()) *Subscription {
	return b.subscribe(topicHide, handler{hide: fn})
}

// SubscribeLevels registers a handler for microphone level frames.
func (b *Bus) SubscribeLevels(fn func([]float32)) *Subscription {
	return b.subscribe(topicLevels, handler{levels: fn})
}

// SubscribeModelState registers a handler for model download/delete
// state changes.
func (b *Bus) SubscribeModelState(fn func()) *Subscription {
	return b.subscribe(topicModelState, handler{modelState: fn})
}

func (b *Bus) snapshot(top topic) []handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]handler, 0, len(b.handlers[top]))
	for _, h := range b.handlers[top] {
		hs = append(hs, h)
	}
	return hs
}

// ShowOverlay asks overlay windows to appear in the given state.
func (b *Bus) ShowOverlay(state OverlayState) {
	for _, h := range b.snapshot(topicShow) {
		h.show(state)
	}
}

// HideOverlay asks overlay windows to disappear.
func (b *Bus) HideOverlay() {
	for _, h := range b.snapshot(topicHide) {
		h.hide()
	}
}

// MicLevel publishes one frame of per-bar microphone levels.
func (b *Bus) MicLevel(levels []float32) {
	for _, h := range b.snapshot(topicLevels) {
		h.levels(levels)
	}
}

// ModelStateChanged tells model lists to refresh.
func (b *Bus) ModelStateChanged() {
	for _, h := range b.snapshot(topicModelState) {
		h.modelState()
	}
}
