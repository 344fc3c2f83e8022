package bridge

import (
	"testing"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()

	var states []OverlayState
	sub := b.SubscribeShow(func(s OverlayState) { states = append(states, s) })
	defer sub.Close()

	b.ShowOverlay(StateRecording)
	b.ShowOverlay(StateTranscribing)
	if len(states) != 2 || states[0] != StateRecording || states[1] != StateTranscribing {
		t.Fatalf("states = %v", states)
	}
}

func TestNoDeliveryAfterClose(t *testing.T) {
	b := New()

	hides := 0
	sub := b.SubscribeHide(func() { hides++ })
	b.HideOverlay()
	sub.Close()
	b.HideOverlay()
	if hides != 1 {
		t.Fatalf("hides = %d, want 1", hides)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New()

	levels := 0
	sub := b.SubscribeLevels(func([]float32) { levels++ })
	other := b.SubscribeLevels(func([]float32) {})
	defer other.Close()

	sub.Close()
	sub.Close()
	sub.Close()

	b.MicLevel([]float32{0.5})
	if levels != 0 {
		t.Fatalf("closed subscriber still called %d times", levels)
	}
}

func TestIndependentSubscriptions(t *testing.T) {
	b := New()

	a, c := 0, 0
	subA := b.SubscribeModelState(func() { a++ })
	subC := b.SubscribeModelState(func() { c++ })

	b.ModelStateChanged()
	subA.Close()
	b.ModelStateChanged()

	if a != 1 || c != 2 {
		t.Fatalf("a = %d, c = %d, want 1 and 2", a, c)
	}
	subC.Close()
}
