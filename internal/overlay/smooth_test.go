package overlay

import (
	"math"
	"testing"
)

func TestSmootherConvergesMonotonically(t *testing.T) {
	var s Smoother

	target := float32(1.0)
	prev := float32(0)
	for i := 0; i < 50; i++ {
		s.Feed([]float32{target})
		cur := s.Bars(1)[0]
		if cur <= prev {
			t.Fatalf("step %d: %v -> %v, not increasing", i, prev, cur)
		}
		if cur > target {
			t.Fatalf("step %d: overshoot %v > %v", i, cur, target)
		}
		prev = cur
	}
	if target-prev > 0.001 {
		t.Fatalf("did not converge: %v", prev)
	}
}

func TestSmootherImpulseDecay(t *testing.T) {
	var s Smoother

	s.Feed([]float32{1})
	v := s.Bars(1)[0]
	if math.Abs(float64(v-0.3)) > 1e-6 {
		t.Fatalf("first frame = %v, want 0.3", v)
	}

	// Silence after the impulse decays by 0.7 per frame.
	for i := 0; i < 5; i++ {
		prev := s.Bars(1)[0]
		s.Feed([]float32{0})
		cur := s.Bars(1)[0]
		if math.Abs(float64(cur-prev*0.7)) > 1e-6 {
			t.Fatalf("decay step %d: %v -> %v, want factor 0.7", i, prev, cur)
		}
	}
}

func TestSmootherGrowsToInput(t *testing.T) {
	var s Smoother

	s.Feed([]float32{1})
	s.Feed([]float32{1, 1, 1})
	bars := s.Bars(4)
	if len(bars) != 4 {
		t.Fatalf("len = %d, want 4", len(bars))
	}
	if bars[0] <= bars[1] {
		t.Fatalf("older channel should be ahead: %v", bars)
	}
	if bars[3] != 0 {
		t.Fatalf("unfed channel = %v, want 0", bars[3])
	}
}

func TestSmootherReset(t *testing.T) {
	var s Smoother

	s.Feed([]float32{1, 1})
	s.Reset()
	bars := s.Bars(2)
	if bars[0] != 0 || bars[1] != 0 {
		t.Fatalf("after reset: %v", bars)
	}
}
