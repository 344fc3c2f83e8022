package overlay

// Smoother low-pass filters incoming microphone levels so the bars do
// not jitter at frame rate. Each displayed channel converges toward the
// input as display = display*0.7 + in*0.3 per frame.
type Smoother struct {
	display []float32
}

const (
	smoothKeep = 0.7
	smoothGain = 0.3
)

// Feed folds one frame of raw levels into the displayed values. The
// displayed slice grows to the incoming length; missing channels decay
// toward zero.
func (s *Smoother) Feed(in []float32) {
	if len(in) > len(s.display) {
		grown := make([]float32, len(in))
		copy(grown, s.display)
		s.display = grown
	}
	for i := range s.display {
		var target float32
		if i < len(in) {
			target = in[i]
		}
		s.display[i] = s.display[i]*smoothKeep + target*smoothGain
	}
}

// Bars returns the first n displayed values, zero-padded when fewer
// channels have been fed.
func (s *Smoother) Bars(n int) []float32 {
	out := make([]float32, n)
	copy(out, s.display)
	return out
}

// Reset drops all displayed values, for a fresh recording.
func (s *Smoother) Reset() {
	s.display = nil
}
