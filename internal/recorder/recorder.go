// Package recorder implements the interactive shortcut-capture session.
//
// One binding at a time can be re-recorded: the live binding is suspended
// so it cannot fire while its own keys are pressed, every distinct key or
// extra mouse button is collected in press order, and the chord commits
// at the moment the last held input is released. Escape or a click
// outside the editor cancels and restores the previous value. Resume is
// issued on every exit path, even when the suspend or the binding write
// failed, so the live hotkey is never left disabled.
package recorder

import (
	"log"
	"sync"

	"murmur/internal/input"
)

// Placeholder is shown while a session is active but nothing has been
// pressed yet.
const Placeholder = "Press keys..."

// Backend is the command surface the recorder drives: the global
// shortcut manager. Every call is independently fallible.
type Backend interface {
	Suspend(id string) error
	Resume(id string) error
	UpdateBinding(id, chord string) error
}

// Notifier surfaces capture failures to the user. A failed rollback gets
// its own distinct notification: silently losing the binding would leave
// it unusable.
type Notifier interface {
	UpdateFailed(id string, err error)
	RollbackFailed(id string, err error)
}

// session is the ephemeral state of one capture. It exists only between
// Start and commit/cancel.
type session struct {
	id       string
	rollback string
	hadPrior bool
	held     map[string]struct{}
	recorded []string
}

// Recorder owns at most one active session.
type Recorder struct {
	mu       sync.Mutex
	backend  Backend
	notifier Notifier
	os       input.OS
	sess     *session
	onDone   func(id, chord string, committed bool)
}

// New creates a recorder bound to a backend. notifier may be nil.
func New(backend Backend, notifier Notifier) *Recorder {
	return &Recorder{
		backend:  backend,
		notifier: notifier,
		os:       input.CurrentOS(),
	}
}

// SetOS overrides platform key naming (tests).
func (r *Recorder) SetOS(os input.OS) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.os = os
}

// OnDone sets the callback invoked after every session end, committed
// or not, with the binding's value as of session end.
func (r *Recorder) OnDone(fn func(id, chord string, committed bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDone = fn
}

// Start opens a capture session for a binding. Starting the already
// active binding is a no-op; starting a different one force-closes the
// open session first. current is the chord to restore on cancel or on a
// failed commit; empty means the binding had no prior value.
func (r *Recorder) Start(id, current string) {
	r.mu.Lock()
	if r.sess != nil {
		if r.sess.id == id {
			r.mu.Unlock()
			return
		}
		fx := r.cancelLocked()
		r.mu.Unlock()
		fx()
		r.mu.Lock()
	}
	r.sess = &session{
		id:       id,
		rollback: current,
		hadPrior: current != "",
		held:     make(map[string]struct{}),
	}
	r.mu.Unlock()

	// Suspend failure is logged and swallowed: capture still proceeds,
	// and resume fires unconditionally on session end either way.
	if err := r.backend.Suspend(id); err != nil {
		log.Printf("recorder: suspend %s: %v", id, err)
	}
}

// Active reports whether a session is open.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sess != nil
}

// ActiveID returns the binding id being edited, if any.
func (r *Recorder) ActiveID() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess == nil {
		return "", false
	}
	return r.sess.id, true
}

// KeyDown records a key press. Auto-repeat events are ignored entirely;
// Escape cancels regardless of what is held.
func (r *Recorder) KeyDown(e input.KeyEvent) {
	r.mu.Lock()
	if r.sess == nil || e.Repeat {
		r.mu.Unlock()
		return
	}
	token := input.NormalizeKeyEvent(e, r.os)
	if token == "esc" {
		fx := r.cancelLocked()
		r.mu.Unlock()
		fx()
		return
	}
	r.pressLocked(token)
	r.mu.Unlock()
}

// KeyUp releases a key. When the held set drains to empty and something
// was recorded, the chord commits.
func (r *Recorder) KeyUp(e input.KeyEvent) {
	r.mu.Lock()
	if r.sess == nil {
		r.mu.Unlock()
		return
	}
	token := input.NormalizeKeyEvent(e, r.os)
	fx := r.releaseLocked(token)
	r.mu.Unlock()
	fx()
}

// MouseDown records an extra mouse button press. Buttons below the
// reserved range are ignored: left, middle and right stay available for
// normal UI interaction.
func (r *Recorder) MouseDown(button int) {
	r.mu.Lock()
	if r.sess == nil || input.ReservedMouseButton(button) {
		r.mu.Unlock()
		return
	}
	token, ok := input.MouseButtonToken(button)
	if ok {
		r.pressLocked(token)
	}
	r.mu.Unlock()
}

// MouseUp releases an extra mouse button.
func (r *Recorder) MouseUp(button int) {
	r.mu.Lock()
	if r.sess == nil || input.ReservedMouseButton(button) {
		r.mu.Unlock()
		return
	}
	token, ok := input.MouseButtonToken(button)
	if !ok {
		r.mu.Unlock()
		return
	}
	fx := r.releaseLocked(token)
	r.mu.Unlock()
	fx()
}

// OutsideClick cancels the session in response to a pointer press
// outside the active editor's bounds.
func (r *Recorder) OutsideClick() {
	r.Cancel()
}

// Cancel aborts the session and restores the snapshotted value.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	if r.sess == nil {
		r.mu.Unlock()
		return
	}
	fx := r.cancelLocked()
	r.mu.Unlock()
	fx()
}

// FormatCurrentKeys returns the in-progress chord formatted for display,
// or the placeholder prompt while nothing has been recorded.
func (r *Recorder) FormatCurrentKeys() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess == nil {
		return ""
	}
	if len(r.sess.recorded) == 0 {
		return Placeholder
	}
	return input.FormatChordDisplay(input.ComposeChord(r.sess.recorded))
}

// pressLocked adds a token to the held set and, on first press, to the
// append-only recorded sequence.
func (r *Recorder) pressLocked(token string) {
	if _, down := r.sess.held[token]; down {
		return
	}
	r.sess.held[token] = struct{}{}
	for _, t := range r.sess.recorded {
		if t == token {
			return
		}
	}
	r.sess.recorded = append(r.sess.recorded, token)
}

// releaseLocked removes a token from the held set and returns the
// pending side effects: a commit when the set drained with a recorded
// chord, a no-op otherwise.
func (r *Recorder) releaseLocked(token string) func() {
	delete(r.sess.held, token)
	if len(r.sess.held) > 0 || len(r.sess.recorded) == 0 {
		return func() {}
	}
	return r.commitLocked()
}

// commitLocked ends the session and returns the effect closure that
// performs the backend calls outside the lock.
func (r *Recorder) commitLocked() func() {
	s := r.sess
	r.sess = nil
	done := r.onDone
	chord := input.ComposeChord(s.recorded)

	return func() {
		final := chord
		committed := true
		if err := r.backend.UpdateBinding(s.id, chord); err != nil {
			log.Printf("recorder: update %s: %v", s.id, err)
			committed = false
			final = s.rollback
			r.notifyUpdateFailed(s.id, err)
			if rerr := r.backend.UpdateBinding(s.id, s.rollback); rerr != nil {
				log.Printf("recorder: rollback %s: %v", s.id, rerr)
				r.notifyRollbackFailed(s.id, rerr)
			}
		}
		r.resume(s.id)
		if done != nil {
			done(s.id, final, committed)
		}
	}
}

// cancelLocked ends the session and returns the effect closure restoring
// the prior value. A binding that never had one skips the redundant
// write and is resumed directly.
func (r *Recorder) cancelLocked() func() {
	s := r.sess
	r.sess = nil
	done := r.onDone

	return func() {
		if s.hadPrior {
			if err := r.backend.UpdateBinding(s.id, s.rollback); err != nil {
				log.Printf("recorder: restore %s: %v", s.id, err)
				r.notifyUpdateFailed(s.id, err)
			}
		}
		r.resume(s.id)
		if done != nil {
			done(s.id, s.rollback, false)
		}
	}
}

// resume is the unconditional cleanup step of every exit path.
func (r *Recorder) resume(id string) {
	if err := r.backend.Resume(id); err != nil {
		log.Printf("recorder: resume %s: %v", id, err)
	}
}

func (r *Recorder) notifyUpdateFailed(id string, err error) {
	if r.notifier != nil {
		r.notifier.UpdateFailed(id, err)
	}
}

func (r *Recorder) notifyRollbackFailed(id string, err error) {
	if r.notifier != nil {
		r.notifier.RollbackFailed(id, err)
	}
}
