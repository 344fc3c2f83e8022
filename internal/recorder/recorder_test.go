package recorder

import (
	"errors"
	"reflect"
	"testing"

	"murmur/internal/input"
)

// fakeBackend records every call and can be told to fail updates.
type fakeBackend struct {
	suspends   []string
	resumes    []string
	updates    [][2]string // id, chord
	failUpdate map[string]error
	failCount  int
}

func (b *fakeBackend) Suspend(id string) error { b.suspends = append(b.suspends, id); return nil }
func (b *fakeBackend) Resume(id string) error  { b.resumes = append(b.resumes, id); return nil }
func (b *fakeBackend) UpdateBinding(id, chord string) error {
	b.updates = append(b.updates, [2]string{id, chord})
	if err, ok := b.failUpdate[chord]; ok {
		b.failCount++
		return err
	}
	return nil
}

type fakeNotifier struct {
	updateFails   int
	rollbackFails int
}

func (n *fakeNotifier) UpdateFailed(string, error)   { n.updateFails++ }
func (n *fakeNotifier) RollbackFailed(string, error) { n.rollbackFails++ }

func newTestRecorder(b Backend, n Notifier) *Recorder {
	r := New(b, n)
	r.SetOS(input.OSLinux)
	return r
}

func key(code string) input.KeyEvent { return input.KeyEvent{Code: code} }

func TestFullChordLifecycle(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	var doneID, doneChord string
	var doneCommitted bool
	doneCalls := 0
	r.OnDone(func(id, chord string, committed bool) {
		doneCalls++
		doneID, doneChord, doneCommitted = id, chord, committed
	})

	r.Start("transcribe", "alt+space")
	r.KeyDown(key("ControlLeft"))
	r.KeyDown(key("KeyA"))
	r.KeyUp(key("ControlLeft"))
	if !r.Active() {
		t.Fatal("session ended before the held set drained")
	}
	r.KeyUp(key("KeyA"))

	if r.Active() {
		t.Fatal("session still active after commit")
	}
	if doneCalls != 1 || !doneCommitted || doneID != "transcribe" || doneChord != "ctrl+a" {
		t.Errorf("done = (%q, %q, %v) x%d, want (transcribe, ctrl+a, true) x1",
			doneID, doneChord, doneCommitted, doneCalls)
	}
	wantUpdates := [][2]string{{"transcribe", "ctrl+a"}}
	if !reflect.DeepEqual(b.updates, wantUpdates) {
		t.Errorf("updates = %v, want %v", b.updates, wantUpdates)
	}
	if !reflect.DeepEqual(b.suspends, []string{"transcribe"}) {
		t.Errorf("suspends = %v", b.suspends)
	}
	if !reflect.DeepEqual(b.resumes, []string{"transcribe"}) {
		t.Errorf("resumes = %v", b.resumes)
	}
}

func TestAutoRepeatIgnored(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "")
	r.KeyDown(key("ControlLeft"))
	for i := 0; i < 5; i++ {
		r.KeyDown(input.KeyEvent{Code: "ControlLeft", Repeat: true})
	}
	r.KeyDown(input.KeyEvent{Code: "KeyB", Repeat: true}) // repeat of a never-pressed key
	if got := r.FormatCurrentKeys(); got != "Ctrl" {
		t.Errorf("FormatCurrentKeys = %q, want %q", got, "Ctrl")
	}
	r.KeyUp(key("ControlLeft"))

	if len(b.updates) != 1 || b.updates[0][1] != "ctrl" {
		t.Errorf("updates = %v, want single ctrl", b.updates)
	}
}

func TestBothSidesOneToken(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "")
	r.KeyDown(key("ShiftLeft"))
	r.KeyDown(key("ShiftRight"))
	r.KeyUp(key("ShiftLeft"))
	// ShiftRight normalizes to the same token, so the held set already
	// drained on the first release.
	if r.Active() {
		t.Fatal("session should have committed on first shift release")
	}
	if len(b.updates) != 1 || b.updates[0][1] != "shift" {
		t.Errorf("updates = %v, want single shift", b.updates)
	}
}

func TestEscapeCancels(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	var doneChord string
	var doneCommitted bool
	r.OnDone(func(_, chord string, committed bool) { doneChord, doneCommitted = chord, committed })

	r.Start("transcribe", "ctrl+space")
	r.KeyDown(key("ControlLeft"))
	r.KeyDown(key("KeyX"))
	r.KeyDown(key("Escape")) // mid-chord, held set non-empty

	if r.Active() {
		t.Fatal("escape did not end the session")
	}
	if doneCommitted || doneChord != "ctrl+space" {
		t.Errorf("done = (%q, %v), want rollback value uncommitted", doneChord, doneCommitted)
	}
	// restore write plus exactly one resume
	wantUpdates := [][2]string{{"transcribe", "ctrl+space"}}
	if !reflect.DeepEqual(b.updates, wantUpdates) {
		t.Errorf("updates = %v, want %v", b.updates, wantUpdates)
	}
	if !reflect.DeepEqual(b.resumes, []string{"transcribe"}) {
		t.Errorf("resumes = %v, want exactly one", b.resumes)
	}
}

func TestCancelWithoutPriorSkipsWrite(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "")
	r.KeyDown(key("KeyQ"))
	r.Cancel()

	if len(b.updates) != 0 {
		t.Errorf("updates = %v, want none for a binding with no prior value", b.updates)
	}
	if !reflect.DeepEqual(b.resumes, []string{"transcribe"}) {
		t.Errorf("resumes = %v, want exactly one", b.resumes)
	}
}

func TestOutsideClickCancels(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("cancel", "esc")
	r.KeyDown(key("KeyC"))
	r.OutsideClick()

	if r.Active() {
		t.Fatal("outside click did not end the session")
	}
	if !reflect.DeepEqual(b.updates, [][2]string{{"cancel", "esc"}}) {
		t.Errorf("updates = %v, want rollback write", b.updates)
	}
}

func TestReservedMouseButtonsExcluded(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "")
	r.MouseDown(2) // right click: reserved
	if got := r.FormatCurrentKeys(); got != Placeholder {
		t.Errorf("right click entered the chord: %q", got)
	}
	r.MouseDown(3)
	if got := r.FormatCurrentKeys(); got != "Mouse 4" {
		t.Errorf("FormatCurrentKeys = %q, want %q", got, "Mouse 4")
	}
	r.MouseUp(2) // reserved release must not trigger commit bookkeeping
	r.MouseUp(3)

	if len(b.updates) != 1 || b.updates[0][1] != "mouse4" {
		t.Errorf("updates = %v, want single mouse4", b.updates)
	}
}

func TestMixedKeyMouseChord(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "")
	r.KeyDown(key("ControlLeft"))
	r.MouseDown(4)
	r.KeyUp(key("ControlLeft"))
	r.MouseUp(4)

	if len(b.updates) != 1 || b.updates[0][1] != "ctrl+mouse5" {
		t.Errorf("updates = %v, want ctrl+mouse5", b.updates)
	}
}

func TestCommitFailureRollsBack(t *testing.T) {
	b := &fakeBackend{failUpdate: map[string]error{"ctrl+z": errors.New("ipc broke")}}
	n := &fakeNotifier{}
	r := newTestRecorder(b, n)

	var doneChord string
	var doneCommitted bool
	r.OnDone(func(_, chord string, committed bool) { doneChord, doneCommitted = chord, committed })

	r.Start("transcribe", "alt+space")
	r.KeyDown(key("ControlLeft"))
	r.KeyDown(key("KeyZ"))
	r.KeyUp(key("ControlLeft"))
	r.KeyUp(key("KeyZ"))

	wantUpdates := [][2]string{{"transcribe", "ctrl+z"}, {"transcribe", "alt+space"}}
	if !reflect.DeepEqual(b.updates, wantUpdates) {
		t.Errorf("updates = %v, want failed write then rollback", b.updates)
	}
	if n.updateFails != 1 || n.rollbackFails != 0 {
		t.Errorf("notifications = (%d, %d), want (1, 0)", n.updateFails, n.rollbackFails)
	}
	if !reflect.DeepEqual(b.resumes, []string{"transcribe"}) {
		t.Errorf("resumes = %v, want exactly one even after failure", b.resumes)
	}
	if doneCommitted || doneChord != "alt+space" {
		t.Errorf("done = (%q, %v), want rollback value uncommitted", doneChord, doneCommitted)
	}
}

func TestRollbackFailureIsDistinct(t *testing.T) {
	b := &fakeBackend{failUpdate: map[string]error{
		"ctrl+z":    errors.New("ipc broke"),
		"alt+space": errors.New("still broke"),
	}}
	n := &fakeNotifier{}
	r := newTestRecorder(b, n)

	r.Start("transcribe", "alt+space")
	r.KeyDown(key("ControlLeft"))
	r.KeyDown(key("KeyZ"))
	r.KeyUp(key("ControlLeft"))
	r.KeyUp(key("KeyZ"))

	if n.updateFails != 1 || n.rollbackFails != 1 {
		t.Errorf("notifications = (%d, %d), want one of each", n.updateFails, n.rollbackFails)
	}
	if !reflect.DeepEqual(b.resumes, []string{"transcribe"}) {
		t.Errorf("resumes = %v, want exactly one", b.resumes)
	}
	if r.Active() {
		t.Fatal("session must end even when both writes fail")
	}
}

func TestSameIDStartIsNoop(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "ctrl+space")
	r.KeyDown(key("KeyA"))
	r.Start("transcribe", "ctrl+space") // must not reset the session

	if got := r.FormatCurrentKeys(); got != "A" {
		t.Errorf("FormatCurrentKeys = %q, want %q after no-op restart", got, "A")
	}
	if len(b.suspends) != 1 {
		t.Errorf("suspends = %v, want exactly one", b.suspends)
	}
}

func TestSecondBindingForcesClose(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "ctrl+space")
	r.KeyDown(key("KeyA"))
	r.Start("cancel", "esc")

	id, ok := r.ActiveID()
	if !ok || id != "cancel" {
		t.Fatalf("active = (%q, %v), want cancel session", id, ok)
	}
	// the first session must have been cancelled: rollback write + resume
	if !reflect.DeepEqual(b.updates, [][2]string{{"transcribe", "ctrl+space"}}) {
		t.Errorf("updates = %v, want transcribe rollback", b.updates)
	}
	if !reflect.DeepEqual(b.resumes, []string{"transcribe"}) {
		t.Errorf("resumes = %v, want transcribe resumed", b.resumes)
	}
	if !reflect.DeepEqual(b.suspends, []string{"transcribe", "cancel"}) {
		t.Errorf("suspends = %v", b.suspends)
	}
}

func TestEventsIgnoredWhenIdle(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.KeyDown(key("KeyA"))
	r.KeyUp(key("KeyA"))
	r.MouseDown(3)
	r.MouseUp(3)
	r.Cancel()

	if len(b.updates) != 0 || len(b.resumes) != 0 || len(b.suspends) != 0 {
		t.Errorf("idle recorder touched the backend: %v %v %v", b.updates, b.resumes, b.suspends)
	}
	if got := r.FormatCurrentKeys(); got != "" {
		t.Errorf("FormatCurrentKeys = %q, want empty when idle", got)
	}
}

func TestFormatCurrentKeysProgress(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRecorder(b, nil)

	r.Start("transcribe", "")
	if got := r.FormatCurrentKeys(); got != Placeholder {
		t.Errorf("empty session = %q, want placeholder", got)
	}
	r.KeyDown(key("ControlLeft"))
	r.KeyDown(key("ShiftLeft"))
	r.KeyDown(key("KeyA"))
	if got := r.FormatCurrentKeys(); got != "Ctrl + Shift + A" {
		t.Errorf("FormatCurrentKeys = %q, want %q", got, "Ctrl + Shift + A")
	}
}
