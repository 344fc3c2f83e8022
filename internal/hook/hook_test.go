package hook

import (
	"path/filepath"
	"testing"

	"murmur/internal/config"
	"murmur/internal/input"
)

type triggerEvent struct {
	id      string
	pressed bool
}

func newTestManager(t *testing.T) (*Manager, *config.Store, *[]triggerEvent) {
	t.Helper()
	store := config.NewAt(filepath.Join(t.TempDir(), "config.json"))
	m := NewManager(store)
	m.hookFn = func(sc *shortcut) error {
		m.mu.Lock()
		sc.hooked = false // в тестах всё идёт через сырое сопоставление
		m.mu.Unlock()
		return nil
	}
	events := &[]triggerEvent{}
	m.OnTrigger(func(id string, pressed bool) {
		*events = append(*events, triggerEvent{id, pressed})
	})
	return m, store, events
}

func keyDown(m *Manager, code string) {
	m.HandleKey(input.KeyEvent{Code: code}, true)
}

func keyUp(m *Manager, code string) {
	m.HandleKey(input.KeyEvent{Code: code}, false)
}

func TestChordTriggersOnSubsetMatch(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "ctrl+mouse4"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	keyDown(m, "ControlLeft")
	if len(*events) != 0 {
		t.Fatalf("triggered before chord complete: %v", *events)
	}
	m.HandleMouse(3, true)
	if len(*events) != 1 || (*events)[0] != (triggerEvent{"dictate", true}) {
		t.Fatalf("events = %v, want single press", *events)
	}

	// Extra key on top of a matched chord keeps it matched.
	keyDown(m, "KeyA")
	if len(*events) != 1 {
		t.Fatalf("extra key re-triggered: %v", *events)
	}

	keyUp(m, "ControlLeft")
	if len(*events) != 2 || (*events)[1] != (triggerEvent{"dictate", false}) {
		t.Fatalf("events = %v, want release after ctrl up", *events)
	}

	// Release fires once per activation.
	m.HandleMouse(3, false)
	keyUp(m, "KeyA")
	if len(*events) != 2 {
		t.Fatalf("release fired more than once: %v", *events)
	}
}

func TestActiveChordDoesNotRetrigger(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "mouse4"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	m.HandleMouse(3, true)
	m.HandleMouse(3, true)
	if len(*events) != 1 {
		t.Fatalf("repeated press re-triggered: %v", *events)
	}
}

func TestAutoRepeatIgnored(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "a+b"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	keyDown(m, "KeyA")
	m.HandleKey(input.KeyEvent{Code: "KeyA", Repeat: true}, true)
	keyDown(m, "KeyB")
	if len(*events) != 1 {
		t.Fatalf("events = %v, want single press", *events)
	}
}

func TestSuspendBlocksTrigger(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "mouse4"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.Suspend("dictate"); err != nil {
		t.Fatalf("Suspend: %v", err)
	}

	m.HandleMouse(3, true)
	m.HandleMouse(3, false)
	if len(*events) != 0 {
		t.Fatalf("suspended binding triggered: %v", *events)
	}

	if err := m.Resume("dictate"); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	m.HandleMouse(3, true)
	if len(*events) != 1 {
		t.Fatalf("resumed binding did not trigger: %v", *events)
	}
}

func TestSuspendUnknownBinding(t *testing.T) {
	m, _, _ := newTestManager(t)
	if err := m.Suspend("nope"); err == nil {
		t.Fatal("Suspend on unknown binding should fail")
	}
	if err := m.Resume("nope"); err == nil {
		t.Fatal("Resume on unknown binding should fail")
	}
}

func TestCaptureRoutesRawEvents(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "mouse4"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	var raw []RawEvent
	m.SetCapture(func(e RawEvent) { raw = append(raw, e) })

	keyDown(m, "ControlLeft")
	m.HandleMouse(3, true)
	if len(*events) != 0 {
		t.Fatalf("matching ran during capture: %v", *events)
	}
	if len(raw) != 2 || !raw[1].IsMouse || raw[1].Button != 3 {
		t.Fatalf("raw = %+v, want key then mouse button 3", raw)
	}

	m.ClearCapture()
	m.HandleMouse(3, true)
	if len(*events) != 1 {
		t.Fatalf("matching did not resume after capture: %v", *events)
	}
}

func TestReservedMouseButtonsIgnored(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "mouse4"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for b := 0; b < input.ReservedButtons; b++ {
		m.HandleMouse(b, true)
		m.HandleMouse(b, false)
	}
	if len(*events) != 0 {
		t.Fatalf("reserved button triggered: %v", *events)
	}
}

func TestUpdateBindingPersists(t *testing.T) {
	m, store, _ := newTestManager(t)
	m.RegisterAll()

	if err := m.UpdateBinding(config.BindingTranscribe, "ctrl+mouse4"); err != nil {
		t.Fatalf("UpdateBinding: %v", err)
	}
	b, ok := store.Binding(config.BindingTranscribe)
	if !ok {
		t.Fatalf("Binding %s missing", config.BindingTranscribe)
	}
	if b.Current != "ctrl+mouse4" {
		t.Fatalf("Current = %q, want ctrl+mouse4", b.Current)
	}

	if err := m.UpdateBinding(config.BindingTranscribe, ""); err == nil {
		t.Fatal("empty chord should be rejected")
	}
}

func TestStoreBindingChangeReregisters(t *testing.T) {
	m, store, events := newTestManager(t)
	m.RegisterAll()

	// Writing through the store, not the manager, must still swap the
	// live registration.
	if err := store.SetBindingChord(config.BindingTranscribe, "mouse4"); err != nil {
		t.Fatalf("SetBindingChord: %v", err)
	}

	m.HandleMouse(3, true)
	if len(*events) != 1 || (*events)[0] != (triggerEvent{config.BindingTranscribe, true}) {
		t.Fatalf("events = %v, want press for new chord", *events)
	}

	// The replaced chord must no longer fire.
	m.HandleMouse(3, false)
	*events = nil
	b, ok := store.Binding(config.BindingTranscribe)
	if !ok || b.Default == "mouse4" {
		t.Fatalf("unexpected binding state: %+v", b)
	}
	for _, tok := range input.ParseChord(b.Default) {
		m.handleToken(tok, true)
	}
	if len(*events) != 0 {
		t.Fatalf("old chord still fires: %v", *events)
	}
}

func TestResetBindingRestoresDefault(t *testing.T) {
	m, store, _ := newTestManager(t)
	m.RegisterAll()

	if err := m.UpdateBinding(config.BindingCancel, "mouse5"); err != nil {
		t.Fatalf("UpdateBinding: %v", err)
	}
	b, err := m.ResetBinding(config.BindingCancel)
	if err != nil {
		t.Fatalf("ResetBinding: %v", err)
	}
	if b.Current != b.Default {
		t.Fatalf("Current = %q, want default %q", b.Current, b.Default)
	}
	sb, ok := store.Binding(config.BindingCancel)
	if !ok {
		t.Fatalf("Binding %s missing", config.BindingCancel)
	}
	if sb.Current != b.Default {
		t.Fatalf("store Current = %q, want %q", sb.Current, b.Default)
	}
}

func TestUnregisterStopsMatching(t *testing.T) {
	m, _, events := newTestManager(t)
	if err := m.Register("dictate", "mouse4"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	m.Unregister("dictate")

	m.HandleMouse(3, true)
	if len(*events) != 0 {
		t.Fatalf("unregistered binding triggered: %v", *events)
	}
}
